// Package util holds helpers for tests that need a live MQTT broker or a
// running metrics endpoint.
package util

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/kilianp07/coverage/core/notify"
)

const (
	BrokerTimeout = 5 * time.Second
	MetricTimeout = 5 * time.Second

	retryEvery = 50 * time.Millisecond
)

// Broker is a disposable Mosquitto container accepting anonymous clients.
type Broker struct {
	URL       string
	container tc.Container
}

// StartBroker runs Mosquitto with the no-auth config shipped in the image and
// waits until it accepts MQTT connections.
func StartBroker(ctx context.Context) (*Broker, error) {
	cont, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "eclipse-mosquitto:2.0",
			Cmd:          []string{"mosquitto", "-c", "/mosquitto-no-auth.conf"},
			ExposedPorts: []string{"1883/tcp"},
			WaitingFor:   wait.ForListeningPort("1883/tcp"),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("start mosquitto: %w", err)
	}
	b := &Broker{container: cont}
	if b.URL, err = cont.PortEndpoint(ctx, "1883/tcp", "tcp"); err != nil {
		b.Stop()
		return nil, err
	}
	readyCtx, cancel := context.WithTimeout(ctx, BrokerTimeout)
	defer cancel()
	if err := b.ready(readyCtx); err != nil {
		b.Stop()
		return nil, fmt.Errorf("mosquitto not ready: %w", err)
	}
	return b, nil
}

// Stop terminates the container.
func (b *Broker) Stop() {
	_ = b.container.Terminate(context.Background())
}

func (b *Broker) ready(ctx context.Context) error {
	opts := paho.NewClientOptions().AddBroker(b.URL).SetClientID("coverage-ready").SetConnectTimeout(time.Second)
	for {
		cli := paho.NewClient(opts)
		if err := await(ctx, cli.Connect()); err == nil {
			cli.Disconnect(0)
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryEvery):
		}
	}
}

// RetainedMessage subscribes to topic on broker and decodes the coverage
// message the broker retained there.
func RetainedMessage(ctx context.Context, broker, topic string) (notify.Message, error) {
	var msg notify.Message
	cli := paho.NewClient(paho.NewClientOptions().AddBroker(broker).SetClientID("coverage-reader"))
	if err := await(ctx, cli.Connect()); err != nil {
		return msg, fmt.Errorf("connect: %w", err)
	}
	defer cli.Disconnect(100)

	payloads := make(chan []byte, 1)
	tok := cli.Subscribe(topic, 1, func(_ paho.Client, m paho.Message) {
		select {
		case payloads <- m.Payload():
		default:
		}
	})
	if err := await(ctx, tok); err != nil {
		return msg, fmt.Errorf("subscribe %s: %w", topic, err)
	}
	select {
	case p := <-payloads:
		err := json.Unmarshal(p, &msg)
		return msg, err
	case <-ctx.Done():
		return msg, fmt.Errorf("nothing retained on %s: %w", topic, ctx.Err())
	}
}

func await(ctx context.Context, tok paho.Token) error {
	select {
	case <-tok.Done():
		return tok.Error()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WaitForSample polls the metrics endpoint at url until a sample of metric
// carrying every given label is exposed, and returns its value.
func WaitForSample(ctx context.Context, url, metric string, labels map[string]string) (float64, error) {
	for {
		if v, ok := scrapeSample(ctx, url, metric, labels); ok {
			return v, nil
		}
		select {
		case <-ctx.Done():
			return 0, fmt.Errorf("sample %s%v not exposed: %w", metric, labels, ctx.Err())
		case <-time.After(retryEvery):
		}
	}
}

func scrapeSample(ctx context.Context, url, metric string, labels map[string]string) (float64, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, false
	}
	defer resp.Body.Close()

	sc := bufio.NewScanner(resp.Body)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		sp := strings.LastIndexByte(line, ' ')
		if sp < 0 {
			continue
		}
		series := line[:sp]
		name, set, _ := strings.Cut(series, "{")
		if name != metric || !hasLabels(set, labels) {
			continue
		}
		v, err := strconv.ParseFloat(line[sp+1:], 64)
		if err != nil {
			continue
		}
		return v, true
	}
	return 0, false
}

func hasLabels(set string, labels map[string]string) bool {
	for k, v := range labels {
		if !strings.Contains(set, k+`="`+v+`"`) {
			return false
		}
	}
	return true
}
