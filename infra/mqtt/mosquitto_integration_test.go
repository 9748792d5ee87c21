package mqtt

import (
	"context"
	"testing"
	"time"

	"github.com/kilianp07/coverage/test/util"
)

func TestNotifierMosquitto(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping broker test in short mode")
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	broker, err := util.StartBroker(ctx)
	if err != nil {
		t.Skipf("mosquitto unavailable: %v", err)
	}
	defer broker.Stop()

	n, err := NewPahoNotifier(Config{Broker: broker.URL, ClientID: "coverage-it", Topic: "school/coverage", QoS: 1, BackoffMS: 10})
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}
	defer func() { _ = n.Close() }()

	msg := sampleMessage()
	if err := n.Notify(ctx, msg); err != nil {
		t.Fatalf("notify: %v", err)
	}

	// A board joining after the run still receives the day's outcome.
	readCtx, readCancel := context.WithTimeout(ctx, 5*time.Second)
	defer readCancel()
	got, err := util.RetainedMessage(readCtx, broker.URL, "school/coverage/10-21-2026")
	if err != nil {
		t.Fatalf("retained outcome: %v", err)
	}
	if got.RunID != msg.RunID || got.Outcome == nil || len(got.Outcome.Results) != 1 {
		t.Fatalf("unexpected retained message %+v", got)
	}
	if got.Outcome.Results[0].Covering != "Doe, Jane" {
		t.Fatalf("unexpected covering %q", got.Outcome.Results[0].Covering)
	}
}
