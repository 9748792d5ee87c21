package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/coverage/core/metrics"
)

// PromConfig configures PromSink.
type PromConfig struct {
	// Textfile, when set, receives the gathered metrics on Flush in the
	// node_exporter textfile format.
	Textfile string `json:"textfile"`
}

// PromSink records coverage runs in Prometheus metrics.
type PromSink struct {
	assignments *prometheus.CounterVec
	fairness    prometheus.Gauge
	lastRun     prometheus.Gauge
	gatherer    prometheus.Gatherer
	textfile    string
	mu          sync.Mutex
}

// NewPromSink registers coverage metrics on the default Prometheus registerer.
func NewPromSink(cfg PromConfig) (*PromSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. The
// registerer is also used as gatherer for the textfile when it implements
// prometheus.Gatherer.
func NewPromSinkWithRegistry(cfg PromConfig, reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	assignments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "coverage_assignments_total",
		Help: "Needed periods processed, by tier and outcome",
	}, []string{"tier", "assigned", "ct"})
	fairness := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "coverage_fairness_score",
		Help: "Evenness of coverage counts across staff, 0 to 100",
	})
	lastRun := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "coverage_last_run_timestamp_seconds",
		Help: "Unix time of the last recorded coverage run",
	})

	if err := reg.Register(assignments); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			assignments = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(fairness); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			fairness = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(lastRun); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			lastRun = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}
	return &PromSink{
		assignments: assignments,
		fairness:    fairness,
		lastRun:     lastRun,
		gatherer:    gatherer,
		textfile:    cfg.Textfile,
	}, nil
}

// RecordCoverage increments the counter for each event.
func (s *PromSink) RecordCoverage(events []coremetrics.CoverageEvent) error {
	for _, ev := range events {
		tier := ev.Tier
		if !ev.Assigned {
			tier = "none"
		}
		s.assignments.WithLabelValues(tier, strconv.FormatBool(ev.Assigned), strconv.FormatBool(ev.CT)).Inc()
		s.lastRun.Set(float64(ev.Time.Unix()))
	}
	return nil
}

// RecordFairness sets the fairness gauge.
func (s *PromSink) RecordFairness(ev coremetrics.FairnessEvent) error {
	s.fairness.Set(ev.Score)
	return nil
}

// Flush writes the textfile when one is configured.
func (s *PromSink) Flush() error {
	if s.textfile == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return prometheus.WriteToTextfile(s.textfile, s.gatherer)
}
