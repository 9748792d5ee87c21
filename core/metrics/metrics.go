package metrics

import (
	"io"
	"time"

	"github.com/kilianp07/coverage/core/assign"
)

// CoverageEvent is the outcome of one needed period.
type CoverageEvent struct {
	RunID    string
	Date     string
	Absent   string
	Covering string
	Period   string
	Tier     string
	CT       bool
	Assigned bool
	Time     time.Time
}

// Sink records coverage events.
type Sink interface {
	RecordCoverage(events []CoverageEvent) error
}

// FairnessEvent reports how evenly coverage is spread after a run.
type FairnessEvent struct {
	RunID string
	Date  string
	Score float64
	Staff int
	Time  time.Time
}

// FairnessRecorder is implemented by sinks able to record fairness scores.
type FairnessRecorder interface {
	RecordFairness(ev FairnessEvent) error
}

// Flusher is implemented by sinks that buffer data until the end of a run.
type Flusher interface {
	Flush() error
}

// Flush flushes s when it supports it.
func Flush(s Sink) error {
	if f, ok := s.(Flusher); ok {
		return f.Flush()
	}
	return nil
}

// Close releases s when it holds resources.
func Close(s Sink) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Events converts an outcome into coverage events stamped with now.
func Events(runID string, o *assign.Outcome, now time.Time) []CoverageEvent {
	out := make([]CoverageEvent, 0, len(o.Results))
	for _, r := range o.Results {
		ev := CoverageEvent{
			RunID:    runID,
			Date:     o.Date,
			Absent:   r.Absent,
			Covering: r.Covering,
			Period:   string(r.Period),
			CT:       r.CT,
			Assigned: r.Assigned,
			Time:     now,
		}
		if r.Assigned {
			ev.Tier = r.Tier.String()
		}
		out = append(out, ev)
	}
	return out
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordCoverage([]CoverageEvent) error { return nil }
func (NopSink) RecordFairness(FairnessEvent) error   { return nil }
func (NopSink) Flush() error                         { return nil }
