package metrics

import "errors"

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordCoverage forwards the events to all sinks, returning the first error encountered.
func (m *MultiSink) RecordCoverage(events []CoverageEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordCoverage(events); err != nil {
			return err
		}
	}
	return nil
}

// RecordFairness forwards fairness scores when supported by the sink.
func (m *MultiSink) RecordFairness(ev FairnessEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(FairnessRecorder); ok {
			if err := rec.RecordFairness(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flush flushes every sink and joins the errors.
func (m *MultiSink) Flush() error {
	var errs []error
	for _, s := range m.Sinks {
		if err := Flush(s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink and joins the errors.
func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.Sinks {
		if err := Close(s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
