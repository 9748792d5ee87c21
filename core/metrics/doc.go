// Package metrics defines the sinks that record coverage runs for
// observability. A run produces one CoverageEvent per needed period and one
// FairnessEvent for the ledger. Sinks such as the Prometheus and InfluxDB
// implementations in infra/metrics are created from configuration through the
// factory helpers, which combine several sinks into a MultiSink.
package metrics
