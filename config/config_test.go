package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

//nolint:gocyclo
func TestLoad(t *testing.T) {
	path := writeConfig(t, "config.yaml", `roster:
  path: "schedule.xlsx"
  sheet: "Fall"
ledger:
  backend: "sqlite"
  path: "ledger.db"
report:
  dir: "reports"
  export: "csv"
metrics:
  sinks:
    - type: "prometheus"
      conf:
        textfile: "coverage.prom"
notify:
  enabled: true
  mqtt:
    broker: "tcp://localhost:1883"
    client_id: "cli"
    topic: "school/coverage"
    qos: 1
    max_retries: 5
http:
  addr: ":9090"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"roster.path", cfg.Roster.Path, "schedule.xlsx"},
		{"roster.sheet", cfg.Roster.Sheet, "Fall"},
		{"ledger.backend", cfg.Ledger.Backend, "sqlite"},
		{"ledger.path", cfg.Ledger.Path, "ledger.db"},
		{"report.dir", cfg.Report.Dir, "reports"},
		{"report.export", cfg.Report.Export, "csv"},
		{"metrics_sink", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "prometheus", true},
		{"metrics_conf", cfg.Metrics.Sinks[0].Conf["textfile"], "coverage.prom"},
		{"notify.enabled", cfg.Notify.Enabled, true},
		{"broker", cfg.Notify.MQTT.Broker, "tcp://localhost:1883"},
		{"client_id", cfg.Notify.MQTT.ClientID, "cli"},
		{"topic", cfg.Notify.MQTT.Topic, "school/coverage"},
		{"qos", cfg.Notify.MQTT.QoS, byte(1)},
		{"max_retries", cfg.Notify.MQTT.MaxRetries, 5},
		{"http.addr", cfg.HTTP.Addr, ":9090"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{"roster":{"path":"s.csv"},"ledger":{"backend":"memory"}}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Roster.Path != "s.csv" || cfg.Ledger.Backend != "memory" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Ledger.Path != "" {
		t.Fatalf("memory backend should not get a default path, got %q", cfg.Ledger.Path)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Ledger.Backend != "json" || cfg.Ledger.Path != "coverage_tracker.json" {
		t.Errorf("ledger defaults: %+v", cfg.Ledger)
	}
	if cfg.Report.Dir != "." {
		t.Errorf("report dir default: %q", cfg.Report.Dir)
	}
	if cfg.Notify.MQTT.Topic != "coverage" {
		t.Errorf("topic default: %q", cfg.Notify.MQTT.Topic)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("addr default: %q", cfg.HTTP.Addr)
	}
	if cfg.Notify.Enabled {
		t.Errorf("notify should be disabled by default")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "config.yaml", "ledger:\n  path: \"file.json\"\n")
	t.Setenv("COVERAGE_LEDGER__PATH", "env.json")
	t.Setenv("COVERAGE_NOTIFY__ENABLED", "true")
	t.Setenv("COVERAGE_NOTIFY__MQTT__BROKER", "tcp://broker:1883")
	t.Setenv("COVERAGE_NOTIFY__MQTT__QOS", "2")
	t.Setenv("COVERAGE_NOTIFY__MQTT__CLIENT_ID", "front-office")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Ledger.Path != "env.json" {
		t.Errorf("env override ignored: %q", cfg.Ledger.Path)
	}
	if !cfg.Notify.Enabled || cfg.Notify.MQTT.Broker != "tcp://broker:1883" || cfg.Notify.MQTT.QoS != 2 {
		t.Errorf("notify env override ignored: %+v", cfg.Notify)
	}
	if cfg.Notify.MQTT.ClientID != "front-office" {
		t.Errorf("underscored key not mapped: %q", cfg.Notify.MQTT.ClientID)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]struct {
		name string
		data string
	}{
		"format":  {"config.toml", "x = 1"},
		"backend": {"config.yaml", "ledger:\n  backend: \"redis\"\n"},
		"export":  {"config.yaml", "report:\n  export: \"xml\"\n"},
		"broker":  {"config.yaml", "notify:\n  enabled: true\n"},
		"qos":     {"config.yaml", "notify:\n  enabled: true\n  mqtt:\n    broker: \"tcp://x:1883\"\n    qos: 3\n"},
		"sink":    {"config.yaml", "metrics:\n  sinks:\n    - conf: {}\n"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, c.name, c.data)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLedgerModule(t *testing.T) {
	m := LedgerConfig{Backend: "sqlite", Path: "x.db"}.Module()
	if m.Type != "sqlite" || m.Conf["path"] != "x.db" {
		t.Fatalf("unexpected module %+v", m)
	}
}
