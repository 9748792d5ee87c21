package config

import (
	"fmt"

	"github.com/kilianp07/coverage/core/report"
	"github.com/kilianp07/coverage/infra/mqtt"
)

// RosterConfig points at the schedule table.
type RosterConfig struct {
	Path string `json:"path"`
	// Sheet selects an XLSX sheet; empty means the first one.
	Sheet string `json:"sheet"`
}

// ReportConfig controls the per-date artifacts.
type ReportConfig struct {
	Dir string `json:"dir"`
	// Export adds a machine-readable copy next to the text report.
	Export string `json:"export"`
}

func (c *ReportConfig) SetDefaults() {
	if c.Dir == "" {
		c.Dir = "."
	}
}

func (c ReportConfig) Validate() error {
	switch c.Export {
	case "", report.FormatJSON, report.FormatCSV, report.FormatYAML:
		return nil
	default:
		return fmt.Errorf("unknown export format %q", c.Export)
	}
}

// NotifyConfig enables publishing run outcomes over MQTT.
type NotifyConfig struct {
	Enabled bool        `json:"enabled"`
	MQTT    mqtt.Config `json:"mqtt"`
}

func (c *NotifyConfig) SetDefaults() {
	if c.MQTT.Topic == "" {
		c.MQTT.Topic = mqtt.DefaultTopic
	}
}

func (c NotifyConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.MQTT.Broker == "" {
		return fmt.Errorf("mqtt.broker is required when notify is enabled")
	}
	if c.MQTT.QoS > 2 {
		return fmt.Errorf("mqtt.qos must be 0, 1 or 2")
	}
	return nil
}

// HTTPConfig is used by the serve command.
type HTTPConfig struct {
	Addr string `json:"addr"`
}

func (c *HTTPConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}
