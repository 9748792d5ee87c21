package config

import (
	"fmt"

	"github.com/kilianp07/coverage/core/factory"
	"github.com/kilianp07/coverage/core/ledger"
)

// LedgerConfig defines where the usage ledger is persisted.
type LedgerConfig struct {
	// Backend selects the store type: "json", "sqlite" or "memory".
	Backend string `json:"backend"`
	// Path is the file location of the store.
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *LedgerConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "json"
	}
	if c.Path == "" {
		switch c.Backend {
		case "sqlite":
			c.Path = ledger.DefaultSQLitePath
		case "json":
			c.Path = ledger.DefaultJSONPath
		}
	}
}

// Validate checks mandatory fields.
func (c LedgerConfig) Validate() error {
	switch c.Backend {
	case "json", "sqlite":
		if c.Path == "" {
			return fmt.Errorf("path is required")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown backend %s", c.Backend)
	}
	return nil
}

// Module converts the section into the store factory config.
func (c LedgerConfig) Module() factory.ModuleConfig {
	return factory.ModuleConfig{Type: c.Backend, Conf: map[string]any{"path": c.Path}}
}
