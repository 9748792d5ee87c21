package ledger

import (
	"context"
	"errors"

	"github.com/kilianp07/coverage/core/factory"
	"github.com/kilianp07/coverage/core/logger"
)

// ErrCorrupt is returned when persisted ledger data cannot be decoded.
var ErrCorrupt = errors.New("ledger corrupt")

// Store loads and saves a whole ledger. Save always rewrites everything.
type Store interface {
	Load(ctx context.Context) (*Ledger, error)
	Save(ctx context.Context, l *Ledger) error
	Close() error
}

// LoadOrEmpty loads the ledger from s. Any failure is logged and yields an
// empty ledger so the run can continue.
func LoadOrEmpty(ctx context.Context, s Store, log logger.Logger) *Ledger {
	l, err := s.Load(ctx)
	if err != nil {
		logger.OrNop(log).Warnf("usage ledger unavailable, starting empty: %v", err)
		return New()
	}
	return l
}

// Stores holds the factories of the available ledger backends.
var Stores = factory.NewRegistry[Store]()

// NewStore builds the store described by cfg.
func NewStore(cfg factory.ModuleConfig) (Store, error) {
	return Stores.Create(cfg)
}

type pathConf struct {
	Path string `json:"path"`
}

func init() {
	Stores.MustRegister("json", func(conf map[string]any) (Store, error) {
		var c pathConf
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.Path == "" {
			c.Path = DefaultJSONPath
		}
		return NewJSONStore(c.Path), nil
	})
	Stores.MustRegister("sqlite", func(conf map[string]any) (Store, error) {
		var c pathConf
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.Path == "" {
			c.Path = DefaultSQLitePath
		}
		return NewSQLiteStore(c.Path)
	})
	Stores.MustRegister("memory", func(map[string]any) (Store, error) {
		return NewMemoryStore(), nil
	})
}
