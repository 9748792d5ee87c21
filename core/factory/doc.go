// Package factory provides a small generic registry used to build pluggable
// components from configuration. A component is described by a type string
// and a map of raw settings; the registered factory decodes the settings into
// its own struct and returns the implementation. Ledger stores and metric
// sinks are both created this way.
//
// Example usage:
//
//	reg := factory.NewRegistry[ledger.Store]()
//	reg.Register("json", func(conf map[string]any) (ledger.Store, error) {
//	    var c struct{ Path string `json:"path"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return ledger.NewJSONStore(c.Path), nil
//	})
//	s, err := reg.Create(factory.ModuleConfig{Type: "json", Conf: map[string]any{"path": "tracker.json"}})
package factory
