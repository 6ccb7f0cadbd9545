// Package factory provides a small generic registry used to instantiate
// modules from configuration. A module is named by a type string and carries
// a map of raw settings; the registered factory decodes the settings into a
// typed struct and returns the concrete implementation.
//
// Example usage:
//
//	reg := factory.NewRegistry[metrics.MetricsSink]()
//	reg.Register("prometheus", func(conf map[string]any) (metrics.MetricsSink, error) {
//	    var c struct{ Port int `json:"port"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return metrics.NewPromSink(c.Port)
//	})
//	s, err := reg.Create(factory.ModuleConfig{Type: "prometheus", Conf: map[string]any{"port": 9090}})
package factory
