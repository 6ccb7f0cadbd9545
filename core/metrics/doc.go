package metrics

// Package metrics defines interfaces and implementations for collecting
// rental metrics. Sinks like PromSink and InfluxSink record events such as
// finished rentals, vehicle snapshots or breakdowns and can be combined
// with NewMultiSink. The factory helpers return a MultiSink automatically
// when multiple sinks are configured.
