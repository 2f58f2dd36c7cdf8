package repository

// Metrics records what the chart service computes.
type Metrics interface {
	RecordChart(kind string)
	RecordError(kind string)
	RecordCacheLookup(hit bool)
	RecordLatency(op string, seconds float64)
}
