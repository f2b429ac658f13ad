// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Expense lifecycle metrics
	IncExpenseCreated()

	// Categorization fallback metrics
	IncCategorizeCacheHit()
	IncCategorizeCacheMiss()
	IncCategorizeCall(status string) // status: "success" or "failed"
	IncCategoryCreated()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
