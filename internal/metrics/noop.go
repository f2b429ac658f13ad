package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncExpenseCreated is a no-op.
func (n *NoopRecorder) IncExpenseCreated() {}

// IncCategorizeCacheHit is a no-op.
func (n *NoopRecorder) IncCategorizeCacheHit() {}

// IncCategorizeCacheMiss is a no-op.
func (n *NoopRecorder) IncCategorizeCacheMiss() {}

// IncCategorizeCall is a no-op.
func (n *NoopRecorder) IncCategorizeCall(status string) {}

// IncCategoryCreated is a no-op.
func (n *NoopRecorder) IncCategoryCreated() {}
