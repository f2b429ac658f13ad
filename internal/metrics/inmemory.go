package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	ExpensesCreated     uint64
	CategorizeCacheHits uint64
	CategorizeCacheMiss uint64
	CategorizeSuccesses uint64
	CategorizeFailures  uint64
	CategoriesCreated   uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	expensesCreated     uint64
	categorizeCacheHits uint64
	categorizeCacheMiss uint64
	categorizeSuccesses uint64
	categorizeFailures  uint64
	categoriesCreated   uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		ExpensesCreated:     atomic.LoadUint64(&m.expensesCreated),
		CategorizeCacheHits: atomic.LoadUint64(&m.categorizeCacheHits),
		CategorizeCacheMiss: atomic.LoadUint64(&m.categorizeCacheMiss),
		CategorizeSuccesses: atomic.LoadUint64(&m.categorizeSuccesses),
		CategorizeFailures:  atomic.LoadUint64(&m.categorizeFailures),
		CategoriesCreated:   atomic.LoadUint64(&m.categoriesCreated),
	}
}

// IncExpenseCreated increments the expense counter.
func (m *InMemoryRecorder) IncExpenseCreated() {
	atomic.AddUint64(&m.expensesCreated, 1)
}

// IncCategorizeCacheHit increments the merchant cache hit counter.
func (m *InMemoryRecorder) IncCategorizeCacheHit() {
	atomic.AddUint64(&m.categorizeCacheHits, 1)
}

// IncCategorizeCacheMiss increments the merchant cache miss counter.
func (m *InMemoryRecorder) IncCategorizeCacheMiss() {
	atomic.AddUint64(&m.categorizeCacheMiss, 1)
}

// IncCategorizeCall records a classifier call outcome.
func (m *InMemoryRecorder) IncCategorizeCall(status string) {
	if status == "success" {
		atomic.AddUint64(&m.categorizeSuccesses, 1)
	} else {
		atomic.AddUint64(&m.categorizeFailures, 1)
	}
}

// IncCategoryCreated increments the created category counter.
func (m *InMemoryRecorder) IncCategoryCreated() {
	atomic.AddUint64(&m.categoriesCreated, 1)
}
