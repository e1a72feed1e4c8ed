package metrics

import (
	"sync"
	"sync/atomic"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	AccountsRegistered uint64
	AccountsUpdated    uint64
	AccountsDeleted    uint64
	LoginsSucceeded    uint64
	LoginsFailed       uint64
	AuthRejected       uint64
	// CatalogWrites is keyed by "kind/op", e.g. "saint/update".
	CatalogWrites map[string]uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	accountsRegistered uint64
	accountsUpdated    uint64
	accountsDeleted    uint64
	loginsSucceeded    uint64
	loginsFailed       uint64
	authRejected       uint64

	mu            sync.Mutex
	catalogWrites map[string]uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{catalogWrites: make(map[string]uint64)}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	writes := make(map[string]uint64, len(m.catalogWrites))
	for k, v := range m.catalogWrites {
		writes[k] = v
	}
	m.mu.Unlock()

	return Snapshot{
		AccountsRegistered: atomic.LoadUint64(&m.accountsRegistered),
		AccountsUpdated:    atomic.LoadUint64(&m.accountsUpdated),
		AccountsDeleted:    atomic.LoadUint64(&m.accountsDeleted),
		LoginsSucceeded:    atomic.LoadUint64(&m.loginsSucceeded),
		LoginsFailed:       atomic.LoadUint64(&m.loginsFailed),
		AuthRejected:       atomic.LoadUint64(&m.authRejected),
		CatalogWrites:      writes,
	}
}

// IncAccountRegistered increments the registration counter.
func (m *InMemoryRecorder) IncAccountRegistered() {
	atomic.AddUint64(&m.accountsRegistered, 1)
}

// IncAccountUpdated increments the account update counter.
func (m *InMemoryRecorder) IncAccountUpdated() {
	atomic.AddUint64(&m.accountsUpdated, 1)
}

// IncAccountDeleted increments the account deletion counter.
func (m *InMemoryRecorder) IncAccountDeleted() {
	atomic.AddUint64(&m.accountsDeleted, 1)
}

// IncLogin increments the login counter for status.
func (m *InMemoryRecorder) IncLogin(status string) {
	if status == LoginSuccess {
		atomic.AddUint64(&m.loginsSucceeded, 1)
		return
	}
	atomic.AddUint64(&m.loginsFailed, 1)
}

// IncAuthRejected increments the rejected bearer token counter.
func (m *InMemoryRecorder) IncAuthRejected() {
	atomic.AddUint64(&m.authRejected, 1)
}

// IncCatalogWrite increments the catalog write counter for kind and op.
func (m *InMemoryRecorder) IncCatalogWrite(kind, op string) {
	m.mu.Lock()
	m.catalogWrites[kind+"/"+op]++
	m.mu.Unlock()
}
