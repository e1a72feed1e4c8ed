// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Login outcomes passed to IncLogin.
const (
	LoginSuccess = "success"
	LoginFailure = "failure"
)

// Catalog kinds and operations passed to IncCatalogWrite.
const (
	KindCreature = "creature"
	KindSaint    = "saint"

	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Recorder captures metric events for the application.
type Recorder interface {
	// Account lifecycle
	IncAccountRegistered()
	IncAccountUpdated()
	IncAccountDeleted()

	// Authentication
	IncLogin(status string)
	IncAuthRejected()

	// Catalog mutations
	IncCatalogWrite(kind, op string)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
