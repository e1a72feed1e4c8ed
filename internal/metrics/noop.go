package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncAccountRegistered is a no-op.
func (n *NoopRecorder) IncAccountRegistered() {}

// IncAccountUpdated is a no-op.
func (n *NoopRecorder) IncAccountUpdated() {}

// IncAccountDeleted is a no-op.
func (n *NoopRecorder) IncAccountDeleted() {}

// IncLogin is a no-op.
func (n *NoopRecorder) IncLogin(status string) {}

// IncAuthRejected is a no-op.
func (n *NoopRecorder) IncAuthRejected() {}

// IncCatalogWrite is a no-op.
func (n *NoopRecorder) IncCatalogWrite(kind, op string) {}
