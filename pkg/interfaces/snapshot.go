package interfaces

import "context"

// SnapshotEntry is the persisted projection of one widget instance: its type,
// stable identifier, and full configuration. Order within a snapshot is
// display order.
type SnapshotEntry struct {
	Type   string         `json:"type"`
	ID     string         `json:"id"`
	Config map[string]any `json:"config"`
}

// ExportFile is a serialized snapshot ready to hand to the user.
type ExportFile struct {
	Name string
	Data []byte
}

// PersistenceGateway stores and restores the grid snapshot.
type PersistenceGateway interface {
	// AutoSave writes the snapshot to durable storage. Invoked after every
	// mutating operation and by the periodic safety-net timer.
	AutoSave(ctx context.Context, entries []SnapshotEntry) error

	// LoadOnStartup reads the durable snapshot. When the blob is absent,
	// malformed, or carries an unsupported format version, it reports
	// restored=false with a nil error so the caller can seed demo defaults;
	// startup never fails on a bad snapshot.
	LoadOnStartup(ctx context.Context) (entries []SnapshotEntry, restored bool, err error)

	// Export produces the downloadable snapshot file.
	Export(ctx context.Context, entries []SnapshotEntry) (ExportFile, error)

	// Import validates an export file and returns its entries. Validation
	// failures leave all state untouched.
	Import(ctx context.Context, data []byte) ([]SnapshotEntry, error)
}

// LoadOrchestrator drives the per-instance fetch/parse state machine.
type LoadOrchestrator interface {
	// Load runs one fetch/parse cycle for the instance. Fetch and parse
	// failures are recorded on the instance state, not returned; the error
	// reports structural problems only (unknown instance or type).
	Load(ctx context.Context, id string) error

	// RefreshAll loads every instance concurrently. Failures stay isolated
	// per instance.
	RefreshAll(ctx context.Context)

	// StopTicker cancels the recurring local re-render for the instance, if
	// any. Mandatory on removal.
	StopTicker(id string)

	// StopAll cancels every recurring re-render.
	StopAll()
}
