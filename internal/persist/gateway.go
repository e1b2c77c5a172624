package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/goliatone/go-dashboard/internal/logging"
	"github.com/goliatone/go-dashboard/pkg/interfaces"
)

// DefaultAutoSaveInterval is the safety-net timer cadence; explicit saves
// after each mutation remain the primary write path.
const DefaultAutoSaveInterval = 2 * time.Second

// ImportError reports a rejected import. The grid is left untouched when an
// import fails.
type ImportError struct {
	Reason string
	Cause  error
}

func (e *ImportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("persist: import rejected: %s: %v", e.Reason, e.Cause)
	}
	return "persist: import rejected: " + e.Reason
}

func (e *ImportError) Unwrap() error {
	return e.Cause
}

// GatewayOption configures the persistence gateway.
type GatewayOption func(*Gateway)

// WithLogger injects the logger used for persistence reporting.
func WithLogger(logger interfaces.Logger) GatewayOption {
	return func(g *Gateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithClock injects the clock used for snapshot timestamps.
func WithClock(now func() time.Time) GatewayOption {
	return func(g *Gateway) {
		if now != nil {
			g.now = now
		}
	}
}

// WithAutoSaveInterval overrides the safety-net timer cadence.
func WithAutoSaveInterval(interval time.Duration) GatewayOption {
	return func(g *Gateway) {
		if interval > 0 {
			g.interval = interval
		}
	}
}

// Gateway serializes grid snapshots into a durable blob and back. It owns
// the snapshot format: versioned JSON with a timestamp and the widget list.
type Gateway struct {
	store    BlobStore
	logger   interfaces.Logger
	now      func() time.Time
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewGateway builds a gateway over the given blob store.
func NewGateway(store BlobStore, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		store:    store,
		logger:   logging.NoOp(),
		now:      time.Now,
		interval: DefaultAutoSaveInterval,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AutoSave serializes the entries and writes them to the durable blob.
func (g *Gateway) AutoSave(ctx context.Context, entries []interfaces.SnapshotEntry) error {
	records, err := encodeRecords(entries)
	if err != nil {
		return err
	}

	document := snapshotDocument{
		Version: FormatVersion,
		SavedAt: g.now().UTC().Format(time.RFC3339),
		Widgets: records,
	}
	data, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("persist: encode snapshot: %w", err)
	}

	if err := g.store.Write(ctx, data); err != nil {
		return err
	}
	g.logger.Debug("snapshot.saved", "widgets", len(entries))
	return nil
}

// StartAutoSave runs the safety-net timer: every interval it snapshots via
// source and writes the result, until Stop is called or the context ends.
func (g *Gateway) StartAutoSave(ctx context.Context, source func() []interfaces.SnapshotEntry) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.stop != nil {
		return
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	g.stop = stop
	g.done = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(g.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case <-ticker.C:
				if err := g.AutoSave(ctx, source()); err != nil {
					g.logger.Warn("snapshot.autosave_failed", "error", err)
				}
			}
		}
	}()
}

// Stop cancels the safety-net timer and waits for it to exit.
func (g *Gateway) Stop() {
	g.mu.Lock()
	stop, done := g.stop, g.done
	g.stop, g.done = nil, nil
	g.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}
}

// LoadOnStartup reads the durable blob. A missing, malformed, or
// version-mismatched snapshot reports restored=false so the caller can fall
// back to demo defaults; only storage failures surface as errors.
func (g *Gateway) LoadOnStartup(ctx context.Context) ([]interfaces.SnapshotEntry, bool, error) {
	data, found, err := g.store.Read(ctx)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}

	var document snapshotDocument
	if err := json.Unmarshal(data, &document); err != nil {
		g.logger.Warn("snapshot.malformed", "error", err)
		return nil, false, nil
	}
	if document.Version != FormatVersion {
		g.logger.Warn("snapshot.version_mismatch", "version", document.Version)
		return nil, false, nil
	}

	entries, err := decodeRecords(document.Widgets)
	if err != nil {
		g.logger.Warn("snapshot.undecodable", "error", err)
		return nil, false, nil
	}
	return entries, true, nil
}

// Export renders the entries as a pretty-printed file blob named by the
// current epoch milliseconds.
func (g *Gateway) Export(ctx context.Context, entries []interfaces.SnapshotEntry) (interfaces.ExportFile, error) {
	records, err := encodeRecords(entries)
	if err != nil {
		return interfaces.ExportFile{}, err
	}

	now := g.now().UTC()
	document := exportDocument{
		Version:      FormatVersion,
		SavedAt:      now.Format(time.RFC3339),
		ExportedAt:   now.Format(time.RFC3339),
		TotalWidgets: len(records),
		Widgets:      records,
	}
	data, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return interfaces.ExportFile{}, fmt.Errorf("persist: encode export: %w", err)
	}

	return interfaces.ExportFile{
		Name: fmt.Sprintf("dashboard-export-%d.json", now.UnixMilli()),
		Data: data,
	}, nil
}

// Import validates the file bytes and decodes the widget entries. Any
// rejection is an *ImportError; the caller's grid state is never touched
// here.
func (g *Gateway) Import(_ context.Context, data []byte) ([]interfaces.SnapshotEntry, error) {
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, &ImportError{Reason: "file is not valid JSON", Cause: err}
	}

	schema, err := importSchemaCompiled()
	if err != nil {
		return nil, fmt.Errorf("persist: compile import schema: %w", err)
	}
	if err := schema.Validate(payload); err != nil {
		return nil, &ImportError{Reason: schemaIssues(err)}
	}

	var document snapshotDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, &ImportError{Reason: "file shape is not a snapshot", Cause: err}
	}
	if document.Version != FormatVersion {
		return nil, &ImportError{
			Reason: fmt.Sprintf("unsupported version %q, want %q", document.Version, FormatVersion),
		}
	}

	entries, err := decodeRecords(document.Widgets)
	if err != nil {
		return nil, &ImportError{Reason: "widget entries are undecodable", Cause: err}
	}
	return entries, nil
}
