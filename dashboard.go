package dashboard

import (
	"context"

	"github.com/goliatone/go-dashboard/internal/board"
	"github.com/goliatone/go-dashboard/internal/di"
	"github.com/goliatone/go-dashboard/internal/editor"
	"github.com/goliatone/go-dashboard/internal/loader"
	"github.com/goliatone/go-dashboard/internal/persist"
	"github.com/goliatone/go-dashboard/internal/registry"
	"github.com/goliatone/go-dashboard/pkg/interfaces"
)

// BoardService exports the grid coordinator contract for consumers of the
// dashboard package.
type BoardService = board.Service

// Instance exports the widget instance record.
type Instance = board.Instance

// LoadState exports the widget load lifecycle states.
type LoadState = board.LoadState

// Lifecycle state aliases.
const (
	StateIdle    = board.StateIdle
	StateLoading = board.StateLoading
	StateLoaded  = board.StateLoaded
	StateFailed  = board.StateFailed
)

// Slot exports the grid slot projection.
type Slot = board.Slot

// RemoveRequest exports the confirmed-removal request.
type RemoveRequest = board.RemoveRequest

// Descriptor exports the widget type descriptor.
type Descriptor = registry.Descriptor

// Field exports the configuration editor field descriptor.
type Field = editor.Field

// SnapshotEntry exports the persisted widget record.
type SnapshotEntry = interfaces.SnapshotEntry

// ExportFile exports the named export blob.
type ExportFile = interfaces.ExportFile

// ImportError exports the import rejection error.
type ImportError = persist.ImportError

// Module represents the top level dashboard runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a dashboard module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Board returns the configured grid coordinator.
func (m *Module) Board() (BoardService, error) {
	return m.container.BoardService()
}

// Registry returns the widget type catalog.
func (m *Module) Registry() *registry.Registry {
	return m.container.Registry()
}

// Editor returns the configuration editor.
func (m *Module) Editor() *editor.Editor {
	return m.container.Editor()
}

// Loader returns the load orchestrator.
func (m *Module) Loader() *loader.Orchestrator {
	return m.container.Loader()
}

// Persistence returns the gateway responsible for saving, restoring,
// exporting and importing the grid.
func (m *Module) Persistence() (*persist.Gateway, error) {
	return m.container.Gateway()
}

// Start restores the grid from durable storage (or seeds the demo widgets)
// and begins the auto-save safety-net timer when the feature is enabled.
func (m *Module) Start(ctx context.Context) error {
	service, err := m.container.BoardService()
	if err != nil {
		return err
	}

	if store, err := m.container.BlobStore(); err == nil {
		if initer, ok := store.(interface{ Init(context.Context) error }); ok {
			if err := initer.Init(ctx); err != nil {
				return err
			}
		}
	} else {
		return err
	}

	if err := service.Restore(ctx); err != nil {
		return err
	}

	if m.container.Config.Features.AutoSave {
		gateway, err := m.container.Gateway()
		if err != nil {
			return err
		}
		gateway.StartAutoSave(ctx, service.Snapshot)
	}
	return nil
}

// Stop cancels the auto-save timer and every widget ticker.
func (m *Module) Stop() {
	if gateway, err := m.container.Gateway(); err == nil {
		gateway.Stop()
	}
	m.container.Loader().StopAll()
}
