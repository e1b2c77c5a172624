package board

import (
	"context"
	"fmt"

	"github.com/goliatone/go-dashboard/internal/logging"
	"github.com/goliatone/go-dashboard/internal/registry"
	"github.com/goliatone/go-dashboard/pkg/interfaces"
)

// ConfigEditor validates and derives a widget configuration out of raw form
// values before it is written back into the store.
type ConfigEditor interface {
	Commit(widgetType string, current, form map[string]any) (map[string]any, error)
}

// Service exposes grid management capabilities: every user-facing mutation
// flows through here so auto-save and load orchestration stay consistent.
type Service interface {
	AddWidget(ctx context.Context, widgetType string, override map[string]any) (*Instance, error)
	RemoveWidget(ctx context.Context, req RemoveRequest) error
	ConfigureWidget(ctx context.Context, id string, form map[string]any) (*Instance, error)
	ReorderWidget(ctx context.Context, id string, newIndex int) error
	RefreshWidget(ctx context.Context, id string) error
	RefreshAll(ctx context.Context)

	Export(ctx context.Context) (interfaces.ExportFile, error)
	Import(ctx context.Context, data []byte) error
	Restore(ctx context.Context) error

	Get(id string) (*Instance, error)
	Slots() []Slot
	Snapshot() []interfaces.SnapshotEntry
	Catalog() []registry.Descriptor
}

// RemoveRequest guards widget deletion behind an explicit confirmation step.
type RemoveRequest struct {
	ID        string
	Confirmed bool
}

// ServiceOption configures the board service.
type ServiceOption func(*service)

// WithLogger injects the logger used by grid operations.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDemoTypes overrides the widget types seeded when no snapshot survives
// startup.
func WithDemoTypes(types []string) ServiceOption {
	return func(s *service) {
		if len(types) > 0 {
			s.demoTypes = types
		}
	}
}

// WithDemoIDGenerator overrides the id generator used for demo widgets so
// fresh startups can produce stable snapshots.
func WithDemoIDGenerator(generator func(widgetType string) string) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.demoID = generator
		}
	}
}

// WithDemoSeed disables the demo fallback entirely when enabled is false;
// startups without a usable snapshot then begin with an empty grid.
func WithDemoSeed(enabled bool) ServiceOption {
	return func(s *service) {
		s.demoSeed = enabled
	}
}

type service struct {
	store     *Store
	registry  *registry.Registry
	loader    interfaces.LoadOrchestrator
	gateway   interfaces.PersistenceGateway
	editor    ConfigEditor
	logger    interfaces.Logger
	demoSeed  bool
	demoTypes []string
	demoID    func(widgetType string) string
}

// NewService wires the store, loader, persistence gateway, and configuration
// editor into the grid coordinator.
func NewService(store *Store, reg *registry.Registry, loader interfaces.LoadOrchestrator, gateway interfaces.PersistenceGateway, editor ConfigEditor, opts ...ServiceOption) Service {
	s := &service{
		store:     store,
		registry:  reg,
		loader:    loader,
		gateway:   gateway,
		editor:    editor,
		logger:    logging.NoOp(),
		demoSeed:  true,
		demoTypes: []string{registry.TypeWeather, registry.TypeClock, registry.TypeGitHub},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) AddWidget(ctx context.Context, widgetType string, override map[string]any) (*Instance, error) {
	instance, err := s.store.Create(widgetType, override)
	if err != nil {
		return nil, err
	}

	s.logger.Info("widget.added", "widget_type", instance.Type, "widget_id", instance.ID)
	s.autoSave(ctx)

	if err := s.loader.Load(ctx, instance.ID); err != nil {
		return nil, err
	}
	return s.store.Get(instance.ID)
}

func (s *service) RemoveWidget(ctx context.Context, req RemoveRequest) error {
	if !req.Confirmed {
		return ErrConfirmationRequired
	}

	// Tickers must stop before the instance disappears; a stale timer
	// mutating a removed instance is a resource leak.
	s.loader.StopTicker(req.ID)

	if removed := s.store.Remove(req.ID); removed {
		s.logger.Info("widget.removed", "widget_id", req.ID)
		s.autoSave(ctx)
	}
	return nil
}

func (s *service) ConfigureWidget(ctx context.Context, id string, form map[string]any) (*Instance, error) {
	instance, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	config, err := s.editor.Commit(instance.Type, instance.Config, form)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.UpdateConfig(id, config); err != nil {
		return nil, err
	}

	s.logger.Info("widget.configured", "widget_type", instance.Type, "widget_id", id)
	s.autoSave(ctx)

	if err := s.loader.Load(ctx, id); err != nil {
		return nil, err
	}
	return s.store.Get(id)
}

func (s *service) ReorderWidget(ctx context.Context, id string, newIndex int) error {
	if err := s.store.Reorder(id, newIndex); err != nil {
		return err
	}
	s.autoSave(ctx)
	return nil
}

func (s *service) RefreshWidget(ctx context.Context, id string) error {
	return s.loader.Load(ctx, id)
}

func (s *service) RefreshAll(ctx context.Context) {
	s.loader.RefreshAll(ctx)
}

func (s *service) Export(ctx context.Context) (interfaces.ExportFile, error) {
	return s.gateway.Export(ctx, s.store.Snapshot())
}

func (s *service) Import(ctx context.Context, data []byte) error {
	entries, err := s.gateway.Import(ctx, data)
	if err != nil {
		return err
	}

	if err := s.store.ReplaceAll(entries); err != nil {
		return fmt.Errorf("import snapshot: %w", err)
	}
	s.loader.StopAll()

	s.logger.Info("board.imported", "widgets", len(entries))
	s.autoSave(ctx)
	s.loader.RefreshAll(ctx)
	return nil
}

// Restore populates the grid from the durable snapshot, falling back to the
// demo widgets when nothing usable survives startup.
func (s *service) Restore(ctx context.Context) error {
	entries, restored, err := s.gateway.LoadOnStartup(ctx)
	if err != nil {
		return err
	}

	if !restored {
		return s.seedDemo(ctx)
	}

	s.loader.StopAll()
	if err := s.store.ReplaceAll(entries); err != nil {
		s.logger.Warn("board.restore_rejected", "error", err)
		return s.seedDemo(ctx)
	}

	s.logger.Info("board.restored", "widgets", len(entries))
	s.loader.RefreshAll(ctx)
	return nil
}

func (s *service) seedDemo(ctx context.Context) error {
	if !s.demoSeed {
		s.logger.Info("board.started_empty")
		return nil
	}

	entries := make([]interfaces.SnapshotEntry, 0, len(s.demoTypes))
	for _, widgetType := range s.demoTypes {
		entry := interfaces.SnapshotEntry{Type: widgetType}
		if s.demoID != nil {
			entry.ID = s.demoID(widgetType)
		}
		entries = append(entries, entry)
	}

	if err := s.store.ReplaceAll(entries); err != nil {
		return fmt.Errorf("seed demo widgets: %w", err)
	}

	s.logger.Info("board.demo_seeded", "widgets", len(entries))
	s.autoSave(ctx)
	s.loader.RefreshAll(ctx)
	return nil
}

func (s *service) Get(id string) (*Instance, error) {
	return s.store.Get(id)
}

func (s *service) Slots() []Slot {
	return s.store.Slots()
}

func (s *service) Snapshot() []interfaces.SnapshotEntry {
	return s.store.Snapshot()
}

func (s *service) Catalog() []registry.Descriptor {
	return s.registry.List()
}

func (s *service) autoSave(ctx context.Context) {
	if err := s.gateway.AutoSave(ctx, s.store.Snapshot()); err != nil {
		// Auto-save failures must never abort a grid mutation; the periodic
		// safety-net timer retries shortly after.
		s.logger.Warn("board.autosave_failed", "error", err)
	}
}
