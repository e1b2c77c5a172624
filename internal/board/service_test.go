package board

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-dashboard/internal/registry"
	"github.com/goliatone/go-dashboard/pkg/interfaces"
)

type fakeLoader struct {
	loaded     []string
	stopped    []string
	refreshAll int
	stopAll    int
	loadErr    error
}

func (f *fakeLoader) Load(ctx context.Context, id string) error {
	f.loaded = append(f.loaded, id)
	return f.loadErr
}

func (f *fakeLoader) RefreshAll(ctx context.Context) { f.refreshAll++ }
func (f *fakeLoader) StopTicker(id string)           { f.stopped = append(f.stopped, id) }
func (f *fakeLoader) StopAll()                       { f.stopAll++ }

type fakeGateway struct {
	saves   [][]interfaces.SnapshotEntry
	saveErr error

	startupEntries  []interfaces.SnapshotEntry
	startupRestored bool
	startupErr      error

	importEntries []interfaces.SnapshotEntry
	importErr     error

	exportFile interfaces.ExportFile
}

func (f *fakeGateway) AutoSave(ctx context.Context, entries []interfaces.SnapshotEntry) error {
	f.saves = append(f.saves, entries)
	return f.saveErr
}

func (f *fakeGateway) LoadOnStartup(ctx context.Context) ([]interfaces.SnapshotEntry, bool, error) {
	return f.startupEntries, f.startupRestored, f.startupErr
}

func (f *fakeGateway) Export(ctx context.Context, entries []interfaces.SnapshotEntry) (interfaces.ExportFile, error) {
	return f.exportFile, nil
}

func (f *fakeGateway) Import(ctx context.Context, data []byte) ([]interfaces.SnapshotEntry, error) {
	if f.importErr != nil {
		return nil, f.importErr
	}
	return f.importEntries, nil
}

type passthroughEditor struct {
	commitErr error
}

func (e passthroughEditor) Commit(widgetType string, current, form map[string]any) (map[string]any, error) {
	if e.commitErr != nil {
		return nil, e.commitErr
	}
	merged := make(map[string]any, len(current)+len(form))
	for key, value := range current {
		merged[key] = value
	}
	for key, value := range form {
		merged[key] = value
	}
	return merged, nil
}

type serviceFixture struct {
	service Service
	store   *Store
	loader  *fakeLoader
	gateway *fakeGateway
}

func newServiceFixture(t *testing.T, opts ...ServiceOption) *serviceFixture {
	t.Helper()
	store := newTestStore(t)
	loader := &fakeLoader{}
	gateway := &fakeGateway{}
	svc := NewService(store, registry.Catalog(), loader, gateway, passthroughEditor{}, opts...)
	return &serviceFixture{service: svc, store: store, loader: loader, gateway: gateway}
}

func TestAddWidgetSavesThenLoads(t *testing.T) {
	fx := newServiceFixture(t)

	instance, err := fx.service.AddWidget(context.Background(), "weather", nil)
	if err != nil {
		t.Fatalf("addWidget: %v", err)
	}

	if len(fx.gateway.saves) != 1 {
		t.Fatalf("auto-saves = %d, want 1", len(fx.gateway.saves))
	}
	if len(fx.loader.loaded) != 1 || fx.loader.loaded[0] != instance.ID {
		t.Fatalf("loads = %v, want [%s]", fx.loader.loaded, instance.ID)
	}
}

func TestAddWidgetUnknownTypeSkipsSideEffects(t *testing.T) {
	fx := newServiceFixture(t)

	if _, err := fx.service.AddWidget(context.Background(), "telemetry", nil); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("err = %v, want ErrUnknownType", err)
	}
	if len(fx.gateway.saves) != 0 || len(fx.loader.loaded) != 0 {
		t.Fatalf("rejected add still triggered side effects")
	}
}

func TestRemoveWidgetRequiresConfirmation(t *testing.T) {
	fx := newServiceFixture(t)

	instance, _ := fx.service.AddWidget(context.Background(), "clock", nil)

	err := fx.service.RemoveWidget(context.Background(), RemoveRequest{ID: instance.ID})
	if !errors.Is(err, ErrConfirmationRequired) {
		t.Fatalf("err = %v, want ErrConfirmationRequired", err)
	}
	if _, err := fx.service.Get(instance.ID); err != nil {
		t.Fatalf("unconfirmed remove deleted the widget: %v", err)
	}
}

func TestRemoveWidgetStopsTickerFirst(t *testing.T) {
	fx := newServiceFixture(t)

	instance, _ := fx.service.AddWidget(context.Background(), "clock", nil)
	savesBefore := len(fx.gateway.saves)

	if err := fx.service.RemoveWidget(context.Background(), RemoveRequest{ID: instance.ID, Confirmed: true}); err != nil {
		t.Fatalf("removeWidget: %v", err)
	}

	if len(fx.loader.stopped) != 1 || fx.loader.stopped[0] != instance.ID {
		t.Fatalf("ticker stops = %v, want [%s]", fx.loader.stopped, instance.ID)
	}
	if len(fx.gateway.saves) != savesBefore+1 {
		t.Fatalf("confirmed remove did not auto-save")
	}
	if fx.store.Len() != 0 {
		t.Fatalf("widget survived confirmed remove")
	}
}

func TestRemoveMissingWidgetIsQuiet(t *testing.T) {
	fx := newServiceFixture(t)

	if err := fx.service.RemoveWidget(context.Background(), RemoveRequest{ID: "ghost", Confirmed: true}); err != nil {
		t.Fatalf("removeWidget: %v", err)
	}
	if len(fx.gateway.saves) != 0 {
		t.Fatalf("no-op remove still auto-saved")
	}
}

func TestConfigureWidgetCommitsAndReloads(t *testing.T) {
	fx := newServiceFixture(t)

	instance, _ := fx.service.AddWidget(context.Background(), "github", nil)
	loadsBefore := len(fx.loader.loaded)

	updated, err := fx.service.ConfigureWidget(context.Background(), instance.ID, map[string]any{"username": "torvalds"})
	if err != nil {
		t.Fatalf("configureWidget: %v", err)
	}
	if updated.Config["username"] != "torvalds" {
		t.Fatalf("config = %v", updated.Config)
	}
	if len(fx.loader.loaded) != loadsBefore+1 {
		t.Fatalf("configure did not trigger a reload")
	}
}

func TestConfigureWidgetValidationLeavesConfigUntouched(t *testing.T) {
	store := newTestStore(t)
	loader := &fakeLoader{}
	gateway := &fakeGateway{}
	commitErr := errors.New("city is required")
	svc := NewService(store, registry.Catalog(), loader, gateway, passthroughEditor{commitErr: commitErr})

	instance, _ := svc.AddWidget(context.Background(), "weather", nil)
	savesBefore := len(gateway.saves)

	if _, err := svc.ConfigureWidget(context.Background(), instance.ID, map[string]any{"city": ""}); !errors.Is(err, commitErr) {
		t.Fatalf("err = %v, want commit error", err)
	}

	got, _ := svc.Get(instance.ID)
	if got.Config["city"] != "Moscow" {
		t.Fatalf("rejected commit mutated config: %v", got.Config["city"])
	}
	if len(gateway.saves) != savesBefore {
		t.Fatalf("rejected commit still auto-saved")
	}
}

func TestImportReplacesBoardAndRefreshes(t *testing.T) {
	fx := newServiceFixture(t)
	fx.service.AddWidget(context.Background(), "clock", nil)

	fx.gateway.importEntries = []interfaces.SnapshotEntry{
		{Type: "weather", ID: "w1"},
		{Type: "github", ID: "g1"},
	}

	if err := fx.service.Import(context.Background(), []byte(`{}`)); err != nil {
		t.Fatalf("import: %v", err)
	}

	if fx.loader.stopAll != 1 {
		t.Fatalf("import did not stop existing tickers")
	}
	ids := fx.store.IDs()
	if len(ids) != 2 || ids[0] != "w1" || ids[1] != "g1" {
		t.Fatalf("ids after import = %v", ids)
	}
	if fx.loader.refreshAll != 1 {
		t.Fatalf("import did not refresh the board")
	}
}

func TestImportFailureKeepsBoard(t *testing.T) {
	fx := newServiceFixture(t)
	instance, _ := fx.service.AddWidget(context.Background(), "clock", nil)

	fx.gateway.importErr = errors.New("unsupported version")

	if err := fx.service.Import(context.Background(), []byte(`{}`)); err == nil {
		t.Fatalf("import succeeded with failing gateway")
	}

	if fx.loader.stopAll != 0 {
		t.Fatalf("failed import stopped tickers")
	}
	if _, err := fx.service.Get(instance.ID); err != nil {
		t.Fatalf("failed import dropped existing widget: %v", err)
	}
}

func TestImportRejectedSnapshotKeepsTickersRunning(t *testing.T) {
	fx := newServiceFixture(t)
	instance, _ := fx.service.AddWidget(context.Background(), "clock", nil)
	savesBefore := len(fx.gateway.saves)

	// Well-formed snapshot that the store must still reject.
	fx.gateway.importEntries = []interfaces.SnapshotEntry{
		{Type: "weather", ID: "dup"},
		{Type: "github", ID: "dup"},
	}

	if err := fx.service.Import(context.Background(), []byte(`{}`)); err == nil {
		t.Fatalf("import accepted duplicate ids")
	}

	if fx.loader.stopAll != 0 {
		t.Fatalf("rejected import stopped tickers")
	}
	if fx.loader.refreshAll != 0 {
		t.Fatalf("rejected import refreshed the board")
	}
	if len(fx.gateway.saves) != savesBefore {
		t.Fatalf("rejected import auto-saved")
	}
	if _, err := fx.service.Get(instance.ID); err != nil {
		t.Fatalf("rejected import dropped existing widget: %v", err)
	}
}

func TestRestoreUsesSnapshot(t *testing.T) {
	fx := newServiceFixture(t)
	fx.gateway.startupRestored = true
	fx.gateway.startupEntries = []interfaces.SnapshotEntry{
		{Type: "stock", ID: "s1", Config: map[string]any{"symbol": "IBM"}},
	}

	if err := fx.service.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}

	got, err := fx.service.Get("s1")
	if err != nil {
		t.Fatalf("restored widget missing: %v", err)
	}
	if got.Config["symbol"] != "IBM" {
		t.Fatalf("config = %v", got.Config)
	}
	if fx.loader.refreshAll != 1 {
		t.Fatalf("restore did not refresh")
	}
}

func TestRestoreFallsBackToDemo(t *testing.T) {
	fx := newServiceFixture(t)

	if err := fx.service.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}

	snapshot := fx.service.Snapshot()
	if len(snapshot) != 3 {
		t.Fatalf("demo widgets = %d, want 3", len(snapshot))
	}
	want := []string{registry.TypeWeather, registry.TypeClock, registry.TypeGitHub}
	for i, entry := range snapshot {
		if entry.Type != want[i] {
			t.Fatalf("demo type %d = %s, want %s", i, entry.Type, want[i])
		}
	}
	if len(fx.gateway.saves) == 0 {
		t.Fatalf("demo seed did not persist the fresh board")
	}
}

func TestRestoreRejectedSnapshotFallsBackToDemo(t *testing.T) {
	fx := newServiceFixture(t)
	fx.gateway.startupRestored = true
	fx.gateway.startupEntries = []interfaces.SnapshotEntry{
		{Type: "telemetry", ID: "x"},
	}

	if err := fx.service.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if got := fx.store.Len(); got != 3 {
		t.Fatalf("board size after fallback = %d, want 3", got)
	}
}

func TestRestoreWithoutDemoSeedStartsEmpty(t *testing.T) {
	fx := newServiceFixture(t, WithDemoSeed(false))

	if err := fx.service.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if fx.store.Len() != 0 {
		t.Fatalf("demo seed ran while disabled")
	}
}

func TestAutoSaveFailureDoesNotAbortMutation(t *testing.T) {
	fx := newServiceFixture(t)
	fx.gateway.saveErr = errors.New("disk full")

	instance, err := fx.service.AddWidget(context.Background(), "clock", nil)
	if err != nil {
		t.Fatalf("addWidget: %v", err)
	}
	if _, err := fx.service.Get(instance.ID); err != nil {
		t.Fatalf("widget missing after save failure: %v", err)
	}
}

func TestReorderWidgetAutoSaves(t *testing.T) {
	fx := newServiceFixture(t)
	first, _ := fx.service.AddWidget(context.Background(), "clock", nil)
	second, _ := fx.service.AddWidget(context.Background(), "weather", nil)
	savesBefore := len(fx.gateway.saves)

	if err := fx.service.ReorderWidget(context.Background(), second.ID, 0); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	if len(fx.gateway.saves) != savesBefore+1 {
		t.Fatalf("reorder did not auto-save")
	}
	ids := fx.store.IDs()
	if ids[0] != second.ID || ids[1] != first.ID {
		t.Fatalf("order = %v", ids)
	}
}
