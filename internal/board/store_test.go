package board

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/goliatone/go-dashboard/internal/registry"
	"github.com/goliatone/go-dashboard/pkg/interfaces"
)

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	}
}

func sequentialIDs(prefix string) func() string {
	counter := 0
	return func() string {
		counter++
		return fmt.Sprintf("%s-%d", prefix, counter)
	}
}

func newTestStore(t *testing.T, opts ...StoreOption) *Store {
	t.Helper()
	base := []StoreOption{
		WithClock(fixedClock()),
		WithIDGenerator(sequentialIDs("widget")),
	}
	return NewStore(registry.Catalog(), append(base, opts...)...)
}

func TestCreateSeedsDefaultConfig(t *testing.T) {
	reg := registry.Catalog()

	for _, widgetType := range reg.Types() {
		store := NewStore(reg, WithIDGenerator(sequentialIDs(widgetType)))
		if _, err := store.Create(widgetType, nil); err != nil {
			t.Fatalf("create %s: %v", widgetType, err)
		}

		snapshot := store.Snapshot()
		if len(snapshot) != 1 {
			t.Fatalf("snapshot for %s has %d entries, want 1", widgetType, len(snapshot))
		}

		descriptor, err := reg.Lookup(widgetType)
		if err != nil {
			t.Fatalf("lookup %s: %v", widgetType, err)
		}
		want := descriptor.Defaults
		if want == nil {
			want = map[string]any{}
		}
		if !reflect.DeepEqual(snapshot[0].Config, want) {
			t.Fatalf("config for %s = %#v, want defaults %#v", widgetType, snapshot[0].Config, want)
		}
	}
}

func TestCreateWeatherDefaults(t *testing.T) {
	store := newTestStore(t)

	instance, err := store.Create("weather", nil)
	if err != nil {
		t.Fatalf("create weather: %v", err)
	}

	want := map[string]any{
		"city":      "Moscow",
		"latitude":  55.7558,
		"longitude": 37.6173,
	}
	if !reflect.DeepEqual(instance.Config, want) {
		t.Fatalf("config = %#v, want %#v", instance.Config, want)
	}
	if instance.Title != "Weather (Moscow)" {
		t.Fatalf("title = %q, want %q", instance.Title, "Weather (Moscow)")
	}
	if instance.State != StateIdle {
		t.Fatalf("state = %v, want %v", instance.State, StateIdle)
	}
}

func TestCreateOverrideWins(t *testing.T) {
	store := newTestStore(t)

	instance, err := store.Create("weather", map[string]any{"city": "London"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if instance.Config["city"] != "London" {
		t.Fatalf("city = %v, want London", instance.Config["city"])
	}
	if instance.Config["latitude"] != 55.7558 {
		t.Fatalf("latitude dropped from defaults: %v", instance.Config["latitude"])
	}
	if instance.Title != "Weather (London)" {
		t.Fatalf("title = %q", instance.Title)
	}
}

func TestCreateUnknownType(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Create("telemetry", nil); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("err = %v, want ErrUnknownType", err)
	}
	if store.Len() != 0 {
		t.Fatalf("store mutated on rejected create")
	}
}

func TestCreateBeyondCapacity(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < DefaultCapacity; i++ {
		if _, err := store.Create("clock", nil); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	if _, err := store.Create("clock", nil); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("err = %v, want ErrCapacityExceeded", err)
	}
	if store.Len() != DefaultCapacity {
		t.Fatalf("store size = %d, want %d", store.Len(), DefaultCapacity)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	store := newTestStore(t)

	instance, err := store.Create("clock", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if removed := store.Remove(instance.ID); !removed {
		t.Fatalf("first remove reported nothing removed")
	}
	if removed := store.Remove(instance.ID); removed {
		t.Fatalf("second remove reported a removal")
	}
	if store.Len() != 0 {
		t.Fatalf("store size = %d, want 0", store.Len())
	}
}

func TestReplaceAllRoundTrip(t *testing.T) {
	store := newTestStore(t)

	entries := []interfaces.SnapshotEntry{
		{Type: "weather", ID: "a", Config: map[string]any{"city": "Tokyo", "latitude": 35.6762, "longitude": 139.6503}},
		{Type: "clock", ID: "b", Config: map[string]any{}},
		{Type: "github", ID: "c", Config: map[string]any{"username": "torvalds"}},
	}

	if err := store.ReplaceAll(entries); err != nil {
		t.Fatalf("replaceAll: %v", err)
	}

	snapshot := store.Snapshot()
	if len(snapshot) != len(entries) {
		t.Fatalf("snapshot size = %d, want %d", len(snapshot), len(entries))
	}
	for i, entry := range entries {
		if snapshot[i].Type != entry.Type || snapshot[i].ID != entry.ID {
			t.Fatalf("entry %d = %+v, want %+v", i, snapshot[i], entry)
		}
		for key, value := range entry.Config {
			if !reflect.DeepEqual(snapshot[i].Config[key], value) {
				t.Fatalf("entry %d config %q = %v, want %v", i, key, snapshot[i].Config[key], value)
			}
		}
	}
}

func TestReplaceAllRejectsDuplicateIDs(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Create("clock", nil); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := store.ReplaceAll([]interfaces.SnapshotEntry{
		{Type: "clock", ID: "same"},
		{Type: "weather", ID: "same"},
	})
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("err = %v, want ErrDuplicateID", err)
	}

	// Rejected restores must leave the prior sequence intact.
	if store.Len() != 1 {
		t.Fatalf("store size = %d, want 1", store.Len())
	}
}

func TestReplaceAllRejectsUnknownType(t *testing.T) {
	store := newTestStore(t)

	err := store.ReplaceAll([]interfaces.SnapshotEntry{{Type: "telemetry", ID: "x"}})
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("err = %v, want ErrUnknownType", err)
	}
}

func TestReplaceAllGeneratesMissingIDs(t *testing.T) {
	store := newTestStore(t)

	if err := store.ReplaceAll([]interfaces.SnapshotEntry{{Type: "clock"}, {Type: "weather"}}); err != nil {
		t.Fatalf("replaceAll: %v", err)
	}
	ids := store.IDs()
	if ids[0] == "" || ids[1] == "" || ids[0] == ids[1] {
		t.Fatalf("generated ids = %v", ids)
	}
}

func TestReorderLastToFront(t *testing.T) {
	store := newTestStore(t)

	var ids []string
	for i := 0; i < 4; i++ {
		instance, err := store.Create("clock", nil)
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		ids = append(ids, instance.ID)
	}

	if err := store.Reorder(ids[3], 0); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	want := []string{ids[3], ids[0], ids[1], ids[2]}
	if got := store.IDs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestReorderClampsIndex(t *testing.T) {
	store := newTestStore(t)

	first, _ := store.Create("clock", nil)
	second, _ := store.Create("weather", nil)

	if err := store.Reorder(first.ID, 99); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	want := []string{second.ID, first.ID}
	if got := store.IDs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}

	if err := store.Reorder(first.ID, -5); err != nil {
		t.Fatalf("reorder negative: %v", err)
	}
	want = []string{first.ID, second.ID}
	if got := store.IDs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestReorderUnknownID(t *testing.T) {
	store := newTestStore(t)

	err := store.Reorder("ghost", 0)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestUpdateConfigRecomputesTitle(t *testing.T) {
	store := newTestStore(t)

	instance, err := store.Create("weather", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := store.UpdateConfig(instance.ID, map[string]any{
		"city": "Tokyo", "latitude": 35.6762, "longitude": 139.6503,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Weather (Tokyo)" {
		t.Fatalf("title = %q, want %q", updated.Title, "Weather (Tokyo)")
	}
}

func TestStateTransitions(t *testing.T) {
	store := newTestStore(t)

	instance, err := store.Create("weather", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := store.SetLoading(instance.ID); err != nil {
		t.Fatalf("setLoading: %v", err)
	}
	if got, _ := store.Get(instance.ID); got.State != StateLoading {
		t.Fatalf("state = %v, want loading", got.State)
	}

	if err := store.SetFailed(instance.ID, "status 500"); err != nil {
		t.Fatalf("setFailed: %v", err)
	}
	got, _ := store.Get(instance.ID)
	if got.State != StateFailed || got.FailureReason != "status 500" {
		t.Fatalf("failed state = %v reason %q", got.State, got.FailureReason)
	}

	if err := store.SetLoaded(instance.ID, "model"); err != nil {
		t.Fatalf("setLoaded: %v", err)
	}
	got, _ = store.Get(instance.ID)
	if got.State != StateLoaded || got.FailureReason != "" {
		t.Fatalf("loaded state = %v reason %q", got.State, got.FailureReason)
	}
}

func TestSetStateOnRemovedInstance(t *testing.T) {
	store := newTestStore(t)

	instance, _ := store.Create("clock", nil)
	store.Remove(instance.ID)

	err := store.SetLoaded(instance.ID, "model")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestSlotsPadToCapacity(t *testing.T) {
	store := newTestStore(t)

	store.Create("weather", nil)
	store.Create("clock", nil)

	slots := store.Slots()
	if len(slots) != DefaultCapacity {
		t.Fatalf("slot count = %d, want %d", len(slots), DefaultCapacity)
	}
	for i, slot := range slots {
		if i < 2 && (slot.Empty || slot.Instance == nil) {
			t.Fatalf("slot %d should hold an instance", i)
		}
		if i >= 2 && !slot.Empty {
			t.Fatalf("slot %d should be an add placeholder", i)
		}
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	store := newTestStore(t)

	instance, _ := store.Create("weather", nil)
	snapshot := store.Snapshot()
	snapshot[0].Config["city"] = "mutated"

	got, _ := store.Get(instance.ID)
	if got.Config["city"] != "Moscow" {
		t.Fatalf("store config mutated through snapshot: %v", got.Config["city"])
	}
}
