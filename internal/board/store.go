package board

import (
	"errors"
	"fmt"
	"time"

	"sync"

	"github.com/goliatone/go-dashboard/internal/registry"
	"github.com/goliatone/go-dashboard/pkg/interfaces"
	"github.com/google/uuid"
)

// DefaultCapacity is the fixed number of grid slots.
const DefaultCapacity = 9

var (
	// ErrUnknownType rejects operations referencing an unregistered widget type.
	ErrUnknownType = errors.New("board: unknown widget type")
	// ErrCapacityExceeded rejects creates that would overflow the grid.
	ErrCapacityExceeded = errors.New("board: widget capacity exceeded")
	// ErrDuplicateID rejects snapshot restores carrying repeated identifiers.
	ErrDuplicateID = errors.New("board: duplicate widget id")
	// ErrConfirmationRequired guards destructive removals.
	ErrConfirmationRequired = errors.New("board: removal requires confirmation")
)

// NotFoundError is returned when an instance id is not present in the store.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("widget instance %q not found", e.Key)
}

// StoreOption configures store behaviour.
type StoreOption func(*Store)

// WithCapacity overrides the slot count, mainly for tests.
func WithCapacity(capacity int) StoreOption {
	return func(s *Store) {
		if capacity > 0 {
			s.capacity = capacity
		}
	}
}

// WithClock overrides the time source used for instance timestamps.
func WithClock(clock func() time.Time) StoreOption {
	return func(s *Store) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the instance id generator.
func WithIDGenerator(generator func() string) StoreOption {
	return func(s *Store) {
		if generator != nil {
			s.id = generator
		}
	}
}

// Store is the ordered collection of widget instances and the single source
// of truth for grid layout. Sequence order is display order. All structural
// mutations are atomic with respect to the capacity and unique-id invariants.
type Store struct {
	mu        sync.RWMutex
	registry  *registry.Registry
	capacity  int
	instances []*Instance
	now       func() time.Time
	id        func() string
}

// NewStore constructs an empty store bound to a widget type registry.
func NewStore(reg *registry.Registry, opts ...StoreOption) *Store {
	s := &Store{
		registry: reg,
		capacity: DefaultCapacity,
		now:      time.Now,
		id:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Capacity returns the fixed slot count.
func (s *Store) Capacity() int {
	return s.capacity
}

// Len returns the number of real instances.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.instances)
}

// Create places a new instance of the given type at the first open slot
// (instances are packed, so that is the end of the sequence). The instance
// config is the type's defaults overlaid with the supplied overrides.
func (s *Store) Create(widgetType string, override map[string]any) (*Instance, error) {
	descriptor, err := s.registry.Lookup(widgetType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, widgetType)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.instances) >= s.capacity {
		return nil, ErrCapacityExceeded
	}

	now := s.now()
	instance := &Instance{
		ID:        s.id(),
		Type:      descriptor.Type,
		Config:    mergeConfig(descriptor.Defaults, override),
		State:     StateIdle,
		CreatedAt: now,
		UpdatedAt: now,
	}
	instance.Title = titleFor(descriptor, instance.Config)

	s.instances = append(s.instances, instance)
	return cloneInstance(instance), nil
}

// Remove deletes the instance with the given id. Missing ids are a no-op;
// the operation is idempotent. It reports whether an instance was removed.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, instance := range s.instances {
		if instance.ID == id {
			s.instances = append(s.instances[:i], s.instances[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateConfig replaces the instance configuration and recomputes its title.
func (s *Store) UpdateConfig(id string, config map[string]any) (*Instance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	instance, err := s.find(id)
	if err != nil {
		return nil, err
	}

	descriptor, lookupErr := s.registry.Lookup(instance.Type)
	if lookupErr != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, instance.Type)
	}

	instance.Config = deepCloneMap(config)
	instance.Title = titleFor(descriptor, instance.Config)
	instance.UpdatedAt = s.now()
	return cloneInstance(instance), nil
}

// SetLoading marks the instance as waiting for data.
func (s *Store) SetLoading(id string) error {
	return s.setState(id, func(instance *Instance) {
		instance.State = StateLoading
		instance.FailureReason = ""
	})
}

// SetLoaded records a successfully parsed display model.
func (s *Store) SetLoaded(id string, model any) error {
	return s.setState(id, func(instance *Instance) {
		instance.State = StateLoaded
		instance.Model = model
		instance.FailureReason = ""
	})
}

// SetFailed records a fetch or parse failure for retryable display.
func (s *Store) SetFailed(id string, reason string) error {
	return s.setState(id, func(instance *Instance) {
		instance.State = StateFailed
		instance.Model = nil
		instance.FailureReason = reason
	})
}

// Reorder moves the instance to newIndex, shifting its neighbours. The index
// is clamped to the valid range.
func (s *Store) Reorder(id string, newIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := -1
	for i, instance := range s.instances {
		if instance.ID == id {
			current = i
			break
		}
	}
	if current < 0 {
		return &NotFoundError{Key: id}
	}

	if newIndex < 0 {
		newIndex = 0
	}
	if max := len(s.instances) - 1; newIndex > max {
		newIndex = max
	}
	if newIndex == current {
		return nil
	}

	instance := s.instances[current]
	s.instances = append(s.instances[:current], s.instances[current+1:]...)

	s.instances = append(s.instances, nil)
	copy(s.instances[newIndex+1:], s.instances[newIndex:])
	s.instances[newIndex] = instance
	return nil
}

// ReplaceAll atomically swaps the full sequence with the snapshot entries.
// Any validation failure (unknown type, duplicate id, over capacity) leaves
// the store unchanged. Entry configs are overlaid on the type defaults so
// sparse snapshots restore to complete configurations.
func (s *Store) ReplaceAll(entries []interfaces.SnapshotEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(entries) > s.capacity {
		return ErrCapacityExceeded
	}

	now := s.now()
	seen := make(map[string]struct{}, len(entries))
	next := make([]*Instance, 0, len(entries))
	for _, entry := range entries {
		descriptor, err := s.registry.Lookup(entry.Type)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrUnknownType, entry.Type)
		}

		id := entry.ID
		if id == "" {
			id = s.id()
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		seen[id] = struct{}{}

		instance := &Instance{
			ID:        id,
			Type:      descriptor.Type,
			Config:    mergeConfig(descriptor.Defaults, entry.Config),
			State:     StateIdle,
			CreatedAt: now,
			UpdatedAt: now,
		}
		instance.Title = titleFor(descriptor, instance.Config)
		next = append(next, instance)
	}

	s.instances = next
	return nil
}

// Snapshot returns the persisted projection of the sequence, in display order.
func (s *Store) Snapshot() []interfaces.SnapshotEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]interfaces.SnapshotEntry, 0, len(s.instances))
	for _, instance := range s.instances {
		entries = append(entries, interfaces.SnapshotEntry{
			Type:   instance.Type,
			ID:     instance.ID,
			Config: deepCloneMap(instance.Config),
		})
	}
	return entries
}

// Get returns a copy of the instance with the given id.
func (s *Store) Get(id string) (*Instance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	instance, err := s.find(id)
	if err != nil {
		return nil, err
	}
	return cloneInstance(instance), nil
}

// List returns copies of every instance in display order.
func (s *Store) List() []*Instance {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Instance, len(s.instances))
	for i, instance := range s.instances {
		out[i] = cloneInstance(instance)
	}
	return out
}

// IDs returns every instance id in display order.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.instances))
	for i, instance := range s.instances {
		out[i] = instance.ID
	}
	return out
}

func (s *Store) find(id string) (*Instance, error) {
	for _, instance := range s.instances {
		if instance.ID == id {
			return instance, nil
		}
	}
	return nil, &NotFoundError{Key: id}
}

func (s *Store) setState(id string, apply func(*Instance)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	instance, err := s.find(id)
	if err != nil {
		return err
	}
	apply(instance)
	instance.UpdatedAt = s.now()
	return nil
}

func titleFor(descriptor registry.Descriptor, config map[string]any) string {
	if descriptor.TitleOf != nil {
		if title := descriptor.TitleOf(config); title != "" {
			return title
		}
	}
	return descriptor.Title
}

func mergeConfig(defaults, override map[string]any) map[string]any {
	merged := make(map[string]any, len(defaults)+len(override))
	for key, value := range defaults {
		merged[key] = deepCloneValue(value)
	}
	for key, value := range override {
		merged[key] = deepCloneValue(value)
	}
	return merged
}
