package board

import "time"

// LoadState tracks where an instance sits in the fetch/parse state machine.
type LoadState int

const (
	StateIdle LoadState = iota
	StateLoading
	StateLoaded
	StateFailed
)

func (s LoadState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Instance is one configured, placed occurrence of a widget type on the grid.
// Position is implicit: the store's sequence order is display order.
type Instance struct {
	ID     string
	Type   string
	Title  string
	Config map[string]any

	State         LoadState
	Model         any
	FailureReason string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Loaded reports whether the instance currently holds a display model.
func (i *Instance) Loaded() bool {
	return i != nil && i.State == StateLoaded
}

func cloneInstance(src *Instance) *Instance {
	if src == nil {
		return nil
	}
	cloned := *src
	cloned.Config = deepCloneMap(src.Config)
	return &cloned
}

// deepCloneMap copies nested maps and slices so callers can mutate snapshots
// without reaching back into the store.
func deepCloneMap(input map[string]any) map[string]any {
	if input == nil {
		return nil
	}
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = deepCloneValue(value)
	}
	return out
}

func deepCloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return deepCloneMap(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = deepCloneValue(item)
		}
		return out
	case []string:
		out := make([]string, len(typed))
		copy(out, typed)
		return out
	default:
		return value
	}
}
