package fetch

import (
	"fmt"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-dashboard/internal/registry"
)

// TargetResolver turns a descriptor fetch spec plus an instance configuration
// into a concrete request URL using a go-urlkit route manager.
type TargetResolver struct {
	manager *urlkit.RouteManager

	groupCache map[string]*urlkit.Group
	mu         sync.RWMutex
}

// NewTargetResolver constructs a resolver over the given route manager.
func NewTargetResolver(manager *urlkit.RouteManager) *TargetResolver {
	return &TargetResolver{
		manager:    manager,
		groupCache: make(map[string]*urlkit.Group),
	}
}

// Resolve builds the request URL for the fetch spec. Local specs never reach
// the resolver; callers check spec.Local first.
func (r *TargetResolver) Resolve(spec registry.FetchSpec, config map[string]any) (string, error) {
	if r == nil || r.manager == nil {
		return "", fmt.Errorf("fetch: route manager not configured")
	}
	if spec.Local {
		return "", fmt.Errorf("fetch: local widget has no fetch target")
	}

	group, err := r.groupFor(spec.Group)
	if err != nil {
		return "", err
	}

	builder, err := safeBuilder(group, spec.Route)
	if err != nil {
		return "", err
	}

	if spec.Params != nil {
		for key, val := range spec.Params(config) {
			builder.WithParam(key, val)
		}
	}
	if spec.Query != nil {
		for key, val := range spec.Query(config) {
			builder.WithQuery(key, val)
		}
	}

	url, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("fetch: build url for group %q route %q: %w", spec.Group, spec.Route, err)
	}
	return url, nil
}

func (r *TargetResolver) groupFor(name string) (*urlkit.Group, error) {
	r.mu.RLock()
	group, ok := r.groupCache[name]
	r.mu.RUnlock()
	if ok {
		return group, nil
	}

	group, err := lookupGroup(r.manager, name)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.groupCache[name] = group
	r.mu.Unlock()
	return group, nil
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("fetch: urlkit group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("fetch: route %q not found: %v", route, rec)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("fetch: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("fetch: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, err
}
