package loader

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-dashboard/internal/board"
	"github.com/goliatone/go-dashboard/internal/logging"
	"github.com/goliatone/go-dashboard/internal/registry"
	"github.com/goliatone/go-dashboard/pkg/interfaces"
)

// Resolver maps a descriptor fetch spec and an instance configuration onto a
// request target.
type Resolver interface {
	Resolve(spec registry.FetchSpec, config map[string]any) (string, error)
}

// Option configures the orchestrator.
type Option func(*Orchestrator)

// WithLogger injects the logger used for load reporting.
func WithLogger(logger interfaces.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithConcurrency caps how many widgets refresh in parallel.
func WithConcurrency(limit int) Option {
	return func(o *Orchestrator) {
		if limit > 0 {
			o.concurrency = limit
		}
	}
}

// Orchestrator drives the widget load lifecycle: idle instances move to
// loading, then to loaded or failed. Failures stay on the instance; they are
// never returned to callers and never retried automatically.
type Orchestrator struct {
	store    *board.Store
	registry *registry.Registry
	fetcher  interfaces.Fetcher
	resolver Resolver
	logger   interfaces.Logger

	concurrency int

	mu      sync.Mutex
	tickers map[string]chan struct{}
	wg      sync.WaitGroup
}

// New builds an orchestrator over the instance store and type registry.
func New(store *board.Store, reg *registry.Registry, fetcher interfaces.Fetcher, resolver Resolver, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:       store,
		registry:    reg,
		fetcher:     fetcher,
		resolver:    resolver,
		logger:      logging.NoOp(),
		concurrency: 4,
		tickers:     make(map[string]chan struct{}),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Load runs the lifecycle for one instance. The returned error covers
// structural problems only, such as an unknown instance or widget type;
// fetch and parse failures are recorded on the instance state instead.
func (o *Orchestrator) Load(ctx context.Context, id string) error {
	instance, err := o.store.Get(id)
	if err != nil {
		return err
	}

	descriptor, err := o.registry.Lookup(instance.Type)
	if err != nil {
		return fmt.Errorf("load %s: %w", id, err)
	}

	if err := o.store.SetLoading(id); err != nil {
		return err
	}

	model, loadErr := o.produce(ctx, descriptor, instance.Config)
	if loadErr != nil {
		o.logger.Warn("widget.load_failed", "widget_type", instance.Type, "widget_id", id, "error", loadErr)
		if err := o.store.SetFailed(id, loadErr.Error()); err != nil {
			return err
		}
		return nil
	}

	if err := o.store.SetLoaded(id, model); err != nil {
		return err
	}
	o.logger.Debug("widget.loaded", "widget_type", instance.Type, "widget_id", id)

	if descriptor.TickEvery > 0 {
		o.ensureTicker(id, descriptor)
	}
	return nil
}

// RefreshAll reloads every instance concurrently. One widget failing never
// disturbs the others, so worker errors are swallowed here and surface on
// the individual instances.
func (o *Orchestrator) RefreshAll(ctx context.Context) {
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(o.concurrency)

	for _, id := range o.store.IDs() {
		id := id
		group.Go(func() error {
			if err := o.Load(ctx, id); err != nil && !isGone(err) {
				o.logger.Warn("widget.refresh_skipped", "widget_id", id, "error", err)
			}
			return nil
		})
	}
	_ = group.Wait()
}

// StopTicker cancels the recurring timer for one instance. Safe to call for
// instances without a timer.
func (o *Orchestrator) StopTicker(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stopTickerLocked(id)
}

// StopAll cancels every recurring timer and waits for the goroutines to exit.
func (o *Orchestrator) StopAll() {
	o.mu.Lock()
	for id := range o.tickers {
		o.stopTickerLocked(id)
	}
	o.mu.Unlock()
	o.wg.Wait()
}

func (o *Orchestrator) produce(ctx context.Context, descriptor registry.Descriptor, config map[string]any) (any, error) {
	if descriptor.Fetch.Local {
		return descriptor.Parse(nil)
	}

	target, err := o.resolver.Resolve(descriptor.Fetch, config)
	if err != nil {
		return nil, err
	}

	payload, err := o.fetcher.Fetch(ctx, target)
	if err != nil {
		return nil, err
	}
	return descriptor.Parse(payload)
}

func (o *Orchestrator) ensureTicker(id string, descriptor registry.Descriptor) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, running := o.tickers[id]; running {
		return
	}

	stop := make(chan struct{})
	o.tickers[id] = stop
	o.wg.Add(1)

	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(descriptor.TickEvery)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				model, err := descriptor.Parse(nil)
				if err != nil {
					continue
				}
				if err := o.store.SetLoaded(id, model); err != nil {
					// The instance is gone; the timer must not outlive it.
					o.StopTicker(id)
					return
				}
			}
		}
	}()
}

func (o *Orchestrator) stopTickerLocked(id string) {
	if stop, ok := o.tickers[id]; ok {
		close(stop)
		delete(o.tickers, id)
	}
}

func isGone(err error) bool {
	var notFound *board.NotFoundError
	return errors.As(err, &notFound)
}
