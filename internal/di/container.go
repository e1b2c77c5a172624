package di

import (
	"database/sql"
	"fmt"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/mattn/go-sqlite3"

	"github.com/goliatone/go-dashboard/internal/board"
	"github.com/goliatone/go-dashboard/internal/editor"
	"github.com/goliatone/go-dashboard/internal/fetch"
	"github.com/goliatone/go-dashboard/internal/identity"
	"github.com/goliatone/go-dashboard/internal/loader"
	"github.com/goliatone/go-dashboard/internal/logging"
	"github.com/goliatone/go-dashboard/internal/logging/console"
	"github.com/goliatone/go-dashboard/internal/logging/gologger"
	"github.com/goliatone/go-dashboard/internal/persist"
	"github.com/goliatone/go-dashboard/internal/registry"
	"github.com/goliatone/go-dashboard/internal/runtimeconfig"
	"github.com/goliatone/go-dashboard/pkg/interfaces"
)

// Container wires module dependencies. Accessors build collaborators lazily
// and memoise them, so overrides must be applied before first use.
type Container struct {
	Config runtimeconfig.Config

	provider interfaces.LoggerProvider

	bunDB     *bun.DB
	blobStore persist.BlobStore

	routeManager *urlkit.RouteManager
	fetcher      interfaces.Fetcher

	now func() time.Time
	id  func() string

	registry *registry.Registry
	store    *board.Store
	loader   *loader.Orchestrator
	gateway  *persist.Gateway
	editor   *editor.Editor
	service  board.Service
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.provider = provider
	}
}

// WithBunDB injects an externally managed database handle.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithBlobStore overrides the durable blob store binding.
func WithBlobStore(store persist.BlobStore) Option {
	return func(c *Container) {
		c.blobStore = store
	}
}

// WithFetcher overrides the HTTP fetch collaborator.
func WithFetcher(fetcher interfaces.Fetcher) Option {
	return func(c *Container) {
		c.fetcher = fetcher
	}
}

// WithRouteManager overrides the widget API route manager.
func WithRouteManager(manager *urlkit.RouteManager) Option {
	return func(c *Container) {
		c.routeManager = manager
	}
}

// WithClock injects the clock used across the module.
func WithClock(now func() time.Time) Option {
	return func(c *Container) {
		c.now = now
	}
}

// WithIDGenerator injects the widget id generator.
func WithIDGenerator(id func() string) Option {
	return func(c *Container) {
		c.id = id
	}
}

// NewContainer builds a container over the runtime configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if c.provider == nil {
		provider, err := buildLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		c.provider = provider
	}
	return c, nil
}

func buildLoggerProvider(cfg runtimeconfig.LoggingConfig) (interfaces.LoggerProvider, error) {
	switch cfg.ProviderName() {
	case runtimeconfig.LoggingProviderGoLogger:
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
	case runtimeconfig.LoggingProviderNoop:
		return nil, nil
	default:
		return console.NewProvider(console.Options{
			MinLevel: console.ParseLevel(cfg.Level),
		}), nil
	}
}

// LoggerProvider returns the configured logging backend; nil means no-op.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.provider
}

// Logger returns a module-scoped logger.
func (c *Container) Logger(module string) interfaces.Logger {
	return logging.ModuleLogger(c.LoggerProvider(), module)
}

// Registry resolves the widget type catalog.
func (c *Container) Registry() *registry.Registry {
	if c.registry == nil {
		opts := []registry.CatalogOption{
			registry.WithClockTick(c.Config.Board.ClockTick),
		}
		if c.now != nil {
			opts = append(opts, registry.WithClock(c.now))
		}
		c.registry = registry.Catalog(opts...)
	}
	return c.registry
}

// Store resolves the widget instance store.
func (c *Container) Store() *board.Store {
	if c.store == nil {
		opts := []board.StoreOption{
			board.WithCapacity(c.Config.Board.Capacity),
		}
		if c.now != nil {
			opts = append(opts, board.WithClock(c.now))
		}
		if c.id != nil {
			opts = append(opts, board.WithIDGenerator(c.id))
		}
		c.store = board.NewStore(c.Registry(), opts...)
	}
	return c.store
}

// RouteManager resolves the widget API route table.
func (c *Container) RouteManager() *urlkit.RouteManager {
	if c.routeManager == nil {
		c.routeManager = urlkit.NewRouteManager(registry.Routes())
	}
	return c.routeManager
}

// Fetcher resolves the HTTP fetch collaborator.
func (c *Container) Fetcher() interfaces.Fetcher {
	if c.fetcher == nil {
		c.fetcher = fetch.NewHTTPFetcher(
			fetch.WithTimeout(c.Config.Fetch.Timeout),
			fetch.WithUserAgent(c.Config.Fetch.UserAgent),
		)
	}
	return c.fetcher
}

// Loader resolves the load orchestrator.
func (c *Container) Loader() *loader.Orchestrator {
	if c.loader == nil {
		c.loader = loader.New(
			c.Store(),
			c.Registry(),
			c.Fetcher(),
			fetch.NewTargetResolver(c.RouteManager()),
			loader.WithLogger(logging.LoaderLogger(c.LoggerProvider())),
		)
	}
	return c.loader
}

// BlobStore resolves the durable snapshot slot per the storage driver.
func (c *Container) BlobStore() (persist.BlobStore, error) {
	if c.blobStore != nil {
		return c.blobStore, nil
	}

	switch c.Config.Storage.DriverName() {
	case runtimeconfig.StorageDriverSQLite:
		db, err := c.DB()
		if err != nil {
			return nil, err
		}
		opts := []persist.BunStoreOption{}
		if c.now != nil {
			opts = append(opts, persist.BunStoreWithClock(c.now))
		}
		c.blobStore = persist.NewBunStore(db, opts...)
	default:
		c.blobStore = persist.NewMemoryStore()
	}
	return c.blobStore, nil
}

// DB opens the sqlite handle on first use.
func (c *Container) DB() (*bun.DB, error) {
	if c.bunDB == nil {
		sqldb, err := sql.Open("sqlite3", c.Config.Storage.DSN)
		if err != nil {
			return nil, fmt.Errorf("di: open sqlite database: %w", err)
		}
		c.bunDB = bun.NewDB(sqldb, sqlitedialect.New())
	}
	return c.bunDB, nil
}

// Gateway resolves the persistence gateway.
func (c *Container) Gateway() (*persist.Gateway, error) {
	if c.gateway == nil {
		store, err := c.BlobStore()
		if err != nil {
			return nil, err
		}
		opts := []persist.GatewayOption{
			persist.WithLogger(logging.PersistLogger(c.LoggerProvider())),
			persist.WithAutoSaveInterval(c.Config.Board.AutoSaveInterval),
		}
		if c.now != nil {
			opts = append(opts, persist.WithClock(c.now))
		}
		c.gateway = persist.NewGateway(store, opts...)
	}
	return c.gateway, nil
}

// Editor resolves the configuration editor.
func (c *Container) Editor() *editor.Editor {
	if c.editor == nil {
		c.editor = editor.New(c.Registry())
	}
	return c.editor
}

// BoardService resolves the grid coordinator.
func (c *Container) BoardService() (board.Service, error) {
	if c.service == nil {
		gateway, err := c.Gateway()
		if err != nil {
			return nil, err
		}
		c.service = board.NewService(
			c.Store(),
			c.Registry(),
			c.Loader(),
			gateway,
			c.Editor(),
			board.WithLogger(logging.BoardLogger(c.LoggerProvider())),
			board.WithDemoSeed(c.Config.Features.DemoSeed),
			board.WithDemoIDGenerator(identity.DemoWidgetID),
		)
	}
	return c.service, nil
}
