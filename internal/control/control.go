package control

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/vietddude/loresmith/internal/composing/composer"
	"github.com/vietddude/loresmith/internal/composing/health"
	"github.com/vietddude/loresmith/internal/composing/metrics"
	"github.com/vietddude/loresmith/internal/composing/render"
	"github.com/vietddude/loresmith/internal/composing/retry"
	"github.com/vietddude/loresmith/internal/composing/service"
	"github.com/vietddude/loresmith/internal/core/config"
	"github.com/vietddude/loresmith/internal/core/domain"
	"github.com/vietddude/loresmith/internal/infra/feed"
	redisclient "github.com/vietddude/loresmith/internal/infra/redis"
	"github.com/vietddude/loresmith/internal/infra/storage"
	"github.com/vietddude/loresmith/internal/infra/storage/memory"
	"github.com/vietddude/loresmith/internal/infra/storage/postgres"
)

// pollInterval bounds how often the consumer checks for due events.
const pollInterval = time.Second

// Config holds the application configuration.
type Config struct {
	Port     int
	Composer config.ComposerConfig
	Policy   retry.Policy
	Redis    redisclient.Config
	Database postgres.Config
	Feed     feed.Config
}

// App wires the composition pipeline and runs the request scheduler
// and the queue consumer.
type App struct {
	cfg     Config
	service *service.Service
	queue   *redisclient.Queue
	db      *postgres.DB
	health  *health.Server
	log     *slog.Logger
	wg      sync.WaitGroup
	cancel  context.CancelFunc
}

// NewApp creates an App with all dependencies initialized.
func NewApp(cfg Config) (*App, error) {
	// 1. Graph storage
	var repo storage.LinkRepository
	var db *postgres.DB

	if cfg.Database.URL != "" {
		var err error
		db, err = postgres.NewDB(context.Background(), cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to init db: %w", err)
		}

		// Run migrations
		if err := goose.SetDialect("postgres"); err != nil {
			return nil, err
		}
		if err := goose.Up(db.DB.DB, "migrations"); err != nil {
			return nil, fmt.Errorf("failed to migrate db: %w", err)
		}

		repo = postgres.NewLinkRepo(db)
		slog.Info("Using PostgreSQL graph storage")
	} else {
		graph, err := memory.LoadFile(cfg.Composer.GraphFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load graph file: %w", err)
		}
		repo = graph
		slog.Info("Using in-memory graph storage", "file", cfg.Composer.GraphFile)
	}

	// 2. Event queue
	queue, err := redisclient.NewQueue(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to init redis queue: %w", err)
	}

	// 3. Composition service
	svc := service.New(
		composer.New(repo),
		render.NewText(),
		feed.NewClient(cfg.Feed),
		queue,
		cfg.Policy,
	)

	// 4. Health server
	checks := map[string]health.Check{
		"queue": func(ctx context.Context) error {
			_, err := queue.Depth(ctx)
			return err
		},
	}
	if db != nil {
		checks["database"] = db.Health
	}

	return &App{
		cfg:     cfg,
		service: svc,
		queue:   queue,
		db:      db,
		health:  health.NewServer(cfg.Port, checks),
		log:     slog.Default(),
	}, nil
}

// Start launches the scheduler, the consumer and the health server.
func (a *App) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	a.wg.Add(2)
	go a.runScheduler(runCtx)
	go a.runConsumer(runCtx)

	go func() {
		if err := a.health.Start(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Health server failed", "error", err)
		}
	}()

	a.log.Info("Composer started",
		"interval", a.cfg.Composer.Interval,
		"policy", a.cfg.Policy.String(),
		"port", a.cfg.Port)
	return nil
}

// Stop shuts the loops down and closes connections.
func (a *App) Stop(ctx context.Context) error {
	if a.cancel != nil {
		a.cancel()
	}

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	_ = a.health.Stop(ctx)
	if a.db != nil {
		_ = a.db.Close()
	}
	return a.queue.Close()
}

// runScheduler enqueues a fresh composition request on every tick.
func (a *App) runScheduler(ctx context.Context) {
	defer a.wg.Done()
	ticker := time.NewTicker(a.cfg.Composer.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			event := domain.NewCompositionEvent(a.randomShape())
			if err := a.queue.Schedule(ctx, event, 0); err != nil {
				a.log.Error("Failed to enqueue composition request", "error", err)
				continue
			}
			a.log.Info("Composition requested", "shape", event.Composition)
		}
	}
}

// randomShape draws paragraph and sentence counts from the configured
// ranges.
func (a *App) randomShape() []int {
	c := a.cfg.Composer
	shape := make([]int, c.MinParagraphs+rand.IntN(c.MaxParagraphs-c.MinParagraphs+1))
	for i := range shape {
		shape[i] = c.MinSentences + rand.IntN(c.MaxSentences-c.MinSentences+1)
	}
	return shape
}

// runConsumer polls the queue for due events and dispatches them.
func (a *App) runConsumer(ctx context.Context) {
	defer a.wg.Done()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.drain(ctx)
		}
	}
}

// drain handles every event already due. Terminal failures are logged
// and dead-lettered; the loop keeps going.
func (a *App) drain(ctx context.Context) {
	for {
		event, found, err := a.queue.PopDue(ctx, time.Now())
		if err != nil {
			a.log.Error("Failed to pop event", "error", err)
			return
		}
		if !found {
			return
		}

		if depth, err := a.queue.Depth(ctx); err == nil {
			metrics.QueueDepth.Set(float64(depth))
		}

		if err := a.service.Handle(ctx, event); err != nil {
			a.log.Error("Composition terminated", "error", err, "attempts", event.Attempts()+1)
			if dlErr := a.queue.DeadLetter(ctx, event, err); dlErr != nil {
				a.log.Error("Failed to dead-letter event", "error", dlErr)
			}
		}
	}
}
