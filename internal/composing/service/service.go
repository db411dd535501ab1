package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vietddude/loresmith/internal/composing/composer"
	"github.com/vietddude/loresmith/internal/composing/metrics"
	"github.com/vietddude/loresmith/internal/composing/retry"
	"github.com/vietddude/loresmith/internal/core/domain"
)

// Renderer turns token-level lore into readable prose.
type Renderer interface {
	Render(ctx context.Context, lore domain.Lore) (domain.Book, error)
}

// Publisher delivers a rendered book to the outside world.
type Publisher interface {
	Publish(ctx context.Context, book domain.Book) error
}

// Scheduler re-enqueues a composition event after a delay. Zero delay
// means as soon as possible.
type Scheduler interface {
	Schedule(ctx context.Context, event domain.CompositionEvent, delay time.Duration) error
}

var (
	// ErrRetryExhausted reports that the retry policy refused another
	// attempt.
	ErrRetryExhausted = errors.New("retry budget exhausted")

	// ErrFallbackEnqueue reports that rescheduling the event itself
	// failed.
	ErrFallbackEnqueue = errors.New("failed to reschedule event")
)

// Service drives one composition attempt end to end: compose, render,
// publish. It holds no state between invocations; all retry state
// travels on the event envelope.
type Service struct {
	composer *composer.Composer
	renderer Renderer
	feed     Publisher
	fallback Scheduler
	policy   retry.Policy
	now      func() time.Time
	log      *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock substitutes the wall clock consulted by the retry policy.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger substitutes the logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// New wires a composition service.
func New(c *composer.Composer, renderer Renderer, feed Publisher, fallback Scheduler, policy retry.Policy, opts ...Option) *Service {
	s := &Service{
		composer: c,
		renderer: renderer,
		feed:     feed,
		fallback: fallback,
		policy:   policy,
		now:      time.Now,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle runs one attempt for the event. A retryable failure is
// rescheduled through the fallback scheduler and swallowed; everything
// else terminates the event with an error.
func (s *Service) Handle(ctx context.Context, event domain.CompositionEvent) error {
	book, err := s.attempt(ctx, event)
	if err != nil {
		if domain.ShouldRetry(err) {
			return s.reschedule(ctx, event, err)
		}
		metrics.CompositionsTotal.WithLabelValues("fatal").Inc()
		return err
	}
	metrics.CompositionsTotal.WithLabelValues("published").Inc()
	s.log.Info("Lore published", "paragraphs", len(book), "attempt", event.Attempts()+1)
	return nil
}

func (s *Service) attempt(ctx context.Context, event domain.CompositionEvent) (domain.Book, error) {
	lore, err := s.composer.ComposeLore(ctx, event.Composition)
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	book, err := s.renderer.Render(ctx, lore)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	start := time.Now()
	if err := s.feed.Publish(ctx, book); err != nil {
		return nil, fmt.Errorf("publish: %w", err)
	}
	metrics.PublishLatency.Observe(time.Since(start).Seconds())
	return book, nil
}

// reschedule consults the policy and either re-enqueues the next
// attempt or surfaces the original failure as terminal.
func (s *Service) reschedule(ctx context.Context, event domain.CompositionEvent, cause error) error {
	delay, ok := s.policy.Next(event, s.now())
	if !ok {
		metrics.CompositionsTotal.WithLabelValues("fatal").Inc()
		return fmt.Errorf("%w after %d attempts: %v", ErrRetryExhausted, event.Attempts()+1, cause)
	}
	if err := s.fallback.Schedule(ctx, event.NextAttempt(), delay); err != nil {
		metrics.CompositionsTotal.WithLabelValues("fatal").Inc()
		return fmt.Errorf("%w: %v (original failure: %v)", ErrFallbackEnqueue, err, cause)
	}
	metrics.CompositionsTotal.WithLabelValues("rescheduled").Inc()
	metrics.RetriesScheduled.Inc()
	s.log.Warn("Attempt failed, rescheduled", "delay", delay, "attempts", event.Attempts(), "error", cause)
	return nil
}
