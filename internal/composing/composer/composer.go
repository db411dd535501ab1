package composer

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/vietddude/loresmith/internal/composing/metrics"
	"github.com/vietddude/loresmith/internal/core/domain"
	"github.com/vietddude/loresmith/internal/infra/storage"
)

// Fatal composition errors: the graph or the request is malformed and
// retrying cannot help.
var (
	// ErrEmptyParagraph is returned for a non-positive sentence count.
	ErrEmptyParagraph = errors.New("paragraph requires a positive sentence count")

	// ErrNoOutgoingLinks is returned when a source node's total link
	// weight is zero.
	ErrNoOutgoingLinks = errors.New("node has no outgoing links")

	// ErrInvalidTransition is returned when no link matches the drawn
	// weight despite a non-zero total. It indicates inconsistent weight
	// accounting and must never fire with a well-behaved repository.
	ErrInvalidTransition = errors.New("no link matched the drawn weight")
)

// Composer builds lore by weighted random walks over the link graph.
// It holds no state between calls; concurrent compositions are safe as
// long as the random source is.
type Composer struct {
	repo storage.LinkRepository
	intn func(n int) int
}

// Option configures a Composer.
type Option func(*Composer)

// WithRand substitutes the random source. f must return a uniform
// integer in [0, n) and be safe for concurrent use.
func WithRand(f func(n int) int) Option {
	return func(c *Composer) { c.intn = f }
}

// New creates a Composer over repo, drawing from math/rand/v2 unless
// WithRand overrides it.
func New(repo storage.LinkRepository, opts ...Option) *Composer {
	c := &Composer{repo: repo, intn: rand.IntN}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ComposeLore builds one paragraph per shape entry, each entry giving
// that paragraph's sentence count, preserving order.
func (c *Composer) ComposeLore(ctx context.Context, shape []int) (domain.Lore, error) {
	if len(shape) == 0 {
		return nil, fmt.Errorf("compose lore: %w", domain.ErrEmptySequence)
	}
	paragraphs := make([]domain.Paragraph, 0, len(shape))
	for _, count := range shape {
		paragraph, err := c.ComposeParagraph(ctx, count)
		if err != nil {
			return nil, err
		}
		paragraphs = append(paragraphs, paragraph)
	}
	return domain.NewLore(paragraphs)
}

// ComposeParagraph builds exactly count sentences, in order.
func (c *Composer) ComposeParagraph(ctx context.Context, count int) (domain.Paragraph, error) {
	if count <= 0 {
		return nil, fmt.Errorf("compose paragraph of %d sentences: %w", count, ErrEmptyParagraph)
	}
	sentences := make([]domain.Sentence, 0, count)
	for i := 0; i < count; i++ {
		sentence, err := c.ComposeSentence(ctx)
		if err != nil {
			return nil, err
		}
		sentences = append(sentences, sentence)
	}
	return domain.NewParagraph(sentences)
}

// ComposeSentence walks the graph from Start, drawing each hop from
// the source's weighted links, until it reaches an End node. The walk
// is a plain loop over an accumulator: sentence length is unbounded by
// the topology and must not grow the stack.
func (c *Composer) ComposeSentence(ctx context.Context) (domain.Sentence, error) {
	var tokens []domain.Token
	source := domain.Start()
	for {
		links, err := c.repo.LinksFrom(ctx, source)
		if err != nil {
			return nil, fmt.Errorf("links from %s: %w", source, err)
		}
		next, err := c.pick(links)
		if err != nil {
			return nil, fmt.Errorf("walk at %s: %w", source, err)
		}
		tokens = append(tokens, next.Token)
		if next.Kind == domain.NodeEnd {
			metrics.WalkLength.Observe(float64(len(tokens)))
			return domain.NewSentence(tokens)
		}
		source = next
	}
}

// pick draws a destination by cumulative weight: subtract each link's
// weight from the draw and select the first link whose weight exceeds
// the remainder. List order is part of the distribution.
func (c *Composer) pick(links []domain.Link) (domain.Node, error) {
	total := 0
	for _, link := range links {
		total += link.Weight
	}
	if total <= 0 {
		return domain.Node{}, ErrNoOutgoingLinks
	}
	r := c.intn(total)
	for _, link := range links {
		if r < link.Weight {
			return link.To, nil
		}
		r -= link.Weight
	}
	return domain.Node{}, ErrInvalidTransition
}
