package storage

import (
	"context"

	"github.com/vietddude/loresmith/internal/core/domain"
)

// LinkRepository resolves the weighted adjacency of the lore graph.
// Implementations must return links in stored order: the composer's
// cumulative selection treats list order as part of the distribution.
// Transient lookup failures must carry the domain.Retryable mark.
type LinkRepository interface {
	// LinksFrom returns the outgoing links of source. An unknown source
	// yields an empty list, not an error.
	LinksFrom(ctx context.Context, source domain.Node) ([]domain.Link, error)
}
