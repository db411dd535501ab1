package memory

import (
	"context"
	"sync"

	"github.com/vietddude/loresmith/internal/core/domain"
)

// Graph is an in-memory LinkRepository, used by tests and when no
// database is configured.
type Graph struct {
	mu    sync.RWMutex
	links map[nodeKey][]domain.Link
}

// nodeKey identifies a node by kind and token content, the same
// identity the tokens themselves carry.
type nodeKey struct {
	kind    domain.NodeKind
	token   domain.TokenKind
	content string
}

func keyOf(n domain.Node) nodeKey {
	return nodeKey{kind: n.Kind, token: n.Token.Kind, content: n.Token.Content}
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{links: make(map[nodeKey][]domain.Link)}
}

// Add appends links from source, preserving insertion order.
func (g *Graph) Add(source domain.Node, links ...domain.Link) {
	g.mu.Lock()
	defer g.mu.Unlock()
	key := keyOf(source)
	g.links[key] = append(g.links[key], links...)
}

// LinksFrom returns a copy of the outgoing links of source, in
// insertion order. An unknown source yields an empty list.
func (g *Graph) LinksFrom(ctx context.Context, source domain.Node) ([]domain.Link, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	links := g.links[keyOf(source)]
	out := make([]domain.Link, len(links))
	copy(out, links)
	return out, nil
}
