package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/vietddude/loresmith/internal/core/domain"
)

func TestGraphPreservesLinkOrder(t *testing.T) {
	g := NewGraph()
	first := domain.Link{To: domain.Continue(domain.TextToken("a", "")), Weight: 1}
	second := domain.Link{To: domain.End(domain.TextToken("b", "")), Weight: 2}
	g.Add(domain.Start(), first)
	g.Add(domain.Start(), second)

	links, err := g.LinksFrom(context.Background(), domain.Start())
	if err != nil {
		t.Fatalf("LinksFrom failed: %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("got %d links, want 2", len(links))
	}
	if links[0] != first || links[1] != second {
		t.Errorf("link order not preserved: %v", links)
	}
}

func TestGraphUnknownSource(t *testing.T) {
	g := NewGraph()
	links, err := g.LinksFrom(context.Background(), domain.Start())
	if err != nil {
		t.Fatalf("LinksFrom failed: %v", err)
	}
	if len(links) != 0 {
		t.Errorf("unknown source should yield no links, got %v", links)
	}
}

func TestLoadFile(t *testing.T) {
	content := `
links:
  - from: {kind: start}
    to:
      kind: continue
      token: {text: "The", pos: "DT"}
    weight: 10
  - from:
      kind: continue
      token: {text: "The", pos: "DT"}
    to:
      kind: end
      token: {name: "Ankh-Morpork", category: "location"}
    weight: 5
`
	path := writeTemp(t, content)
	g, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	links, err := g.LinksFrom(context.Background(), domain.Start())
	if err != nil {
		t.Fatalf("LinksFrom failed: %v", err)
	}
	if len(links) != 1 || links[0].Weight != 10 || links[0].To.Token.Content != "The" {
		t.Fatalf("unexpected start links %v", links)
	}

	links, err = g.LinksFrom(context.Background(), domain.Continue(domain.TextToken("The", "DT")))
	if err != nil {
		t.Fatalf("LinksFrom failed: %v", err)
	}
	if len(links) != 1 || links[0].To.Kind != domain.NodeEnd {
		t.Fatalf("unexpected continue links %v", links)
	}
	if links[0].To.Token.Category != domain.CategoryLocation {
		t.Errorf("category = %q", links[0].To.Token.Category)
	}
}

func TestLoadFileRejectsInvalidGraphs(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"end as source", `
links:
  - from:
      kind: end
      token: {text: "x"}
    to:
      kind: continue
      token: {text: "y"}
    weight: 1
`},
		{"start as destination", `
links:
  - from: {kind: start}
    to: {kind: start}
    weight: 1
`},
		{"negative weight", `
links:
  - from: {kind: start}
    to:
      kind: end
      token: {text: "x"}
    weight: -1
`},
		{"token without content", `
links:
  - from: {kind: start}
    to:
      kind: end
      token: {pos: "NN"}
    weight: 1
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadFile(writeTemp(t, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}
