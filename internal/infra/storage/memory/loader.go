package memory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/vietddude/loresmith/internal/core/domain"
)

type graphFile struct {
	Links []fileLink `yaml:"links"`
}

type fileLink struct {
	From   fileNode `yaml:"from"`
	To     fileNode `yaml:"to"`
	Weight int      `yaml:"weight"`
}

type fileNode struct {
	Kind  string    `yaml:"kind"` // start, continue, end
	Token fileToken `yaml:"token"`
}

type fileToken struct {
	Text     string `yaml:"text"`
	Pos      string `yaml:"pos"`
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
}

// LoadFile seeds a graph from a YAML file. The file is validated
// against the graph invariants: a start node is never a destination,
// an end node is never a source, weights are never negative.
func LoadFile(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph file: %w", err)
	}

	var file graphFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse graph file: %w", err)
	}

	graph := NewGraph()
	for i, link := range file.Links {
		source, err := link.From.node()
		if err != nil {
			return nil, fmt.Errorf("link %d: from: %w", i, err)
		}
		dest, err := link.To.node()
		if err != nil {
			return nil, fmt.Errorf("link %d: to: %w", i, err)
		}
		if source.Kind == domain.NodeEnd {
			return nil, fmt.Errorf("link %d: end node cannot be a source", i)
		}
		if dest.Kind == domain.NodeStart {
			return nil, fmt.Errorf("link %d: start node cannot be a destination", i)
		}
		if link.Weight < 0 {
			return nil, fmt.Errorf("link %d: negative weight %d", i, link.Weight)
		}
		graph.Add(source, domain.Link{To: dest, Weight: link.Weight})
	}
	return graph, nil
}

func (n fileNode) node() (domain.Node, error) {
	switch n.Kind {
	case "start":
		return domain.Start(), nil
	case "continue", "end":
	default:
		return domain.Node{}, fmt.Errorf("unknown node kind %q", n.Kind)
	}

	token, err := n.Token.token()
	if err != nil {
		return domain.Node{}, err
	}
	if n.Kind == "end" {
		return domain.End(token), nil
	}
	return domain.Continue(token), nil
}

func (t fileToken) token() (domain.Token, error) {
	switch {
	case t.Text != "" && t.Name != "":
		return domain.Token{}, fmt.Errorf("token cannot be both text %q and name %q", t.Text, t.Name)
	case t.Text != "":
		return domain.TextToken(t.Text, t.Pos), nil
	case t.Name != "":
		return domain.NameToken(t.Name, domain.NameCategory(t.Category)), nil
	default:
		return domain.Token{}, fmt.Errorf("token requires text or name")
	}
}
