package domain

import "fmt"

// NodeKind discriminates the Node variants.
type NodeKind int

const (
	// NodeStart is the unique entry point of a sentence walk. It carries
	// no token and is never a link destination.
	NodeStart NodeKind = iota
	// NodeContinue carries a token and is usable both as a walk source
	// and as a destination.
	NodeContinue
	// NodeEnd carries the terminal token of a sentence and is never a
	// walk source.
	NodeEnd
)

// Node is a position in the lore transition graph.
type Node struct {
	Kind  NodeKind
	Token Token // zero value for Start
}

// Start returns the sentence entry node.
func Start() Node {
	return Node{Kind: NodeStart}
}

// Continue returns an intermediate node carrying t.
func Continue(t Token) Node {
	return Node{Kind: NodeContinue, Token: t}
}

// End returns a terminal node carrying t.
func End(t Token) Node {
	return Node{Kind: NodeEnd, Token: t}
}

func (n Node) String() string {
	switch n.Kind {
	case NodeStart:
		return "start"
	case NodeEnd:
		return fmt.Sprintf("end(%s)", n.Token.Content)
	default:
		return fmt.Sprintf("continue(%s)", n.Token.Content)
	}
}
