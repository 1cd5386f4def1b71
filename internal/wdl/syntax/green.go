package syntax

// GreenToken is an immutable terminal: a Kind plus the exact source text it
// covers. Green tokens are never mutated after construction and are safe to
// share across tree versions and across goroutines.
type GreenToken struct {
	Kind Kind
	Text string
}

// Len returns the number of bytes the token's text occupies.
func (t *GreenToken) Len() uint32 {
	return uint32(len(t.Text))
}

// GreenChild is either a *GreenNode or a *GreenToken. Exactly one of the two
// fields is non-nil.
type GreenChild struct {
	Node  *GreenNode
	Token *GreenToken
}

// Len returns the byte length of whichever alternative is populated.
func (c GreenChild) Len() uint32 {
	if c.Node != nil {
		return c.Node.Len
	}
	return c.Token.Len()
}

// Kind returns the kind of whichever alternative is populated.
func (c GreenChild) Kind() Kind {
	if c.Node != nil {
		return c.Node.Kind
	}
	return c.Token.Kind
}

// GreenNode is an immutable, structurally-shared tree node: a Kind plus an
// ordered list of children, each of which is itself a node or a token. Green
// nodes carry no absolute offset information; that is added by the red
// cursor layer (red.go) on demand. Because a GreenNode never changes after
// it is built, the same *GreenNode can be the child of many different
// parents simultaneously (structural sharing) and is safe to share across
// goroutines once published.
type GreenNode struct {
	Kind     Kind
	Children []GreenChild
	// Len is the total text length covered by this node's children,
	// computed once at construction time.
	Len uint32
}

// NewGreenNode builds a GreenNode from kind and children, computing its
// total length.
func NewGreenNode(kind Kind, children []GreenChild) *GreenNode {
	n := &GreenNode{Kind: kind, Children: children}
	var total uint32
	for _, c := range children {
		total += c.Len()
	}
	n.Len = total
	return n
}

// Text reconstructs the exact source text covered by this node by
// concatenating every leaf token's text in pre-order. For a root node
// produced by a successful parse, this always equals the original input
// byte-for-byte (spec.md sec 8 property 1, round-trip source fidelity).
func (n *GreenNode) Text() string {
	var sb []byte
	n.appendText(&sb)
	return string(sb)
}

func (n *GreenNode) appendText(buf *[]byte) {
	for _, c := range n.Children {
		if c.Token != nil {
			*buf = append(*buf, c.Token.Text...)
		} else {
			c.Node.appendText(buf)
		}
	}
}

// FirstToken returns the first leaf token reachable from this node in
// pre-order, or nil if the node has no children.
func (n *GreenNode) FirstToken() *GreenToken {
	for _, c := range n.Children {
		if c.Token != nil {
			return c.Token
		}
		if tok := c.Node.FirstToken(); tok != nil {
			return tok
		}
	}
	return nil
}

// ChildNodes returns only the node-kind children in order.
func (n *GreenNode) ChildNodes() []*GreenNode {
	var out []*GreenNode
	for _, c := range n.Children {
		if c.Node != nil {
			out = append(out, c.Node)
		}
	}
	return out
}

// ChildTokens returns only the token-kind children in order.
func (n *GreenNode) ChildTokens() []*GreenToken {
	var out []*GreenToken
	for _, c := range n.Children {
		if c.Token != nil {
			out = append(out, c.Token)
		}
	}
	return out
}

// FirstChildOfKind returns the first child node with the given kind, or nil.
func (n *GreenNode) FirstChildOfKind(kind Kind) *GreenNode {
	for _, c := range n.Children {
		if c.Node != nil && c.Node.Kind == kind {
			return c.Node
		}
	}
	return nil
}

// ChildrenOfKind returns every child node with the given kind, in order.
func (n *GreenNode) ChildrenOfKind(kind Kind) []*GreenNode {
	var out []*GreenNode
	for _, c := range n.Children {
		if c.Node != nil && c.Node.Kind == kind {
			out = append(out, c.Node)
		}
	}
	return out
}

// FirstTokenOfKind returns the first direct token child with the given
// kind, or nil. Only direct children are scanned, matching sec 4.4's "child
// access is done by scanning children for matching kinds" rule.
func (n *GreenNode) FirstTokenOfKind(kind Kind) *GreenToken {
	for _, c := range n.Children {
		if c.Token != nil && c.Token.Kind == kind {
			return c.Token
		}
	}
	return nil
}
