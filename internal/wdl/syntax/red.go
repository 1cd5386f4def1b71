package syntax

import "github.com/dekarrin/wdl/internal/wdl/diag"

// RedNode is a cursor pairing a *GreenNode with its absolute byte offset and
// a back-pointer to its parent cursor. Red cursors are cheap, ephemeral, and
// rebuilt on demand by walking down from a root; they are never stored
// inside a GreenNode so that the immutable green tree stays free of parent
// cycles (sec 9, "cyclic ownership").
type RedNode struct {
	Green  *GreenNode
	Offset uint32
	Parent *RedNode
}

// NewRoot creates a red cursor over the root of a green tree at offset 0.
func NewRoot(green *GreenNode) *RedNode {
	return &RedNode{Green: green, Offset: 0, Parent: nil}
}

// Kind returns the underlying green node's kind.
func (n *RedNode) Kind() Kind {
	return n.Green.Kind
}

// Span returns the node's absolute byte span.
func (n *RedNode) Span() diag.Span {
	return diag.Span{Start: n.Offset, Len: n.Green.Len}
}

// Text returns the exact source text the node covers.
func (n *RedNode) Text() string {
	return n.Green.Text()
}

// Children returns red cursors for every direct child (node or token), in
// order, with offsets computed relative to n.
func (n *RedNode) Children() []RedChild {
	out := make([]RedChild, 0, len(n.Green.Children))
	offset := n.Offset
	for _, c := range n.Green.Children {
		if c.Node != nil {
			out = append(out, RedChild{Node: &RedNode{Green: c.Node, Offset: offset, Parent: n}})
		} else {
			out = append(out, RedChild{Token: &RedToken{Green: c.Token, Offset: offset, Parent: n}})
		}
		offset += c.Len()
	}
	return out
}

// ChildNodes returns red cursors for only the node-kind children.
func (n *RedNode) ChildNodes() []*RedNode {
	var out []*RedNode
	for _, c := range n.Children() {
		if c.Node != nil {
			out = append(out, c.Node)
		}
	}
	return out
}

// ChildNodesOfKind returns red cursors for direct node children matching
// kind, in order (sec 4.4 child-access-by-scan rule).
func (n *RedNode) ChildNodesOfKind(kind Kind) []*RedNode {
	var out []*RedNode
	for _, c := range n.Children() {
		if c.Node != nil && c.Node.Kind() == kind {
			out = append(out, c.Node)
		}
	}
	return out
}

// FirstChildNodeOfKind returns the first direct node child matching kind, or
// nil.
func (n *RedNode) FirstChildNodeOfKind(kind Kind) *RedNode {
	for _, c := range n.Children() {
		if c.Node != nil && c.Node.Kind() == kind {
			return c.Node
		}
	}
	return nil
}

// ChildTokensOfKind returns red cursors for direct token children matching
// kind, in order.
func (n *RedNode) ChildTokensOfKind(kind Kind) []*RedToken {
	var out []*RedToken
	for _, c := range n.Children() {
		if c.Token != nil && c.Token.Kind() == kind {
			out = append(out, c.Token)
		}
	}
	return out
}

// FirstChildTokenOfKind returns the first direct token child matching kind,
// or nil.
func (n *RedNode) FirstChildTokenOfKind(kind Kind) *RedToken {
	for _, c := range n.Children() {
		if c.Token != nil && c.Token.Kind() == kind {
			return c.Token
		}
	}
	return nil
}

// TokenAtOffset returns the deepest token whose span contains the given
// absolute byte offset, walking down from n. Used by goto_definition/hover
// to resolve a cursor position to a concrete token (sec 6).
func (n *RedNode) TokenAtOffset(offset uint32) *RedToken {
	if !n.Span().Contains(offset) && !(offset == n.Span().End() && n.Span().Len == 0) {
		if offset != n.Span().End() {
			return nil
		}
	}
	for _, c := range n.Children() {
		if c.Node != nil {
			if span := c.Node.Span(); span.Contains(offset) || offset == span.End() {
				if tok := c.Node.TokenAtOffset(offset); tok != nil {
					return tok
				}
			}
		} else {
			span := c.Token.Span()
			if span.Contains(offset) || (span.Len == 0 && offset == span.Start) {
				return c.Token
			}
		}
	}
	return nil
}

// Ancestors returns n and every transitive parent, innermost first.
func (n *RedNode) Ancestors() []*RedNode {
	var out []*RedNode
	for cur := n; cur != nil; cur = cur.Parent {
		out = append(out, cur)
	}
	return out
}

// RedToken is a cursor pairing a *GreenToken with its absolute offset and
// parent.
type RedToken struct {
	Green  *GreenToken
	Offset uint32
	Parent *RedNode
}

// Kind returns the underlying green token's kind.
func (t *RedToken) Kind() Kind {
	return t.Green.Kind
}

// Span returns the token's absolute byte span.
func (t *RedToken) Span() diag.Span {
	return diag.Span{Start: t.Offset, Len: t.Green.Len()}
}

// Text returns the token's exact source text.
func (t *RedToken) Text() string {
	return t.Green.Text
}

// RedChild is either a *RedNode or a *RedToken, exactly one non-nil.
type RedChild struct {
	Node  *RedNode
	Token *RedToken
}
