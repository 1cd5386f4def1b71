package parser

import "github.com/dekarrin/wdl/internal/wdl/syntax"

type nodeBuilder struct {
	kind     syntax.Kind
	children []syntax.GreenChild
}

// Build replays a parser's event stream into a single immutable green tree,
// implementing the forward_parent promotion mechanism (sec 4.2/4.3/sec 9)
// and re-parenting the children of any Abandoned node into its parent
// (error recovery, sec 4.2).
func Build(out Output) *syntax.GreenNode {
	events := out.Events
	consumed := make([]bool, len(events))
	var stack []*nodeBuilder
	var root *syntax.GreenNode

	attach := func(kind syntax.Kind, children []syntax.GreenChild) {
		if kind == syntax.Abandoned {
			// re-parent: splice the abandoned node's children directly
			// into whatever now sits on top of the stack (or into root
			// if the stack is empty, which should not normally happen
			// for a well-formed grammar but is handled defensively).
			if len(stack) == 0 {
				for _, c := range children {
					if root == nil {
						root = syntax.NewGreenNode(syntax.RootNode, nil)
					}
					root.Children = append(root.Children, c)
				}
				return
			}
			top := stack[len(stack)-1]
			top.children = append(top.children, children...)
			return
		}
		node := syntax.NewGreenNode(kind, children)
		if len(stack) == 0 {
			root = node
			return
		}
		top := stack[len(stack)-1]
		top.children = append(top.children, syntax.GreenChild{Node: node})
	}

	for i := 0; i < len(events); i++ {
		if consumed[i] {
			continue
		}
		ev := events[i]
		switch ev.Kind {
		case NodeStarted:
			var kinds []syntax.Kind
			kinds = append(kinds, ev.NodeKind)
			idx := i
			fp := ev.ForwardParent
			for fp != 0 {
				idx += fp
				consumed[idx] = true
				next := events[idx]
				kinds = append(kinds, next.NodeKind)
				fp = next.ForwardParent
			}
			for k := len(kinds) - 1; k >= 0; k-- {
				stack = append(stack, &nodeBuilder{kind: kinds[k]})
			}
		case NodeFinished:
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			attach(top.kind, top.children)
		case TokenEvent:
			leaf := syntax.GreenChild{Token: &syntax.GreenToken{Kind: ev.Token.Kind, Text: ev.Token.Text(out.Source)}}
			if len(stack) == 0 {
				// a stray token outside of any node (shouldn't happen for
				// a well-formed grammar); wrap it at the root.
				if root == nil {
					root = syntax.NewGreenNode(syntax.RootNode, nil)
				}
				root.Children = append(root.Children, leaf)
				continue
			}
			top := stack[len(stack)-1]
			top.children = append(top.children, leaf)
		}
	}

	if root == nil {
		root = syntax.NewGreenNode(syntax.RootNode, nil)
	}
	return root
}
