package analysis

import (
	"github.com/dekarrin/wdl/internal/wdl/syntax"
	"github.com/dekarrin/wdl/internal/wdl/types"
)

// resolveTypeNode converts a parsed type node (one of PrimitiveTypeNode,
// ArrayTypeNode, MapTypeNode, PairTypeNode, ObjectTypeNode, TypeRefNode)
// into a types.Type. structTypes supplies the already-resolved types of
// struct definitions in scope (local and imported) for TypeRefNode lookup.
func resolveTypeNode(n *syntax.RedNode, structTypes map[string]types.Type) types.Type {
	return resolveTypeNodeVia(n, func(name string) *types.Type {
		if t, ok := structTypes[name]; ok {
			return &t
		}
		return nil
	})
}

// resolveTypeNodeVia is resolveTypeNode's general form: TypeRefNode lookup
// goes through resolveStruct instead of a static map, so struct resolution
// (which must resolve structs in dependency order, not all at once) can
// reuse the same type-node walk.
func resolveTypeNodeVia(n *syntax.RedNode, resolveStruct func(name string) *types.Type) types.Type {
	if n == nil {
		return types.Type{}
	}
	optional := n.FirstChildTokenOfKind(syntax.QuestionMark) != nil

	switch n.Kind() {
	case syntax.PrimitiveTypeNode:
		return types.NewPrimitive(primitiveKeywordKind(n), optional)
	case syntax.ArrayTypeNode:
		elem := resolveTypeNodeVia(firstTypeChild(n), resolveStruct)
		nonEmpty := n.FirstChildTokenOfKind(syntax.Plus) != nil
		return types.NewArray(elem, nonEmpty, optional)
	case syntax.MapTypeNode:
		tc := typeChildren(n)
		var key, val types.Type
		if len(tc) > 0 {
			key = resolveTypeNodeVia(tc[0], resolveStruct)
		}
		if len(tc) > 1 {
			val = resolveTypeNodeVia(tc[1], resolveStruct)
		}
		return types.NewMap(key, val, optional)
	case syntax.PairTypeNode:
		tc := typeChildren(n)
		var left, right types.Type
		if len(tc) > 0 {
			left = resolveTypeNodeVia(tc[0], resolveStruct)
		}
		if len(tc) > 1 {
			right = resolveTypeNodeVia(tc[1], resolveStruct)
		}
		return types.NewPair(left, right, optional)
	case syntax.ObjectTypeNode:
		return types.NewObject(nil, optional)
	case syntax.TypeRefNode:
		name := ""
		if tok := n.FirstChildTokenOfKind(syntax.Ident); tok != nil {
			name = tok.Text()
		}
		if st := resolveStruct(name); st != nil {
			if optional {
				return st.AsOptional()
			}
			return *st
		}
		return types.Type{} // Union: unresolved struct reference
	default:
		return types.Type{}
	}
}

func primitiveKeywordKind(n *syntax.RedNode) types.Kind {
	switch {
	case n.FirstChildTokenOfKind(syntax.BooleanTypeKeyword) != nil:
		return types.Boolean
	case n.FirstChildTokenOfKind(syntax.IntTypeKeyword) != nil:
		return types.Int
	case n.FirstChildTokenOfKind(syntax.FloatTypeKeyword) != nil:
		return types.Float
	case n.FirstChildTokenOfKind(syntax.StringTypeKeyword) != nil:
		return types.String
	case n.FirstChildTokenOfKind(syntax.FileTypeKeyword) != nil:
		return types.File
	case n.FirstChildTokenOfKind(syntax.DirectoryTypeKeyword) != nil:
		return types.Directory
	default:
		return types.Boolean
	}
}

var typeNodeKinds = map[syntax.Kind]bool{
	syntax.PrimitiveTypeNode: true, syntax.ArrayTypeNode: true, syntax.MapTypeNode: true,
	syntax.PairTypeNode: true, syntax.ObjectTypeNode: true, syntax.TypeRefNode: true,
}

func typeChildren(n *syntax.RedNode) []*syntax.RedNode {
	var out []*syntax.RedNode
	for _, c := range n.ChildNodes() {
		if typeNodeKinds[c.Kind()] {
			out = append(out, c)
		}
	}
	return out
}

func firstTypeChild(n *syntax.RedNode) *syntax.RedNode {
	tc := typeChildren(n)
	if len(tc) == 0 {
		return nil
	}
	return tc[0]
}
