// Package types implements WDL's value type system: primitives, compound
// types, the call/task/hints/input/output types introduced in WDL 1.2, and
// the union (unresolved/bottom) type, along with the coercion and
// equivalence relations used by the analyzer and evaluation-graph builder to
// type-check declarations, call inputs, and expressions.
package types

import "fmt"

// Kind discriminates the sum of type variants a Type may hold. Only the
// fields relevant to the active Kind are meaningful on a given Type value.
type Kind int

const (
	// Union is the bottom/unresolved type: it coerces to anything and
	// anything coerces to it, used where a type could not be computed so
	// that type checking can proceed without cascading diagnostics.
	Union Kind = iota
	Boolean
	Int
	Float
	String
	File
	Directory
	Array
	Map
	Pair
	Object
	Struct
	Call
	Task
	Hints
	Input
	Output
)

func (k Kind) String() string {
	switch k {
	case Union:
		return "Union"
	case Boolean:
		return "Boolean"
	case Int:
		return "Int"
	case Float:
		return "Float"
	case String:
		return "String"
	case File:
		return "File"
	case Directory:
		return "Directory"
	case Array:
		return "Array"
	case Map:
		return "Map"
	case Pair:
		return "Pair"
	case Object:
		return "Object"
	case Struct:
		return "Struct"
	case Call:
		return "Call"
	case Task:
		return "Task"
	case Hints:
		return "Hints"
	case Input:
		return "Input"
	case Output:
		return "Output"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) isPrimitive() bool {
	switch k {
	case Boolean, Int, Float, String, File, Directory:
		return true
	}
	return false
}

// Type is a WDL type. The zero value is Union (bottom/unresolved), which is
// deliberately useful on its own: a type that could not be computed.
//
// Only the variant-specific fields listed for a Kind are populated:
//   - Array:  Elem, NonEmpty
//   - Map:    Key, Elem
//   - Pair:   Left, Elem (Elem holds the right-hand member)
//   - Struct: Name, Members
//   - Call:   Name (the owning namespace), Members (outputs)
//   - Task/Hints/Input/Output: Name identifies the owning task
//
// Every variant may additionally be Optional.
type Type struct {
	kind     Kind
	optional bool

	// Array/Map/Pair element types. For Pair, Left is the left member and
	// Elem is the right member.
	Elem *Type
	Left *Type

	// Array
	NonEmpty bool

	// Map
	Key *Type

	// Struct name, and Call's owning namespace (empty if call is local).
	Name string

	// Struct fields or Call outputs, in declaration order. Member order
	// matters for Struct structural equivalence and is preserved here
	// rather than normalized into a map.
	Members []Member
}

// Member is one named, typed field of a Struct, Object, or Call.
type Member struct {
	Name string
	Type Type
}

// Kind reports the type's discriminant.
func (t Type) Kind() Kind { return t.kind }

// Optional reports whether t is an optional-of variant of its base type.
func (t Type) Optional() bool { return t.optional }

// IsUnion reports whether t is the bottom/unresolved type.
func (t Type) IsUnion() bool { return t.kind == Union }

// NewPrimitive constructs a primitive type (Boolean, Int, Float, String,
// File, or Directory). It panics if kind is not a primitive kind, since that
// is always a programmer error at the call site, never malformed input.
func NewPrimitive(kind Kind, optional bool) Type {
	if !kind.isPrimitive() {
		panic("types: NewPrimitive requires a primitive Kind")
	}
	return Type{kind: kind, optional: optional}
}

// NewArray constructs Array[elem], optionally non-empty (the `+` suffix) and
// optionally itself optional.
func NewArray(elem Type, nonEmpty, optional bool) Type {
	e := elem
	return Type{kind: Array, Elem: &e, NonEmpty: nonEmpty, optional: optional}
}

// NewMap constructs Map[key, value]. key is restricted to a primitive type by
// the grammar/validator, not enforced here.
func NewMap(key, value Type, optional bool) Type {
	k, v := key, value
	return Type{kind: Map, Key: &k, Elem: &v, optional: optional}
}

// NewPair constructs Pair[left, right].
func NewPair(left, right Type, optional bool) Type {
	l, r := left, right
	return Type{kind: Pair, Left: &l, Elem: &r, optional: optional}
}

// NewObject constructs the Object type, a string-keyed bag of named members
// whose equivalence ignores declaration order. Each member carries its own
// Type as given; there is no separate Any value type.
func NewObject(members []Member, optional bool) Type {
	return Type{kind: Object, Members: members, optional: optional}
}

// NewStruct constructs a named Struct type with ordered members.
func NewStruct(name string, members []Member, optional bool) Type {
	return Type{kind: Struct, Name: name, Members: members, optional: optional}
}

// NewCall constructs a Call type: the type of a `call` statement target,
// exposing its outputs as Members. namespace is empty for a call to a task
// or workflow defined in the same document.
func NewCall(namespace string, outputs []Member) Type {
	return Type{kind: Call, Name: namespace, Members: outputs}
}

// NewTaskScope constructs one of the WDL 1.2 Task/Hints/Input/Output types,
// which expose a task's own declarations back to its command and output
// sections (Task) or to hints expressions (Hints/Input/Output).
func NewTaskScope(kind Kind, taskName string, members []Member) Type {
	switch kind {
	case Task, Hints, Input, Output:
	default:
		panic("types: NewTaskScope requires Task, Hints, Input, or Output")
	}
	return Type{kind: kind, Name: taskName, Members: members}
}

// AsOptional returns a copy of t with Optional() true.
func (t Type) AsOptional() Type {
	t.optional = true
	return t
}

// WithoutOptional returns a copy of t with Optional() false.
func (t Type) WithoutOptional() Type {
	t.optional = false
	return t
}

// String renders t in WDL type syntax, e.g. "Array[String]+?".
func (t Type) String() string {
	var s string
	switch t.kind {
	case Union:
		s = "Union"
	case Boolean, Int, Float, String, File, Directory:
		s = t.kind.String()
	case Array:
		s = "Array[" + t.Elem.String() + "]"
		if t.NonEmpty {
			s += "+"
		}
	case Map:
		s = "Map[" + t.Key.String() + "," + t.Elem.String() + "]"
	case Pair:
		s = "Pair[" + t.Left.String() + "," + t.Elem.String() + "]"
	case Object:
		s = "Object"
	case Struct:
		s = t.Name
	case Call:
		if t.Name != "" {
			s = "Call[" + t.Name + "]"
		} else {
			s = "Call"
		}
	case Task, Hints, Input, Output:
		s = t.kind.String() + "(" + t.Name + ")"
	default:
		s = t.kind.String()
	}
	if t.optional {
		s += "?"
	}
	return s
}
