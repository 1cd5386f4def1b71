package types

// Equivalent reports whether s and t describe the same type. Equivalence
// ignores member declaration order for Object and for the Call, Task,
// Hints, Input, and Output types; Struct equivalence is nominal
// plus structural (same name, same ordered members) rather than purely
// structural, so two differently-named structs with identical members are
// not equivalent even though one may still coerce to the other.
func Equivalent(s, t Type) bool {
	if s.optional != t.optional {
		return false
	}
	if s.kind != t.kind {
		return false
	}
	switch s.kind {
	case Union, Boolean, Int, Float, String, File, Directory:
		return true
	case Array:
		return s.NonEmpty == t.NonEmpty && Equivalent(*s.Elem, *t.Elem)
	case Map:
		return Equivalent(*s.Key, *t.Key) && Equivalent(*s.Elem, *t.Elem)
	case Pair:
		return Equivalent(*s.Left, *t.Left) && Equivalent(*s.Elem, *t.Elem)
	case Object:
		return objectsEquivalent(s, t)
	case Struct:
		return structsEquivalent(s, t, false)
	case Call, Task, Hints, Input, Output:
		return s.Name == t.Name && objectsEquivalent(s, t)
	}
	return false
}

// objectsEquivalent compares members as an unordered set keyed by name: both
// sides must name exactly the same members, each pairwise equivalent.
func objectsEquivalent(s, t Type) bool {
	if len(s.Members) != len(t.Members) {
		return false
	}
	for _, sm := range s.Members {
		tm, ok := memberNamed(t.Members, sm.Name)
		if !ok || !Equivalent(sm.Type, tm.Type) {
			return false
		}
	}
	return true
}

// structsEquivalent implements the nominal-plus-structural rule: same name
// (unless ignoreName is set; Equivalent, its only caller, always passes
// false), same ordered members, each pairwise equivalent (not merely
// coercible).
func structsEquivalent(s, t Type, ignoreName bool) bool {
	if !ignoreName && s.Name != t.Name {
		return false
	}
	if len(s.Members) != len(t.Members) {
		return false
	}
	for i, sm := range s.Members {
		tm := t.Members[i]
		if sm.Name != tm.Name || !Equivalent(sm.Type, tm.Type) {
			return false
		}
	}
	return true
}
