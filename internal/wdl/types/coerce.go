package types

// CoercesTo reports whether a value of type s can coerce to type t, per the
// directed coercion relation: S coerces to T iff S is structurally
// equivalent to T; or T is optional and S coerces to T's inner; or S is Int
// and T is Float; or S is String and T is File or Directory; or S and T are
// both Array/Map/Pair/Struct/Object and coerce member-wise (an Array also
// allows its non_empty flag to narrow from true to false); Union coerces to,
// and accepts coercion from, anything.
func CoercesTo(s, t Type) bool {
	if s.IsUnion() || t.IsUnion() {
		return true
	}

	if Equivalent(s, t) {
		return true
	}

	if t.optional {
		inner := t.WithoutOptional()
		if s.optional {
			return CoercesTo(s.WithoutOptional(), inner)
		}
		return CoercesTo(s, inner)
	}
	if s.optional {
		// a required target never accepts an optional source.
		return false
	}

	switch {
	case s.kind == Int && t.kind == Float:
		return true
	case s.kind == String && (t.kind == File || t.kind == Directory):
		return true
	case s.kind == Struct && t.kind == Object:
		return membersCoerceByName(s.Members, t.Members)
	case s.kind == Object && t.kind == Struct:
		return membersCoerceByName(s.Members, t.Members)
	}

	if s.kind != t.kind {
		return false
	}

	switch s.kind {
	case Array:
		if !CoercesTo(*s.Elem, *t.Elem) {
			return false
		}
		// Array[U, non_empty=*] coerces to Array[V, non_empty=false]; a
		// non-empty target additionally requires the source be non-empty.
		return !t.NonEmpty || s.NonEmpty
	case Map:
		return CoercesTo(*s.Key, *t.Key) && CoercesTo(*s.Elem, *t.Elem)
	case Pair:
		return CoercesTo(*s.Left, *t.Left) && CoercesTo(*s.Elem, *t.Elem)
	case Object:
		return membersCoerceByName(s.Members, t.Members)
	case Struct:
		return len(s.Members) == len(t.Members) && membersCoerceByName(s.Members, t.Members)
	}
	return false
}

// membersCoerceByName requires every member t names to be satisfiable from a
// same-named member of s, coercibly. Used for Object (where s may carry
// additional members t does not name) and, with an equal-length check
// already applied by the caller, for Struct's structural coercion half.
func membersCoerceByName(s, t []Member) bool {
	for _, tm := range t {
		sm, ok := memberNamed(s, tm.Name)
		if !ok || !CoercesTo(sm.Type, tm.Type) {
			return false
		}
	}
	return true
}

func memberNamed(members []Member, name string) (Member, bool) {
	for _, m := range members {
		if m.Name == name {
			return m, true
		}
	}
	return Member{}, false
}
