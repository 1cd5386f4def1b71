package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoercesTo_primitiveWidening(t *testing.T) {
	assert.True(t, CoercesTo(NewPrimitive(Int, false), NewPrimitive(Float, false)))
	assert.True(t, CoercesTo(NewPrimitive(String, false), NewPrimitive(File, false)))
	assert.True(t, CoercesTo(NewPrimitive(String, false), NewPrimitive(Directory, false)))
	assert.False(t, CoercesTo(NewPrimitive(Float, false), NewPrimitive(Int, false)))
	assert.False(t, CoercesTo(NewPrimitive(Boolean, false), NewPrimitive(String, false)))
	assert.False(t, CoercesTo(NewPrimitive(Int, false), NewPrimitive(String, false)))
}

func TestCoercesTo_optional(t *testing.T) {
	req := NewPrimitive(Int, false)
	opt := NewPrimitive(Int, true)
	assert.True(t, CoercesTo(req, opt))
	assert.False(t, CoercesTo(opt, req))
	assert.True(t, CoercesTo(opt, opt))
}

func TestCoercesTo_unionIsBothSourceAndTarget(t *testing.T) {
	var union Type
	assert.True(t, union.IsUnion())
	assert.True(t, CoercesTo(union, NewPrimitive(String, false)))
	assert.True(t, CoercesTo(NewPrimitive(String, false), union))
}

func TestCoercesTo_reflexiveAndTransitive(t *testing.T) {
	types := []Type{
		NewPrimitive(Int, false),
		NewPrimitive(Float, false),
		NewPrimitive(String, false),
		NewArray(NewPrimitive(String, false), false, false),
	}
	for _, ty := range types {
		assert.True(t, CoercesTo(ty, ty))
	}
	// Int -> Float and Float -> Float? compose into Int -> Float?; String ->
	// File is checked alongside as a second direct coercion.
	assert.True(t, CoercesTo(NewPrimitive(Int, false), NewPrimitive(Float, false)))
	assert.True(t, CoercesTo(NewPrimitive(Float, false), NewPrimitive(Float, true)))
	assert.True(t, CoercesTo(NewPrimitive(Int, false), NewPrimitive(Float, true)))
	assert.True(t, CoercesTo(NewPrimitive(String, false), NewPrimitive(File, false)))
}

func TestCoercesTo_arrayNonEmpty(t *testing.T) {
	elem := NewPrimitive(String, false)
	nonEmpty := NewArray(elem, true, false)
	maybeEmpty := NewArray(elem, false, false)

	assert.True(t, CoercesTo(nonEmpty, maybeEmpty))
	assert.False(t, CoercesTo(maybeEmpty, nonEmpty))
	assert.True(t, CoercesTo(nonEmpty, nonEmpty))
}

func TestCoercesTo_structToObjectAndBack(t *testing.T) {
	person := NewStruct("Person", []Member{
		{Name: "name", Type: NewPrimitive(String, false)},
		{Name: "age", Type: NewPrimitive(Int, false)},
	}, false)
	obj := NewObject([]Member{
		{Name: "name", Type: NewPrimitive(String, false)},
		{Name: "age", Type: NewPrimitive(Int, false)},
	}, false)

	assert.True(t, CoercesTo(person, obj))
	assert.True(t, CoercesTo(obj, person))

	// obj missing a required member does not coerce to the struct.
	sparse := NewObject([]Member{
		{Name: "name", Type: NewPrimitive(String, false)},
	}, false)
	assert.False(t, CoercesTo(sparse, person))
}

func TestEquivalent_objectIgnoresOrder(t *testing.T) {
	a := NewObject([]Member{
		{Name: "x", Type: NewPrimitive(Int, false)},
		{Name: "y", Type: NewPrimitive(String, false)},
	}, false)
	b := NewObject([]Member{
		{Name: "y", Type: NewPrimitive(String, false)},
		{Name: "x", Type: NewPrimitive(Int, false)},
	}, false)
	assert.True(t, Equivalent(a, b))
}

func TestEquivalent_structRequiresNameAndOrder(t *testing.T) {
	members := []Member{
		{Name: "name", Type: NewPrimitive(String, false)},
		{Name: "age", Type: NewPrimitive(Int, false)},
	}
	a := NewStruct("Person", members, false)
	sameName := NewStruct("Person", members, false)
	diffName := NewStruct("Other", members, false)
	reordered := NewStruct("Person", []Member{members[1], members[0]}, false)

	assert.True(t, Equivalent(a, sameName))
	assert.False(t, Equivalent(a, diffName))
	assert.False(t, Equivalent(a, reordered))
}

func TestCoercesTo_structsCoerceAcrossNamesWhenMembersMatch(t *testing.T) {
	a := NewStruct("A", []Member{{Name: "x", Type: NewPrimitive(Int, false)}}, false)
	b := NewStruct("B", []Member{{Name: "x", Type: NewPrimitive(Float, false)}}, false)
	assert.True(t, CoercesTo(a, b))
}

func TestString_rendersWDLSyntax(t *testing.T) {
	ty := NewArray(NewPrimitive(String, false), true, true)
	assert.Equal(t, "Array[String]+?", ty.String())

	pair := NewPair(NewPrimitive(Int, false), NewPrimitive(String, false), false)
	assert.Equal(t, "Pair[Int,String]", pair.String())
}
