package analysis

import "github.com/dekarrin/wdl/internal/wdl/types"

// structSignaturesMatch implements Open Question (ii): two imported structs
// sharing a name are compatible iff their resolved types are equivalent
// under types.Equivalent (same name, same ordered member names, pairwise
// equivalent member types). Two structs that both failed to resolve also
// match. Trivia and spans play no part, since the comparison is over
// resolved Types rather than either side's CST.
func structSignaturesMatch(a, b Struct) bool {
	if a.Type == nil || b.Type == nil {
		return a.Type == nil && b.Type == nil
	}
	return types.Equivalent(*a.Type, *b.Type)
}
