package validate

import (
	"github.com/dekarrin/wdl/internal/wdl/ast"
	"github.com/dekarrin/wdl/internal/wdl/diag"
	"github.com/dekarrin/wdl/internal/wdl/syntax"
)

// checkPlaceholder implements rule placeholder-option-conflict: sep,
// default, and true/false are mutually exclusive except that default may
// combine with true/false, and only under WDL 1.2 or later; a true= option
// without a matching false= (or vice versa) is also rejected, since the
// grammar allows parsing one alone but WDL requires the pair.
func (v *validator) checkPlaceholder(p ast.Placeholder) {
	_, hasSep := p.SepOption()
	_, hasDefault := p.DefaultOption()
	trueFalse := p.TrueFalseOptions()

	if len(trueFalse) == 0 {
		if hasSep && hasDefault {
			v.diags = append(v.diags, diag.Errorf(
				"placeholder cannot combine sep= and default=").
				WithRule("placeholder-option-conflict").
				WithPrimary(p.Span()))
		}
		return
	}

	tf := trueFalse[0]
	hasTrue := tf.FirstChildTokenOfKind(syntax.TrueKeyword) != nil
	hasFalse := tf.FirstChildTokenOfKind(syntax.FalseKeyword) != nil
	if !hasTrue || !hasFalse {
		v.diags = append(v.diags, diag.Errorf(
			"true= and false= placeholder options must appear together").
			WithRule("placeholder-option-conflict").
			WithPrimary(tf.Span()))
	}

	if hasSep {
		v.diags = append(v.diags, diag.Errorf(
			"placeholder cannot combine sep= with true=/false=").
			WithRule("placeholder-option-conflict").
			WithPrimary(p.Span()))
	}

	if hasDefault && !versionAtLeast1_2(v.version) {
		v.diags = append(v.diags, diag.Errorf(
			"combining default= with true=/false= requires WDL 1.2 or later").
			WithRule("placeholder-option-conflict").
			WithPrimary(p.Span()))
	}
}

func versionAtLeast1_2(version string) bool {
	return version == "1.2"
}
