package parser

import "github.com/dekarrin/wdl/internal/wdl/syntax"

// binOp describes one level of the binary expression precedence table
// (sec 4.2): higher prec binds tighter. Grounded on the precedence-climbing
// approach in tunaq's parseExpression, generalized to WDL's operator set.
type binOp struct {
	nodeKind   syntax.Kind
	prec       int
	rightAssoc bool
}

var binOps = map[syntax.Kind]binOp{
	syntax.LogicalOr:    {syntax.LogicalOrExprNode, 1, false},
	syntax.LogicalAnd:   {syntax.LogicalAndExprNode, 2, false},
	syntax.Equal:        {syntax.EqualityExprNode, 3, false},
	syntax.NotEqual:     {syntax.InequalityExprNode, 3, false},
	syntax.Less:         {syntax.LessExprNode, 4, false},
	syntax.LessEqual:    {syntax.LessEqualExprNode, 4, false},
	syntax.Greater:      {syntax.GreaterExprNode, 4, false},
	syntax.GreaterEqual: {syntax.GreaterEqualExprNode, 4, false},
	syntax.Plus:         {syntax.AdditionExprNode, 5, false},
	syntax.Minus:        {syntax.SubtractionExprNode, 5, false},
	syntax.Asterisk:     {syntax.MultiplicationExprNode, 6, false},
	syntax.Slash:        {syntax.DivisionExprNode, 6, false},
	syntax.Percent:      {syntax.ModuloExprNode, 6, false},
	syntax.DoubleStar:   {syntax.ExponentiationExprNode, 7, true},
}

// parseExpr parses a complete expression, including the if/then/else form
// which sits outside the binary operator table entirely.
func (p *parser) parseExpr() CompletedMarker {
	if p.at(syntax.IfKeyword) {
		return p.parseIfExpr()
	}
	return p.parseBinaryExpr(1)
}

func (p *parser) parseIfExpr() CompletedMarker {
	m := p.open()
	p.bump() // if
	p.parseExpr()
	p.expect(syntax.ThenKeyword)
	p.parseExpr()
	p.expect(syntax.ElseKeyword)
	p.parseExpr()
	return p.close(m, syntax.IfExprNode)
}

// parseBinaryExpr implements precedence climbing: it parses a unary
// expression and then repeatedly absorbs operators at or above minPrec,
// promoting the expression parsed so far into the left operand of a new
// binary node via precede - the forward_parent mechanism is what makes this
// promotion possible without rewriting already-emitted events.
func (p *parser) parseBinaryExpr(minPrec int) CompletedMarker {
	lhs := p.parseUnaryExpr()
	for {
		k, ok := p.peek()
		if !ok {
			return lhs
		}
		op, isOp := binOps[k]
		if !isOp || op.prec < minPrec {
			return lhs
		}
		m := p.precede(lhs)
		p.bump() // operator
		nextMin := op.prec + 1
		if op.rightAssoc {
			nextMin = op.prec
		}
		p.parseBinaryExpr(nextMin)
		lhs = p.close(m, op.nodeKind)
	}
}

func (p *parser) parseUnaryExpr() CompletedMarker {
	if p.at(syntax.Exclamation) {
		m := p.open()
		p.bump()
		p.parseUnaryExpr()
		return p.close(m, syntax.LogicalNotExprNode)
	}
	if p.at(syntax.Minus) {
		m := p.open()
		p.bump()
		p.parseUnaryExpr()
		return p.close(m, syntax.NegationExprNode)
	}
	return p.parsePostfixExpr()
}

func (p *parser) parsePostfixExpr() CompletedMarker {
	lhs := p.parsePrimaryExpr()
	for {
		switch {
		case p.at(syntax.OpenBracket):
			m := p.precede(lhs)
			p.bump()
			p.parseExpr()
			p.expect(syntax.CloseBracket)
			lhs = p.close(m, syntax.IndexExprNode)
		case p.at(syntax.Dot):
			m := p.precede(lhs)
			p.bump()
			p.expect(syntax.Ident)
			lhs = p.close(m, syntax.AccessExprNode)
		default:
			return lhs
		}
	}
}

func (p *parser) parsePrimaryExpr() CompletedMarker {
	switch {
	case p.at(syntax.Integer):
		m := p.open()
		p.bump()
		return p.close(m, syntax.LiteralIntegerNode)
	case p.at(syntax.Float):
		m := p.open()
		p.bump()
		return p.close(m, syntax.LiteralFloatNode)
	case p.atAny(syntax.TrueKeyword, syntax.FalseKeyword):
		m := p.open()
		p.bump()
		return p.close(m, syntax.LiteralBooleanNode)
	case p.at(syntax.NoneKeyword):
		m := p.open()
		p.bump()
		return p.close(m, syntax.LiteralNoneNode)
	case p.at(syntax.NullKeyword):
		m := p.open()
		p.bump()
		return p.close(m, syntax.LiteralNullNode)
	case p.atAny(syntax.DoubleQuote, syntax.SingleQuote):
		return p.parseStringLiteral()
	case p.at(syntax.TaskKeyword):
		// the implicit `task` variable (WDL >= 1.2); legality of its use
		// outside command/output sections and version-gating is an
		// evalgraph concern, not a grammar one.
		m := p.open()
		p.bumpAs(syntax.TaskVariableKeyword)
		return p.close(m, syntax.NameRefNode)
	case p.at(syntax.Ident):
		return p.parseIdentPrimary()
	case p.at(syntax.OpenParen):
		return p.parseParenOrPair()
	case p.at(syntax.OpenBracket):
		return p.parseArrayLiteral()
	case p.at(syntax.OpenBrace):
		return p.parseMapLiteral()
	case p.at(syntax.ObjectKeyword):
		return p.parseObjectLiteral()
	default:
		p.recoverUnexpected("expression")
		m := p.open()
		return p.close(m, syntax.Abandoned)
	}
}

func (p *parser) parseIdentPrimary() CompletedMarker {
	m := p.open()
	p.bump() // ident
	switch {
	case p.at(syntax.OpenParen):
		p.bump()
		for !p.atEnd() && !p.at(syntax.CloseParen) {
			p.parseExpr()
			if p.at(syntax.Comma) {
				p.bump()
			}
		}
		p.expect(syntax.CloseParen)
		return p.close(m, syntax.CallExprNode)
	case p.at(syntax.OpenBrace):
		p.bump()
		for !p.atEnd() && !p.at(syntax.CloseBrace) {
			p.parseLiteralStructItem()
			if p.at(syntax.Comma) {
				p.bump()
			}
		}
		p.expect(syntax.CloseBrace)
		return p.close(m, syntax.LiteralStructNode)
	default:
		return p.close(m, syntax.NameRefNode)
	}
}

func (p *parser) parseLiteralStructItem() {
	m := p.open()
	p.expect(syntax.Ident)
	p.expect(syntax.Colon)
	p.parseExpr()
	p.close(m, syntax.LiteralStructItemNode)
}

func (p *parser) parseParenOrPair() CompletedMarker {
	m := p.open()
	p.bump() // (
	p.parseExpr()
	if p.at(syntax.Comma) {
		p.bump()
		p.parseExpr()
		p.expect(syntax.CloseParen)
		return p.close(m, syntax.LiteralPairNode)
	}
	p.expect(syntax.CloseParen)
	return p.close(m, syntax.ParenthesizedExprNode)
}

func (p *parser) parseArrayLiteral() CompletedMarker {
	m := p.open()
	p.bump() // [
	for !p.atEnd() && !p.at(syntax.CloseBracket) {
		p.parseExpr()
		if p.at(syntax.Comma) {
			p.bump()
		}
	}
	p.expect(syntax.CloseBracket)
	return p.close(m, syntax.LiteralArrayNode)
}

func (p *parser) parseMapLiteral() CompletedMarker {
	m := p.open()
	p.bump() // {
	for !p.atEnd() && !p.at(syntax.CloseBrace) {
		im := p.open()
		p.parseExpr()
		p.expect(syntax.Colon)
		p.parseExpr()
		p.close(im, syntax.LiteralMapItemNode)
		if p.at(syntax.Comma) {
			p.bump()
		}
	}
	p.expect(syntax.CloseBrace)
	return p.close(m, syntax.LiteralMapNode)
}

func (p *parser) parseObjectLiteral() CompletedMarker {
	m := p.open()
	p.bump() // object
	p.expect(syntax.OpenBrace)
	for !p.atEnd() && !p.at(syntax.CloseBrace) {
		p.parseLiteralObjectItem()
		if p.at(syntax.Comma) {
			p.bump()
		}
	}
	p.expect(syntax.CloseBrace)
	return p.close(m, syntax.LiteralObjectNode)
}

func (p *parser) parseLiteralObjectItem() {
	m := p.open()
	p.expect(syntax.Ident)
	p.expect(syntax.Colon)
	p.parseExpr()
	p.close(m, syntax.LiteralObjectItemNode)
}

// --- strings and placeholders ---

func (p *parser) parseStringLiteral() CompletedMarker {
	m := p.open()
	if p.atAny(syntax.DoubleQuote, syntax.SingleQuote) {
		quote, _ := p.peek()
		p.bump()
		for !p.atEnd() && !p.at(quote) {
			switch {
			case p.atAny(syntax.PlaceholderOpenTilde, syntax.PlaceholderOpenDollar):
				p.parsePlaceholder()
			case p.at(syntax.LiteralStringText):
				p.bump()
			default:
				p.recoverUnexpected("string literal")
			}
		}
		p.expect(quote)
	} else {
		p.errHere("expected a string literal")
	}
	return p.close(m, syntax.LiteralStringNode)
}

func (p *parser) parsePlaceholder() {
	m := p.open()
	p.bump() // ~{ or ${
	for p.atPlaceholderOptionStart() {
		p.parsePlaceholderOption()
	}
	p.parseExpr()
	p.expect(syntax.CloseBrace)
	p.close(m, syntax.PlaceholderNode)
}

// atPlaceholderOptionStart recognizes the contextual `sep=`/`default=`
// identifiers and the `true=`/`false=` keyword pair that precede a
// placeholder's expression (sec 4.2, Open Question (i) resolution lives in
// validate as rule placeholder-option-conflict, not here).
func (p *parser) atPlaceholderOptionStart() bool {
	if p.atAny(syntax.TrueKeyword, syntax.FalseKeyword) {
		next, ok := p.peekAt(1)
		return ok && next.Kind == syntax.Assignment
	}
	if t, ok := p.peekAt(0); ok && t.Kind == syntax.Ident {
		text := t.Text(p.source)
		if text == "sep" || text == "default" {
			next, ok := p.peekAt(1)
			return ok && next.Kind == syntax.Assignment
		}
	}
	return false
}

func (p *parser) parsePlaceholderOption() {
	if p.atAny(syntax.TrueKeyword, syntax.FalseKeyword) {
		m := p.open()
		p.bump()
		p.expect(syntax.Assignment)
		p.parseExpr()
		if p.atPlaceholderOptionStart() && p.atAny(syntax.TrueKeyword, syntax.FalseKeyword) {
			p.bump()
			p.expect(syntax.Assignment)
			p.parseExpr()
		}
		p.close(m, syntax.PlaceholderTrueFalseOptionNode)
		return
	}
	m := p.open()
	name, _ := p.peekAt(0)
	p.bump() // sep or default
	p.expect(syntax.Assignment)
	p.parseExpr()
	if name.Text(p.source) == "sep" {
		p.close(m, syntax.PlaceholderSepOptionNode)
	} else {
		p.close(m, syntax.PlaceholderDefaultOptionNode)
	}
}
