package parser

import "github.com/dekarrin/wdl/internal/wdl/syntax"

// --- document level ---

func (p *parser) parseDocument() {
	if p.at(syntax.VersionKeyword) {
		p.parseVersionStatement()
	} else {
		p.errHere("document must begin with a version statement")
	}

	if p.version == VersionUnknown {
		p.wrapRemainderUnparsed()
		return
	}

	for !p.atEnd() {
		p.parseDocumentItem()
	}
}

// wrapRemainderUnparsed implements the version-gate short circuit (sec 4.2):
// once a document declares a version this toolkit does not support, the rest
// of the source is kept verbatim as a single Unparsed leaf rather than fed
// through grammar that may not apply to it.
func (p *parser) wrapRemainderUnparsed() {
	p.skipTrivia()
	if p.atEnd() {
		return
	}
	start := p.toks[p.pos].Span.Start
	end := p.toks[len(p.toks)-1].Span.End()
	p.ev = append(p.ev, Event{Kind: TokenEvent, Token: tokenAt(syntax.Unparsed, start, end)})
	p.pos = len(p.toks)
}

func (p *parser) parseVersionStatement() {
	m := p.open()
	p.bump() // 'version'
	if t, ok := p.peekAt(0); ok && t.Kind == syntax.VersionToken {
		if v, ok2 := versionFromText(t.Text(p.source)); ok2 {
			p.version = v
		} else {
			p.errHere("unsupported WDL version %q", t.Text(p.source))
			p.version = VersionUnknown
		}
		p.bump()
	} else {
		p.errHere("expected a version number")
	}
	p.close(m, syntax.VersionStatementNode)
}

func (p *parser) parseDocumentItem() {
	switch {
	case p.at(syntax.ImportKeyword):
		p.parseImportStatement()
	case p.at(syntax.StructKeyword):
		p.parseStructDefinition()
	case p.at(syntax.TaskKeyword):
		p.parseTaskDefinition()
	case p.at(syntax.WorkflowKeyword):
		p.parseWorkflowDefinition()
	default:
		p.recoverUnexpected("document")
	}
}

func (p *parser) parseImportStatement() {
	m := p.open()
	p.bump() // import
	p.parseStringLiteral()
	if p.at(syntax.AsKeyword) {
		p.bump()
		p.expect(syntax.Ident)
	}
	for p.at(syntax.AliasKeyword) {
		am := p.open()
		p.bump()
		p.expect(syntax.Ident)
		p.expect(syntax.AsKeyword)
		p.expect(syntax.Ident)
		p.close(am, syntax.ImportAliasNode)
	}
	p.close(m, syntax.ImportStatementNode)
}

func (p *parser) parseStructDefinition() {
	m := p.open()
	p.bump() // struct
	p.expect(syntax.Ident)
	p.expect(syntax.OpenBrace)
	for !p.atEnd() && !p.at(syntax.CloseBrace) {
		p.parseUnboundDecl()
	}
	p.expect(syntax.CloseBrace)
	p.close(m, syntax.StructDefinitionNode)
}

// --- declarations and types ---

func (p *parser) parseUnboundDecl() {
	m := p.open()
	p.parseType()
	p.expect(syntax.Ident)
	p.close(m, syntax.UnboundDeclNode)
}

func (p *parser) parseDecl() {
	m := p.open()
	p.parseType()
	p.expect(syntax.Ident)
	if p.at(syntax.Assignment) {
		p.bump()
		p.parseExpr()
		p.close(m, syntax.BoundDeclNode)
		return
	}
	p.close(m, syntax.UnboundDeclNode)
}

func (p *parser) atDeclStart() bool {
	if p.atAny(primitiveTypeKeywords()...) {
		return true
	}
	return p.atAny(syntax.ArrayTypeKeyword, syntax.MapTypeKeyword, syntax.PairTypeKeyword, syntax.ObjectTypeKeyword, syntax.Ident)
}

func primitiveTypeKeywords() []syntax.Kind {
	return []syntax.Kind{
		syntax.BooleanTypeKeyword, syntax.IntTypeKeyword, syntax.FloatTypeKeyword,
		syntax.StringTypeKeyword, syntax.FileTypeKeyword, syntax.DirectoryTypeKeyword,
	}
}

func (p *parser) maybeOptional() {
	if p.at(syntax.QuestionMark) {
		p.bump()
	}
}

func (p *parser) parseType() {
	switch {
	case p.atAny(primitiveTypeKeywords()...):
		m := p.open()
		p.bump()
		p.maybeOptional()
		p.close(m, syntax.PrimitiveTypeNode)
	case p.at(syntax.ArrayTypeKeyword):
		m := p.open()
		p.bump()
		p.expect(syntax.OpenBracket)
		p.parseType()
		p.expect(syntax.CloseBracket)
		if p.at(syntax.Plus) {
			p.bump()
		}
		p.maybeOptional()
		p.close(m, syntax.ArrayTypeNode)
	case p.at(syntax.MapTypeKeyword):
		m := p.open()
		p.bump()
		p.expect(syntax.OpenBracket)
		p.parseType()
		p.expect(syntax.Comma)
		p.parseType()
		p.expect(syntax.CloseBracket)
		p.maybeOptional()
		p.close(m, syntax.MapTypeNode)
	case p.at(syntax.PairTypeKeyword):
		m := p.open()
		p.bump()
		p.expect(syntax.OpenBracket)
		p.parseType()
		p.expect(syntax.Comma)
		p.parseType()
		p.expect(syntax.CloseBracket)
		p.maybeOptional()
		p.close(m, syntax.PairTypeNode)
	case p.at(syntax.ObjectTypeKeyword):
		m := p.open()
		p.bump()
		p.maybeOptional()
		p.close(m, syntax.ObjectTypeNode)
	case p.at(syntax.Ident):
		m := p.open()
		p.bump() // struct type reference
		p.maybeOptional()
		p.close(m, syntax.TypeRefNode)
	default:
		p.recoverUnexpected("type")
	}
}

// --- task / workflow containers ---

func (p *parser) parseTaskDefinition() {
	m := p.open()
	p.bump() // task
	p.expect(syntax.Ident)
	p.expect(syntax.OpenBrace)
	for !p.atEnd() && !p.at(syntax.CloseBrace) {
		p.parseTaskItem()
	}
	p.expect(syntax.CloseBrace)
	p.close(m, syntax.TaskDefinitionNode)
}

func (p *parser) parseTaskItem() {
	switch {
	case p.at(syntax.InputKeyword):
		p.parseInputSection()
	case p.at(syntax.OutputKeyword):
		p.parseOutputSection()
	case p.at(syntax.CommandKeyword):
		p.parseCommandSection()
	case p.at(syntax.RuntimeKeyword):
		p.parseRuntimeSection()
	case p.at(syntax.RequirementsKeyword):
		p.parseRequirementsSection()
	case p.at(syntax.HintsKeyword):
		p.parseTaskHintsSection()
	case p.at(syntax.MetaKeyword):
		p.parseMetadataSection()
	case p.at(syntax.ParameterMetaKeyword):
		p.parseParameterMetadataSection()
	case p.atDeclStart():
		p.parseDecl()
	default:
		p.recoverUnexpected("task body")
	}
}

func (p *parser) parseWorkflowDefinition() {
	m := p.open()
	p.bump() // workflow
	p.expect(syntax.Ident)
	p.expect(syntax.OpenBrace)
	for !p.atEnd() && !p.at(syntax.CloseBrace) {
		p.parseWorkflowItem()
	}
	p.expect(syntax.CloseBrace)
	p.close(m, syntax.WorkflowDefinitionNode)
}

func (p *parser) parseWorkflowItem() {
	switch {
	case p.at(syntax.InputKeyword):
		p.parseInputSection()
	case p.at(syntax.OutputKeyword):
		p.parseOutputSection()
	case p.at(syntax.MetaKeyword):
		p.parseMetadataSection()
	case p.at(syntax.ParameterMetaKeyword):
		p.parseParameterMetadataSection()
	case p.at(syntax.CallKeyword):
		p.parseCallStatement()
	case p.at(syntax.ScatterKeyword):
		p.parseScatterStatement()
	case p.at(syntax.IfKeyword):
		p.parseConditionalStatement()
	case p.atDeclStart():
		p.parseDecl()
	default:
		p.recoverUnexpected("workflow body")
	}
}

func (p *parser) parseInputSection() {
	m := p.open()
	p.bump() // input
	p.expect(syntax.OpenBrace)
	for !p.atEnd() && !p.at(syntax.CloseBrace) {
		p.parseDecl()
	}
	p.expect(syntax.CloseBrace)
	p.close(m, syntax.InputSectionNode)
}

func (p *parser) parseOutputSection() {
	m := p.open()
	p.bump() // output
	p.expect(syntax.OpenBrace)
	for !p.atEnd() && !p.at(syntax.CloseBrace) {
		p.parseDecl()
	}
	p.expect(syntax.CloseBrace)
	p.close(m, syntax.OutputSectionNode)
}

func (p *parser) parseCommandSection() {
	m := p.open()
	p.bump() // command
	heredoc := p.at(syntax.OpenHeredoc)
	if heredoc {
		p.bump()
	} else {
		p.expect(syntax.OpenBrace)
	}
	closer := syntax.CloseBrace
	if heredoc {
		closer = syntax.CloseHeredoc
	}
	for !p.atEnd() && !p.at(closer) {
		switch {
		case p.at(syntax.LiteralCommandText):
			p.bump()
		case p.atAny(syntax.PlaceholderOpenTilde, syntax.PlaceholderOpenDollar):
			p.parsePlaceholder()
		default:
			p.recoverUnexpected("command section")
		}
	}
	p.expect(closer)
	p.close(m, syntax.CommandSectionNode)
}

func (p *parser) parseRuntimeSection() {
	m := p.open()
	p.bump() // runtime
	p.expect(syntax.OpenBrace)
	for !p.atEnd() && !p.at(syntax.CloseBrace) {
		im := p.open()
		p.expect(syntax.Ident)
		p.expect(syntax.Colon)
		p.parseExpr()
		p.close(im, syntax.RuntimeItemNode)
	}
	p.expect(syntax.CloseBrace)
	p.close(m, syntax.RuntimeSectionNode)
}

func (p *parser) parseRequirementsSection() {
	m := p.open()
	p.bump() // requirements
	p.expect(syntax.OpenBrace)
	for !p.atEnd() && !p.at(syntax.CloseBrace) {
		im := p.open()
		p.expect(syntax.Ident)
		p.expect(syntax.Colon)
		p.parseExpr()
		p.close(im, syntax.RequirementsItemNode)
	}
	p.expect(syntax.CloseBrace)
	p.close(m, syntax.RequirementsSectionNode)
}

func (p *parser) parseTaskHintsSection() {
	m := p.open()
	p.bump() // hints
	p.expect(syntax.OpenBrace)
	for !p.atEnd() && !p.at(syntax.CloseBrace) {
		im := p.open()
		p.expect(syntax.Ident)
		p.expect(syntax.Colon)
		p.parseExpr()
		p.close(im, syntax.TaskHintsItemNode)
	}
	p.expect(syntax.CloseBrace)
	p.close(m, syntax.TaskHintsSectionNode)
}

// --- metadata ---

func (p *parser) parseMetadataSection() {
	m := p.open()
	p.bump() // meta
	p.expect(syntax.OpenBrace)
	for !p.atEnd() && !p.at(syntax.CloseBrace) {
		p.parseMetadataObjectItem()
	}
	p.expect(syntax.CloseBrace)
	p.close(m, syntax.MetadataSectionNode)
}

func (p *parser) parseParameterMetadataSection() {
	m := p.open()
	p.bump() // parameter_meta
	p.expect(syntax.OpenBrace)
	for !p.atEnd() && !p.at(syntax.CloseBrace) {
		p.parseMetadataObjectItem()
	}
	p.expect(syntax.CloseBrace)
	p.close(m, syntax.ParameterMetadataSectionNode)
}

func (p *parser) parseMetadataObjectItem() {
	m := p.open()
	p.expect(syntax.Ident)
	p.expect(syntax.Colon)
	p.parseMetadataValue()
	p.close(m, syntax.MetadataObjectItemNode)
}

func (p *parser) parseMetadataValue() {
	switch {
	case p.at(syntax.OpenBrace):
		m := p.open()
		p.bump()
		for !p.atEnd() && !p.at(syntax.CloseBrace) {
			p.parseMetadataObjectItem()
			if p.at(syntax.Comma) {
				p.bump()
			}
		}
		p.expect(syntax.CloseBrace)
		p.close(m, syntax.MetadataObjectNode)
	case p.at(syntax.OpenBracket):
		m := p.open()
		p.bump()
		for !p.atEnd() && !p.at(syntax.CloseBracket) {
			p.parseMetadataValue()
			if p.at(syntax.Comma) {
				p.bump()
			}
		}
		p.expect(syntax.CloseBracket)
		p.close(m, syntax.MetadataArrayNode)
	default:
		p.parseMetadataPrimitive()
	}
}

func (p *parser) parseMetadataPrimitive() {
	switch {
	case p.at(syntax.Integer):
		m := p.open()
		p.bump()
		p.close(m, syntax.LiteralIntegerNode)
	case p.at(syntax.Float):
		m := p.open()
		p.bump()
		p.close(m, syntax.LiteralFloatNode)
	case p.atAny(syntax.TrueKeyword, syntax.FalseKeyword):
		m := p.open()
		p.bump()
		p.close(m, syntax.LiteralBooleanNode)
	case p.at(syntax.NullKeyword):
		m := p.open()
		p.bump()
		p.close(m, syntax.LiteralNullNode)
	case p.atAny(syntax.DoubleQuote, syntax.SingleQuote):
		p.parseStringLiteral()
	default:
		p.recoverUnexpected("metadata value")
	}
}

// --- workflow statements ---

func (p *parser) parseCallStatement() {
	m := p.open()
	p.bump() // call
	tm := p.open()
	p.expect(syntax.Ident)
	for p.at(syntax.Dot) {
		p.bump()
		p.expect(syntax.Ident)
	}
	p.close(tm, syntax.CallTargetNode)
	if p.at(syntax.AsKeyword) {
		am := p.open()
		p.bump()
		p.expect(syntax.Ident)
		p.close(am, syntax.CallAliasNode)
	}
	for p.at(syntax.AfterKeyword) {
		afm := p.open()
		p.bump()
		p.expect(syntax.Ident)
		p.close(afm, syntax.CallAfterNode)
	}
	if p.at(syntax.OpenBrace) {
		p.bump()
		if p.at(syntax.InputKeyword) {
			p.bump()
			p.expect(syntax.Colon)
		}
		for !p.atEnd() && !p.at(syntax.CloseBrace) {
			p.parseCallInputItem()
			if p.at(syntax.Comma) {
				p.bump()
			}
		}
		p.expect(syntax.CloseBrace)
	}
	p.close(m, syntax.CallStatementNode)
}

func (p *parser) parseCallInputItem() {
	m := p.open()
	p.expect(syntax.Ident)
	if p.at(syntax.Assignment) {
		p.bump()
		p.parseExpr()
	}
	p.close(m, syntax.CallInputItemNode)
}

func (p *parser) parseScatterStatement() {
	m := p.open()
	p.bump() // scatter
	p.expect(syntax.OpenParen)
	p.expect(syntax.Ident)
	p.expect(syntax.InKeyword)
	p.parseExpr()
	p.expect(syntax.CloseParen)
	p.expect(syntax.OpenBrace)
	for !p.atEnd() && !p.at(syntax.CloseBrace) {
		p.parseWorkflowItem()
	}
	p.expect(syntax.CloseBrace)
	p.close(m, syntax.ScatterStatementNode)
}

func (p *parser) parseConditionalStatement() {
	m := p.open()
	p.bump() // if
	p.expect(syntax.OpenParen)
	p.parseExpr()
	p.expect(syntax.CloseParen)
	p.expect(syntax.OpenBrace)
	for !p.atEnd() && !p.at(syntax.CloseBrace) {
		p.parseWorkflowItem()
	}
	p.expect(syntax.CloseBrace)
	p.close(m, syntax.ConditionalStatementNode)
}
