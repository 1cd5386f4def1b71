// Package syntax implements the lossless concrete syntax tree (CST): a
// closed SyntaxKind enumeration, an immutable structurally-shared green
// tree, and red-tree cursors that add absolute offsets and parent
// back-pointers for navigation. This mirrors the green/red split used by
// rowan (github.com/rust-analyzer/rowan), which the original WDL toolkit
// this repository reimplements (stjude-rust-labs/wdl, see
// wdl-grammar/src/tree.rs) is itself built on.
package syntax

// Kind identifies the syntactic category of a node or token in the CST.
// Tokens are terminal and own a span of source text directly; nodes have at
// least one child (node or token) and represent a syntactic construct.
type Kind uint16

const (
	// Unknown marks a byte sequence the lexer could not classify.
	Unknown Kind = iota
	// Unparsed marks source wrapped wholesale because its WDL version is
	// unsupported (sec 4.2).
	Unparsed

	// --- trivia ---
	Whitespace
	Comment

	// --- literal / identifier tokens ---
	VersionToken
	Float
	Integer
	Ident
	SingleQuote
	DoubleQuote
	OpenHeredoc
	CloseHeredoc

	// --- type keyword tokens ---
	ArrayTypeKeyword
	BooleanTypeKeyword
	FileTypeKeyword
	FloatTypeKeyword
	IntTypeKeyword
	MapTypeKeyword
	ObjectTypeKeyword
	PairTypeKeyword
	StringTypeKeyword
	DirectoryTypeKeyword

	// --- keyword tokens ---
	AfterKeyword
	AliasKeyword
	AsKeyword
	CallKeyword
	CommandKeyword
	ElseKeyword
	FalseKeyword
	IfKeyword
	InKeyword
	ImportKeyword
	InputKeyword
	MetaKeyword
	NoneKeyword
	NullKeyword
	ObjectKeyword
	OutputKeyword
	ParameterMetaKeyword
	RuntimeKeyword
	ScatterKeyword
	StructKeyword
	TaskKeyword
	ThenKeyword
	TrueKeyword
	VersionKeyword
	WorkflowKeyword
	HintsKeyword
	RequirementsKeyword
	TaskVariableKeyword // the implicit `task` variable inside a command/output expression

	// --- punctuation tokens ---
	OpenBrace
	CloseBrace
	OpenBracket
	CloseBracket
	Assignment
	Colon
	Comma
	OpenParen
	CloseParen
	QuestionMark
	Exclamation
	Plus
	Minus
	LogicalOr
	LogicalAnd
	Asterisk
	Slash
	Percent
	DoubleStar // `**`, exponentiation
	Equal
	NotEqual
	LessEqual
	GreaterEqual
	Less
	Greater
	Dot

	// --- string/command inner tokens ---
	LiteralStringText
	LiteralCommandText
	PlaceholderOpenTilde // `~{`
	PlaceholderOpenDollar // `${`

	// --- internal sentinels ---
	Abandoned

	// --- node kinds ---
	RootNode
	VersionStatementNode
	ImportStatementNode
	ImportAliasNode
	StructDefinitionNode
	TaskDefinitionNode
	WorkflowDefinitionNode
	UnboundDeclNode
	BoundDeclNode
	InputSectionNode
	OutputSectionNode
	CommandSectionNode
	RuntimeSectionNode
	RuntimeItemNode
	RequirementsSectionNode
	RequirementsItemNode
	TaskHintsSectionNode
	TaskHintsItemNode
	PrimitiveTypeNode
	MapTypeNode
	ArrayTypeNode
	PairTypeNode
	ObjectTypeNode
	TypeRefNode
	MetadataSectionNode
	ParameterMetadataSectionNode
	MetadataObjectItemNode
	MetadataObjectNode
	MetadataArrayNode
	LiteralIntegerNode
	LiteralFloatNode
	LiteralBooleanNode
	LiteralNoneNode
	LiteralNullNode
	LiteralStringNode
	LiteralPairNode
	LiteralArrayNode
	LiteralMapNode
	LiteralMapItemNode
	LiteralObjectNode
	LiteralObjectItemNode
	LiteralStructNode
	LiteralStructItemNode
	ParenthesizedExprNode
	NameRefNode
	IfExprNode
	LogicalNotExprNode
	NegationExprNode
	LogicalOrExprNode
	LogicalAndExprNode
	EqualityExprNode
	InequalityExprNode
	LessExprNode
	LessEqualExprNode
	GreaterExprNode
	GreaterEqualExprNode
	AdditionExprNode
	SubtractionExprNode
	MultiplicationExprNode
	DivisionExprNode
	ModuloExprNode
	ExponentiationExprNode
	CallExprNode
	IndexExprNode
	AccessExprNode
	PlaceholderNode
	PlaceholderSepOptionNode
	PlaceholderDefaultOptionNode
	PlaceholderTrueFalseOptionNode
	ConditionalStatementNode
	ScatterStatementNode
	CallStatementNode
	CallTargetNode
	CallAliasNode
	CallAfterNode
	CallInputItemNode

	// MAX marks the top of the enumeration; never produced by the lexer or
	// parser. Kept so table-driven code can size arrays by Kind.
	MAX
)

var kindNames = map[Kind]string{
	Unknown:                         "Unknown",
	Unparsed:                        "Unparsed",
	Whitespace:                      "Whitespace",
	Comment:                         "Comment",
	VersionToken:                    "VersionToken",
	Float:                           "Float",
	Integer:                         "Integer",
	Ident:                           "Ident",
	SingleQuote:                     "SingleQuote",
	DoubleQuote:                     "DoubleQuote",
	OpenHeredoc:                     "OpenHeredoc",
	CloseHeredoc:                    "CloseHeredoc",
	ArrayTypeKeyword:                "ArrayTypeKeyword",
	BooleanTypeKeyword:              "BooleanTypeKeyword",
	FileTypeKeyword:                 "FileTypeKeyword",
	FloatTypeKeyword:                "FloatTypeKeyword",
	IntTypeKeyword:                  "IntTypeKeyword",
	MapTypeKeyword:                  "MapTypeKeyword",
	ObjectTypeKeyword:               "ObjectTypeKeyword",
	PairTypeKeyword:                 "PairTypeKeyword",
	StringTypeKeyword:               "StringTypeKeyword",
	DirectoryTypeKeyword:            "DirectoryTypeKeyword",
	AfterKeyword:                    "AfterKeyword",
	AliasKeyword:                    "AliasKeyword",
	AsKeyword:                       "AsKeyword",
	CallKeyword:                     "CallKeyword",
	CommandKeyword:                  "CommandKeyword",
	ElseKeyword:                     "ElseKeyword",
	FalseKeyword:                    "FalseKeyword",
	IfKeyword:                       "IfKeyword",
	InKeyword:                       "InKeyword",
	ImportKeyword:                   "ImportKeyword",
	InputKeyword:                    "InputKeyword",
	MetaKeyword:                     "MetaKeyword",
	NoneKeyword:                     "NoneKeyword",
	NullKeyword:                     "NullKeyword",
	ObjectKeyword:                   "ObjectKeyword",
	OutputKeyword:                   "OutputKeyword",
	ParameterMetaKeyword:            "ParameterMetaKeyword",
	RuntimeKeyword:                  "RuntimeKeyword",
	ScatterKeyword:                  "ScatterKeyword",
	StructKeyword:                   "StructKeyword",
	TaskKeyword:                     "TaskKeyword",
	ThenKeyword:                     "ThenKeyword",
	TrueKeyword:                     "TrueKeyword",
	VersionKeyword:                  "VersionKeyword",
	WorkflowKeyword:                 "WorkflowKeyword",
	HintsKeyword:                    "HintsKeyword",
	RequirementsKeyword:             "RequirementsKeyword",
	TaskVariableKeyword:             "TaskVariableKeyword",
	OpenBrace:                       "OpenBrace",
	CloseBrace:                      "CloseBrace",
	OpenBracket:                     "OpenBracket",
	CloseBracket:                    "CloseBracket",
	Assignment:                      "Assignment",
	Colon:                           "Colon",
	Comma:                           "Comma",
	OpenParen:                       "OpenParen",
	CloseParen:                      "CloseParen",
	QuestionMark:                    "QuestionMark",
	Exclamation:                     "Exclamation",
	Plus:                            "Plus",
	Minus:                           "Minus",
	LogicalOr:                       "LogicalOr",
	LogicalAnd:                      "LogicalAnd",
	Asterisk:                        "Asterisk",
	Slash:                           "Slash",
	Percent:                         "Percent",
	DoubleStar:                      "DoubleStar",
	Equal:                           "Equal",
	NotEqual:                        "NotEqual",
	LessEqual:                       "LessEqual",
	GreaterEqual:                    "GreaterEqual",
	Less:                            "Less",
	Greater:                         "Greater",
	Dot:                             "Dot",
	LiteralStringText:               "LiteralStringText",
	LiteralCommandText:              "LiteralCommandText",
	PlaceholderOpenTilde:            "PlaceholderOpenTilde",
	PlaceholderOpenDollar:           "PlaceholderOpenDollar",
	Abandoned:                       "Abandoned",
	RootNode:                        "RootNode",
	VersionStatementNode:            "VersionStatementNode",
	ImportStatementNode:             "ImportStatementNode",
	ImportAliasNode:                 "ImportAliasNode",
	StructDefinitionNode:            "StructDefinitionNode",
	TaskDefinitionNode:              "TaskDefinitionNode",
	WorkflowDefinitionNode:          "WorkflowDefinitionNode",
	UnboundDeclNode:                 "UnboundDeclNode",
	BoundDeclNode:                   "BoundDeclNode",
	InputSectionNode:                "InputSectionNode",
	OutputSectionNode:               "OutputSectionNode",
	CommandSectionNode:              "CommandSectionNode",
	RuntimeSectionNode:              "RuntimeSectionNode",
	RuntimeItemNode:                 "RuntimeItemNode",
	RequirementsSectionNode:         "RequirementsSectionNode",
	RequirementsItemNode:            "RequirementsItemNode",
	TaskHintsSectionNode:            "TaskHintsSectionNode",
	TaskHintsItemNode:               "TaskHintsItemNode",
	PrimitiveTypeNode:               "PrimitiveTypeNode",
	MapTypeNode:                     "MapTypeNode",
	ArrayTypeNode:                   "ArrayTypeNode",
	PairTypeNode:                    "PairTypeNode",
	ObjectTypeNode:                  "ObjectTypeNode",
	TypeRefNode:                     "TypeRefNode",
	MetadataSectionNode:             "MetadataSectionNode",
	ParameterMetadataSectionNode:    "ParameterMetadataSectionNode",
	MetadataObjectItemNode:          "MetadataObjectItemNode",
	MetadataObjectNode:              "MetadataObjectNode",
	MetadataArrayNode:               "MetadataArrayNode",
	LiteralIntegerNode:              "LiteralIntegerNode",
	LiteralFloatNode:                "LiteralFloatNode",
	LiteralBooleanNode:              "LiteralBooleanNode",
	LiteralNoneNode:                 "LiteralNoneNode",
	LiteralNullNode:                 "LiteralNullNode",
	LiteralStringNode:               "LiteralStringNode",
	LiteralPairNode:                 "LiteralPairNode",
	LiteralArrayNode:                "LiteralArrayNode",
	LiteralMapNode:                  "LiteralMapNode",
	LiteralMapItemNode:              "LiteralMapItemNode",
	LiteralObjectNode:               "LiteralObjectNode",
	LiteralObjectItemNode:           "LiteralObjectItemNode",
	LiteralStructNode:               "LiteralStructNode",
	LiteralStructItemNode:           "LiteralStructItemNode",
	ParenthesizedExprNode:           "ParenthesizedExprNode",
	NameRefNode:                     "NameRefNode",
	IfExprNode:                      "IfExprNode",
	LogicalNotExprNode:              "LogicalNotExprNode",
	NegationExprNode:                "NegationExprNode",
	LogicalOrExprNode:               "LogicalOrExprNode",
	LogicalAndExprNode:              "LogicalAndExprNode",
	EqualityExprNode:                "EqualityExprNode",
	InequalityExprNode:              "InequalityExprNode",
	LessExprNode:                    "LessExprNode",
	LessEqualExprNode:               "LessEqualExprNode",
	GreaterExprNode:                 "GreaterExprNode",
	GreaterEqualExprNode:            "GreaterEqualExprNode",
	AdditionExprNode:                "AdditionExprNode",
	SubtractionExprNode:             "SubtractionExprNode",
	MultiplicationExprNode:          "MultiplicationExprNode",
	DivisionExprNode:                "DivisionExprNode",
	ModuloExprNode:                  "ModuloExprNode",
	ExponentiationExprNode:          "ExponentiationExprNode",
	CallExprNode:                    "CallExprNode",
	IndexExprNode:                   "IndexExprNode",
	AccessExprNode:                  "AccessExprNode",
	PlaceholderNode:                 "PlaceholderNode",
	PlaceholderSepOptionNode:        "PlaceholderSepOptionNode",
	PlaceholderDefaultOptionNode:    "PlaceholderDefaultOptionNode",
	PlaceholderTrueFalseOptionNode:  "PlaceholderTrueFalseOptionNode",
	ConditionalStatementNode:        "ConditionalStatementNode",
	ScatterStatementNode:            "ScatterStatementNode",
	CallStatementNode:               "CallStatementNode",
	CallTargetNode:                  "CallTargetNode",
	CallAliasNode:                   "CallAliasNode",
	CallAfterNode:                   "CallAfterNode",
	CallInputItemNode:               "CallInputItemNode",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(?)"
}

// IsTrivia returns whether the kind is skipped by the parser's lookahead but
// still retained in the CST (sec 4.1).
func (k Kind) IsTrivia() bool {
	return k == Whitespace || k == Comment
}

// IsNode returns whether the kind denotes a node (as opposed to a terminal
// token).
func (k Kind) IsNode() bool {
	return k >= RootNode && k < MAX
}
