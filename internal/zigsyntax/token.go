// Package zigsyntax is the stand-in for the Zig tokenizer and parser that
// spec.md §1 treats as an external collaborator: "assumed available as a
// library producing a token list and an AST of tagged nodes with lhs/rhs
// data words, main-token indices, and an auxiliary extra_data integer
// pool". Everything downstream of it (internal/semanalyze, internal/walker,
// internal/rules, ...) is written against that contract and does not know
// or care that this package, rather than Zig's own std.zig.Ast, produced
// it.
//
// It tokenizes and parses a deliberately small subset of Zig: top-level
// const/var/fn/test declarations; inside function bodies, blocks,
// if/while/for/comptime statements, assignment, calls, field access,
// `+`/`-`, try/catch, return, and unreachable; and struct/enum/union/error
// set container expressions.
// That subset is exactly what is needed to exercise the semantic model,
// walker and rule framework end to end; a production engine would replace
// this package with a real Zig parser without touching anything else.
package zigsyntax

import "fmt"

// TokenTag classifies one lexical token.
type TokenTag uint8

const (
	TokenInvalid TokenTag = iota
	TokenEOF

	TokenIdentifier
	TokenNumberLiteral
	TokenStringLiteral
	TokenCharLiteral

	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenColon
	TokenComma
	TokenPeriod
	TokenEqual
	TokenEqualEqual
	TokenBangEqual
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenBang
	TokenQuestion
	TokenPipe
	TokenAmpersand

	TokenKeywordPub
	TokenKeywordConst
	TokenKeywordVar
	TokenKeywordFn
	TokenKeywordReturn
	TokenKeywordIf
	TokenKeywordElse
	TokenKeywordWhile
	TokenKeywordFor
	TokenKeywordTry
	TokenKeywordCatch
	TokenKeywordUnreachable
	TokenKeywordTest
	TokenKeywordStruct
	TokenKeywordEnum
	TokenKeywordUnion
	TokenKeywordError
	TokenKeywordDefer
	TokenKeywordErrdefer
	TokenKeywordBreak
	TokenKeywordContinue
	TokenKeywordComptime
	TokenKeywordSwitch
	TokenKeywordExtern
	TokenKeywordExport
)

var keywords = map[string]TokenTag{
	"pub":         TokenKeywordPub,
	"const":       TokenKeywordConst,
	"var":         TokenKeywordVar,
	"fn":          TokenKeywordFn,
	"return":      TokenKeywordReturn,
	"if":          TokenKeywordIf,
	"else":        TokenKeywordElse,
	"while":       TokenKeywordWhile,
	"for":         TokenKeywordFor,
	"try":         TokenKeywordTry,
	"catch":       TokenKeywordCatch,
	"unreachable": TokenKeywordUnreachable,
	"test":        TokenKeywordTest,
	"struct":      TokenKeywordStruct,
	"enum":        TokenKeywordEnum,
	"union":       TokenKeywordUnion,
	"error":       TokenKeywordError,
	"defer":       TokenKeywordDefer,
	"errdefer":    TokenKeywordErrdefer,
	"break":       TokenKeywordBreak,
	"continue":    TokenKeywordContinue,
	"comptime":    TokenKeywordComptime,
	"switch":      TokenKeywordSwitch,
	"extern":      TokenKeywordExtern,
	"export":      TokenKeywordExport,
}

// Token is one lexical token: its tag plus its byte span in the source.
// The token list is retained independently of the AST (spec.md §3 "Parse
// artifact"), because re-tokenizing on every slice lookup would be costly.
type Token struct {
	Tag   TokenTag
	Start int
	End   int
}

func (t Token) String() string {
	return fmt.Sprintf("Token{%d,[%d,%d)}", t.Tag, t.Start, t.End)
}

// CommentKind distinguishes a normal "//" comment from a doc "///" comment.
type CommentKind uint8

const (
	CommentNormal CommentKind = iota
	CommentDoc
)

// Comment is one source comment, kept in its own list (spec.md §3).
type Comment struct {
	Start int
	End   int
	Kind  CommentKind
}
