package zigsyntax

import (
	"fmt"

	"github.com/ziglint/ziglint/internal/ids"
)

// ParseError is a fatal structural parse error, with a byte offset into
// the source for the caller to build a labeled diagnostic from (spec.md
// §4.1 "Parse errors produce diagnostics ... with source span").
type ParseError struct {
	Message string
	Pos     int
}

func (e ParseError) Error() string { return e.Message }

type parser struct {
	ast *AST
	src []byte
	pos ids.TokenID
	err *ParseError
}

// Parse tokenizes and parses source, returning the parse artifact. A
// non-nil error means the AST has structural errors and the caller (the
// semantic builder, spec.md §4.1) must treat this as ParseFailed.
func Parse(src []byte) (*AST, *ParseError) {
	toks, comments := lex(src)
	ast := &AST{Tokens: toks, Comments: comments}
	ast.AddNode(Node{}) // index 0 == ids.NullNode, never a real node
	ast.AddNode(Node{Tag: TagRoot})

	if len(src) == 0 {
		return ast, nil
	}

	p := &parser{ast: ast, src: src}
	for !p.check(TokenEOF) && p.err == nil {
		decl := p.parseTopLevelDecl()
		if p.err != nil {
			break
		}
		ast.RootDecls = append(ast.RootDecls, decl)
	}
	return ast, p.err
}

func (p *parser) tok() Token { return p.ast.Tokens[p.pos] }
func (p *parser) check(tag TokenTag) bool {
	return p.err == nil && p.tok().Tag == tag
}

func (p *parser) advance() ids.TokenID {
	id := ids.TokenID(p.pos)
	if p.ast.Tokens[p.pos].Tag != TokenEOF {
		p.pos++
	}
	return id
}

func (p *parser) expect(tag TokenTag) ids.TokenID {
	if p.err != nil {
		return ids.TokenID(p.pos)
	}
	if !p.check(tag) {
		p.fail(fmt.Sprintf("unexpected token %d at offset %d, expected %d", p.tok().Tag, p.tok().Start, tag))
		return ids.TokenID(p.pos)
	}
	return p.advance()
}

func (p *parser) fail(msg string) {
	if p.err == nil {
		p.err = &ParseError{Message: msg, Pos: p.tok().Start}
	}
}

func toExtraWords(n []ids.NodeID) []uint32 {
	out := make([]uint32, len(n))
	for i, id := range n {
		out[i] = uint32(id)
	}
	return out
}

func (p *parser) parseTopLevelDecl() ids.NodeID {
	if p.err != nil {
		return ids.NullNode
	}
	switch p.tok().Tag {
	case TokenKeywordPub:
		p.advance()
		return p.parseTopLevelDecl()
	case TokenKeywordConst, TokenKeywordVar:
		decl := p.parseVarDecl()
		p.expect(TokenSemicolon)
		return decl
	case TokenKeywordFn:
		return p.parseFnDecl()
	case TokenKeywordTest:
		return p.parseTestDecl()
	default:
		p.fail(fmt.Sprintf("unexpected top-level token %d at offset %d", p.tok().Tag, p.tok().Start))
		return ids.NullNode
	}
}

func (p *parser) parseVarDecl() ids.NodeID {
	mainTok := p.advance() // const/var
	p.expect(TokenIdentifier)
	typeNode := ids.NullNode
	if p.check(TokenColon) {
		p.advance()
		typeNode = p.parseTypeExpr()
	}
	p.expect(TokenEqual)
	initNode := p.parseExpr()
	if p.err != nil {
		return ids.NullNode
	}
	return p.ast.AddNode(Node{Tag: TagSimpleVarDecl, MainToken: mainTok, LHS: uint32(typeNode), RHS: uint32(initNode)})
}

func (p *parser) parseTypeExpr() ids.NodeID {
	if p.err != nil {
		return ids.NullNode
	}
	if p.check(TokenBang) {
		bangTok := p.advance()
		inner := p.parseTypeExpr()
		return p.ast.AddNode(Node{Tag: TagErrorUnion, MainToken: bangTok, LHS: uint32(ids.NullNode), RHS: uint32(inner)})
	}
	tok := p.expect(TokenIdentifier)
	if p.err != nil {
		return ids.NullNode
	}
	node := p.ast.AddNode(Node{Tag: TagIdentifier, MainToken: tok})
	for p.check(TokenPeriod) {
		p.advance()
		fieldTok := p.expect(TokenIdentifier)
		node = p.ast.AddNode(Node{Tag: TagFieldAccess, MainToken: fieldTok, LHS: uint32(node)})
	}
	return node
}

func (p *parser) parseFnDecl() ids.NodeID {
	fnTok := p.advance() // 'fn'
	p.expect(TokenIdentifier)
	p.expect(TokenLParen)
	paramsStart := len(p.ast.Params)
	for p.err == nil && !p.check(TokenRParen) {
		nameTok := p.expect(TokenIdentifier)
		p.expect(TokenColon)
		typeNode := p.parseTypeExpr()
		if p.err != nil {
			break
		}
		p.ast.Params = append(p.ast.Params, ParamData{NameToken: ids.SomeToken(nameTok), Type: typeNode})
		if p.check(TokenComma) {
			p.advance()
			continue
		}
		break
	}
	paramsCount := len(p.ast.Params) - paramsStart
	p.expect(TokenRParen)
	returnType := p.parseTypeExpr()
	if p.err != nil {
		return ids.NullNode
	}
	extraIdx := p.ast.addExtra(uint32(paramsStart), uint32(paramsCount), uint32(returnType))
	protoNode := p.ast.AddNode(Node{Tag: TagFnProto, MainToken: fnTok, LHS: extraIdx})
	bodyNode := p.parseBlock()
	if p.err != nil {
		return ids.NullNode
	}
	return p.ast.AddNode(Node{Tag: TagFnDecl, MainToken: fnTok, LHS: uint32(protoNode), RHS: uint32(bodyNode)})
}

func (p *parser) parseTestDecl() ids.NodeID {
	testTok := p.advance()
	if p.check(TokenStringLiteral) {
		p.advance()
	}
	body := p.parseBlock()
	if p.err != nil {
		return ids.NullNode
	}
	return p.ast.AddNode(Node{Tag: TagTestDecl, MainToken: testTok, RHS: uint32(body)})
}

func (p *parser) parseBlock() ids.NodeID {
	if p.err != nil {
		return ids.NullNode
	}
	lbrace := p.expect(TokenLBrace)
	var stmts []ids.NodeID
	for p.err == nil && !p.check(TokenRBrace) {
		stmts = append(stmts, p.parseStatement())
	}
	p.expect(TokenRBrace)
	if p.err != nil {
		return ids.NullNode
	}
	if len(stmts) <= 2 {
		var lhs, rhs uint32
		if len(stmts) >= 1 {
			lhs = uint32(stmts[0])
		}
		if len(stmts) >= 2 {
			rhs = uint32(stmts[1])
		}
		return p.ast.AddNode(Node{Tag: TagBlockTwo, MainToken: lbrace, LHS: lhs, RHS: rhs})
	}
	start := p.ast.addExtra(toExtraWords(stmts)...)
	end := start + uint32(len(stmts))
	return p.ast.AddNode(Node{Tag: TagBlock, MainToken: lbrace, LHS: start, RHS: end})
}

func (p *parser) parseStatement() ids.NodeID {
	if p.err != nil {
		return ids.NullNode
	}
	switch p.tok().Tag {
	case TokenKeywordConst, TokenKeywordVar:
		decl := p.parseVarDecl()
		p.expect(TokenSemicolon)
		return decl
	case TokenKeywordReturn:
		tok := p.advance()
		operand := ids.NullNode
		if !p.check(TokenSemicolon) {
			operand = p.parseExpr()
		}
		p.expect(TokenSemicolon)
		return p.ast.AddNode(Node{Tag: TagReturn, MainToken: tok, LHS: uint32(operand)})
	case TokenKeywordIf:
		return p.parseIfStatement()
	case TokenKeywordWhile:
		return p.parseWhileStatement()
	case TokenKeywordFor:
		return p.parseForStatement()
	case TokenKeywordComptime:
		return p.parseComptimeStatement()
	default:
		expr := p.parseExpr()
		if p.check(TokenEqual) {
			eqTok := p.advance()
			rhs := p.parseExpr()
			expr = p.ast.AddNode(Node{Tag: TagAssign, MainToken: eqTok, LHS: uint32(expr), RHS: uint32(rhs)})
		}
		p.expect(TokenSemicolon)
		return expr
	}
}

func (p *parser) parseIfStatement() ids.NodeID {
	ifTok := p.advance()
	p.expect(TokenLParen)
	cond := p.parseExpr()
	p.expect(TokenRParen)
	then := p.parseBlockOrExpr()
	var node ids.NodeID
	if p.check(TokenKeywordElse) {
		p.advance()
		elseBody := p.parseBlockOrExpr()
		extra := p.ast.addExtra(uint32(then), uint32(elseBody))
		node = p.ast.AddNode(Node{Tag: TagIf, MainToken: ifTok, LHS: uint32(cond), RHS: extra})
	} else {
		node = p.ast.AddNode(Node{Tag: TagIfSimple, MainToken: ifTok, LHS: uint32(cond), RHS: uint32(then)})
	}
	if p.check(TokenSemicolon) {
		p.advance()
	}
	return node
}

// parseWhileStatement parses `while (cond) body` and its optional
// `|payload|` capture; the payload name is consumed but not bound to a
// symbol (see forOf's doc comment for the same simplification on for).
func (p *parser) parseWhileStatement() ids.NodeID {
	whileTok := p.advance()
	p.expect(TokenLParen)
	cond := p.parseExpr()
	p.expect(TokenRParen)
	if p.check(TokenPipe) {
		p.advance()
		p.expect(TokenIdentifier)
		p.expect(TokenPipe)
	}
	body := p.parseBlockOrExpr()
	if p.err != nil {
		return ids.NullNode
	}
	if p.check(TokenSemicolon) {
		p.advance()
	}
	return p.ast.AddNode(Node{Tag: TagWhileSimple, MainToken: whileTok, LHS: uint32(cond), RHS: uint32(body)})
}

// parseForStatement parses `for (input) |payload| body`.
func (p *parser) parseForStatement() ids.NodeID {
	forTok := p.advance()
	p.expect(TokenLParen)
	input := p.parseExpr()
	p.expect(TokenRParen)
	if p.check(TokenPipe) {
		p.advance()
		p.expect(TokenIdentifier)
		p.expect(TokenPipe)
	}
	body := p.parseBlockOrExpr()
	if p.err != nil {
		return ids.NullNode
	}
	if p.check(TokenSemicolon) {
		p.advance()
	}
	return p.ast.AddNode(Node{Tag: TagForSimple, MainToken: forTok, LHS: uint32(input), RHS: uint32(body)})
}

// parseComptimeStatement parses a `comptime { ... }` or `comptime expr;`
// statement.
func (p *parser) parseComptimeStatement() ids.NodeID {
	tok := p.advance()
	body := p.parseBlockOrExpr()
	if p.err != nil {
		return ids.NullNode
	}
	if p.check(TokenSemicolon) {
		p.advance()
	}
	return p.ast.AddNode(Node{Tag: TagComptime, MainToken: tok, LHS: uint32(body)})
}

// parseContainerDecl parses the body of a struct/enum/union declaration:
// a brace-delimited member list of container fields and nested
// const/var/fn declarations.
func (p *parser) parseContainerDecl(keywordTok ids.TokenID) ids.NodeID {
	p.expect(TokenLBrace)
	var members []ids.NodeID
	for p.err == nil && !p.check(TokenRBrace) {
		members = append(members, p.parseContainerMember())
	}
	p.expect(TokenRBrace)
	if p.err != nil {
		return ids.NullNode
	}
	extra := p.ast.addExtra(append([]uint32{uint32(len(members))}, toExtraWords(members)...)...)
	return p.ast.AddNode(Node{Tag: TagContainerDeclTrailing, MainToken: keywordTok, LHS: extra})
}

func (p *parser) parseContainerMember() ids.NodeID {
	if p.check(TokenKeywordPub) {
		p.advance()
	}
	switch p.tok().Tag {
	case TokenKeywordConst, TokenKeywordVar:
		decl := p.parseVarDecl()
		p.expect(TokenSemicolon)
		return decl
	case TokenKeywordFn:
		return p.parseFnDecl()
	case TokenIdentifier:
		return p.parseContainerField()
	default:
		p.fail(fmt.Sprintf("unexpected container member token %d at offset %d", p.tok().Tag, p.tok().Start))
		return ids.NullNode
	}
}

// parseContainerField parses `name: Type` or `name: Type = default`,
// trailing-comma-terminated.
func (p *parser) parseContainerField() ids.NodeID {
	nameTok := p.expect(TokenIdentifier)
	p.expect(TokenColon)
	typeNode := p.parseTypeExpr()
	if p.err != nil {
		return ids.NullNode
	}
	initNode := ids.NullNode
	if p.check(TokenEqual) {
		p.advance()
		initNode = p.parseExpr()
		if p.err != nil {
			return ids.NullNode
		}
	}
	if p.check(TokenComma) {
		p.advance()
	}
	if initNode.IsNull() {
		return p.ast.AddNode(Node{Tag: TagContainerField, MainToken: nameTok, LHS: uint32(typeNode)})
	}
	return p.ast.AddNode(Node{Tag: TagContainerFieldInit, MainToken: nameTok, LHS: uint32(typeNode), RHS: uint32(initNode)})
}

// parseErrorSetDecl parses `error { A, B, C }`, binding each member as a
// TagErrorValue leaf the way container fields bind theirs.
func (p *parser) parseErrorSetDecl(errTok ids.TokenID) ids.NodeID {
	p.expect(TokenLBrace)
	var members []ids.NodeID
	for p.err == nil && !p.check(TokenRBrace) {
		nameTok := p.expect(TokenIdentifier)
		if p.err != nil {
			break
		}
		members = append(members, p.ast.AddNode(Node{Tag: TagErrorValue, MainToken: nameTok}))
		if p.check(TokenComma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(TokenRBrace)
	if p.err != nil {
		return ids.NullNode
	}
	extra := p.ast.addExtra(append([]uint32{uint32(len(members))}, toExtraWords(members)...)...)
	return p.ast.AddNode(Node{Tag: TagErrorSetDecl, MainToken: errTok, LHS: extra})
}

func (p *parser) parseBlockOrExpr() ids.NodeID {
	if p.check(TokenLBrace) {
		return p.parseBlock()
	}
	return p.parseExpr()
}

func (p *parser) parseExpr() ids.NodeID { return p.parseCatchExpr() }

func (p *parser) parseCatchExpr() ids.NodeID {
	left := p.parseAddExpr()
	for p.check(TokenKeywordCatch) {
		catchTok := p.advance()
		if p.check(TokenPipe) {
			p.advance()
			p.expect(TokenIdentifier)
			p.expect(TokenPipe)
		}
		body := p.parseBlockOrExpr()
		if p.err != nil {
			return ids.NullNode
		}
		left = p.ast.AddNode(Node{Tag: TagCatch, MainToken: catchTok, LHS: uint32(left), RHS: uint32(body)})
	}
	return left
}

func (p *parser) parseAddExpr() ids.NodeID {
	left := p.parseUnaryExpr()
	for p.check(TokenPlus) || p.check(TokenMinus) {
		isAdd := p.check(TokenPlus)
		opTok := p.advance()
		right := p.parseUnaryExpr()
		if p.err != nil {
			return ids.NullNode
		}
		tag := TagSub
		if isAdd {
			tag = TagAdd
		}
		left = p.ast.AddNode(Node{Tag: tag, MainToken: opTok, LHS: uint32(left), RHS: uint32(right)})
	}
	return left
}

func (p *parser) parseUnaryExpr() ids.NodeID {
	if p.check(TokenKeywordTry) {
		tok := p.advance()
		operand := p.parseUnaryExpr()
		if p.err != nil {
			return ids.NullNode
		}
		return p.ast.AddNode(Node{Tag: TagTry, MainToken: tok, LHS: uint32(operand)})
	}
	return p.parsePostfixExpr()
}

func (p *parser) parsePostfixExpr() ids.NodeID {
	node := p.parsePrimaryExpr()
	for p.err == nil {
		switch {
		case p.check(TokenPeriod):
			p.advance()
			fieldTok := p.expect(TokenIdentifier)
			node = p.ast.AddNode(Node{Tag: TagFieldAccess, MainToken: fieldTok, LHS: uint32(node)})
		case p.check(TokenLParen):
			node = p.parseCallArgs(node)
		default:
			return node
		}
	}
	return ids.NullNode
}

func (p *parser) parseCallArgs(callee ids.NodeID) ids.NodeID {
	lparen := p.advance()
	var args []ids.NodeID
	for p.err == nil && !p.check(TokenRParen) {
		args = append(args, p.parseExpr())
		if p.check(TokenComma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(TokenRParen)
	if p.err != nil {
		return ids.NullNode
	}
	if len(args) <= 1 {
		var rhs uint32
		if len(args) == 1 {
			rhs = uint32(args[0])
		}
		return p.ast.AddNode(Node{Tag: TagCallOne, MainToken: lparen, LHS: uint32(callee), RHS: rhs})
	}
	extra := p.ast.addExtra(append([]uint32{uint32(len(args))}, toExtraWords(args)...)...)
	return p.ast.AddNode(Node{Tag: TagCall, MainToken: lparen, LHS: uint32(callee), RHS: extra})
}

func (p *parser) parsePrimaryExpr() ids.NodeID {
	if p.err != nil {
		return ids.NullNode
	}
	switch p.tok().Tag {
	case TokenIdentifier:
		tok := p.advance()
		return p.ast.AddNode(Node{Tag: TagIdentifier, MainToken: tok})
	case TokenNumberLiteral:
		tok := p.advance()
		return p.ast.AddNode(Node{Tag: TagNumberLiteral, MainToken: tok})
	case TokenStringLiteral:
		tok := p.advance()
		return p.ast.AddNode(Node{Tag: TagStringLiteral, MainToken: tok})
	case TokenCharLiteral:
		tok := p.advance()
		return p.ast.AddNode(Node{Tag: TagCharLiteral, MainToken: tok})
	case TokenKeywordUnreachable:
		tok := p.advance()
		return p.ast.AddNode(Node{Tag: TagUnreachableLiteral, MainToken: tok})
	case TokenKeywordReturn:
		// return-as-expression, e.g. the fallback branch of `catch |e| return e`;
		// a bare statement-level return is handled by parseStatement instead.
		tok := p.advance()
		operand := ids.NullNode
		if !p.check(TokenSemicolon) && !p.check(TokenRBrace) && !p.check(TokenRParen) {
			operand = p.parseExpr()
		}
		return p.ast.AddNode(Node{Tag: TagReturn, MainToken: tok, LHS: uint32(operand)})
	case TokenLParen:
		p.advance()
		e := p.parseExpr()
		p.expect(TokenRParen)
		return e
	case TokenLBrace:
		return p.parseBlock()
	case TokenKeywordStruct, TokenKeywordEnum, TokenKeywordUnion:
		kw := p.advance()
		return p.parseContainerDecl(kw)
	case TokenKeywordError:
		kw := p.advance()
		return p.parseErrorSetDecl(kw)
	default:
		p.fail(fmt.Sprintf("unexpected token %d at offset %d in expression", p.tok().Tag, p.tok().Start))
		return ids.NullNode
	}
}
