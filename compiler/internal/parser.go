package internal

import (
	"fmt"
	"strings"
)

// Parser is a recursive-descent parser with error recovery by continuation: a failed
// expectation records a syntax diagnostic and parsing goes on, so Parse always
// terminates and always returns a tree.
//
// Grammar:
//
//	program      := programa ID_METODO ; [variables declarations] block
//	declarations := (type idList ;)*
//	idList       := typedId (, typedId)*
//	block        := inicio statement* fin
//	statement    := read | write | assign | if | while | repeat
//	read         := leer ( typedId ) ;
//	write        := escribir ( comparison ) ;
//	assign       := typedId = comparison ;
//	if           := si ( comparison ) entonces block [sino block]
//	while        := mientras ( comparison ) hacer block
//	repeat       := repetir block hasta ( comparison ) ;
type Parser struct {
	currentTokenPos int
	currentTokens   []*Token
	errors          []*Diagnostic
}

var declarationTypes = map[string]bool{"entero": true, "real": true, "cadena": true, "logico": true}

var statementKeyWords = map[string]bool{"leer": true, "escribir": true, "si": true, "mientras": true, "repetir": true}

func (parser *Parser) Parse(tokens []*Token) (*Node, []*Diagnostic) {
	parser.reset()
	parser.currentTokens = tokens
	ast := parser.parseProgram()
	debugf("parser: %d tokens, %d syntax errors", len(tokens), len(parser.errors))
	return ast, parser.errors
}

func (parser *Parser) reset() {
	parser.currentTokenPos, parser.currentTokens, parser.errors = 0, nil, nil
}

func (parser *Parser) parseProgram() *Node {
	root := parser.newNodeAtCurrentToken(ProgramNode)
	parser.expectToken(ReservedTK, "programa")
	idToken := parser.expectToken(MethodIDTK, "")
	if idToken != nil {
		root.add(newTokenNode(IDNode, idToken))
	} else {
		root.add(newNode(IDNode, "ERROR"))
	}
	parser.expectToken(SymbolTK, ";")
	if parser.currentValueIs("variables") {
		parser.matchToken(ReservedTK, "variables")
		root.add(parser.parseDeclarations())
	}
	root.add(parser.parseBlock())
	return root
}

func (parser *Parser) parseDeclarations() *Node {
	declarations := parser.newNodeAtCurrentToken(DeclarationsNode)
	for parser.hasRemainTokens() && declarationTypes[parser.currentToken().Lexeme] {
		typeToken := parser.matchToken(ReservedTK, "")
		if typeToken == nil {
			// A declaration type name that isn't a reserved word can only come from a
			// hand written token stream.
			parser.addError(parser.currentToken(), "expected a type")
			parser.stepForward()
			continue
		}
		typeNode := newTokenNode(TypeNode, typeToken)
		typeNode.add(parser.parseIdList()...)
		parser.expectToken(SymbolTK, ";")
		declarations.add(typeNode)
	}
	return declarations
}

func (parser *Parser) parseIdList() (ids []*Node) {
	token := parser.matchTypedIdentifier()
	if token == nil {
		parser.addError(parser.currentToken(), "expected a valid identifier")
		return
	}
	ids = append(ids, newTokenNode(IDNode, token))
	for parser.matchToken(SymbolTK, ",") != nil {
		token = parser.matchTypedIdentifier()
		if token == nil {
			parser.addError(parser.currentToken(), "expected another identifier")
			continue
		}
		ids = append(ids, newTokenNode(IDNode, token))
	}
	return
}

func (parser *Parser) parseBlock() *Node {
	block := parser.newNodeAtCurrentToken(BlockNode)
	parser.expectToken(ReservedTK, "inicio")
	block.add(parser.parseStatements()...)
	parser.expectToken(ReservedTK, "fin")
	return block
}

func (parser *Parser) parseStatements() (statements []*Node) {
	for parser.hasRemainTokens() {
		token := parser.currentToken()
		if !isStatementKeyWord(token) && !token.Kind.IsTypedIdentifier() {
			break
		}
		pos := parser.currentTokenPos
		statement := parser.parseStatement()
		if parser.currentTokenPos == pos {
			// Every statement must consume at least one token.
			parser.addError(token, "unrecognized statement")
			parser.stepForward()
			statement = newErrorNode(token)
		}
		statements = append(statements, statement)
	}
	return
}

// Only reserved words open a statement, an identifier spelled "leer" does not.
func isStatementKeyWord(token *Token) bool {
	return token.Kind == ReservedTK && statementKeyWords[token.Lexeme]
}

func (parser *Parser) parseStatement() *Node {
	token := parser.currentToken()
	if token == nil {
		parser.addError(nil, "unrecognized statement")
		return newErrorNode(nil)
	}
	keyWord := ""
	if isStatementKeyWord(token) {
		keyWord = token.Lexeme
	}
	switch {
	case keyWord == "leer":
		return parser.parseReadStatement()
	case keyWord == "escribir":
		return parser.parseWriteStatement()
	case keyWord == "si":
		return parser.parseIfStatement()
	case keyWord == "mientras":
		return parser.parseWhileStatement()
	case keyWord == "repetir":
		return parser.parseRepeatStatement()
	case token.Kind.IsTypedIdentifier():
		return parser.parseAssignStatement()
	}
	parser.addError(token, "unrecognized statement")
	parser.stepForward()
	return newErrorNode(token)
}

// leer ( typedId ) ;
func (parser *Parser) parseReadStatement() *Node {
	stm := parser.newNodeAtCurrentToken(ReadNode)
	parser.expectToken(ReservedTK, "leer")
	parser.expectToken(SymbolTK, "(")
	if idToken := parser.matchTypedIdentifier(); idToken != nil {
		stm.add(newTokenNode(IDNode, idToken))
	}
	parser.expectToken(SymbolTK, ")")
	parser.expectToken(SymbolTK, ";")
	return stm
}

// escribir ( expression ) ;
func (parser *Parser) parseWriteStatement() *Node {
	stm := parser.newNodeAtCurrentToken(WriteNode)
	parser.expectToken(ReservedTK, "escribir")
	parser.expectToken(SymbolTK, "(")
	stm.add(parser.wrap(ExprNode, parser.parseComparison()))
	parser.expectToken(SymbolTK, ")")
	parser.expectToken(SymbolTK, ";")
	return stm
}

// typedId = expression ;
func (parser *Parser) parseAssignStatement() *Node {
	stm := parser.newNodeAtCurrentToken(AssignNode)
	if idToken := parser.matchTypedIdentifier(); idToken != nil {
		stm.add(newTokenNode(IDNode, idToken))
	}
	parser.expectToken(OperatorTK, "=")
	stm.add(parser.wrap(ValueNode, parser.parseComparison()))
	parser.expectToken(SymbolTK, ";")
	return stm
}

// si ( expression ) entonces block [sino block]
func (parser *Parser) parseIfStatement() *Node {
	stm := parser.newNodeAtCurrentToken(IfNode)
	parser.expectToken(ReservedTK, "si")
	parser.expectToken(SymbolTK, "(")
	stm.add(parser.wrap(ConditionNode, parser.parseComparison()))
	parser.expectToken(SymbolTK, ")")
	parser.expectToken(ReservedTK, "entonces")
	stm.add(parser.wrap(ThenBlockNode, parser.parseBlock()))
	if parser.currentValueIs("sino") {
		parser.matchToken(ReservedTK, "sino")
		stm.add(parser.wrap(ElseBlockNode, parser.parseBlock()))
	}
	return stm
}

// mientras ( expression ) hacer block
func (parser *Parser) parseWhileStatement() *Node {
	stm := parser.newNodeAtCurrentToken(WhileNode)
	parser.expectToken(ReservedTK, "mientras")
	parser.expectToken(SymbolTK, "(")
	stm.add(parser.wrap(ConditionNode, parser.parseComparison()))
	parser.expectToken(SymbolTK, ")")
	parser.expectToken(ReservedTK, "hacer")
	stm.add(parser.wrap(BodyNode, parser.parseBlock()))
	return stm
}

// repetir block hasta ( expression ) ;
func (parser *Parser) parseRepeatStatement() *Node {
	stm := parser.newNodeAtCurrentToken(RepeatNode)
	parser.expectToken(ReservedTK, "repetir")
	stm.add(parser.wrap(BodyNode, parser.parseBlock()))
	parser.expectToken(ReservedTK, "hasta")
	parser.expectToken(SymbolTK, "(")
	stm.add(parser.wrap(ConditionNode, parser.parseComparison()))
	parser.expectToken(SymbolTK, ")")
	parser.expectToken(SymbolTK, ";")
	return stm
}

func (parser *Parser) wrap(kind NodeKind, child *Node) *Node {
	node := newNode(kind, "", child)
	node.Line, node.Column = child.Line, child.Column
	return node
}

func (parser *Parser) newNodeAtCurrentToken(kind NodeKind) *Node {
	node := newNode(kind, "")
	if token := parser.currentToken(); token != nil {
		node.Line, node.Column = token.Line, token.Column
	}
	return node
}

// expectToken is matchToken that records a syntax error on mismatch. An empty
// expectedValue accepts any lexeme. It never advances on failure.
func (parser *Parser) expectToken(expectedKind TokenKind, expectedValue string) *Token {
	token := parser.matchToken(expectedKind, expectedValue)
	if token == nil {
		parser.addError(parser.currentToken(), expectation(expectedKind, expectedValue))
	}
	return token
}

// matchToken steps forward and returns the current token if it has the expected kind and value.
func (parser *Parser) matchToken(expectedKind TokenKind, expectedValue string) *Token {
	token := parser.currentToken()
	if token == nil || token.Kind != expectedKind || (expectedValue != "" && token.Lexeme != expectedValue) {
		return nil
	}
	parser.stepForward()
	return token
}

func (parser *Parser) matchTypedIdentifier() *Token {
	token := parser.currentToken()
	if token == nil || !token.Kind.IsTypedIdentifier() {
		return nil
	}
	parser.stepForward()
	return token
}

func (parser *Parser) currentValueIs(values ...string) bool {
	token := parser.currentToken()
	if token == nil {
		return false
	}
	for _, v := range values {
		if token.Lexeme == v {
			return true
		}
	}
	return false
}

func (parser *Parser) currentToken() *Token {
	if !parser.hasRemainTokens() {
		return nil
	}
	return parser.currentTokens[parser.currentTokenPos]
}

func (parser *Parser) hasRemainTokens() bool {
	return parser.currentTokenPos < len(parser.currentTokens)
}

func (parser *Parser) stepForward() {
	parser.currentTokenPos++
}

// addError records a syntax error near token, or near EOF when token is nil.
func (parser *Parser) addError(token *Token, msg string) {
	if token == nil {
		parser.errors = append(parser.errors, makeDiagnostic(SyntaxStage, "EOF", -1, -1, "%s", msg))
		return
	}
	parser.errors = append(parser.errors, makeDiagnostic(SyntaxStage, token.Lexeme, token.Line, token.Column, "%s", msg))
}

func expectation(kind TokenKind, value string) string {
	parts := []string{"expected", "type " + kind.String()}
	if value != "" {
		parts = append(parts, fmt.Sprintf("value %s", value))
	}
	return strings.Join(parts, " ")
}
