package internal

// Expressions have three precedence levels, low to high:
//
//	comparison     := additive [(> | < | >= | <= | == | !=) additive]
//	additive       := multiplicative ((+ | - | ||) multiplicative)*
//	multiplicative := factor ((* | / | &&) factor)*
//	factor         := typedId | literal | ( comparison )
//
// Note that || sits with + and - and && sits with * and /, both above the
// comparison operators, so `a& > 1 && b& < 2` parses as `a& > (1 && b&)` and
// leaves `< 2` to the caller. Comparisons never chain.

var comparisonOps = map[string]bool{">": true, "<": true, ">=": true, "<=": true, "==": true, "!=": true}

var additiveOps = map[string]bool{"+": true, "-": true, "||": true}

var multiplicativeOps = map[string]bool{"*": true, "/": true, "&&": true}

var literalTokenKinds = map[TokenKind]bool{IntegerTK: true, RealTK: true, StringTK: true, BooleanTK: true}

func (parser *Parser) parseComparison() *Node {
	node := parser.parseAdditive()
	if parser.matchOp(comparisonOps) {
		if op := parser.matchToken(OperatorTK, ""); op != nil {
			node = newTokenNode(ComparisonNode, op).add(node, parser.parseAdditive())
		}
	}
	return node
}

func (parser *Parser) parseAdditive() *Node {
	node := parser.parseMultiplicative()
	for parser.matchOp(additiveOps) {
		op := parser.matchToken(OperatorTK, "")
		if op == nil {
			break
		}
		node = newTokenNode(OperationNode, op).add(node, parser.parseMultiplicative())
	}
	return node
}

func (parser *Parser) parseMultiplicative() *Node {
	node := parser.parseFactor()
	for parser.matchOp(multiplicativeOps) {
		op := parser.matchToken(OperatorTK, "")
		if op == nil {
			break
		}
		node = newTokenNode(OperationNode, op).add(node, parser.parseFactor())
	}
	return node
}

func (parser *Parser) parseFactor() *Node {
	if token := parser.matchTypedIdentifier(); token != nil {
		return newTokenNode(IDNode, token)
	}
	token := parser.currentToken()
	if token != nil && literalTokenKinds[token.Kind] {
		parser.stepForward()
		return newTokenNode(LiteralNode, token)
	}
	if parser.matchToken(SymbolTK, "(") != nil {
		expr := parser.parseComparison()
		parser.expectToken(SymbolTK, ")")
		return expr
	}
	parser.addError(token, "invalid factor")
	return newErrorNode(token)
}

// matchOp reports whether the current token's lexeme is one of ops, without consuming it.
func (parser *Parser) matchOp(ops map[string]bool) bool {
	token := parser.currentToken()
	return token != nil && ops[token.Lexeme]
}
