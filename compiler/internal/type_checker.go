package internal

import "strings"

// SemanticAnalyzer does name resolution and a shallow type check over the ast built by
// the parser. It never stops at the first problem, every error is recorded and the
// walk goes on over the whole tree.
type SemanticAnalyzer struct {
	symbolTable *SymbolTable
	errors      []*Diagnostic
}

func NewSemanticAnalyzer() *SemanticAnalyzer {
	return &SemanticAnalyzer{symbolTable: NewSymbolTable()}
}

func (analyzer *SemanticAnalyzer) Analyze(ast *Node) (*SymbolTable, []*Diagnostic) {
	analyzer.analyze(ast)
	debugf("semantic: %d symbols, %d semantic errors", analyzer.symbolTable.Len(), len(analyzer.errors))
	return analyzer.symbolTable, analyzer.errors
}

// analyze is a pre-order walk. Declarations, assignments, leer and escribir are checked,
// every other node just recurses into its children.
func (analyzer *SemanticAnalyzer) analyze(node *Node) {
	if node == nil {
		return
	}
	switch node.Kind {
	case DeclarationsNode:
		analyzer.checkDeclarations(node)
	case AssignNode:
		analyzer.checkAssignment(node)
	case ReadNode, WriteNode:
		analyzer.checkReadOrWrite(node)
	default:
		for _, child := range node.Children {
			analyzer.analyze(child)
		}
	}
}

func (analyzer *SemanticAnalyzer) checkDeclarations(node *Node) {
	for _, typeNode := range node.Children {
		for _, id := range typeNode.Children {
			if !analyzer.symbolTable.Declare(id.Value, VarType(typeNode.Value)) {
				analyzer.addError(id, "variable already declared")
			}
		}
	}
}

// checkAssignment looks up the target and, when the right hand side is a literal, compares
// the literal's type with the declared one. Identifiers and computed values on the right
// are not checked.
func (analyzer *SemanticAnalyzer) checkAssignment(node *Node) {
	target := node.Child(0)
	if target == nil || target.Kind != IDNode {
		return
	}
	symbol := analyzer.lookUp(target.Value)
	if symbol == nil {
		analyzer.addError(target, "variable not declared")
		return
	}
	value := node.Child(1).Unwrap()
	if value == nil || value.Kind != LiteralNode {
		return
	}
	expected, known := literalType(value.Value)
	if known && expected != symbol.Type {
		analyzer.addError(value, "incompatible assignment: expected type %s", symbol.Type)
	}
}

func (analyzer *SemanticAnalyzer) checkReadOrWrite(node *Node) {
	operand := node.Child(0).Unwrap()
	if operand == nil || operand.Kind != IDNode {
		return
	}
	if analyzer.lookUp(operand.Value) == nil {
		analyzer.addError(operand, "variable not declared")
	}
}

func (analyzer *SemanticAnalyzer) lookUp(name string) *Symbol {
	return analyzer.symbolTable.LookUp(name, analyzer.symbolTable.Scope())
}

func (analyzer *SemanticAnalyzer) addError(node *Node, format string, args ...interface{}) {
	analyzer.errors = append(analyzer.errors,
		makeDiagnostic(SemanticStage, node.Value, node.Line, node.Column, format, args...))
}

// literalType infers a literal's type from its shape: digits with at most one dot are
// entero (no dot) or real, true/false is logico and a leading quote is cadena.
func literalType(literal string) (VarType, bool) {
	switch {
	case isNumeric(literal):
		if strings.Contains(literal, ".") {
			return RealType, true
		}
		return IntegerType, true
	case literal == "true" || literal == "false":
		return BooleanType, true
	case strings.HasPrefix(literal, `"`):
		return StringType, true
	}
	return "", false
}

func isNumeric(literal string) bool {
	digits := strings.Replace(literal, ".", "", 1)
	if digits == "" {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}
