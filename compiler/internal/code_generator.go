package internal

import (
	"fmt"

	"github.com/xiaobogaga/vci/quad"
)

// CodeGenerator lowers a checked ast into quadruples. Temporaries (t0, t1, ...) and
// labels (L0, L1, ...) come from counters owned by the generator, so two generators
// never share state and one generator never reuses a name.
type CodeGenerator struct {
	instructions []quad.Instruction
	tempCounter  int
	labelCounter int
}

func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{}
}

// Generate appends the code for ast and returns every instruction generated so far.
func (generator *CodeGenerator) Generate(ast *Node) []quad.Instruction {
	generator.generateStatementCode(ast)
	debugf("codegen: %d instructions, %d temporaries, %d labels", len(generator.instructions),
		generator.tempCounter, generator.labelCounter)
	return generator.instructions
}

func (generator *CodeGenerator) generateStatementCode(node *Node) {
	if node == nil {
		return
	}
	switch node.Kind {
	case AssignNode:
		generator.generateAssignStatementCode(node)
	case ReadNode:
		generator.generateReadStatementCode(node)
	case WriteNode:
		generator.generateWriteStatementCode(node)
	case IfNode:
		generator.generateIfStatementCode(node)
	case WhileNode:
		generator.generateWhileStatementCode(node)
	case RepeatNode:
		generator.generateRepeatStatementCode(node)
	case ProgramNode, BlockNode, ThenBlockNode, ElseBlockNode, BodyNode:
		for _, child := range node.Children {
			generator.generateStatementCode(child)
		}
	}
	// Declarations and the program name generate nothing.
}

// target = value
//
//	... value code
//	= value "" target
func (generator *CodeGenerator) generateAssignStatementCode(node *Node) {
	target := node.Child(0)
	if target == nil || target.Kind != IDNode {
		return
	}
	value := generator.generateExpressionCode(node.Child(1))
	generator.emit(quad.Assign, value, "", target.Value)
}

func (generator *CodeGenerator) generateReadStatementCode(node *Node) {
	if target := node.Child(0); target != nil {
		generator.emit(quad.Read, "", "", target.Value)
	}
}

func (generator *CodeGenerator) generateWriteStatementCode(node *Node) {
	value := generator.generateExpressionCode(node.Child(0))
	generator.emit(quad.Write, value, "", "")
}

// si (cond) entonces A [sino B]
//
//	... cond code
//	IF_FALSE cond "" "GOTO else"
//	A
//	GOTO end            (only with sino)
//	LABEL else
//	B                   (only with sino)
//	LABEL end           (only with sino)
//
// Without sino the else label is where both paths join. Both labels are always
// allocated so label numbering doesn't depend on the presence of sino.
func (generator *CodeGenerator) generateIfStatementCode(node *Node) {
	condition := generator.generateExpressionCode(node.Child(0))
	elseLabel, endLabel := generator.newLabel(), generator.newLabel()
	generator.emit(quad.IfFalse, condition, "", "GOTO "+elseLabel)
	generator.generateStatementCode(node.Child(1))
	if elseBlock := node.Child(2); elseBlock != nil {
		generator.emit(quad.Goto, "", "", endLabel)
		generator.emit(quad.Label, "", "", elseLabel)
		generator.generateStatementCode(elseBlock)
		generator.emit(quad.Label, "", "", endLabel)
		return
	}
	generator.emit(quad.Label, "", "", elseLabel)
}

// mientras (cond) hacer A
//
//	LABEL start
//	... cond code
//	IF_FALSE cond "" "GOTO end"
//	A
//	GOTO start
//	LABEL end
func (generator *CodeGenerator) generateWhileStatementCode(node *Node) {
	startLabel, endLabel := generator.newLabel(), generator.newLabel()
	generator.emit(quad.Label, "", "", startLabel)
	condition := generator.generateExpressionCode(node.Child(0))
	generator.emit(quad.IfFalse, condition, "", "GOTO "+endLabel)
	generator.generateStatementCode(node.Child(1))
	generator.emit(quad.Goto, "", "", startLabel)
	generator.emit(quad.Label, "", "", endLabel)
}

// repetir A hasta (cond)
//
//	LABEL start
//	A
//	... cond code
//	IF_FALSE cond "" "GOTO start"
//
// The body runs at least once and the loop goes on while cond is false.
func (generator *CodeGenerator) generateRepeatStatementCode(node *Node) {
	startLabel := generator.newLabel()
	generator.emit(quad.Label, "", "", startLabel)
	generator.generateStatementCode(node.Child(0))
	condition := generator.generateExpressionCode(node.Child(1))
	generator.emit(quad.IfFalse, condition, "", "GOTO "+startLabel)
}

// generateExpressionCode returns the operand holding the value of expr. Literals and
// identifiers are their own operand and emit nothing; every operator emits one
// instruction into a fresh temporary, operands first (post-order).
//
//	a& + 2 * b&   ->   * 2 b& t0
//	                   + a& t0 t1      returns t1
func (generator *CodeGenerator) generateExpressionCode(expr *Node) string {
	expr = expr.Unwrap()
	if expr == nil {
		return "?"
	}
	switch expr.Kind {
	case LiteralNode, IDNode:
		return expr.Value
	case OperationNode, ComparisonNode:
		left := generator.generateExpressionCode(expr.Child(0))
		right := generator.generateExpressionCode(expr.Child(1))
		temp := generator.newTemp()
		generator.emit(quad.Op(expr.Value), left, right, temp)
		return temp
	}
	return "?"
}

func (generator *CodeGenerator) emit(op quad.Op, arg1, arg2, result string) {
	generator.instructions = append(generator.instructions, quad.New(op, arg1, arg2, result))
}

func (generator *CodeGenerator) newTemp() string {
	temp := fmt.Sprintf("t%d", generator.tempCounter)
	generator.tempCounter++
	return temp
}

func (generator *CodeGenerator) newLabel() string {
	label := fmt.Sprintf("L%d", generator.labelCounter)
	generator.labelCounter++
	return label
}
