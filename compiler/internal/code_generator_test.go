package internal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xiaobogaga/vci/quad"
)

func generateSource(t *testing.T, statements ...string) []quad.Instruction {
	ast, _ := parseSource(t, program(statements...))
	return NewCodeGenerator().Generate(ast)
}

func TestCodeGenerator_Statements(t *testing.T) {
	testData := []struct {
		statements           []string
		expectedInstructions []quad.Instruction
	}{
		{statements: []string{"x& = 2 + 3;", "escribir(x&);"}, expectedInstructions: []quad.Instruction{
			quad.New(quad.Add, "2", "3", "t0"),
			quad.New(quad.Assign, "t0", "", "x&"),
			quad.New(quad.Write, "x&", "", ""),
		}},
		{statements: []string{"x& = y& + 2 * r%;"}, expectedInstructions: []quad.Instruction{
			quad.New(quad.Multiply, "2", "r%", "t0"),
			quad.New(quad.Add, "y&", "t0", "t1"),
			quad.New(quad.Assign, "t1", "", "x&"),
		}},
		{statements: []string{"leer(x&);", "escribir(x& * 2);", `escribir("fin");`}, expectedInstructions: []quad.Instruction{
			quad.New(quad.Read, "", "", "x&"),
			quad.New(quad.Multiply, "x&", "2", "t0"),
			quad.New(quad.Write, "t0", "", ""),
			quad.New(quad.Write, `"fin"`, "", ""),
		}},
		{statements: []string{"b# = x& > 1 && y&;"}, expectedInstructions: []quad.Instruction{
			quad.New(quad.And, "1", "y&", "t0"),
			quad.New(quad.Greater, "x&", "t0", "t1"),
			quad.New(quad.Assign, "t1", "", "b#"),
		}},
	}
	for _, testD := range testData {
		assert.Equal(t, testD.expectedInstructions, generateSource(t, testD.statements...),
			strings.Join(testD.statements, " "))
	}
}

func TestCodeGenerator_ControlFlow(t *testing.T) {
	testData := []struct {
		statement            string
		expectedInstructions []quad.Instruction
	}{
		{statement: "si (x& > 1) entonces inicio x& = 1; fin", expectedInstructions: []quad.Instruction{
			quad.New(quad.Greater, "x&", "1", "t0"),
			quad.New(quad.IfFalse, "t0", "", "GOTO L0"),
			quad.New(quad.Assign, "1", "", "x&"),
			quad.New(quad.Label, "", "", "L0"),
		}},
		{statement: "si (x& > 1) entonces inicio x& = 1; fin sino inicio x& = 2; fin", expectedInstructions: []quad.Instruction{
			quad.New(quad.Greater, "x&", "1", "t0"),
			quad.New(quad.IfFalse, "t0", "", "GOTO L0"),
			quad.New(quad.Assign, "1", "", "x&"),
			quad.New(quad.Goto, "", "", "L1"),
			quad.New(quad.Label, "", "", "L0"),
			quad.New(quad.Assign, "2", "", "x&"),
			quad.New(quad.Label, "", "", "L1"),
		}},
		{statement: "mientras (x& < 3) hacer inicio x& = x& + 1; fin", expectedInstructions: []quad.Instruction{
			quad.New(quad.Label, "", "", "L0"),
			quad.New(quad.Less, "x&", "3", "t0"),
			quad.New(quad.IfFalse, "t0", "", "GOTO L1"),
			quad.New(quad.Add, "x&", "1", "t1"),
			quad.New(quad.Assign, "t1", "", "x&"),
			quad.New(quad.Goto, "", "", "L0"),
			quad.New(quad.Label, "", "", "L1"),
		}},
		{statement: "repetir inicio x& = x& + 1; fin hasta (x& >= 3);", expectedInstructions: []quad.Instruction{
			quad.New(quad.Label, "", "", "L0"),
			quad.New(quad.Add, "x&", "1", "t0"),
			quad.New(quad.Assign, "t0", "", "x&"),
			quad.New(quad.GreaterEqual, "x&", "3", "t1"),
			quad.New(quad.IfFalse, "t1", "", "GOTO L0"),
		}},
	}
	for _, testD := range testData {
		assert.Equal(t, testD.expectedInstructions, generateSource(t, testD.statement), testD.statement)
	}
}

func TestCodeGenerator_LabelsAreUnique(t *testing.T) {
	instructions := generateSource(t,
		"si (x& > 1) entonces inicio fin",
		"mientras (x& < 3) hacer inicio si (y& == 0) entonces inicio fin sino inicio fin fin",
		"repetir inicio fin hasta (b#);",
	)
	defined := map[string]int{}
	for _, ins := range instructions {
		if ins.Op == quad.Label {
			defined[ins.Result]++
		}
	}
	for label, count := range defined {
		assert.Equal(t, 1, count, label)
	}
	// Every if allocates two labels, every while two and every repeat one.
	assert.Contains(t, defined, "L6")
	assert.NotContains(t, defined, "L7")
	for _, ins := range instructions {
		if ins.Op.IsJump() {
			assert.Contains(t, defined, ins.JumpTarget(), ins.String())
		}
	}
}

func TestCodeGenerator_Independent(t *testing.T) {
	ast, _ := parseSource(t, program("x& = 1 + 2;"))
	first := NewCodeGenerator().Generate(ast)
	second := NewCodeGenerator().Generate(ast)
	assert.Equal(t, first, second)
	assert.Equal(t, "t0", first[0].Result)
}

func TestCodeGenerator_ErrorExpression(t *testing.T) {
	ast, errs := parseSource(t, program("x& = ;"))
	assert.Len(t, errs, 1)
	instructions := NewCodeGenerator().Generate(ast)
	assert.Equal(t, []quad.Instruction{quad.New(quad.Assign, "?", "", "x&")}, instructions)
}
