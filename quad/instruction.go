// Package quad defines the quadruple instruction format shared by the code generator
// and the executor.
package quad

import (
	"fmt"
	"strings"
)

// Op is the operation field of an instruction. Values are kept as the text that
// appears in exported instruction tables.
type Op string

const (
	Assign Op = "="

	Add      Op = "+"
	Subtract Op = "-"
	Multiply Op = "*"
	Divide   Op = "/"

	Greater      Op = ">"
	Less         Op = "<"
	GreaterEqual Op = ">="
	LessEqual    Op = "<="
	Equal        Op = "=="
	NotEqual     Op = "!="
	And          Op = "&&"
	Or           Op = "||"

	IfFalse Op = "IF_FALSE"
	Goto    Op = "GOTO"
	Label   Op = "LABEL"

	Read     Op = "LEER"
	ReadAlt  Op = "READ"
	Write    Op = "ESCRIBIR"
	WriteAlt Op = "WRITE"
)

func (op Op) IsArithmetic() bool {
	switch op {
	case Add, Subtract, Multiply, Divide:
		return true
	}
	return false
}

func (op Op) IsComparison() bool {
	switch op {
	case Greater, Less, GreaterEqual, LessEqual, Equal, NotEqual:
		return true
	}
	return false
}

func (op Op) IsLogical() bool {
	return op == And || op == Or
}

// IsBinary reports whether the operation reads two operands and stores into Result.
func (op Op) IsBinary() bool {
	return op.IsArithmetic() || op.IsComparison() || op.IsLogical()
}

func (op Op) IsJump() bool {
	return op == IfFalse || op == Goto
}

// Instruction is a quadruple: one operation and three text fields. Empty fields are "".
//
//	=        value  ""     target
//	+        left   right  temp
//	IF_FALSE cond   ""     "GOTO L1"
//	GOTO     ""     ""     L1
//	LABEL    ""     ""     L1
//	LEER     ""     ""     target
//	ESCRIBIR value  ""     ""
type Instruction struct {
	Op     Op
	Arg1   string
	Arg2   string
	Result string
}

func New(op Op, arg1, arg2, result string) Instruction {
	return Instruction{Op: op, Arg1: arg1, Arg2: arg2, Result: result}
}

// JumpTarget returns the label an IF_FALSE or GOTO refers to. IF_FALSE keeps its target in
// the "GOTO <label>" text form, so the last word of Result is taken; GOTO names it directly.
func (ins Instruction) JumpTarget() string {
	if ins.Op == IfFalse {
		fields := strings.Fields(ins.Result)
		if len(fields) == 0 {
			return ""
		}
		return fields[len(fields)-1]
	}
	return ins.Result
}

func (ins Instruction) String() string {
	return fmt.Sprintf("%s %s %s %s", ins.Op, quoteEmpty(ins.Arg1), quoteEmpty(ins.Arg2), quoteEmpty(ins.Result))
}

func quoteEmpty(s string) string {
	if s == "" {
		return `""`
	}
	return s
}

// Labels maps every LABEL name to its index. A label defined twice resolves to its last definition.
func Labels(instructions []Instruction) map[string]int {
	labels := map[string]int{}
	for i, ins := range instructions {
		if ins.Op == Label {
			labels[ins.Result] = i
		}
	}
	return labels
}
