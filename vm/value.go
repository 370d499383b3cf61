package vm

import (
	"math"
	"strconv"
	"strings"

	"github.com/xiaobogaga/vci/quad"
)

// Kind represents the tag in the Value tagged union.
type Kind uint8

const (
	KindNone Kind = iota // no value, e.g. an empty operand
	KindInteger
	KindReal
	KindText
	KindBoolean
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindText:
		return "text"
	case KindBoolean:
		return "boolean"
	}
	return "none"
}

// Value is what a quadruple operand means at run time. The zero Value is KindNone.
type Value struct {
	Kind Kind
	Int  int64
	Real float64
	Text string
	Bool bool
}

func Integer(i int64) Value {
	return Value{Kind: KindInteger, Int: i}
}

func Real(f float64) Value {
	return Value{Kind: KindReal, Real: f}
}

func Text(s string) Value {
	return Value{Kind: KindText, Text: s}
}

func Boolean(b bool) Value {
	return Value{Kind: KindBoolean, Bool: b}
}

func (v Value) IsNone() bool {
	return v.Kind == KindNone
}

func (v Value) isNumber() bool {
	return v.Kind == KindInteger || v.Kind == KindReal || v.Kind == KindBoolean
}

// ParseLiteral turns operand text into a value: text with a dot is tried as a real,
// text without one as an integer, and anything that doesn't parse stays text. This
// lets string literals ("hola" with its quotes) and true/false pass through unchanged.
func ParseLiteral(text string) Value {
	if strings.Contains(text, ".") {
		if f, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil {
			return Real(f)
		}
		return Text(text)
	}
	if i, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64); err == nil {
		return Integer(i)
	}
	return Text(text)
}

// Truthy is the branching rule of IF_FALSE. None, false, 0, 0.0 and the texts "false",
// "0" and "" are false, everything else is true.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindNone:
		return false
	case KindBoolean:
		return v.Bool
	case KindInteger:
		return v.Int != 0
	case KindReal:
		return v.Real != 0
	case KindText:
		return v.Text != "false" && v.Text != "0" && v.Text != ""
	}
	return true
}

func (v Value) float() float64 {
	switch v.Kind {
	case KindInteger:
		return float64(v.Int)
	case KindReal:
		return v.Real
	case KindBoolean:
		if v.Bool {
			return 1
		}
	}
	return 0
}

func (v Value) integer() int64 {
	if v.Kind == KindBoolean {
		if v.Bool {
			return 1
		}
		return 0
	}
	return v.Int
}

// isReal reports whether arithmetic on v and other has to be done on reals.
func (v Value) isReal(other Value) bool {
	return v.Kind == KindReal || other.Kind == KindReal
}

// Apply evaluates a binary operation. It never fails: operands of the wrong kind make the
// result Integer(0), and so does dividing by zero.
//
// Integers and booleans (as 1 and 0) stay integers under + - *, any real makes the result
// real and / always gives a real. Two texts can be joined with +. Comparisons and && || give
// booleans; texts compare lexically, numbers numerically and == != across other kinds
// compare as different.
func Apply(op quad.Op, left, right Value) Value {
	switch {
	case op.IsArithmetic():
		return applyArithmetic(op, left, right)
	case op.IsComparison():
		return applyComparison(op, left, right)
	case op == quad.And:
		return Boolean(left.Truthy() && right.Truthy())
	case op == quad.Or:
		return Boolean(left.Truthy() || right.Truthy())
	}
	return Integer(0)
}

func applyArithmetic(op quad.Op, left, right Value) Value {
	if op == quad.Add && left.Kind == KindText && right.Kind == KindText {
		return Text(left.Text + right.Text)
	}
	if !left.isNumber() || !right.isNumber() {
		return Integer(0)
	}
	switch op {
	case quad.Divide:
		if right.float() == 0 {
			return Integer(0)
		}
		return Real(left.float() / right.float())
	case quad.Add:
		if left.isReal(right) {
			return Real(left.float() + right.float())
		}
		return Integer(left.integer() + right.integer())
	case quad.Subtract:
		if left.isReal(right) {
			return Real(left.float() - right.float())
		}
		return Integer(left.integer() - right.integer())
	case quad.Multiply:
		if left.isReal(right) {
			return Real(left.float() * right.float())
		}
		return Integer(left.integer() * right.integer())
	}
	return Integer(0)
}

func applyComparison(op quad.Op, left, right Value) Value {
	var cmp int
	switch {
	case left.isNumber() && right.isNumber():
		if left.isReal(right) {
			cmp = compareFloat(left.float(), right.float())
		} else {
			cmp = compareInt(left.integer(), right.integer())
		}
	case left.Kind == KindText && right.Kind == KindText:
		cmp = strings.Compare(left.Text, right.Text)
	case left.Kind == KindNone && right.Kind == KindNone:
		cmp = 0
	default:
		switch op {
		case quad.Equal:
			return Boolean(false)
		case quad.NotEqual:
			return Boolean(true)
		}
		return Integer(0)
	}
	switch op {
	case quad.Greater:
		return Boolean(cmp > 0)
	case quad.Less:
		return Boolean(cmp < 0)
	case quad.GreaterEqual:
		return Boolean(cmp >= 0)
	case quad.LessEqual:
		return Boolean(cmp <= 0)
	case quad.Equal:
		return Boolean(cmp == 0)
	case quad.NotEqual:
		return Boolean(cmp != 0)
	}
	return Integer(0)
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// String formats the value for output and for the final variables table.
func (v Value) String() string {
	switch v.Kind {
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	case KindReal:
		return formatReal(v.Real)
	case KindText:
		return v.Text
	case KindBoolean:
		if v.Bool {
			return "True"
		}
		return "False"
	}
	return "None"
}

// Repr formats the value as an element of the trace's stack and variables columns:
// texts are single quoted, everything else is written as String does.
func (v Value) Repr() string {
	if v.Kind != KindText {
		return v.String()
	}
	return quoteText(v.Text)
}

func quoteText(s string) string {
	quote := "'"
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		quote = `"`
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	if quote == "'" {
		s = strings.ReplaceAll(s, "'", `\'`)
	}
	return quote + s + quote
}

// formatReal always keeps a fractional part or an exponent, so 5.0 is never printed as 5.
func formatReal(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
