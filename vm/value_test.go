package vm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xiaobogaga/vci/quad"
)

func TestParseLiteral(t *testing.T) {
	testData := []struct {
		text          string
		expectedValue Value
	}{
		{text: "5", expectedValue: Integer(5)},
		{text: "-3", expectedValue: Integer(-3)},
		{text: "2.5", expectedValue: Real(2.5)},
		{text: "1.2.3", expectedValue: Text("1.2.3")},
		{text: `"hola"`, expectedValue: Text(`"hola"`)},
		{text: "true", expectedValue: Text("true")},
		{text: "x&", expectedValue: Text("x&")},
		{text: "", expectedValue: Text("")},
	}
	for _, testD := range testData {
		assert.Equal(t, testD.expectedValue, ParseLiteral(testD.text), testD.text)
	}
}

func TestValue_Truthy(t *testing.T) {
	testData := []struct {
		value    Value
		expected bool
	}{
		{value: Value{}, expected: false},
		{value: Boolean(false), expected: false},
		{value: Boolean(true), expected: true},
		{value: Integer(0), expected: false},
		{value: Integer(-1), expected: true},
		{value: Real(0), expected: false},
		{value: Real(0.1), expected: true},
		{value: Text("false"), expected: false},
		{value: Text("0"), expected: false},
		{value: Text(""), expected: false},
		{value: Text("no"), expected: true},
		{value: Text("False"), expected: true},
	}
	for _, testD := range testData {
		assert.Equal(t, testD.expected, testD.value.Truthy(), testD.value.Repr())
	}
}

func TestApply(t *testing.T) {
	testData := []struct {
		op            quad.Op
		left, right   Value
		expectedValue Value
	}{
		{op: quad.Add, left: Integer(2), right: Integer(3), expectedValue: Integer(5)},
		{op: quad.Subtract, left: Integer(2), right: Integer(3), expectedValue: Integer(-1)},
		{op: quad.Multiply, left: Integer(4), right: Real(0.5), expectedValue: Real(2)},
		{op: quad.Add, left: Real(1.5), right: Integer(1), expectedValue: Real(2.5)},
		{op: quad.Divide, left: Integer(7), right: Integer(2), expectedValue: Real(3.5)},
		{op: quad.Divide, left: Integer(6), right: Integer(3), expectedValue: Real(2)},
		{op: quad.Divide, left: Integer(6), right: Integer(0), expectedValue: Integer(0)},
		{op: quad.Divide, left: Real(1), right: Real(0), expectedValue: Integer(0)},
		{op: quad.Add, left: Text("ab"), right: Text("cd"), expectedValue: Text("abcd")},
		{op: quad.Add, left: Text("a"), right: Integer(1), expectedValue: Integer(0)},
		{op: quad.Multiply, left: Text("a"), right: Text("b"), expectedValue: Integer(0)},
		{op: quad.Multiply, left: Text("a"), right: Integer(3), expectedValue: Integer(0)},
		{op: quad.Add, left: Value{}, right: Integer(1), expectedValue: Integer(0)},
		{op: quad.Add, left: Boolean(true), right: Integer(1), expectedValue: Integer(2)},

		{op: quad.Greater, left: Integer(3), right: Real(2.5), expectedValue: Boolean(true)},
		{op: quad.Less, left: Integer(3), right: Integer(3), expectedValue: Boolean(false)},
		{op: quad.LessEqual, left: Integer(3), right: Integer(3), expectedValue: Boolean(true)},
		{op: quad.GreaterEqual, left: Real(1), right: Integer(2), expectedValue: Boolean(false)},
		{op: quad.Equal, left: Integer(2), right: Real(2), expectedValue: Boolean(true)},
		{op: quad.Less, left: Text("abc"), right: Text("abd"), expectedValue: Boolean(true)},
		{op: quad.Equal, left: Text("a"), right: Text("a"), expectedValue: Boolean(true)},
		{op: quad.Equal, left: Integer(1), right: Text("1"), expectedValue: Boolean(false)},
		{op: quad.NotEqual, left: Integer(1), right: Text("1"), expectedValue: Boolean(true)},
		{op: quad.Less, left: Integer(1), right: Text("a"), expectedValue: Integer(0)},

		{op: quad.And, left: Integer(1), right: Text("x"), expectedValue: Boolean(true)},
		{op: quad.And, left: Integer(1), right: Text(""), expectedValue: Boolean(false)},
		{op: quad.Or, left: Integer(0), right: Text("x"), expectedValue: Boolean(true)},
		{op: quad.Or, left: Boolean(false), right: Real(0), expectedValue: Boolean(false)},

		{op: quad.Label, left: Integer(1), right: Integer(1), expectedValue: Integer(0)},
	}
	for _, testD := range testData {
		assert.Equal(t, testD.expectedValue, Apply(testD.op, testD.left, testD.right),
			"%s %s %s", testD.left.Repr(), testD.op, testD.right.Repr())
	}
}

func TestValue_String(t *testing.T) {
	testData := []struct {
		value        Value
		expectedStr  string
		expectedRepr string
	}{
		{value: Integer(5), expectedStr: "5", expectedRepr: "5"},
		{value: Real(5), expectedStr: "5.0", expectedRepr: "5.0"},
		{value: Real(2.5), expectedStr: "2.5", expectedRepr: "2.5"},
		{value: Real(-0.25), expectedStr: "-0.25", expectedRepr: "-0.25"},
		{value: Real(1e20), expectedStr: "1e+20", expectedRepr: "1e+20"},
		{value: Real(math.Inf(1)), expectedStr: "inf", expectedRepr: "inf"},
		{value: Boolean(true), expectedStr: "True", expectedRepr: "True"},
		{value: Text("t0"), expectedStr: "t0", expectedRepr: "'t0'"},
		{value: Text("it's"), expectedStr: "it's", expectedRepr: `"it's"`},
		{value: Text(`"hola"`), expectedStr: `"hola"`, expectedRepr: `'"hola"'`},
		{value: Value{}, expectedStr: "None", expectedRepr: "None"},
	}
	for _, testD := range testData {
		assert.Equal(t, testD.expectedStr, testD.value.String())
		assert.Equal(t, testD.expectedRepr, testD.value.Repr())
	}
}
