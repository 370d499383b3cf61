package internal

import (
	"testing"

	"github.com/sanity-io/litter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyzeSource(t *testing.T, source string) (*SymbolTable, []*Diagnostic) {
	ast, errs := parseSource(t, source)
	require.Empty(t, errs, litter.Sdump(errs))
	return NewSemanticAnalyzer().Analyze(ast)
}

func TestSemanticAnalyzer_Analyze(t *testing.T) {
	testData := []struct {
		source           string
		expectedMessages []string
		expectedValues   []string
	}{
		{source: program("x& = 1;", "r% = 2.5;", `s$ = "hola";`, "b# = false;", "escribir(x&);", "leer(r%);")},
		{source: program("x& = y& + 2.5;", "escribir(x& + z&);")},
		{
			source:           "programa p@; variables entero x&, x&; inicio fin",
			expectedMessages: []string{"variable already declared"},
			expectedValues:   []string{"x&"},
		},
		{
			source:           "programa p@; variables entero x&; real x&; inicio fin",
			expectedMessages: []string{"variable already declared"},
			expectedValues:   []string{"x&"},
		},
		{
			source:           program("z& = 1;", "leer(w%);", "escribir(v$);"),
			expectedMessages: []string{"variable not declared", "variable not declared", "variable not declared"},
			expectedValues:   []string{"z&", "w%", "v$"},
		},
		{
			source: program(`x& = "hola";`, "r% = 1;", "s$ = true;", "b# = 2.5;"),
			expectedMessages: []string{
				"incompatible assignment: expected type entero",
				"incompatible assignment: expected type real",
				"incompatible assignment: expected type cadena",
				"incompatible assignment: expected type logico",
			},
			expectedValues: []string{`"hola"`, "1", "true", "2.5"},
		},
		// Nested blocks are analyzed as well.
		{
			source:           program("si (x& > 1) entonces inicio mientras (x& < 3) hacer inicio q& = 1; fin fin"),
			expectedMessages: []string{"variable not declared"},
			expectedValues:   []string{"q&"},
		},
	}
	for _, testD := range testData {
		_, errs := analyzeSource(t, testD.source)
		var messages, values []string
		for _, err := range errs {
			assert.Equal(t, SemanticStage, err.Stage)
			messages = append(messages, err.Message)
			values = append(values, err.Value)
		}
		assert.Equal(t, testD.expectedMessages, messages, testD.source)
		assert.Equal(t, testD.expectedValues, values, testD.source)
	}
}

func TestSemanticAnalyzer_Positions(t *testing.T) {
	_, errs := analyzeSource(t, "programa p@;\ninicio\n  y& = 1;\nfin")
	require.Len(t, errs, 1)
	assert.Equal(t, 3, errs[0].Line)
	assert.Equal(t, 3, errs[0].Column)
}

func TestSemanticAnalyzer_SymbolTable(t *testing.T) {
	table, errs := analyzeSource(t, program())
	assert.Empty(t, errs)
	var names []string
	var types []VarType
	for _, symbol := range table.Symbols() {
		names = append(names, symbol.Name)
		types = append(types, symbol.Type)
		assert.Equal(t, GlobalScope, symbol.Scope)
	}
	assert.Equal(t, []string{"x&", "y&", "r%", "s$", "b#"}, names)
	assert.Equal(t, []VarType{IntegerType, IntegerType, RealType, StringType, BooleanType}, types)
}

func TestLiteralType(t *testing.T) {
	testData := []struct {
		literal      string
		expectedType VarType
		known        bool
	}{
		{literal: "12", expectedType: IntegerType, known: true},
		{literal: "1.5", expectedType: RealType, known: true},
		{literal: `"a"`, expectedType: StringType, known: true},
		{literal: "false", expectedType: BooleanType, known: true},
		{literal: "1.2.3"},
		{literal: "x"},
	}
	for _, testD := range testData {
		tp, known := literalType(testD.literal)
		assert.Equal(t, testD.known, known, testD.literal)
		assert.Equal(t, testD.expectedType, tp, testD.literal)
	}
}
