package vm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "[]", FormatStack(nil))
	assert.Equal(t, "[5, 't0', True, 2.5]", FormatStack([]Value{Integer(5), Text("t0"), Boolean(true), Real(2.5)}))
	assert.Equal(t, "{}", FormatVariables(nil))
	assert.Equal(t, "{'x&': 5, 's$': '\"a\"'}", FormatVariables([]Binding{
		{Name: "x&", Value: Integer(5)},
		{Name: "s$", Value: Text(`"a"`)},
	}))
}

func TestWriteTraceCSV(t *testing.T) {
	executor := NewExecutor(sumProgram(), Options{})
	require.NoError(t, executor.Run())
	buf := &bytes.Buffer{}
	require.NoError(t, WriteTraceCSV(buf, executor.Trace()))
	assert.Equal(t, `Operation,Arg1,Arg2,Result,Stack,Variables
+,2,3,t0,[],{}
=,t0,,x&,[5],{'t0': 5}
ESCRIBIR,x&,,,"[5, 5]","{'t0': 5, 'x&': 5}"
`, buf.String())
}

func TestWriteVariablesCSV(t *testing.T) {
	executor := NewExecutor(sumProgram(), Options{})
	require.NoError(t, executor.Run())
	buf := &bytes.Buffer{}
	require.NoError(t, WriteVariablesCSV(buf, executor.Variables()))
	assert.Equal(t, "Variable,Value\nt0,5\nx&,5\n", buf.String())
}

func TestConsoleIO(t *testing.T) {
	prompt := &bytes.Buffer{}
	input := NewConsoleInput(strings.NewReader("7\r\nhola\n3"), prompt)
	for _, expected := range []string{"7", "hola", "3"} {
		v, err := input.Read("x&")
		require.NoError(t, err)
		assert.Equal(t, expected, v)
	}
	_, err := input.Read("x&")
	assert.Equal(t, ErrNoInput, errors.Cause(err))
	assert.Equal(t, strings.Repeat("value for x&: ", 4), prompt.String())

	out := &bytes.Buffer{}
	output := NewConsoleOutput(out)
	require.NoError(t, output.Write("x&", Integer(5)))
	require.NoError(t, output.Write("t1", Real(1)))
	assert.Equal(t, "x& = 5\nt1 = 1.0\n", out.String())
}
