package vm

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/pkg/errors"
)

var (
	TraceHeader     = []string{"Operation", "Arg1", "Arg2", "Result", "Stack", "Variables"}
	VariablesHeader = []string{"Variable", "Value"}
)

// WriteTraceCSV writes one row per snapshot: the instruction followed by the stack and
// the variables as they were before it ran.
func WriteTraceCSV(w io.Writer, trace []Snapshot) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(TraceHeader); err != nil {
		return errors.Wrap(err, "vm: write trace header")
	}
	for i, snapshot := range trace {
		ins := snapshot.Instruction
		record := []string{string(ins.Op), ins.Arg1, ins.Arg2, ins.Result,
			FormatStack(snapshot.Stack), FormatVariables(snapshot.Variables)}
		if err := writer.Write(record); err != nil {
			return errors.Wrapf(err, "vm: write trace row %d", i)
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "vm: flush trace")
}

// WriteVariablesCSV writes the final value of every variable, temporaries included.
func WriteVariablesCSV(w io.Writer, bindings []Binding) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(VariablesHeader); err != nil {
		return errors.Wrap(err, "vm: write variables header")
	}
	for _, binding := range bindings {
		if err := writer.Write([]string{binding.Name, binding.Value.String()}); err != nil {
			return errors.Wrapf(err, "vm: write variable %s", binding.Name)
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "vm: flush variables")
}

// FormatStack renders a stack bottom first, e.g. [5, 't0', True].
func FormatStack(stack []Value) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range stack {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(v.Repr())
	}
	sb.WriteByte(']')
	return sb.String()
}

// FormatVariables renders bindings in store order, e.g. {'x&': 5, 't0': 2.5}.
func FormatVariables(bindings []Binding) string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, binding := range bindings {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(quoteText(binding.Name))
		sb.WriteString(": ")
		sb.WriteString(binding.Value.Repr())
	}
	sb.WriteByte('}')
	return sb.String()
}
