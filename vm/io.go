package vm

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// ErrNoInput is returned by inputs that have nothing left to give.
var ErrNoInput = errors.New("vm: no input available")

// Input serves LEER: one synchronous request for the value of a named variable.
type Input interface {
	Read(name string) (string, error)
}

// Output serves ESCRIBIR: one labeled value per call. The label is the operand text,
// e.g. the variable name.
type Output interface {
	Write(label string, value Value) error
}

// ConsoleInput prompts on Prompt and reads one line per request.
type ConsoleInput struct {
	reader *bufio.Reader
	prompt io.Writer
}

func NewConsoleInput(rd io.Reader, prompt io.Writer) *ConsoleInput {
	return &ConsoleInput{reader: bufio.NewReader(rd), prompt: prompt}
}

func (in *ConsoleInput) Read(name string) (string, error) {
	if in.prompt != nil {
		fmt.Fprintf(in.prompt, "value for %s: ", name)
	}
	line, err := in.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF {
			return "", ErrNoInput
		}
		return "", errors.Wrapf(err, "vm: read value for %s", name)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ConsoleOutput writes "label = value" lines.
type ConsoleOutput struct {
	w io.Writer
}

func NewConsoleOutput(w io.Writer) *ConsoleOutput {
	return &ConsoleOutput{w: w}
}

func (out *ConsoleOutput) Write(label string, value Value) error {
	_, err := fmt.Fprintf(out.w, "%s = %s\n", label, value)
	return err
}

// ScriptedInput answers requests from a fixed sequence of values, in order.
type ScriptedInput struct {
	values []string
	next   int
}

func NewScriptedInput(values ...string) *ScriptedInput {
	return &ScriptedInput{values: values}
}

func (in *ScriptedInput) Read(name string) (string, error) {
	if in.next >= len(in.values) {
		return "", ErrNoInput
	}
	v := in.values[in.next]
	in.next++
	return v, nil
}

// Emission is one value written by ESCRIBIR.
type Emission struct {
	Label string
	Value Value
}

// RecordedOutput keeps everything written to it.
type RecordedOutput struct {
	Emissions []Emission
}

func (out *RecordedOutput) Write(label string, value Value) error {
	out.Emissions = append(out.Emissions, Emission{Label: label, Value: value})
	return nil
}
