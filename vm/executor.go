// Package vm runs quadruple programs. It holds a variable store, an operand stack and
// an instruction pointer, and records a snapshot of the machine before every step.
package vm

import (
	"fmt"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pkg/errors"
	"github.com/xiaobogaga/vci/quad"
)

// T traces to the global interpreter tracer.
func T() tracing.Trace {
	return gtrace.InterpreterTracer
}

func debugf(format string, args ...interface{}) {
	if t := T(); t != nil {
		t.Debugf(format, args...)
	}
}

// ErrStepLimit is returned by Run when Options.MaxSteps instructions ran without the
// program ending.
var ErrStepLimit = errors.New("vm: step limit reached")

type Options struct {
	Input  Input
	Output Output
	// MaxSteps bounds the number of executed instructions. Zero means no bound.
	MaxSteps int
}

// Binding is one entry of the variable store.
type Binding struct {
	Name  string
	Value Value
}

// Snapshot is the state of the machine right before Instruction ran. Stack and
// Variables are copies. Note explains anything unusual about the step, e.g. an
// unresolved label.
type Snapshot struct {
	Instruction quad.Instruction
	Stack       []Value
	Variables   []Binding
	Note        string
}

type Executor struct {
	instructions []quad.Instruction
	labels       map[string]int
	options      Options

	ip        int
	steps     int
	stack     []Value
	variables map[string]int // name -> index into bindings
	bindings  []Binding
	trace     []Snapshot
}

// NewExecutor prepares instructions for running. Input and Output default to a
// ScriptedInput with no values and a RecordedOutput.
func NewExecutor(instructions []quad.Instruction, options Options) *Executor {
	program := make([]quad.Instruction, len(instructions))
	copy(program, instructions)
	if options.Input == nil {
		options.Input = NewScriptedInput()
	}
	if options.Output == nil {
		options.Output = &RecordedOutput{}
	}
	return &Executor{
		instructions: program,
		labels:       quad.Labels(program),
		options:      options,
		variables:    map[string]int{},
	}
}

// Run executes from the first instruction until the instruction pointer moves past the
// last one. Execution problems never stop the machine, they are noted in the trace. The
// only error is ErrStepLimit, wrapped.
func (e *Executor) Run() error {
	for e.ip < len(e.instructions) {
		if e.options.MaxSteps > 0 && e.steps >= e.options.MaxSteps {
			debugf("vm: stopped at ip=%d after %d steps", e.ip, e.steps)
			return errors.Wrapf(ErrStepLimit, "after %d steps at instruction %d", e.steps, e.ip)
		}
		ins := e.instructions[e.ip]
		snapshot := e.snapshot(ins)
		next, note := e.step(ins)
		snapshot.Note = note
		e.trace = append(e.trace, snapshot)
		if note != "" {
			debugf("vm: %d: %s: %s", e.ip, ins, note)
		}
		e.ip = next
		e.steps++
	}
	debugf("vm: halted after %d steps, %d variables", e.steps, len(e.bindings))
	return nil
}

// step executes one instruction and returns the next instruction pointer.
func (e *Executor) step(ins quad.Instruction) (int, string) {
	next := e.ip + 1
	switch {
	case ins.Op == quad.Assign:
		v := e.Resolve(ins.Arg1)
		e.store(ins.Result, v)
		e.push(v)
	case ins.Op.IsBinary():
		v := Apply(ins.Op, e.Resolve(ins.Arg1), e.Resolve(ins.Arg2))
		e.store(ins.Result, v)
		e.push(v)
	case ins.Op == quad.IfFalse:
		if e.Resolve(ins.Arg1).Truthy() {
			return next, ""
		}
		return e.jump(ins)
	case ins.Op == quad.Goto:
		return e.jump(ins)
	case ins.Op == quad.Label:
	case ins.Op == quad.Read || ins.Op == quad.ReadAlt:
		text, err := e.options.Input.Read(ins.Result)
		if err != nil {
			e.store(ins.Result, Text(""))
			return next, fmt.Sprintf("read %s: %v", ins.Result, err)
		}
		e.store(ins.Result, e.Resolve(text))
	case ins.Op == quad.Write || ins.Op == quad.WriteAlt:
		if err := e.options.Output.Write(ins.Arg1, e.Resolve(ins.Arg1)); err != nil {
			return next, fmt.Sprintf("write %s: %v", ins.Arg1, err)
		}
	default:
		return next, fmt.Sprintf("unknown operation: %s", ins.Op)
	}
	return next, ""
}

// jump moves to the label ins refers to. An unknown label leaves the instruction
// pointer where it is, so the same instruction runs again.
func (e *Executor) jump(ins quad.Instruction) (int, string) {
	target := ins.JumpTarget()
	if index, ok := e.labels[target]; ok {
		return index, ""
	}
	return e.ip, "label not found: " + target
}

// Resolve gives an operand its value: a variable's value if the operand names one,
// otherwise the operand read as a literal.
func (e *Executor) Resolve(operand string) Value {
	if v, ok := e.Lookup(operand); ok {
		return v
	}
	return ParseLiteral(operand)
}

func (e *Executor) store(name string, v Value) {
	if index, ok := e.variables[name]; ok {
		e.bindings[index].Value = v
		return
	}
	e.variables[name] = len(e.bindings)
	e.bindings = append(e.bindings, Binding{Name: name, Value: v})
}

func (e *Executor) push(v Value) {
	e.stack = append(e.stack, v)
}

func (e *Executor) snapshot(ins quad.Instruction) Snapshot {
	return Snapshot{
		Instruction: ins,
		Stack:       e.Stack(),
		Variables:   e.Variables(),
	}
}

// Lookup returns the current value of a variable or temporary.
func (e *Executor) Lookup(name string) (Value, bool) {
	index, ok := e.variables[name]
	if !ok {
		return Value{}, false
	}
	return e.bindings[index].Value, true
}

// Variables returns a copy of the variable store in first-assignment order.
func (e *Executor) Variables() []Binding {
	bindings := make([]Binding, len(e.bindings))
	copy(bindings, e.bindings)
	return bindings
}

// Stack returns a copy of the operand stack, bottom first.
func (e *Executor) Stack() []Value {
	stack := make([]Value, len(e.stack))
	copy(stack, e.stack)
	return stack
}

// Trace returns one snapshot per executed step.
func (e *Executor) Trace() []Snapshot {
	return e.trace
}

// Steps returns how many instructions ran.
func (e *Executor) Steps() int {
	return e.steps
}
