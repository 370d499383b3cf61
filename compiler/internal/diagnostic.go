package internal

import (
	"fmt"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the global syntax tracer.
func T() tracing.Trace {
	return gtrace.SyntaxTracer
}

func debugf(format string, args ...interface{}) {
	if t := T(); t != nil {
		t.Debugf(format, args...)
	}
}

func infof(format string, args ...interface{}) {
	if t := T(); t != nil {
		t.Infof(format, args...)
	}
}

// Stage tells which compiler stage produced a diagnostic.
type Stage int

const (
	LexicalStage Stage = iota
	SyntaxStage
	SemanticStage
)

func (s Stage) String() string {
	switch s {
	case LexicalStage:
		return "lexical"
	case SyntaxStage:
		return "syntax"
	case SemanticStage:
		return "semantic"
	}
	return "unknown"
}

// Diagnostic is a recorded, non-fatal problem found while compiling. Line and
// Column are -1 when no position is known, e.g. when input ended early.
type Diagnostic struct {
	Stage   Stage
	Message string
	Value   string
	Line    int
	Column  int
}

func (d *Diagnostic) Error() string {
	if d.Line < 0 {
		return fmt.Sprintf("%s error: %s near %s", d.Stage, d.Message, d.Value)
	}
	return fmt.Sprintf("%s error: %s near %s at line %d, column %d", d.Stage, d.Message, d.Value, d.Line, d.Column)
}

func makeDiagnostic(stage Stage, value string, line, column int, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Stage:   stage,
		Message: fmt.Sprintf(format, args...),
		Value:   value,
		Line:    line,
		Column:  column,
	}
}
