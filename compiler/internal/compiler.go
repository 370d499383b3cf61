package internal

import (
	"github.com/xiaobogaga/vci/quad"
)

// Result collects what every stage of a compilation produced. Stages after a failing
// one don't run, so their fields stay empty.
type Result struct {
	Tokens         []*Token
	LexicalErrors  []*Diagnostic
	SyntaxErrors   []*Diagnostic
	SemanticErrors []*Diagnostic
	AST            *Node
	SymbolTable    *SymbolTable
	Instructions   []quad.Instruction
}

// OK reports whether code was generated, i.e. parsing and analysis found nothing wrong.
// Lexical errors don't block the later stages; the tokens that were recognized are
// still parsed.
func (result *Result) OK() bool {
	return len(result.SyntaxErrors) == 0 && len(result.SemanticErrors) == 0 && result.Instructions != nil
}

// Diagnostics returns every diagnostic, lexical first.
func (result *Result) Diagnostics() []*Diagnostic {
	var all []*Diagnostic
	all = append(all, result.LexicalErrors...)
	all = append(all, result.SyntaxErrors...)
	return append(all, result.SemanticErrors...)
}

func Compile(source string) *Result {
	tokenizer := &Tokenizer{}
	tokens, lexErrs := tokenizer.TokenizeString(source)
	return CompileTokens(tokens, lexErrs)
}

// CompileTokens runs the stages after the tokenizer. Semantic analysis only runs on a
// tree without syntax errors, code generation only when analysis found nothing.
func CompileTokens(tokens []*Token, lexErrs []*Diagnostic) *Result {
	result := &Result{Tokens: tokens, LexicalErrors: lexErrs}
	infof("compiler: start parser over %d tokens", len(tokens))
	parser := &Parser{}
	result.AST, result.SyntaxErrors = parser.Parse(tokens)
	if len(result.SyntaxErrors) > 0 {
		infof("compiler: %d syntax errors, stop", len(result.SyntaxErrors))
		return result
	}
	infof("compiler: start semantic analysis")
	result.SymbolTable, result.SemanticErrors = NewSemanticAnalyzer().Analyze(result.AST)
	if len(result.SemanticErrors) > 0 {
		infof("compiler: %d semantic errors, stop", len(result.SemanticErrors))
		return result
	}
	infof("compiler: start generate codes")
	result.Instructions = NewCodeGenerator().Generate(result.AST)
	if result.Instructions == nil {
		result.Instructions = []quad.Instruction{}
	}
	return result
}
