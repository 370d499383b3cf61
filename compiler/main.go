package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pkg/errors"
	"github.com/sanity-io/litter"
	"github.com/xiaobogaga/vci/compiler/internal"
	"github.com/xiaobogaga/vci/quad"
	"github.com/xiaobogaga/vci/vm"
)

// A program compiling a programa source into a VCI instruction table. Every stage
// leaves its table in the output directory, so a failed compilation can be inspected.

var (
	inputPath  = flag.String("i", "./prog.txt", "the source file to compile")
	tokensPath = flag.String("tokens", "", "compile from a token table instead of -i")
	outputDir  = flag.String("o", "./output", "the directory receiving the tables")
	run        = flag.Bool("run", false, "whether execute the generated instructions")
	maxSteps   = flag.Int("max-steps", 0, "stop a run after this many steps, 0 means no limit")
	dump       = flag.Bool("dump", false, "whether print the ast")
	traceLevel = flag.String("trace", "error", "trace level: error, info or debug")
)

func main() {
	flag.Parse()
	setupTracing(*traceLevel)
	result, err := compile()
	if err != nil {
		fmt.Printf("[Compiler]: failed to compile, err: %+v\n", err)
		os.Exit(1)
	}
	if *dump && result.AST != nil {
		fmt.Print(result.AST)
		if result.SymbolTable != nil {
			litter.Dump(result.SymbolTable.Symbols())
		}
	}
	for _, d := range result.Diagnostics() {
		fmt.Println(d.Error())
	}
	if err := saveTables(result); err != nil {
		fmt.Printf("[Compiler]: failed to save to %s, err: %v\n", *outputDir, err)
		os.Exit(1)
	}
	if !result.OK() {
		fmt.Printf("[Compiler]: %d lexical, %d syntax, %d semantic errors\n",
			len(result.LexicalErrors), len(result.SyntaxErrors), len(result.SemanticErrors))
		os.Exit(1)
	}
	fmt.Printf("[Compiler]: %d instructions saved to %s\n", len(result.Instructions), *outputDir)
	if *run {
		if err := execute(result.Instructions); err != nil {
			fmt.Printf("[Compiler]: run stopped, err: %v\n", err)
			os.Exit(1)
		}
	}
}

func setupTracing(level string) {
	if err := gtrace.CreateTracers(gologadapter.GetAdapter()); err != nil {
		fmt.Printf("[Compiler]: tracing disabled, err: %v\n", err)
		return
	}
	l := tracing.TraceLevelFromString(level)
	gtrace.SyntaxTracer.SetTraceLevel(l)
	gtrace.InterpreterTracer.SetTraceLevel(l)
}

func compile() (*internal.Result, error) {
	if *tokensPath != "" {
		f, err := os.Open(*tokensPath)
		if err != nil {
			return nil, errors.Wrapf(err, "open %s", *tokensPath)
		}
		defer f.Close()
		tokens, err := internal.ReadTokensCSV(f)
		if err != nil {
			return nil, err
		}
		return internal.CompileTokens(tokens, nil), nil
	}
	source, err := ioutil.ReadFile(*inputPath)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", *inputPath)
	}
	return internal.Compile(string(source)), nil
}

func saveTables(result *internal.Result) error {
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		return errors.Wrapf(err, "create %s", *outputDir)
	}
	tables := []struct {
		name  string
		write func(io.Writer) error
	}{
		{"tokens.csv", func(w io.Writer) error { return internal.WriteTokensCSV(w, result.Tokens) }},
		{"lexical_errors.csv", func(w io.Writer) error { return internal.WriteDiagnosticsCSV(w, result.LexicalErrors) }},
		{"syntax_errors.csv", func(w io.Writer) error { return internal.WriteDiagnosticsCSV(w, result.SyntaxErrors) }},
		{"semantic_errors.csv", func(w io.Writer) error { return internal.WriteDiagnosticsCSV(w, result.SemanticErrors) }},
		{"symbol_table.csv", func(w io.Writer) error { return internal.WriteSymbolsCSV(w, result.SymbolTable) }},
		{"vci.csv", func(w io.Writer) error { return quad.WriteCSV(w, result.Instructions) }},
	}
	for _, table := range tables {
		if err := saveTo(filepath.Join(*outputDir, table.name), table.write); err != nil {
			return err
		}
	}
	return nil
}

func execute(instructions []quad.Instruction) error {
	executor := vm.NewExecutor(instructions, vm.Options{
		Input:    vm.NewConsoleInput(os.Stdin, os.Stdout),
		Output:   vm.NewConsoleOutput(os.Stdout),
		MaxSteps: *maxSteps,
	})
	runErr := executor.Run()
	err := saveTo(filepath.Join(*outputDir, "vci_execution.csv"), func(w io.Writer) error {
		return vm.WriteTraceCSV(w, executor.Trace())
	})
	if err != nil {
		return err
	}
	err = saveTo(filepath.Join(*outputDir, "final_vars.csv"), func(w io.Writer) error {
		return vm.WriteVariablesCSV(w, executor.Variables())
	})
	if err != nil {
		return err
	}
	return runErr
}

func saveTo(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := write(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "save %s", path)
	}
	return f.Close()
}
