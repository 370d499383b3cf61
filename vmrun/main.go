package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pkg/errors"
	"github.com/xiaobogaga/vci/quad"
	"github.com/xiaobogaga/vci/vm"
)

// A program executing a VCI instruction table, e.g. the vci.csv written by the compiler.
// The execution trace and the final variables are saved next to each other in -o.

var (
	inputPath  = flag.String("i", "./output/vci.csv", "the instruction table to execute")
	outputDir  = flag.String("o", "./output", "the directory receiving the trace and variables")
	maxSteps   = flag.Int("max-steps", 0, "stop after this many steps, 0 means no limit")
	values     = flag.String("input", "", "comma separated values answering leer, instead of stdin")
	verbose    = flag.Bool("v", false, "whether print the instructions before running")
	traceLevel = flag.String("trace", "error", "trace level: error, info or debug")
)

func main() {
	flag.Parse()
	if err := gtrace.CreateTracers(gologadapter.GetAdapter()); err == nil {
		gtrace.InterpreterTracer.SetTraceLevel(tracing.TraceLevelFromString(*traceLevel))
	}
	instructions, err := load(*inputPath)
	if err != nil {
		fmt.Printf("[VM]: failed to load %s, err: %v\n", *inputPath, err)
		os.Exit(1)
	}
	if *verbose {
		for i, ins := range instructions {
			fmt.Printf("%4d  %s\n", i, ins)
		}
	}
	options := vm.Options{Output: vm.NewConsoleOutput(os.Stdout), MaxSteps: *maxSteps}
	if *values != "" {
		options.Input = vm.NewScriptedInput(strings.Split(*values, ",")...)
	} else {
		options.Input = vm.NewConsoleInput(os.Stdin, os.Stdout)
	}
	executor := vm.NewExecutor(instructions, options)
	runErr := executor.Run()
	if err := save(executor); err != nil {
		fmt.Printf("[VM]: failed to save to %s, err: %v\n", *outputDir, err)
		os.Exit(1)
	}
	if runErr != nil {
		fmt.Printf("[VM]: run stopped, err: %v\n", runErr)
		os.Exit(1)
	}
	fmt.Printf("[VM]: %d steps, results saved to %s\n", executor.Steps(), *outputDir)
}

func load(path string) ([]quad.Instruction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return quad.ReadCSV(f)
}

func save(executor *vm.Executor) error {
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		return err
	}
	tables := map[string]func(io.Writer) error{
		"vci_execution.csv": func(w io.Writer) error { return vm.WriteTraceCSV(w, executor.Trace()) },
		"final_vars.csv":    func(w io.Writer) error { return vm.WriteVariablesCSV(w, executor.Variables()) },
	}
	for name, write := range tables {
		path := filepath.Join(*outputDir, name)
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrapf(err, "create %s", path)
		}
		err = write(f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return errors.Wrapf(err, "save %s", path)
		}
	}
	return nil
}
