package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"platypus/interpreter-go/pkg/interpreter"
	"platypus/interpreter-go/pkg/lexer"
	"platypus/interpreter-go/pkg/parser"
	"platypus/interpreter-go/pkg/runtime"
)

const cliToolVersion = "platypus 0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return 1
	}

	switch args[0] {
	case "--help", "-h":
		printUsage(stdout)
		return 0
	case "--version", "-v", "version":
		fmt.Fprintln(stdout, cliToolVersion)
		return 0
	case "run":
		if len(args) != 2 {
			printUsage(stderr)
			return 1
		}
		return runFile(args[1], stdout, stderr)
	case "repl":
		return runRepl(stdin, stdout, stderr)
	default:
		// A bare script path works the same as "run <file>".
		if strings.HasSuffix(args[0], ".plat") && len(args) == 1 {
			return runFile(args[0], stdout, stderr)
		}
		printUsage(stderr)
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  platypus run <file.plat>")
	fmt.Fprintln(w, "  platypus <file.plat>")
	fmt.Fprintln(w, "  platypus repl")
	fmt.Fprintln(w, "  platypus --version")
}

func runFile(path string, stdout, stderr io.Writer) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	program, err := parser.ParseSource(string(source))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	interp := interpreter.New()
	interp.SetStdout(stdout)
	if _, err := interp.EvaluateProgram(program); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runRepl(stdin io.Reader, stdout, stderr io.Writer) int {
	interp := interpreter.New()
	interp.SetStdout(stdout)

	fmt.Fprintln(stdout, "Platypus REPL")
	fmt.Fprintln(stdout, "Type 'exit' or press Ctrl+D to quit")

	scanner := bufio.NewScanner(stdin)
	for {
		fmt.Fprint(stdout, ">> ")
		if !scanner.Scan() {
			fmt.Fprintln(stdout, "Goodbye!")
			return 0
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			fmt.Fprintln(stdout, "Goodbye!")
			return 0
		}

		result, err := evalLine(interp, line)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			continue
		}
		if result != nil && result.Kind() != runtime.KindNull {
			fmt.Fprintln(stdout, runtime.Format(result))
		}
	}
}

func evalLine(interp *interpreter.Interpreter, line string) (runtime.Value, error) {
	tokens, err := lexer.Tokenize(line)
	if err != nil {
		return nil, err
	}
	program, err := parser.New(tokens).Parse()
	if err != nil {
		return nil, err
	}
	return interp.EvaluateProgram(program)
}
