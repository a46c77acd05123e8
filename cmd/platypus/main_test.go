package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args []string, stdin string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeScript(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.plat")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunFilePrints(t *testing.T) {
	path := writeScript(t, "x = 40\nprint(x + 2)\n")
	code, stdout, stderr := runCLI(t, []string{"run", path}, "")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	if stdout != "42\n" {
		t.Fatalf("stdout = %q", stdout)
	}
}

func TestBareScriptPath(t *testing.T) {
	path := writeScript(t, `print("hello")`)
	code, stdout, _ := runCLI(t, []string{path}, "")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if stdout != "hello\n" {
		t.Fatalf("stdout = %q", stdout)
	}
}

func TestRunMissingFile(t *testing.T) {
	code, _, stderr := runCLI(t, []string{"run", "no-such-file.plat"}, "")
	if code != 1 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.HasPrefix(stderr, "Error: ") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestRuntimeErrorReported(t *testing.T) {
	path := writeScript(t, "print(missing)\n")
	code, _, stderr := runCLI(t, []string{"run", path}, "")
	if code != 1 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stderr, "Undefined variable: missing") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestVersionFlag(t *testing.T) {
	code, stdout, _ := runCLI(t, []string{"--version"}, "")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if strings.TrimSpace(stdout) != cliToolVersion {
		t.Fatalf("stdout = %q", stdout)
	}
}

func TestNoArgsShowsUsage(t *testing.T) {
	code, _, stderr := runCLI(t, nil, "")
	if code != 1 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stderr, "Usage:") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestReplEvaluatesAndKeepsState(t *testing.T) {
	input := "x = 10\nx + 5\nexit\n"
	code, stdout, stderr := runCLI(t, []string{"repl"}, input)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	if !strings.Contains(stdout, "15") {
		t.Fatalf("stdout = %q", stdout)
	}
}

func TestReplReportsErrorAndContinues(t *testing.T) {
	input := "nope\nprint(1)\nexit\n"
	code, stdout, stderr := runCLI(t, []string{"repl"}, input)
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stderr, "Undefined variable: nope") {
		t.Fatalf("stderr = %q", stderr)
	}
	if !strings.Contains(stdout, "1\n") {
		t.Fatalf("stdout = %q", stdout)
	}
}
