//go:build stave

package main

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":     Build,
	"t":     Test.Default,
	"l":     Lint.Default,
	"c":     Check,
	"fuzz":  Parser.Fuzz,
	"smoke": Smoke,
}

// Namespace types group related targets.
type (
	Test   st.Namespace
	Lint   st.Namespace
	Parser st.Namespace
)

// binary is where Build puts mdtouch.
const binary = "bin/mdtouch"

// Build compiles mdtouch with version info when sources changed.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	fmt.Println("Building mdtouch...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, "./cmd/mdtouch")
}

// Install installs mdtouch to $GOBIN or $GOPATH/bin.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/mdtouch")
}

// Clean removes build artifacts.
func Clean() error {
	if err := sh.Rm("bin"); err != nil {
		return err
	}
	return sh.Rm("coverage.out")
}

// Check formats, vets, lints and tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Vet, Lint.Default, Test.Default)
}

// Smoke builds mdtouch and drives every editing command against a scratch
// document: list, edit, append, dry run, export and restore.
func Smoke() error {
	st.Deps(Build)

	dir, err := os.MkdirTemp("", "mdtouch-smoke")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	doc := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(doc, []byte("# Notes\n\nfirst\n\n- a\n- b\n"), 0o644); err != nil {
		return err
	}
	config := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(config, []byte("backup:\n  enabled: true\n"), 0o644); err != nil {
		return err
	}

	steps := [][]string{
		{"blocks", doc},
		{"blocks", doc, "--query", `.[] | select(.kind == "list") | .id`},
		{"edit", doc, "--id", "4", "--text", "second", "--dry-run"},
		{"edit", doc, "--id", "4", "--text", "second"},
		{"append", doc, "--text", "```go\nfmt.Println()\n```"},
		{"show", doc, "--ids"},
		{"export", doc},
		{"restore", doc},
	}
	for _, args := range steps {
		fmt.Println("$ mdtouch", strings.Join(args, " "))
		if err := sh.RunV(binary, append([]string{"--config", config}, args...)...); err != nil {
			return fmt.Errorf("mdtouch %s: %w", args[0], err)
		}
	}
	return nil
}

// Default runs all tests through gotestsum with race detection and coverage.
func (Test) Default() error {
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", "pkgname-and-test-fails",
		"--",
		"-race",
		"-p", nCores,
		"-parallel", nCores,
		"./...",
		"-coverprofile=coverage.out",
		"-covermode=atomic",
	)
}

// Short skips the large-input parser tests.
func (Test) Short() error {
	return sh.RunV("go", "tool", "gotestsum", "-f", "pkgname", "--", "-short", "./...")
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// Vet runs go vet.
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Bench runs the block splitter benchmarks, including the large inline inputs.
func (Parser) Bench() error {
	return sh.RunV("go", "test",
		"-run", "^$",
		"-bench", "^BenchmarkSplitBlocks$",
		"-benchmem",
		"./pkg/parser/gfm",
	)
}

// Fuzz runs the block splitter fuzz target for FUZZTIME (default 30s).
func (Parser) Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("FUZZTIME"), "30s")
	fmt.Printf("Fuzzing block splitter for %s...\n", fuzzTime)
	return sh.RunV("go", "test",
		"-run", "^$",
		"-fuzz", "^FuzzSplitBlocks$",
		"-fuzztime", fuzzTime,
		"./pkg/parser/gfm",
	)
}

// gitOutput runs a git command and returns trimmed stdout, or empty on error.
func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags returns the linker flags for version injection.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s", version, commit, date)
}
