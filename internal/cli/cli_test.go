package cli_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/yaklabco/mdtouch/internal/cli"
	"github.com/yaklabco/mdtouch/internal/configloader"
	"github.com/yaklabco/mdtouch/pkg/fsutil"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{Version: "test", Commit: "test", Date: "test"}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}
	if cmd.Use != "mdtouch" {
		t.Errorf("expected Use to be 'mdtouch', got %q", cmd.Use)
	}
	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}
	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	expected := []string{"blocks", "show", "edit", "append", "export", "restore", "init", "config", "version"}
	for _, name := range expected {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}
		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"debug", "config", "no-config", "color", "no-wiki-links"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected global flag %q to exist", name)
		}
	}
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		command string
		flags   []string
	}{
		{"blocks", []string{"format", "query"}},
		{"show", []string{"id", "ids", "raw", "tree"}},
		{"edit", []string{"id", "text", "stdin", "force", "dry-run"}},
		{"append", []string{"text", "stdin", "force", "dry-run"}},
		{"export", []string{"output", "xhtml"}},
		{"init", []string{"force", "output"}},
		{"config", []string{"env"}},
	}

	cmd := cli.NewRootCommand(testInfo())
	for _, tt := range tests {
		sub, _, err := cmd.Find([]string{tt.command})
		if err != nil {
			t.Fatalf("%s command not found: %v", tt.command, err)
		}
		for _, name := range tt.flags {
			if sub.Flags().Lookup(name) == nil {
				t.Errorf("expected flag %q on %s", name, tt.command)
			}
		}
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"usage", fmt.Errorf("%w: bad flag", cli.ErrUsage), cli.ExitUsage},
		{"invalid config", fmt.Errorf("load: %w", configloader.ErrInvalidConfig), cli.ExitUsage},
		{"modified", fmt.Errorf("%w: a.md", fsutil.ErrModified), cli.ExitModified},
		{"other", errors.New("boom"), cli.ExitError},
	}

	for _, tt := range tests {
		if got := cli.ExitCode(tt.err); got != tt.want {
			t.Errorf("ExitCode(%s) = %d, want %d", tt.name, got, tt.want)
		}
	}
}
