package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtouch/internal/cli"
	"github.com/yaklabco/mdtouch/pkg/config"
)

// testDoc splits into "# Title", "\n", "\n", "hello", "\n" with ids 1 to 5.
const testDoc = "# Title\n\nhello\n"

type result struct {
	stdout string
	stderr string
	err    error
}

// run executes the root command with config files ignored and colour off.
func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2024-01-01"})

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--color", "never"}, args...))

	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeDoc(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readDoc(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestIntegration_BlocksJSON(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, testDoc)
	res := run(t, "", "--no-config", "blocks", path, "--format", "json")
	require.NoError(t, res.err)

	var records []struct {
		ID   int    `json:"id"`
		Line int    `json:"line"`
		Kind string `json:"kind"`
		Src  string `json:"src"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &records))
	require.Len(t, records, 5)

	assert.Equal(t, 1, records[0].ID)
	assert.Equal(t, "h1", records[0].Kind)
	assert.Equal(t, "# Title", records[0].Src)
	assert.Equal(t, "blank", records[1].Kind)
	assert.Equal(t, "paragraph", records[3].Kind)
	assert.Equal(t, "hello", records[3].Src)
	assert.Equal(t, 1, records[0].Line)
	assert.Equal(t, 3, records[3].Line)
}

func TestIntegration_BlocksQuery(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, testDoc)
	res := run(t, "", "--no-config", "blocks", path, "--query", `.[] | select(.kind == "paragraph") | .id`)
	require.NoError(t, res.err)
	assert.Equal(t, "4\n", res.stdout)
}

func TestIntegration_BlocksInvalidQuery(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, testDoc)
	res := run(t, "", "--no-config", "blocks", path, "--query", ".[")
	require.Error(t, res.err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(res.err))
}

func TestIntegration_BlocksText(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, testDoc)
	res := run(t, "", "--no-config", "blocks", path)
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "KIND")
	assert.Contains(t, res.stdout, "# Title")
	assert.Contains(t, res.stdout, "5 blocks in "+path)
}

func TestIntegration_BlocksYAML(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, testDoc)
	res := run(t, "", "--no-config", "blocks", path, "--format", "yaml")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "- id: 1\n  kind: h1\n")
}

func TestIntegration_BlocksUnknownFormat(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, testDoc)
	res := run(t, "", "--no-config", "blocks", path, "--format", "xml")
	require.Error(t, res.err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(res.err))
}

func TestIntegration_Show(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, testDoc)

	res := run(t, "", "--no-config", "show", path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "# Title")
	assert.Contains(t, res.stdout, "hello")

	res = run(t, "", "--no-config", "show", path, "--id", "4", "--raw")
	require.NoError(t, res.err)
	assert.Equal(t, "hello", res.stdout)

	res = run(t, "", "--no-config", "show", path, "--tree")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "block 1\nHeading level=1 [0,7)\n  HeadingMarker \"#\"\n")
	assert.Contains(t, res.stdout, "block 4\nParagraph [0,5)\n  Text \"hello\"\n")

	res = run(t, "", "--no-config", "show", path, "--tree", "--raw")
	require.Error(t, res.err)

	res = run(t, "", "--no-config", "show", path, "--id", "99")
	require.Error(t, res.err)
	assert.Equal(t, cli.ExitError, cli.ExitCode(res.err))
}

func TestIntegration_Edit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		args  []string
		stdin string
		want  string
	}{
		{
			name: "replace paragraph",
			args: []string{"--id", "4", "--text", "bye"},
			want: "# Title\n\nbye\n",
		},
		{
			name: "replace with several blocks",
			args: []string{"--id", "4", "--text", "a\n\nb"},
			want: "# Title\n\na\n\nb\n",
		},
		{
			name: "delete heading",
			args: []string{"--id", "1", "--text", ""},
			want: "\n\nhello\n",
		},
		{
			name:  "stdin drops the final newline",
			args:  []string{"--id", "4", "--stdin"},
			stdin: "from stdin\n",
			want:  "# Title\n\nfrom stdin\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeDoc(t, testDoc)
			args := append([]string{"--no-config", "edit", path}, tt.args...)

			res := run(t, tt.stdin, args...)
			require.NoError(t, res.err)
			assert.Equal(t, tt.want, readDoc(t, path))
			assert.Contains(t, res.stdout, "saved")
		})
	}
}

func TestIntegration_EditMissingBlock(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, testDoc)

	res := run(t, "", "--no-config", "edit", path, "--id", "99", "--text", "x")
	require.Error(t, res.err)
	assert.Equal(t, testDoc, readDoc(t, path))

	res = run(t, "", "--no-config", "edit", path, "--id", "-1", "--text", "x")
	require.Error(t, res.err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(res.err))
}

func TestIntegration_EditRequiresText(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, testDoc)
	res := run(t, "", "--no-config", "edit", path, "--id", "4")
	require.Error(t, res.err)
	assert.Equal(t, testDoc, readDoc(t, path))
}

func TestIntegration_Append(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, testDoc)

	res := run(t, "", "--no-config", "append", path, "--text", "- item")
	require.NoError(t, res.err)
	assert.Equal(t, testDoc+"\n\n- item", readDoc(t, path))

	res = run(t, "", "--no-config", "append", path, "--text", "")
	require.NoError(t, res.err)
	assert.Equal(t, testDoc+"\n\n- item", readDoc(t, path))
	assert.NotContains(t, res.stdout, "saved")
}

func TestIntegration_DryRun(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, testDoc)

	res := run(t, "", "--no-config", "edit", path, "--id", "4", "--text", "bye", "--dry-run")
	require.NoError(t, res.err)
	assert.Equal(t, testDoc, readDoc(t, path))
	assert.Contains(t, res.stdout, "-hello\n")
	assert.Contains(t, res.stdout, "+bye\n")
	assert.NotContains(t, res.stdout, "saved")

	res = run(t, "", "--no-config", "append", path, "-n", "--text", "- item")
	require.NoError(t, res.err)
	assert.Equal(t, testDoc, readDoc(t, path))
	assert.Contains(t, res.stdout, "+- item\n")
}

func TestIntegration_BackupAndRestore(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, testDoc)
	cfgPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("backup:\n  enabled: true\n"), 0o644))

	res := run(t, "", "--config", cfgPath, "edit", path, "--id", "4", "--text", "changed")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "backup "+path+".bak")
	assert.Equal(t, testDoc, readDoc(t, path+".bak"))
	assert.Equal(t, "# Title\n\nchanged\n", readDoc(t, path))

	res = run(t, "", "--config", cfgPath, "restore", path)
	require.NoError(t, res.err)
	assert.Equal(t, testDoc, readDoc(t, path))
}

func TestIntegration_RestoreWithoutBackup(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, testDoc)
	res := run(t, "", "--no-config", "restore", path)
	require.Error(t, res.err)
}

func TestIntegration_Export(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, testDoc+"\nsee [[Home]]\n")

	res := run(t, "", "--no-config", "export", path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "<h1>Title</h1>")
	assert.Contains(t, res.stdout, "<p>hello</p>")
	assert.Contains(t, res.stdout, `href="Home.html"`)

	out := filepath.Join(t.TempDir(), "doc.html")
	res = run(t, "", "--no-config", "--no-wiki-links", "export", path, "-o", out)
	require.NoError(t, res.err)
	html := readDoc(t, out)
	assert.Contains(t, html, "<h1>Title</h1>")
	assert.Contains(t, html, "[[Home]]")
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), config.ProjectFileName)

	res := run(t, "", "--no-config", "init", "--output", out)
	require.NoError(t, res.err)
	assert.Equal(t, string(config.Template()), readDoc(t, out))

	res = run(t, "", "--no-config", "init", "--output", out)
	require.Error(t, res.err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(res.err))

	res = run(t, "", "--no-config", "init", "--output", out, "--force")
	require.NoError(t, res.err)
}

func TestIntegration_Config(t *testing.T) {
	t.Parallel()

	res := run(t, "", "--no-config", "--no-wiki-links", "config")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "wiki_links: false")

	res = run(t, "", "--no-config", "config", "--env")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "MDTOUCH_LOG_LEVEL")
}

func TestIntegration_InvalidColor(t *testing.T) {
	t.Parallel()

	path := writeDoc(t, testDoc)
	res := run(t, "", "--no-config", "--color", "purple", "blocks", path)
	require.Error(t, res.err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(res.err))
}

func TestIntegration_Version(t *testing.T) {
	t.Parallel()

	res := run(t, "", "version")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "version=1.2.3")
	assert.Contains(t, res.stdout, "commit=abc123")
}
