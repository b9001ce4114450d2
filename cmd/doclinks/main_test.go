package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/starford/doclinks/internal/testutil"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), append([]string{"doclinks"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestCheck_Clean(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"index.md": "[guide](guide.md) [site](https://example.com)\n",
		"guide.md": "[home](index.md)\n",
	})

	code, out, _ := runCLI(t, "check", "--path", root)
	require.Equal(t, 0, code)
	require.Contains(t, out, "No broken links found!")
}

func TestCheck_BrokenExitsOne(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"index.md": "intro\n\n[gone](missing.md)\n",
	})

	code, out, errOut := runCLI(t, "--no-color", "check", "--path", root, "--verbose")
	require.Equal(t, 1, code)
	require.Contains(t, out, "Found 1 broken links:")
	require.Contains(t, out, "File: index.md:3")
	require.Contains(t, out, "Markdown: [gone](missing.md)")
	require.NotContains(t, errOut, "Error:")
}

func TestCheck_JSON(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"a.md": "[x][missing]\n",
	})

	code, out, _ := runCLI(t, "check", "-p", root, "-f", "json")
	require.Equal(t, 1, code)

	var got struct {
		BrokenCount int `json:"broken_count"`
		Broken      []struct {
			Class  string `json:"class"`
			Reason string `json:"reason"`
		} `json:"broken_links"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, 1, got.BrokenCount)
	require.Equal(t, "unresolvable", got.Broken[0].Class)
	require.Contains(t, got.Broken[0].Reason, "missing")
}

func TestStats(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"doc1.md":   "[doc2](doc2.md) [web](https://example.com)\n",
		"doc2.md":   "[one](doc1.md) [none](nope.md)\n",
		"orphan.md": "nothing\n",
	})

	code, out, _ := runCLI(t, "stats", "--path", root)
	require.Equal(t, 0, code)
	require.Contains(t, out, "Total Documents: 3")
	require.Contains(t, out, "Total Links: 4")
	require.Contains(t, out, "Internal Links: 3 (75%)")
	require.Contains(t, out, "Orphaned Documents: 1")
	require.Contains(t, out, "doc2.md 2 links (2 internal, 0 external, 1 broken)")
}

func TestOrphans_Strict(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"index.md":  "[a](a.md)\n",
		"a.md":      "back [home](index.md)\n",
		"lonely.md": "no links here\n",
	})

	code, out, _ := runCLI(t, "orphans", "--path", root, "--entry", "index.md")
	require.Equal(t, 0, code)
	require.Contains(t, out, "Found 1 orphaned documents:")
	require.Contains(t, out, "lonely.md")

	code, _, _ = runCLI(t, "orphans", "--path", root, "--entry", "index.md", "--strict")
	require.Equal(t, 1, code)
}

func TestGraph(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"a.md": "[b](b.md)\n",
		"b.md": "[a](./a.md)\n",
	})

	code, out, _ := runCLI(t, "graph", "--path", root)
	require.Equal(t, 0, code)
	require.Equal(t, "a.md -> b.md\nb.md -> a.md\n", out)
}

func TestFatalErrors(t *testing.T) {
	cases := map[string][]string{
		"missing root":   {"check", "--path", filepath.Join(t.TempDir(), "absent")},
		"missing entry":  {"orphans", "--path", t.TempDir(), "--entry", "nope.md"},
		"invalid format": {"stats", "--path", t.TempDir(), "--format", "xml"},
		"bad log level":  {"--log-level", "loud", "check", "--path", t.TempDir()},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			code, _, errOut := runCLI(t, args...)
			require.Equal(t, 1, code)
			require.Contains(t, errOut, "Error:")
			require.Contains(t, errOut, "configuration error")
		})
	}
}

func TestConfigFile(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"start.md": "[a](a.md)\n",
		"a.md":     "text\n",
	})
	cfgPath := filepath.Join(t.TempDir(), "doclinks.yaml")
	data := "scan:\n  root: " + root + "\n  entry_point: start.md\noutput:\n  format: json\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(data), 0o644))

	code, out, _ := runCLI(t, "--config", cfgPath, "orphans")
	require.Equal(t, 0, code)

	var got struct {
		EntryPoint string   `json:"entry_point"`
		Orphans    []string `json:"orphaned_documents"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, "start.md", got.EntryPoint)
	require.Empty(t, got.Orphans)
}

func TestConfigFile_FlagsOverride(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"a.md": "[b](b.md)\n",
	})
	cfgPath := filepath.Join(t.TempDir(), "doclinks.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[output]\nformat = \"json\"\n"), 0o644))

	code, out, _ := runCLI(t, "--config", cfgPath, "check", "--path", root, "--format", "text")
	require.Equal(t, 1, code)
	require.Contains(t, out, "Found 1 broken links:")
}
