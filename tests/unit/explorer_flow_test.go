package unit

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/dired/backend/internal/events"
	"github.com/GriffinCanCode/dired/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/dired/backend/internal/logging"
	"github.com/GriffinCanCode/dired/backend/internal/providers/explorer"
	"github.com/GriffinCanCode/dired/backend/internal/shared/types"
	"github.com/GriffinCanCode/dired/backend/internal/vfs"
	"github.com/GriffinCanCode/dired/backend/tests/helpers/testutil"
)

func newExplorer(t *testing.T) (*explorer.Provider, string) {
	t.Helper()
	root := t.TempDir()
	cfg := config.ExplorerConfig{
		Root:        root,
		ScanWorkers: 8,
		SearchLimit: 100,
	}
	p := explorer.NewProvider(vfs.NewLocal(), cfg, events.NewHub(), logging.NewNop())
	t.Cleanup(func() { _ = p.Close() })
	return p, root
}

func run(t *testing.T, p *explorer.Provider, toolID string, params map[string]interface{}) *types.Result {
	t.Helper()
	result, err := p.Execute(context.Background(), toolID, params, nil)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestExplorerFlow_ScanCommit(t *testing.T) {
	p, root := newExplorer(t)
	writeFile(t, filepath.Join(root, "notes.txt"), "n")
	writeFile(t, filepath.Join(root, "old", "junk.txt"), "j")
	writeFile(t, filepath.Join(root, "old", ".hidden"), "h")

	result := run(t, p, "explorer.scan", map[string]interface{}{"path": root})
	testutil.AssertSuccess(t, result)
	assert.Equal(t, []string{"notes.txt", "old/"}, result.Data["lines"])

	// Drop the directory, add a nested file.
	result = run(t, p, "explorer.commit", map[string]interface{}{
		"path":  root,
		"lines": []interface{}{"notes.txt", "projects/demo/readme.md"},
	})
	testutil.AssertDataField(t, result, "changed", true)
	testutil.AssertDataField(t, result, "succeeded", 6)
	assert.Equal(t, []string{"notes.txt", "projects/"}, result.Data["lines"])

	_, err := os.Stat(filepath.Join(root, "old"))
	assert.True(t, os.IsNotExist(err), "directory removed including hidden children")
	assert.FileExists(t, filepath.Join(root, "projects", "demo", "readme.md"))
}

func TestExplorerFlow_Rename(t *testing.T) {
	p, root := newExplorer(t)
	writeFile(t, filepath.Join(root, "draft.txt"), "d")
	writeFile(t, filepath.Join(root, "final.txt"), "f")

	run(t, p, "explorer.scan", map[string]interface{}{"path": root})

	result := run(t, p, "explorer.commit", map[string]interface{}{
		"path":  root,
		"lines": []interface{}{"published.txt", "final.txt"},
	})
	testutil.AssertDataField(t, result, "succeeded", 1)

	assert.NoFileExists(t, filepath.Join(root, "draft.txt"))
	assert.FileExists(t, filepath.Join(root, "published.txt"))
}

func TestExplorerFlow_CutPaste(t *testing.T) {
	p, root := newExplorer(t)
	writeFile(t, filepath.Join(root, "inbox", "task.txt"), "t")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "archive"), 0o755))

	run(t, p, "explorer.scan", map[string]interface{}{"path": filepath.Join(root, "inbox")})
	run(t, p, "explorer.mark", map[string]interface{}{
		"names": []interface{}{"task.txt"},
		"mode":  "cut",
	})

	result := run(t, p, "explorer.paste", map[string]interface{}{
		"destination": filepath.Join(root, "archive"),
	})
	testutil.AssertDataField(t, result, "succeeded", 1)

	assert.NoFileExists(t, filepath.Join(root, "inbox", "task.txt"))
	assert.FileExists(t, filepath.Join(root, "archive", "task.txt"))

	// The cut selection was consumed by the clean paste.
	result = run(t, p, "explorer.clipboard.status", nil)
	testutil.AssertDataField(t, result, "empty", true)
}

func TestExplorerFlow_CopyIntoSource(t *testing.T) {
	p, root := newExplorer(t)
	writeFile(t, filepath.Join(root, "report.txt"), "r")

	run(t, p, "explorer.scan", map[string]interface{}{"path": root})
	run(t, p, "explorer.mark", map[string]interface{}{
		"names": []interface{}{"report.txt"},
		"mode":  "copy",
	})

	result := run(t, p, "explorer.paste", map[string]interface{}{"destination": root})
	testutil.AssertDataField(t, result, "succeeded", 1)
	assert.FileExists(t, filepath.Join(root, "report_copy.txt"))

	result = run(t, p, "explorer.paste", map[string]interface{}{"destination": root})
	testutil.AssertDataField(t, result, "succeeded", 1)
	assert.FileExists(t, filepath.Join(root, "report_copy2.txt"))
}

func TestExplorerFlow_Search(t *testing.T) {
	p, root := newExplorer(t)
	writeFile(t, filepath.Join(root, "src", "main.go"), "package main")
	writeFile(t, filepath.Join(root, "src", "util", "helper.go"), "package util")
	writeFile(t, filepath.Join(root, "README.md"), "readme")

	result := run(t, p, "explorer.search", map[string]interface{}{"pattern": "**/*.go"})
	testutil.AssertSuccess(t, result)
	matches := result.Data["matches"].([]explorer.SearchMatch)
	require.Len(t, matches, 2)
	assert.Equal(t, filepath.Join("src", "main.go"), matches[0].Path)
	assert.Equal(t, filepath.Join("src", "util", "helper.go"), matches[1].Path)

	// Substring match on base names.
	result = run(t, p, "explorer.search", map[string]interface{}{"pattern": "READ"})
	matches = result.Data["matches"].([]explorer.SearchMatch)
	require.Len(t, matches, 1)
	assert.Equal(t, "README.md", matches[0].Path)

	// Depth cap prunes the nested package.
	result = run(t, p, "explorer.search", map[string]interface{}{
		"pattern":   "**/*.go",
		"max_depth": float64(2),
	})
	matches = result.Data["matches"].([]explorer.SearchMatch)
	require.Len(t, matches, 1)
	assert.Equal(t, filepath.Join("src", "main.go"), matches[0].Path)
}

func TestExplorerFlow_Tree(t *testing.T) {
	p, root := newExplorer(t)
	writeFile(t, filepath.Join(root, "a", "b.txt"), "b")
	writeFile(t, filepath.Join(root, "c.txt"), "c")

	result := run(t, p, "explorer.tree", map[string]interface{}{"path": root})
	testutil.AssertSuccess(t, result)

	rendered := result.Data["tree"].(string)
	lines := strings.Split(strings.TrimRight(rendered, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, filepath.Base(root)+"/", lines[0])
	assert.Equal(t, "  a/", lines[1])
	assert.Equal(t, "    b.txt", lines[2])
	assert.Equal(t, "  c.txt", lines[3])
}

func TestExplorerFlow_MetadataDetectsMime(t *testing.T) {
	p, root := newExplorer(t)
	writeFile(t, filepath.Join(root, "page.html"), "<!DOCTYPE html><html><body></body></html>")

	result := run(t, p, "explorer.metadata", map[string]interface{}{
		"path": filepath.Join(root, "page.html"),
	})
	testutil.AssertDataField(t, result, "kind", "file")
	mime, ok := result.Data["mime"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(mime, "text/html"), "got %s", mime)
}

func TestExplorerFlow_RootConfinement(t *testing.T) {
	p, _ := newExplorer(t)

	result := run(t, p, "explorer.scan", map[string]interface{}{"path": "/etc"})
	testutil.AssertError(t, result)
	assert.Contains(t, *result.Error, "escapes browse root")
}
