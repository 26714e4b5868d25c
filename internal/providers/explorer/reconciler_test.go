package explorer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/dired/backend/internal/logging"
	"github.com/GriffinCanCode/dired/backend/internal/vfs"
	"github.com/GriffinCanCode/dired/backend/tests/helpers/testutil"
)

func fileEntry(name string) Entry {
	return Entry{Name: name, Kind: vfs.KindFile, Mode: 0o644, ModTime: time.Now()}
}

func dirEntry(name string) Entry {
	return Entry{Name: name, Kind: vfs.KindDirectory, ModTime: time.Now()}
}

func TestReconciler_NoEditsNoOps(t *testing.T) {
	fsys := testutil.NewMemFS().AddFile("/dir/a.txt", nil).AddDir("/dir/sub")
	rec := NewReconciler(fsys, logging.NewNop())

	snap := &Snapshot{Path: "/dir", Entries: []Entry{fileEntry("a.txt"), dirEntry("sub")}}

	ops, err := rec.Reconcile(context.Background(), snap, []string{"a.txt", "sub/"})
	require.NoError(t, err)
	assert.Empty(t, ops)
}

func TestReconciler_SingleLineRename(t *testing.T) {
	fsys := testutil.NewMemFS()
	rec := NewReconciler(fsys, logging.NewNop())

	snap := &Snapshot{Path: "/dir", Entries: []Entry{fileEntry("a.txt"), fileEntry("b.txt")}}

	ops, err := rec.Reconcile(context.Background(), snap, []string{"a.txt", "renamed.txt"})
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, OpRename, ops[0].Kind)
	assert.Equal(t, "/dir/b.txt", ops[0].Path)
	assert.Equal(t, "/dir/renamed.txt", ops[0].Dest)
	assert.Zero(t, fsys.CallCount(), "rename detection needs no filesystem calls")
}

func TestReconciler_DirectoryRenameKeepsMarker(t *testing.T) {
	fsys := testutil.NewMemFS()
	rec := NewReconciler(fsys, logging.NewNop())

	snap := &Snapshot{Path: "/dir", Entries: []Entry{dirEntry("old")}}

	ops, err := rec.Reconcile(context.Background(), snap, []string{"new/"})
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, OpRename, ops[0].Kind)
	assert.Equal(t, "/dir/old", ops[0].Path)
	assert.Equal(t, "/dir/new", ops[0].Dest)
	assert.True(t, ops[0].IsDir)
}

func TestReconciler_NoWordCharFallsThrough(t *testing.T) {
	fsys := testutil.NewMemFS().AddFile("/dir/a.txt", nil)
	rec := NewReconciler(fsys, logging.NewNop())

	snap := &Snapshot{Path: "/dir", Entries: []Entry{fileEntry("a.txt")}}

	// "---" has no word character, so this is a delete plus a create,
	// not a rename.
	ops, err := rec.Reconcile(context.Background(), snap, []string{"---"})
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, OpDelete, ops[0].Kind)
	assert.Equal(t, "/dir/a.txt", ops[0].Path)
	assert.Equal(t, OpCreate, ops[1].Kind)
	assert.Equal(t, "/dir/---", ops[1].Path)
}

func TestReconciler_NoRenameInference(t *testing.T) {
	fsys := testutil.NewMemFS().AddFile("/dir/report.txt", nil)
	rec := NewReconciler(fsys, logging.NewNop())

	snap := &Snapshot{Path: "/dir", Entries: []Entry{fileEntry("report.txt")}}

	// Line count differs from the snapshot, so even a near-identical new
	// name stays two independent operations.
	ops, err := rec.Reconcile(context.Background(), snap, []string{"report-final.txt", "extra.txt"})
	require.NoError(t, err)
	require.Len(t, ops, 3)
	assert.Equal(t, OpDelete, ops[0].Kind)
	assert.Equal(t, OpCreate, ops[1].Kind)
	assert.Equal(t, OpCreate, ops[2].Kind)
}

func TestReconciler_DeleteDirectoryPostOrder(t *testing.T) {
	fsys := testutil.NewMemFS().
		AddFile("/dir/d/f.txt", nil).
		AddFile("/dir/d/.hidden", nil).
		AddFile("/dir/d/sub/deep.txt", nil).
		AddFile("/dir/keep.txt", nil)
	rec := NewReconciler(fsys, logging.NewNop())

	snap := &Snapshot{Path: "/dir", Entries: []Entry{dirEntry("d"), fileEntry("keep.txt")}}

	ops, err := rec.Reconcile(context.Background(), snap, []string{"keep.txt"})
	require.NoError(t, err)

	pos := make(map[string]int, len(ops))
	for i, op := range ops {
		require.Equal(t, OpDelete, op.Kind)
		pos[op.Path] = i
	}

	// Children before parents, hidden children included.
	assert.Contains(t, pos, "/dir/d/.hidden")
	assert.Less(t, pos["/dir/d/f.txt"], pos["/dir/d"])
	assert.Less(t, pos["/dir/d/.hidden"], pos["/dir/d"])
	assert.Less(t, pos["/dir/d/sub/deep.txt"], pos["/dir/d/sub"])
	assert.Less(t, pos["/dir/d/sub"], pos["/dir/d"])
}

func TestReconciler_DeleteExpansionSurvivesStatFailure(t *testing.T) {
	fsys := testutil.NewMemFS().
		AddFile("/dir/d/ok.txt", nil).
		AddFile("/dir/d/broken.txt", nil)
	fsys.StatErr["/dir/d/broken.txt"] = errors.New("permission denied")
	rec := NewReconciler(fsys, logging.NewNop())

	snap := &Snapshot{Path: "/dir", Entries: []Entry{dirEntry("d")}}

	ops, err := rec.Reconcile(context.Background(), snap, nil)
	require.NoError(t, err)

	// The unreadable child still gets a delete attempt; the executor
	// isolates any failure.
	var paths []string
	for _, op := range ops {
		paths = append(paths, op.Path)
	}
	assert.Contains(t, paths, "/dir/d/broken.txt")
	assert.Contains(t, paths, "/dir/d/ok.txt")
	assert.Equal(t, "/dir/d", paths[len(paths)-1])
}

func TestReconciler_NestedCreateOrder(t *testing.T) {
	fsys := testutil.NewMemFS().AddDir("/dir")
	rec := NewReconciler(fsys, logging.NewNop())

	snap := &Snapshot{Path: "/dir", Entries: []Entry{}}

	ops, err := rec.Reconcile(context.Background(), snap, []string{"a/b/c.txt"})
	require.NoError(t, err)
	require.Len(t, ops, 3)

	assert.Equal(t, Operation{Kind: OpCreate, Path: "/dir/a", IsDir: true}, ops[0])
	assert.Equal(t, Operation{Kind: OpCreate, Path: "/dir/a/b", IsDir: true}, ops[1])
	assert.Equal(t, Operation{Kind: OpCreate, Path: "/dir/a/b/c.txt"}, ops[2])
}

func TestReconciler_ExistingIntermediatesSkipped(t *testing.T) {
	fsys := testutil.NewMemFS().AddDir("/dir/a")
	rec := NewReconciler(fsys, logging.NewNop())

	snap := &Snapshot{Path: "/dir", Entries: []Entry{dirEntry("a")}}

	ops, err := rec.Reconcile(context.Background(), snap, []string{"a/", "a/b/c.txt"})
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, Operation{Kind: OpCreate, Path: "/dir/a/b", IsDir: true}, ops[0])
	assert.Equal(t, Operation{Kind: OpCreate, Path: "/dir/a/b/c.txt"}, ops[1])
}

func TestReconciler_BlankAndDuplicateLines(t *testing.T) {
	fsys := testutil.NewMemFS().AddFile("/dir/a.txt", nil)
	rec := NewReconciler(fsys, logging.NewNop())

	snap := &Snapshot{Path: "/dir", Entries: []Entry{fileEntry("a.txt")}}

	ops, err := rec.Reconcile(context.Background(), snap, []string{"", "a.txt", "  ", "a.txt", "b.txt", "b.txt"})
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, Operation{Kind: OpCreate, Path: "/dir/b.txt"}, ops[0])
}

func TestReconciler_EmptyListingDeletesEverything(t *testing.T) {
	fsys := testutil.NewMemFS().AddFile("/dir/a.txt", nil).AddFile("/dir/b.txt", nil)
	rec := NewReconciler(fsys, logging.NewNop())

	snap := &Snapshot{Path: "/dir", Entries: []Entry{fileEntry("a.txt"), fileEntry("b.txt")}}

	ops, err := rec.Reconcile(context.Background(), snap, nil)
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, OpDelete, ops[0].Kind)
	assert.Equal(t, OpDelete, ops[1].Kind)
}

func TestPathDepth(t *testing.T) {
	assert.Equal(t, 0, pathDepth("a.txt"))
	assert.Equal(t, 0, pathDepth("a/"))
	assert.Equal(t, 1, pathDepth("a/b"))
	assert.Equal(t, 1, pathDepth("a/b/"))
	assert.Equal(t, 2, pathDepth("a/b/c.txt"))
}
