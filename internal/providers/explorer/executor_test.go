package explorer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/dired/backend/internal/events"
	"github.com/GriffinCanCode/dired/backend/internal/logging"
	"github.com/GriffinCanCode/dired/backend/tests/helpers/testutil"
)

func newExecutor(fsys *testutil.MemFS) *Executor {
	log := logging.NewNop()
	return NewExecutor(fsys, NewScanner(fsys, 4, log), events.NewHub(), log)
}

func TestExecutor_BatchSurvivesFailure(t *testing.T) {
	fsys := testutil.NewMemFS().AddDir("/dir").AddFile("/dir/taken.txt", nil)
	exec := newExecutor(fsys)

	ops := []Operation{
		{Kind: OpCreate, Path: "/dir/one.txt"},
		{Kind: OpCreate, Path: "/dir/two.txt"},
		{Kind: OpCreate, Path: "/dir/taken.txt"}, // already exists
		{Kind: OpCreate, Path: "/dir/three.txt"},
		{Kind: OpCreate, Path: "/dir/four.txt"},
	}

	report, snap := exec.Run(context.Background(), "/dir", false, ops)
	require.NotNil(t, report)
	assert.Equal(t, 4, report.Succeeded)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0].Op, "/dir/taken.txt")
	assert.Equal(t, "4 succeeded, 1 errors", report.Summary())

	// Operations after the failure still ran.
	require.NotNil(t, snap)
	assert.Contains(t, snap.DisplayNames(), "three.txt")
	assert.Contains(t, snap.DisplayNames(), "four.txt")
}

func TestExecutor_MkdirExistsIsIdempotent(t *testing.T) {
	fsys := testutil.NewMemFS().AddDir("/dir/already")
	exec := newExecutor(fsys)

	report, _ := exec.Run(context.Background(), "/dir", false, []Operation{
		{Kind: OpCreate, Path: "/dir/already", IsDir: true},
	})
	assert.Equal(t, 1, report.Succeeded)
	assert.Empty(t, report.Errors)
}

func TestExecutor_RescanReflectsBatch(t *testing.T) {
	fsys := testutil.NewMemFS().AddFile("/dir/old.txt", nil)
	exec := newExecutor(fsys)

	report, snap := exec.Run(context.Background(), "/dir", false, []Operation{
		{Kind: OpDelete, Path: "/dir/old.txt"},
		{Kind: OpCreate, Path: "/dir/new.txt"},
	})
	assert.Equal(t, 2, report.Succeeded)
	require.NotNil(t, snap)
	assert.Equal(t, []string{"new.txt"}, snap.DisplayNames())
}

func TestExecutor_RescanFailureReturnsNilSnapshot(t *testing.T) {
	fsys := testutil.NewMemFS().AddDir("/dir").AddFile("/dir/f.txt", nil)
	exec := newExecutor(fsys)

	// Deleting the batch directory itself makes the rescan fail.
	report, snap := exec.Run(context.Background(), "/dir", false, []Operation{
		{Kind: OpDelete, Path: "/dir/f.txt"},
		{Kind: OpDelete, Path: "/dir", IsDir: true},
	})
	assert.Equal(t, 2, report.Succeeded)
	assert.Nil(t, snap)
}

func TestExecutor_CopyDirectoryTree(t *testing.T) {
	fsys := testutil.NewMemFS().
		AddFile("/dir/src/a.txt", []byte("a")).
		AddFile("/dir/src/sub/b.txt", []byte("b"))
	exec := newExecutor(fsys)

	report, snap := exec.Run(context.Background(), "/dir", false, []Operation{
		{Kind: OpCopy, Path: "/dir/src", Dest: "/dir/dst", IsDir: true},
	})
	assert.Equal(t, 1, report.Succeeded)
	assert.Empty(t, report.Errors)

	assert.True(t, fsys.Exists("/dir/dst/a.txt"))
	assert.True(t, fsys.Exists("/dir/dst/sub/b.txt"))
	require.NotNil(t, snap)
	assert.Equal(t, []string{"dst/", "src/"}, snap.DisplayNames())
}

func TestExecutor_MoveUsesRename(t *testing.T) {
	fsys := testutil.NewMemFS().
		AddFile("/dir/src/deep/leaf.txt", nil).
		AddDir("/elsewhere")
	exec := newExecutor(fsys)

	report, _ := exec.Run(context.Background(), "/elsewhere", false, []Operation{
		{Kind: OpMove, Path: "/dir/src", Dest: "/elsewhere/src", IsDir: true},
	})
	assert.Equal(t, 1, report.Succeeded)
	assert.False(t, fsys.Exists("/dir/src"))
	assert.True(t, fsys.Exists("/elsewhere/src/deep/leaf.txt"))
}

func TestExecutor_PreErrorsSeedReport(t *testing.T) {
	fsys := testutil.NewMemFS().AddDir("/dir")
	exec := newExecutor(fsys)

	pre := OperationError{Op: "copy /x -> /dir/x", Message: "target exists"}
	report, _ := exec.Run(context.Background(), "/dir", false, []Operation{
		{Kind: OpCreate, Path: "/dir/ok.txt"},
	}, pre)

	assert.Equal(t, 1, report.Succeeded)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, pre, report.Errors[0])
	assert.Equal(t, "1 succeeded, 1 errors", report.Summary())
}

func TestExecutor_NotifiesOutcome(t *testing.T) {
	fsys := testutil.NewMemFS().AddDir("/dir")
	log := logging.NewNop()
	hub := events.NewHub()
	exec := NewExecutor(fsys, NewScanner(fsys, 4, log), hub, log)

	ch, cancel := hub.Subscribe()
	defer cancel()

	exec.Run(context.Background(), "/dir", false, []Operation{
		{Kind: OpCreate, Path: "/dir/ok.txt"},
	})

	msg := <-ch
	assert.Equal(t, "1 succeeded, 0 errors", msg.Message)
}

func TestExecutor_UnknownKindFails(t *testing.T) {
	fsys := testutil.NewMemFS().AddDir("/dir")
	exec := newExecutor(fsys)

	err := exec.apply(context.Background(), Operation{Kind: OpKind(42), Path: "/dir/x"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, context.Canceled))
}
