package explorer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/dired/backend/internal/events"
	"github.com/GriffinCanCode/dired/backend/internal/logging"
	"github.com/GriffinCanCode/dired/backend/internal/vfs"
)

// OperationError records one failed operation inside a batch.
type OperationError struct {
	Op      string `json:"operation"`
	Message string `json:"message"`
}

// Report summarizes an executed batch.
type Report struct {
	BatchID   string           `json:"batch_id"`
	Succeeded int              `json:"succeeded"`
	Errors    []OperationError `json:"errors"`
}

// Summary renders the aggregate result for notifications.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d succeeded, %d errors", r.Succeeded, len(r.Errors))
}

// Executor applies operation batches strictly sequentially: one operation
// completes before the next begins, regardless of kind. The ordering the
// reconciler produced (children before parents on delete, parents before
// children on create) is what keeps batches correct, so no dependency
// graph is needed.
type Executor struct {
	fs      vfs.FS
	scanner *Scanner
	hub     *events.Hub
	log     *logging.Logger
}

// NewExecutor creates an executor.
func NewExecutor(fsys vfs.FS, scanner *Scanner, hub *events.Hub, log *logging.Logger) *Executor {
	return &Executor{fs: fsys, scanner: scanner, hub: hub, log: log}
}

// Run executes a batch against dir, then triggers a fresh scan so the
// caller adopts the filesystem's authoritative state. Each operation's
// failure is collected and the batch continues; preErrors seeds the
// report with failures detected before execution (paste collisions).
// The returned snapshot is nil when the re-scan itself failed.
func (e *Executor) Run(ctx context.Context, dir string, includeHidden bool, ops []Operation, preErrors ...OperationError) (*Report, *Snapshot) {
	report := &Report{BatchID: uuid.NewString(), Errors: preErrors}

	for _, op := range ops {
		if err := e.apply(ctx, op); err != nil {
			report.Errors = append(report.Errors, OperationError{
				Op:      op.Describe(),
				Message: err.Error(),
			})
			e.log.Warn("operation failed",
				zap.String("batch", report.BatchID),
				zap.String("op", op.Describe()),
				zap.Error(err),
			)
			continue
		}
		report.Succeeded++
	}

	if len(ops) > 0 || len(preErrors) > 0 {
		if len(report.Errors) > 0 {
			e.hub.Warning(report.Summary())
			for _, oe := range report.Errors {
				e.hub.Error(fmt.Sprintf("%s: %s", oe.Op, oe.Message))
			}
		} else {
			e.hub.Info(report.Summary())
		}
	}

	snap, err := e.scanner.Scan(ctx, dir, includeHidden)
	if err != nil {
		// The previous snapshot stays displayed; only notify.
		e.hub.Error(fmt.Sprintf("rescan failed: %v", err))
		return report, nil
	}
	return report, snap
}

func (e *Executor) apply(ctx context.Context, op Operation) error {
	switch op.Kind {
	case OpCreate:
		if op.IsDir {
			err := e.fs.Mkdir(ctx, op.Path)
			if err != nil && errors.Is(err, fs.ErrExist) {
				// Racing creates of the same directory are fine.
				return nil
			}
			return err
		}
		return e.fs.CreateFile(ctx, op.Path, nil)
	case OpDelete:
		if op.IsDir {
			return e.fs.Rmdir(ctx, op.Path)
		}
		return e.fs.Unlink(ctx, op.Path)
	case OpRename, OpMove:
		return e.fs.Rename(ctx, op.Path, op.Dest)
	case OpCopy:
		return e.copyPath(ctx, op.Path, op.Dest)
	default:
		return fmt.Errorf("unknown operation kind %d", op.Kind)
	}
}

// copyPath copies a file, or a directory tree one entry at a time with
// parents created before children. Deliberately not concurrent: each step
// waits for the previous one.
func (e *Executor) copyPath(ctx context.Context, src, dest string) error {
	info, err := e.fs.Stat(ctx, src)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		return e.fs.CopyFile(ctx, src, dest)
	}

	if err := e.fs.Mkdir(ctx, dest); err != nil && !errors.Is(err, fs.ErrExist) {
		return err
	}

	names, err := e.fs.ListNames(ctx, src)
	if err != nil {
		return err
	}
	sort.Strings(names)

	for _, name := range names {
		if err := e.copyPath(ctx, filepath.Join(src, name), filepath.Join(dest, name)); err != nil {
			return err
		}
	}
	return nil
}
