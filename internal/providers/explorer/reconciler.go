package explorer

import (
	"context"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/dired/backend/internal/logging"
	"github.com/GriffinCanCode/dired/backend/internal/vfs"
)

// wordChar gates the rename short-circuit: a new name must contain at
// least one word character to count as an intentional rename.
var wordChar = regexp.MustCompile(`\w`)

// Reconciler diffs an edited line list against a Snapshot and produces an
// ordered operation list.
type Reconciler struct {
	fs  vfs.FS
	log *logging.Logger
}

// NewReconciler creates a reconciler.
func NewReconciler(fsys vfs.FS, log *logging.Logger) *Reconciler {
	return &Reconciler{fs: fsys, log: log}
}

// Reconcile turns the edited listing back into filesystem operations.
//
// When line count matches the snapshot and exactly one line changed, the
// edit is a single rename. Otherwise a set diff yields deletions (expanded
// post-order for directories, children before parents) followed by
// creations ordered by path depth so parents are created first. A deletion
// plus a creation of a similarly named entry stays two independent
// operations; no rename inference is attempted.
func (r *Reconciler) Reconcile(ctx context.Context, snap *Snapshot, lines []string) ([]Operation, error) {
	if op, ok := r.singleRename(snap, lines); ok {
		return []Operation{op}, nil
	}

	original := make(map[string]Entry, len(snap.Entries))
	for _, e := range snap.Entries {
		original[e.DisplayName()] = e
	}

	current := make(map[string]struct{}, len(lines))
	order := make([]string, 0, len(lines))
	for _, line := range lines {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		if _, dup := current[name]; dup {
			continue
		}
		current[name] = struct{}{}
		order = append(order, name)
	}

	ops := r.deletions(ctx, snap, current)
	ops = append(ops, r.creations(ctx, snap, original, order)...)
	return ops, nil
}

// singleRename detects the common "edit one name in place" case. It fires
// only when line counts match exactly; simultaneous rename plus create or
// delete falls through to the general diff.
func (r *Reconciler) singleRename(snap *Snapshot, lines []string) (Operation, bool) {
	if len(lines) == 0 || len(lines) != len(snap.Entries) {
		return Operation{}, false
	}

	changed := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == snap.Entries[i].DisplayName() {
			continue
		}
		if changed >= 0 {
			// More than one line differs: ambiguous, use the set diff.
			return Operation{}, false
		}
		changed = i
	}
	if changed < 0 {
		return Operation{}, false
	}

	newName := strings.TrimSpace(lines[changed])
	if !wordChar.MatchString(newName) {
		return Operation{}, false
	}
	newName = strings.TrimSuffix(newName, dirSuffix)

	old := snap.Entries[changed]
	return Operation{
		Kind:  OpRename,
		Path:  filepath.Join(snap.Path, old.Name),
		Dest:  filepath.Join(snap.Path, newName),
		IsDir: old.IsDir(),
	}, true
}

// deletions emits a Delete for every snapshot entry missing from the
// edited lines, expanding directories depth-first in post-order.
func (r *Reconciler) deletions(ctx context.Context, snap *Snapshot, current map[string]struct{}) []Operation {
	var ops []Operation
	for _, e := range snap.Entries {
		if _, kept := current[e.DisplayName()]; kept {
			continue
		}

		abs := filepath.Join(snap.Path, e.Name)
		if e.IsDir() {
			expanded, err := r.expandDelete(ctx, abs)
			if err != nil {
				// Emit what we have; the executor reports the rmdir failure.
				r.log.Warn("delete expansion incomplete",
					zap.String("path", abs),
					zap.Error(err),
				)
			}
			ops = append(ops, expanded...)
		}
		ops = append(ops, Operation{Kind: OpDelete, Path: abs, IsDir: e.IsDir()})
	}
	return ops
}

// expandDelete enumerates a directory recursively and emits deletes for
// every descendant, children before parents. Hidden entries are included:
// the directory must end up empty.
func (r *Reconciler) expandDelete(ctx context.Context, dir string) ([]Operation, error) {
	names, err := r.fs.ListNames(ctx, dir)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	var ops []Operation
	var firstErr error
	for _, name := range names {
		child := filepath.Join(dir, name)
		info, err := r.fs.Stat(ctx, child)
		if err != nil {
			// Try the unlink anyway; the executor isolates the failure.
			ops = append(ops, Operation{Kind: OpDelete, Path: child})
			continue
		}

		if info.IsDir() {
			sub, err := r.expandDelete(ctx, child)
			if err != nil && firstErr == nil {
				firstErr = err
			}
			ops = append(ops, sub...)
			ops = append(ops, Operation{Kind: OpDelete, Path: child, IsDir: true})
		} else {
			ops = append(ops, Operation{Kind: OpDelete, Path: child})
		}
	}
	return ops, firstErr
}

// creations emits Creates for edited lines with no snapshot counterpart,
// shallowest paths first, materializing missing intermediate directories.
func (r *Reconciler) creations(ctx context.Context, snap *Snapshot, original map[string]Entry, order []string) []Operation {
	var names []string
	for _, name := range order {
		if _, existed := original[name]; !existed {
			names = append(names, name)
		}
	}
	sort.SliceStable(names, func(i, j int) bool {
		return pathDepth(names[i]) < pathDepth(names[j])
	})

	var ops []Operation
	emitted := make(map[string]struct{})
	for _, name := range names {
		isDir := strings.HasSuffix(name, dirSuffix)
		rel := strings.TrimSuffix(name, dirSuffix)
		segments := strings.Split(rel, dirSuffix)

		parent := snap.Path
		for _, seg := range segments[:len(segments)-1] {
			parent = filepath.Join(parent, seg)
			if _, done := emitted[parent]; done {
				continue
			}
			emitted[parent] = struct{}{}
			if pathExists(ctx, r.fs, parent) {
				continue
			}
			ops = append(ops, Operation{Kind: OpCreate, Path: parent, IsDir: true})
		}

		leaf := filepath.Join(snap.Path, rel)
		if isDir {
			if _, done := emitted[leaf]; done {
				continue
			}
			emitted[leaf] = struct{}{}
			ops = append(ops, Operation{Kind: OpCreate, Path: leaf, IsDir: true})
		} else {
			ops = append(ops, Operation{Kind: OpCreate, Path: leaf})
		}
	}
	return ops
}

// pathDepth counts separator characters in a display name, ignoring the
// trailing directory marker.
func pathDepth(name string) int {
	return strings.Count(strings.TrimSuffix(name, dirSuffix), dirSuffix)
}
