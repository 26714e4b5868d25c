package explorer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/GriffinCanCode/dired/backend/internal/vfs"
)

// hiddenPrefix marks entries dropped from scans unless hidden files are requested.
const hiddenPrefix = "."

// dirSuffix is the trailing marker that distinguishes directories in
// display names and edited lines.
const dirSuffix = "/"

// Sentinel errors surfaced to callers.
var (
	ErrClipboardEmpty = errors.New("clipboard is empty")
	ErrSamePlaceCut   = errors.New("cut and paste into the same directory cannot be performed")
	ErrNoSnapshot     = errors.New("no snapshot loaded for this directory")
)

// Entry is one directory entry, immutable once produced by a stat call.
type Entry struct {
	Name    string      `json:"name"`
	Kind    vfs.Kind    `json:"-"`
	Size    uint64      `json:"size"`
	Mode    fs.FileMode `json:"-"`
	OwnerID uint32      `json:"owner_id"`
	ModTime time.Time   `json:"modified"`
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool {
	return e.Kind == vfs.KindDirectory
}

// DisplayName returns the name as it appears in the listing; directories
// carry a trailing separator.
func (e Entry) DisplayName() string {
	if e.IsDir() {
		return e.Name + dirSuffix
	}
	return e.Name
}

// Snapshot is the sorted, point-in-time state of one directory. It is
// replaced wholesale on every re-scan, never patched.
type Snapshot struct {
	Path       string
	Generation uint64
	Entries    []Entry
}

// Lookup finds an entry by raw name.
func (s *Snapshot) Lookup(name string) (Entry, bool) {
	for _, e := range s.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// DisplayNames returns one display name per entry, in snapshot order.
func (s *Snapshot) DisplayNames() []string {
	names := make([]string, len(s.Entries))
	for i, e := range s.Entries {
		names[i] = e.DisplayName()
	}
	return names
}

// OpKind tags an Operation variant.
type OpKind uint8

const (
	OpCreate OpKind = iota
	OpDelete
	OpRename
	OpCopy
	OpMove
)

// String returns the lowercase operation name.
func (k OpKind) String() string {
	switch k {
	case OpCreate:
		return "create"
	case OpDelete:
		return "delete"
	case OpRename:
		return "rename"
	case OpCopy:
		return "copy"
	case OpMove:
		return "move"
	default:
		return "unknown"
	}
}

// Operation is one filesystem mutation. Path is the target for Create and
// Delete and the source for the two-path kinds; Dest is the destination.
type Operation struct {
	Kind  OpKind `json:"kind"`
	Path  string `json:"path"`
	Dest  string `json:"dest,omitempty"`
	IsDir bool   `json:"is_dir"`
}

// Describe renders the operation for reports and logs.
func (op Operation) Describe() string {
	switch op.Kind {
	case OpRename, OpCopy, OpMove:
		return fmt.Sprintf("%s %s -> %s", op.Kind, op.Path, op.Dest)
	default:
		return fmt.Sprintf("%s %s", op.Kind, op.Path)
	}
}

// ScanError is fatal to a whole scan: the directory itself was unreadable.
type ScanError struct {
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan %s: %v", e.Path, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// pathExists reports whether a path stats successfully.
func pathExists(ctx context.Context, fsys vfs.FS, path string) bool {
	_, err := fsys.Stat(ctx, path)
	return err == nil
}
