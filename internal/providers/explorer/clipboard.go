package explorer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/dired/backend/internal/events"
	"github.com/GriffinCanCode/dired/backend/internal/logging"
	"github.com/GriffinCanCode/dired/backend/internal/vfs"
)

// ClipMode distinguishes copy from cut selections.
type ClipMode uint8

const (
	ClipCopy ClipMode = iota
	ClipCut
)

// String returns the lowercase mode name.
func (m ClipMode) String() string {
	if m == ClipCut {
		return "cut"
	}
	return "copy"
}

// ParseClipMode parses "copy" or "cut".
func ParseClipMode(s string) (ClipMode, error) {
	switch s {
	case "copy":
		return ClipCopy, nil
	case "cut":
		return ClipCut, nil
	default:
		return ClipCopy, fmt.Errorf("unknown clipboard mode %q", s)
	}
}

// Selection is the staged set of entries awaiting a paste.
type Selection struct {
	Mode       ClipMode
	Entries    []Entry
	SourcePath string
}

// Clipboard stages copy/cut selections and resolves name collisions on
// paste. Selections survive directory navigation until consumed or
// explicitly cleared.
type Clipboard struct {
	mu   sync.Mutex
	sel  *Selection
	fs   vfs.FS
	exec *Executor
	hub  *events.Hub
	log  *logging.Logger
}

// NewClipboard creates a clipboard engine.
func NewClipboard(fsys vfs.FS, exec *Executor, hub *events.Hub, log *logging.Logger) *Clipboard {
	return &Clipboard{fs: fsys, exec: exec, hub: hub, log: log}
}

// Mark replaces the current selection.
func (c *Clipboard) Mark(entries []Entry, mode ClipMode, sourcePath string) {
	staged := make([]Entry, len(entries))
	copy(staged, entries)

	c.mu.Lock()
	c.sel = &Selection{Mode: mode, Entries: staged, SourcePath: sourcePath}
	c.mu.Unlock()

	c.log.Debug("clipboard marked",
		zap.Int("count", len(staged)),
		zap.String("mode", mode.String()),
		zap.String("source", sourcePath),
	)
}

// Clear drops the current selection.
func (c *Clipboard) Clear() {
	c.mu.Lock()
	c.sel = nil
	c.mu.Unlock()
}

// Current returns a copy of the current selection, or nil.
func (c *Clipboard) Current() *Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sel == nil {
		return nil
	}
	entries := make([]Entry, len(c.sel.Entries))
	copy(entries, c.sel.Entries)
	return &Selection{Mode: c.sel.Mode, Entries: entries, SourcePath: c.sel.SourcePath}
}

// Paste resolves a target under dest for every marked entry and hands the
// batch to the executor.
//
// Collision rules: cutting into the source directory is rejected outright
// with no filesystem calls; copying into the source directory bumps the
// target name with _copy, _copy2, ... preserving the extension; elsewhere
// an existing target skips that item, recorded as an error, while its
// siblings proceed. A cut selection clears only after an error-free batch.
func (c *Clipboard) Paste(ctx context.Context, dest string, includeHidden bool) (*Report, *Snapshot, error) {
	sel := c.Current()
	if sel == nil || len(sel.Entries) == 0 {
		return nil, nil, ErrClipboardEmpty
	}

	samePlace := filepath.Clean(dest) == filepath.Clean(sel.SourcePath)
	if samePlace && sel.Mode == ClipCut {
		c.hub.Warning(ErrSamePlaceCut.Error())
		return nil, nil, ErrSamePlaceCut
	}

	kind := OpCopy
	if sel.Mode == ClipCut {
		kind = OpMove
	}

	var ops []Operation
	var collisions []OperationError
	for _, entry := range sel.Entries {
		src := filepath.Join(sel.SourcePath, entry.Name)
		target := filepath.Join(dest, entry.Name)

		switch {
		case samePlace:
			target = c.copyTarget(ctx, dest, entry)
		case pathExists(ctx, c.fs, target):
			collisions = append(collisions, OperationError{
				Op:      Operation{Kind: kind, Path: src, Dest: target, IsDir: entry.IsDir()}.Describe(),
				Message: "target exists",
			})
			continue
		}

		ops = append(ops, Operation{Kind: kind, Path: src, Dest: target, IsDir: entry.IsDir()})
	}

	report, snap := c.exec.Run(ctx, dest, includeHidden, ops, collisions...)

	if sel.Mode == ClipCut && len(ops) > 0 && len(report.Errors) == 0 {
		c.Clear()
	}
	return report, snap, nil
}

// copyTarget finds the first free _copyN name in dir, keeping the
// original extension.
func (c *Clipboard) copyTarget(ctx context.Context, dir string, entry Entry) string {
	base := entry.Name
	ext := ""
	if !entry.IsDir() {
		ext = filepath.Ext(entry.Name)
		base = strings.TrimSuffix(entry.Name, ext)
	}

	for n := 1; ; n++ {
		suffix := "_copy"
		if n > 1 {
			suffix = fmt.Sprintf("_copy%d", n)
		}
		candidate := filepath.Join(dir, base+suffix+ext)
		if !pathExists(ctx, c.fs, candidate) {
			return candidate
		}
	}
}
