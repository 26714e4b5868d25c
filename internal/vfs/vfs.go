package vfs

import (
	"context"
	"io/fs"
	"time"
)

// Kind classifies a directory entry
type Kind uint8

const (
	KindFile Kind = iota
	KindDirectory
	KindSymlink
)

// String returns a short human-readable kind name
func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindSymlink:
		return "symlink"
	default:
		return "file"
	}
}

// Info holds the metadata a stat call produces
type Info struct {
	Kind    Kind
	Size    uint64
	Mode    fs.FileMode
	OwnerID uint32
	ModTime time.Time
}

// IsDir reports whether the info describes a directory
func (i Info) IsDir() bool {
	return i.Kind == KindDirectory
}

// FS is the set of filesystem primitives the explorer core consumes
type FS interface {
	// ListNames enumerates entry names of a directory, unsorted.
	ListNames(ctx context.Context, path string) ([]string, error)
	// Stat returns metadata for a single path without following symlinks.
	Stat(ctx context.Context, path string) (Info, error)
	// Mkdir creates one directory level; fs.ErrExist if it already exists.
	Mkdir(ctx context.Context, path string) error
	// Rmdir removes an empty directory.
	Rmdir(ctx context.Context, path string) error
	// Unlink removes a file or symlink.
	Unlink(ctx context.Context, path string) error
	// Rename moves a file or directory.
	Rename(ctx context.Context, oldPath, newPath string) error
	// CopyFile copies a regular file, preserving its mode.
	CopyFile(ctx context.Context, src, dest string) error
	// CreateFile creates a new file with optional content; fails if it exists.
	CreateFile(ctx context.Context, path string, content []byte) error
}
