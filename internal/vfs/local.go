package vfs

import (
	"context"
	"io"
	"os"
)

// Local implements FS against the host filesystem.
type Local struct{}

// NewLocal creates the production filesystem backend.
func NewLocal() *Local {
	return &Local{}
}

// ListNames enumerates directory entry names.
func (l *Local) ListNames(ctx context.Context, path string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Name()
	}
	return names, nil
}

// Stat returns metadata for a path without following symlinks.
func (l *Local) Stat(ctx context.Context, path string) (Info, error) {
	if err := ctx.Err(); err != nil {
		return Info{}, err
	}

	fi, err := os.Lstat(path)
	if err != nil {
		return Info{}, err
	}

	kind := KindFile
	switch {
	case fi.IsDir():
		kind = KindDirectory
	case fi.Mode()&os.ModeSymlink != 0:
		kind = KindSymlink
	}

	return Info{
		Kind:    kind,
		Size:    uint64(fi.Size()),
		Mode:    fi.Mode(),
		OwnerID: ownerID(fi),
		ModTime: fi.ModTime(),
	}, nil
}

// Mkdir creates a single directory level.
func (l *Local) Mkdir(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.Mkdir(path, 0o755)
}

// Rmdir removes an empty directory.
func (l *Local) Rmdir(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.Remove(path)
}

// Unlink removes a file or symlink.
func (l *Local) Unlink(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.Remove(path)
}

// Rename moves a file or directory.
func (l *Local) Rename(ctx context.Context, oldPath, newPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.Rename(oldPath, newPath)
}

// CopyFile copies a regular file, preserving its mode.
func (l *Local) CopyFile(ctx context.Context, src, dest string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fi.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// CreateFile creates a new file; fails if the path already exists.
func (l *Local) CreateFile(ctx context.Context, path string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}

	if len(content) > 0 {
		if _, err := f.Write(content); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}
