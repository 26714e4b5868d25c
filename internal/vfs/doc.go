// Package vfs defines the filesystem primitives consumed by the explorer core.
//
// The core never touches the os package directly; it talks to the FS
// interface so hosts can substitute sandboxed, mocked, or instrumented
// backends. Local is the production implementation backed by the os package.
//
// Error contract:
//   - Mkdir on an existing path fails with an error matching fs.ErrExist
//   - Stat on a missing path fails with an error matching fs.ErrNotExist
//   - Rmdir requires an empty directory
//
// Example Usage:
//
//	fsys := vfs.NewLocal()
//	names, err := fsys.ListNames(ctx, "/home/user")
package vfs
