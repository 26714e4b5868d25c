// Package testutil provides testing utilities and helpers for backend tests.
package testutil

import (
	"context"
	"io/fs"
	"math/rand"
	"path"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/GriffinCanCode/dired/backend/internal/shared/types"
	"github.com/GriffinCanCode/dired/backend/internal/vfs"
	"github.com/stretchr/testify/mock"
)

// MockFS is a mock implementation of vfs.FS for testing.
type MockFS struct {
	mock.Mock
}

// ListNames mocks the ListNames method.
func (m *MockFS) ListNames(ctx context.Context, p string) ([]string, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// Stat mocks the Stat method.
func (m *MockFS) Stat(ctx context.Context, p string) (vfs.Info, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(vfs.Info), args.Error(1)
}

// Mkdir mocks the Mkdir method.
func (m *MockFS) Mkdir(ctx context.Context, p string) error {
	return m.Called(ctx, p).Error(0)
}

// Rmdir mocks the Rmdir method.
func (m *MockFS) Rmdir(ctx context.Context, p string) error {
	return m.Called(ctx, p).Error(0)
}

// Unlink mocks the Unlink method.
func (m *MockFS) Unlink(ctx context.Context, p string) error {
	return m.Called(ctx, p).Error(0)
}

// Rename mocks the Rename method.
func (m *MockFS) Rename(ctx context.Context, oldPath, newPath string) error {
	return m.Called(ctx, oldPath, newPath).Error(0)
}

// CopyFile mocks the CopyFile method.
func (m *MockFS) CopyFile(ctx context.Context, src, dest string) error {
	return m.Called(ctx, src, dest).Error(0)
}

// CreateFile mocks the CreateFile method.
func (m *MockFS) CreateFile(ctx context.Context, p string, content []byte) error {
	return m.Called(ctx, p, content).Error(0)
}

// memNode is a single entry in a MemFS tree.
type memNode struct {
	info    vfs.Info
	content []byte
}

// MemFS is an in-memory vfs.FS fake.
//
// It honors the vfs error contract (Mkdir on an existing path returns
// fs.ErrExist, Stat on a missing path returns fs.ErrNotExist, Rmdir requires
// an empty directory) and records every call so tests can assert on the exact
// operation sequence. StatErr injects per-path stat failures; StatDelay adds
// a randomized delay to each Stat call to shake out ordering assumptions in
// concurrent scans.
type MemFS struct {
	mu        sync.Mutex
	nodes     map[string]*memNode
	calls     []string
	StatErr   map[string]error
	StatDelay time.Duration
}

// NewMemFS creates an empty in-memory filesystem rooted at "/".
func NewMemFS() *MemFS {
	return &MemFS{
		nodes: map[string]*memNode{
			"/": {info: vfs.Info{Kind: vfs.KindDirectory, Mode: fs.ModeDir | 0o755, ModTime: time.Now()}},
		},
		StatErr: make(map[string]error),
	}
}

// AddDir creates a directory and any missing parents.
func (m *MemFS) AddDir(p string) *MemFS {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addDirLocked(path.Clean(p))
	return m
}

// AddFile creates a file with the given content, creating missing parents.
func (m *MemFS) AddFile(p string, content []byte) *MemFS {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = path.Clean(p)
	m.addDirLocked(path.Dir(p))
	m.nodes[p] = &memNode{
		info: vfs.Info{
			Kind:    vfs.KindFile,
			Size:    uint64(len(content)),
			Mode:    0o644,
			ModTime: time.Now(),
		},
		content: append([]byte(nil), content...),
	}
	return m
}

func (m *MemFS) addDirLocked(p string) {
	if p == "" || p == "." {
		return
	}
	if _, ok := m.nodes[p]; ok {
		return
	}
	if parent := path.Dir(p); parent != p {
		m.addDirLocked(parent)
	}
	m.nodes[p] = &memNode{info: vfs.Info{Kind: vfs.KindDirectory, Mode: fs.ModeDir | 0o755, ModTime: time.Now()}}
}

// Calls returns a copy of the recorded call log, one "op path" string per call.
func (m *MemFS) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// CallCount reports how many filesystem calls were made.
func (m *MemFS) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Exists reports whether a path currently exists in the tree.
func (m *MemFS) Exists(p string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.nodes[path.Clean(p)]
	return ok
}

func (m *MemFS) record(op, p string) {
	m.calls = append(m.calls, op+" "+p)
}

// ListNames enumerates the direct children of a directory, unsorted.
func (m *MemFS) ListNames(ctx context.Context, p string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = path.Clean(p)
	m.record("list", p)
	node, ok := m.nodes[p]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	if !node.info.IsDir() {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrInvalid}
	}
	var names []string
	for candidate := range m.nodes {
		if path.Dir(candidate) == p && candidate != p {
			names = append(names, path.Base(candidate))
		}
	}
	// Shuffle so callers cannot rely on enumeration order.
	rand.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })
	return names, nil
}

// Stat returns metadata for a path.
func (m *MemFS) Stat(ctx context.Context, p string) (vfs.Info, error) {
	m.mu.Lock()
	p = path.Clean(p)
	m.record("stat", p)
	injected := m.StatErr[p]
	node, ok := m.nodes[p]
	delay := m.StatDelay
	m.mu.Unlock()

	if delay > 0 {
		time.Sleep(time.Duration(rand.Int63n(int64(delay))))
	}
	if injected != nil {
		return vfs.Info{}, injected
	}
	if !ok {
		return vfs.Info{}, &fs.PathError{Op: "stat", Path: p, Err: fs.ErrNotExist}
	}
	return node.info, nil
}

// Mkdir creates one directory level.
func (m *MemFS) Mkdir(ctx context.Context, p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = path.Clean(p)
	m.record("mkdir", p)
	if _, ok := m.nodes[p]; ok {
		return &fs.PathError{Op: "mkdir", Path: p, Err: fs.ErrExist}
	}
	if parent, ok := m.nodes[path.Dir(p)]; !ok || !parent.info.IsDir() {
		return &fs.PathError{Op: "mkdir", Path: p, Err: fs.ErrNotExist}
	}
	m.nodes[p] = &memNode{info: vfs.Info{Kind: vfs.KindDirectory, Mode: fs.ModeDir | 0o755, ModTime: time.Now()}}
	return nil
}

// Rmdir removes an empty directory.
func (m *MemFS) Rmdir(ctx context.Context, p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = path.Clean(p)
	m.record("rmdir", p)
	node, ok := m.nodes[p]
	if !ok {
		return &fs.PathError{Op: "rmdir", Path: p, Err: fs.ErrNotExist}
	}
	if !node.info.IsDir() {
		return &fs.PathError{Op: "rmdir", Path: p, Err: fs.ErrInvalid}
	}
	for candidate := range m.nodes {
		if path.Dir(candidate) == p && candidate != p {
			return &fs.PathError{Op: "rmdir", Path: p, Err: fs.ErrInvalid}
		}
	}
	delete(m.nodes, p)
	return nil
}

// Unlink removes a file or symlink.
func (m *MemFS) Unlink(ctx context.Context, p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = path.Clean(p)
	m.record("unlink", p)
	node, ok := m.nodes[p]
	if !ok {
		return &fs.PathError{Op: "unlink", Path: p, Err: fs.ErrNotExist}
	}
	if node.info.IsDir() {
		return &fs.PathError{Op: "unlink", Path: p, Err: fs.ErrInvalid}
	}
	delete(m.nodes, p)
	return nil
}

// Rename moves a file or directory, carrying any subtree with it.
func (m *MemFS) Rename(ctx context.Context, oldPath, newPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	oldPath, newPath = path.Clean(oldPath), path.Clean(newPath)
	m.record("rename", oldPath+" -> "+newPath)
	if _, ok := m.nodes[oldPath]; !ok {
		return &fs.PathError{Op: "rename", Path: oldPath, Err: fs.ErrNotExist}
	}
	moved := make(map[string]*memNode)
	for candidate, node := range m.nodes {
		if candidate == oldPath || strings.HasPrefix(candidate, oldPath+"/") {
			moved[newPath+strings.TrimPrefix(candidate, oldPath)] = node
			delete(m.nodes, candidate)
		}
	}
	for candidate, node := range moved {
		m.nodes[candidate] = node
	}
	return nil
}

// CopyFile copies a regular file.
func (m *MemFS) CopyFile(ctx context.Context, src, dest string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	src, dest = path.Clean(src), path.Clean(dest)
	m.record("copy", src+" -> "+dest)
	node, ok := m.nodes[src]
	if !ok {
		return &fs.PathError{Op: "copy", Path: src, Err: fs.ErrNotExist}
	}
	if node.info.IsDir() {
		return &fs.PathError{Op: "copy", Path: src, Err: fs.ErrInvalid}
	}
	dup := *node
	dup.content = append([]byte(nil), node.content...)
	m.nodes[dest] = &dup
	return nil
}

// CreateFile creates a new empty-or-seeded file, failing if it exists.
func (m *MemFS) CreateFile(ctx context.Context, p string, content []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = path.Clean(p)
	m.record("create", p)
	if _, ok := m.nodes[p]; ok {
		return &fs.PathError{Op: "create", Path: p, Err: fs.ErrExist}
	}
	if parent, ok := m.nodes[path.Dir(p)]; !ok || !parent.info.IsDir() {
		return &fs.PathError{Op: "create", Path: p, Err: fs.ErrNotExist}
	}
	m.nodes[p] = &memNode{
		info: vfs.Info{
			Kind:    vfs.KindFile,
			Size:    uint64(len(content)),
			Mode:    0o644,
			ModTime: time.Now(),
		},
		content: append([]byte(nil), content...),
	}
	return nil
}

// AssertSuccess is a helper to assert a successful result.
func AssertSuccess(t *testing.T, result *types.Result) {
	t.Helper()
	if result == nil {
		t.Fatal("Result is nil")
	}
	if !result.Success {
		t.Fatalf("Expected success, got error: %v", result.Error)
	}
}

// AssertError is a helper to assert an error result.
func AssertError(t *testing.T, result *types.Result) {
	t.Helper()
	if result == nil {
		t.Fatal("Result is nil")
	}
	if result.Success {
		t.Fatal("Expected error, got success")
	}
	if result.Error == nil {
		t.Fatal("Expected error message, got nil")
	}
}

// AssertDataField is a helper to assert a data field exists and matches expected value.
func AssertDataField(t *testing.T, result *types.Result, field string, expected interface{}) {
	t.Helper()
	AssertSuccess(t, result)

	if result.Data == nil {
		t.Fatal("Result data is nil")
	}

	actual, ok := result.Data[field]
	if !ok {
		t.Fatalf("Field %s not found in result data", field)
	}

	if actual != expected {
		t.Fatalf("Field %s: expected %v, got %v", field, expected, actual)
	}
}
