package explorer

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/dired/backend/internal/logging"
	"github.com/GriffinCanCode/dired/backend/internal/vfs"
)

// Scanner produces Snapshots via concurrent stat fan-out.
type Scanner struct {
	fs      vfs.FS
	log     *logging.Logger
	workers int
	gen     atomic.Uint64
}

// NewScanner creates a scanner. workers caps concurrent stat calls;
// zero or negative means unbounded.
func NewScanner(fsys vfs.FS, workers int, log *logging.Logger) *Scanner {
	return &Scanner{fs: fsys, log: log, workers: workers}
}

// Scan enumerates a directory and stats every visible entry concurrently.
// Entries whose stat fails are dropped; only the initial enumeration
// failure fails the scan. The returned snapshot is sorted by name in byte
// order regardless of stat completion order.
func (s *Scanner) Scan(ctx context.Context, path string, includeHidden bool) (*Snapshot, error) {
	gen := s.gen.Add(1)

	names, err := s.fs.ListNames(ctx, path)
	if err != nil {
		return nil, &ScanError{Path: path, Err: err}
	}

	visible := make([]string, 0, len(names))
	for _, name := range names {
		if !includeHidden && strings.HasPrefix(name, hiddenPrefix) {
			continue
		}
		visible = append(visible, name)
	}

	snap := &Snapshot{Path: path, Generation: gen, Entries: []Entry{}}
	if len(visible) == 0 {
		// Nothing to stat; deliver immediately.
		return snap, nil
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		entries = make([]Entry, 0, len(visible))
	)

	var sem chan struct{}
	if s.workers > 0 {
		sem = make(chan struct{}, s.workers)
	}

	for _, name := range visible {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}

			info, err := s.fs.Stat(ctx, filepath.Join(path, name))
			if err != nil {
				// A single unreadable entry does not fail the scan.
				s.log.Debug("dropping unreadable entry",
					zap.String("path", path),
					zap.String("name", name),
					zap.Error(err),
				)
				return
			}

			mu.Lock()
			entries = append(entries, Entry{
				Name:    name,
				Kind:    info.Kind,
				Size:    info.Size,
				Mode:    info.Mode,
				OwnerID: info.OwnerID,
				ModTime: info.ModTime,
			})
			mu.Unlock()
		}(name)
	}
	wg.Wait()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	snap.Entries = entries

	return snap, nil
}

// Stale reports whether a later scan has started since snap was produced.
// In-flight scans cannot be aborted; their results are discarded instead.
func (s *Scanner) Stale(snap *Snapshot) bool {
	return snap == nil || snap.Generation < s.gen.Load()
}
