package explorer

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
)

// SearchMatch is one search hit, relative to the searched root.
type SearchMatch struct {
	Path  string `json:"path"`
	IsDir bool   `json:"is_dir"`
}

// searchNames walks root recursively and returns entries whose relative
// path matches the doublestar pattern or whose base name contains the
// pattern as a plain substring. maxDepth zero means unlimited.
func searchNames(ctx context.Context, root, pattern string, maxDepth, limit int) ([]SearchMatch, error) {
	var (
		mu      sync.Mutex
		matches []SearchMatch
	)

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || p == root {
			return nil // skip unreadable entries
		}

		rel, _ := filepath.Rel(root, p)
		depth := strings.Count(rel, string(os.PathSeparator))
		if maxDepth > 0 && depth >= maxDepth {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		globbed, globErr := doublestar.Match(pattern, filepath.ToSlash(rel))
		if globErr != nil {
			return globErr
		}
		if !globbed && !strings.Contains(d.Name(), pattern) {
			return nil
		}

		mu.Lock()
		full := len(matches) >= limit
		if !full {
			matches = append(matches, SearchMatch{Path: rel, IsDir: d.IsDir()})
		}
		mu.Unlock()
		if full {
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Path < matches[j].Path })
	return matches, nil
}

// treeString renders an indented tree of root down to maxDepth levels
// (zero means unlimited).
func treeString(ctx context.Context, root string, maxDepth int) (string, error) {
	var (
		mu    sync.Mutex
		paths []string
	)

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || p == root {
			return nil
		}

		rel, _ := filepath.Rel(root, p)
		depth := strings.Count(rel, string(os.PathSeparator))
		if maxDepth > 0 && depth >= maxDepth {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		name := rel
		if d.IsDir() {
			name += dirSuffix
		}
		mu.Lock()
		paths = append(paths, name)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return "", err
	}

	sort.Strings(paths)

	var tree strings.Builder
	tree.WriteString(filepath.Base(root) + dirSuffix + "\n")
	for _, p := range paths {
		depth := strings.Count(strings.TrimSuffix(p, dirSuffix), string(os.PathSeparator))
		tree.WriteString(strings.Repeat("  ", depth+1))
		tree.WriteString(filepath.Base(strings.TrimSuffix(p, dirSuffix)))
		if strings.HasSuffix(p, dirSuffix) {
			tree.WriteString(dirSuffix)
		}
		tree.WriteString("\n")
	}
	return tree.String(), nil
}
