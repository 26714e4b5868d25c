// Package explorer implements the editable-directory-listing core.
//
// A directory is scanned into an immutable Snapshot, rendered as one line
// per entry, edited as free text, and reconciled back into an ordered list
// of filesystem operations. The package is organized into:
//   - scanner: concurrent stat fan-out/fan-in producing sorted Snapshots
//   - reconciler: diffs an edited line list against a Snapshot
//   - executor: applies operations strictly sequentially, isolating failures
//   - clipboard: copy/cut staging with collision resolution on paste
//   - render: long-listing formatting (permissions, owner, size, time, name)
//   - search/tree: recursive lookups under the browse root
//   - watcher: fsnotify invalidation of the current Snapshot
//
// All filesystem access goes through vfs.FS. Operation lists are ephemeral:
// generated, executed once, then discarded in favor of a fresh scan.
//
// Example Usage:
//
//	p := explorer.NewProvider(vfs.NewLocal(), cfg.Explorer, hub, logger)
//	result, _ := p.Execute(ctx, "explorer.scan", map[string]interface{}{"path": "/tmp"}, nil)
package explorer
