package explorer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/dired/backend/internal/events"
	"github.com/GriffinCanCode/dired/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/dired/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/dired/backend/internal/logging"
	"github.com/GriffinCanCode/dired/backend/internal/shared/types"
	"github.com/GriffinCanCode/dired/backend/internal/vfs"
)

// Provider exposes the directory-editor core as a registered service.
// It owns the currently browsed directory and its latest Snapshot.
type Provider struct {
	fs      vfs.FS
	cfg     config.ExplorerConfig
	scanner *Scanner
	rec     *Reconciler
	exec    *Executor
	clip    *Clipboard
	hub     *events.Hub
	log     *logging.Logger
	watcher *Watcher
	metrics *monitoring.Metrics

	mu         sync.RWMutex
	current    *Snapshot
	showHidden bool
	stale      atomic.Bool
}

// NewProvider wires scanner, reconciler, executor and clipboard against
// one filesystem backend.
func NewProvider(fsys vfs.FS, cfg config.ExplorerConfig, hub *events.Hub, log *logging.Logger) *Provider {
	scanner := NewScanner(fsys, cfg.ScanWorkers, log)
	exec := NewExecutor(fsys, scanner, hub, log)

	p := &Provider{
		fs:         fsys,
		cfg:        cfg,
		scanner:    scanner,
		rec:        NewReconciler(fsys, log),
		exec:       exec,
		clip:       NewClipboard(fsys, exec, hub, log),
		hub:        hub,
		log:        log,
		showHidden: cfg.ShowHidden,
	}

	if cfg.WatchEnabled {
		w, err := NewWatcher(hub, log, p.invalidate)
		if err != nil {
			log.Warn("watcher unavailable", zap.Error(err))
		} else {
			p.watcher = w
		}
	}
	return p
}

// WithMetrics attaches a metrics collector.
func (p *Provider) WithMetrics(m *monitoring.Metrics) *Provider {
	p.metrics = m
	return p
}

// Close releases the watcher.
func (p *Provider) Close() error {
	if p.watcher != nil {
		return p.watcher.Close()
	}
	return nil
}

// Clipboard exposes the clipboard engine to other surfaces.
func (p *Provider) Clipboard() *Clipboard {
	return p.clip
}

// Stale reports whether the watcher saw changes since the last scan.
func (p *Provider) Stale() bool {
	return p.stale.Load()
}

func (p *Provider) invalidate(dir string) {
	if !p.stale.Swap(true) {
		p.hub.Info(fmt.Sprintf("directory changed on disk: %s", dir))
	}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "explorer",
		Name:        "Directory Explorer",
		Description: "Editable directory listings with reconciliation, clipboard and search",
		Category:    types.CategoryFilesystem,
		Capabilities: []string{
			"scan",
			"commit",
			"clipboard",
			"search",
			"tree",
			"metadata",
		},
		Tools: p.getTools(),
	}
}

func (p *Provider) getTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "explorer.scan",
			Name:        "Scan Directory",
			Description: "Produce a sorted snapshot of a directory",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
				{Name: "show_hidden", Type: "boolean", Description: "Include dotfiles", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "explorer.commit",
			Name:        "Commit Edited Listing",
			Description: "Reconcile edited lines against the snapshot and apply the result",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
				{Name: "lines", Type: "array", Description: "Edited listing lines", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "explorer.mark",
			Name:        "Mark Entries",
			Description: "Stage entries of the current snapshot for copy or cut",
			Parameters: []types.Parameter{
				{Name: "names", Type: "array", Description: "Entry names", Required: true},
				{Name: "mode", Type: "string", Description: "copy or cut", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "explorer.paste",
			Name:        "Paste Selection",
			Description: "Paste the marked selection into a destination directory",
			Parameters: []types.Parameter{
				{Name: "destination", Type: "string", Description: "Destination directory", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "explorer.clipboard.status",
			Name:        "Clipboard Status",
			Description: "Inspect the current selection",
			Parameters:  []types.Parameter{},
			Returns:     "object",
		},
		{
			ID:          "explorer.clipboard.clear",
			Name:        "Clear Clipboard",
			Description: "Drop the current selection",
			Parameters:  []types.Parameter{},
			Returns:     "boolean",
		},
		{
			ID:          "explorer.metadata",
			Name:        "Entry Metadata",
			Description: "Stat a path and detect its MIME type",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File or directory path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "explorer.search",
			Name:        "Search Names",
			Description: "Recursive filename search with glob support",
			Parameters: []types.Parameter{
				{Name: "pattern", Type: "string", Description: "Substring or doublestar glob", Required: true},
				{Name: "path", Type: "string", Description: "Search root (defaults to browse root)", Required: false},
				{Name: "max_depth", Type: "number", Description: "Depth cap (0=unlimited)", Required: false},
			},
			Returns: "array",
		},
		{
			ID:          "explorer.tree",
			Name:        "Directory Tree",
			Description: "Indented tree preview of a directory",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
				{Name: "max_depth", Type: "number", Description: "Depth cap (0=unlimited)", Required: false},
			},
			Returns: "string",
		},
	}
}

// Execute runs an explorer operation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, _ *types.Context) (*types.Result, error) {
	switch toolID {
	case "explorer.scan":
		return p.scan(ctx, params)
	case "explorer.commit":
		return p.commit(ctx, params)
	case "explorer.mark":
		return p.mark(params)
	case "explorer.paste":
		return p.paste(ctx, params)
	case "explorer.clipboard.status":
		return p.clipboardStatus()
	case "explorer.clipboard.clear":
		p.clip.Clear()
		return success(map[string]interface{}{"cleared": true})
	case "explorer.metadata":
		return p.metadata(ctx, params)
	case "explorer.search":
		return p.search(ctx, params)
	case "explorer.tree":
		return p.tree(ctx, params)
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (p *Provider) scan(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return failure("path parameter required")
	}
	abs, err := p.resolve(path)
	if err != nil {
		return failure(err.Error())
	}

	hidden := p.cfg.ShowHidden
	if h, ok := params["show_hidden"].(bool); ok {
		hidden = h
	}

	start := time.Now()
	snap, err := p.scanner.Scan(ctx, abs, hidden)
	if err != nil {
		// The previous snapshot stays; the display is not cleared.
		if p.metrics != nil {
			p.metrics.RecordScan("error", time.Since(start), 0)
		}
		p.hub.Error(err.Error())
		return failure(err.Error())
	}
	if p.metrics != nil {
		p.metrics.RecordScan("ok", time.Since(start), len(snap.Entries))
	}

	if !p.adopt(snap, hidden) {
		return failure("scan superseded by a newer scan")
	}

	if p.watcher != nil {
		if err := p.watcher.Point(abs); err != nil {
			p.log.Warn("cannot watch directory", zap.String("dir", abs), zap.Error(err))
		}
	}

	return success(snapshotData(snap))
}

func (p *Provider) commit(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return failure("path parameter required")
	}
	abs, err := p.resolve(path)
	if err != nil {
		return failure(err.Error())
	}

	lines, err := stringSlice(params["lines"])
	if err != nil {
		return failure(fmt.Sprintf("lines parameter invalid: %v", err))
	}

	p.mu.RLock()
	snap := p.current
	hidden := p.showHidden
	p.mu.RUnlock()
	if snap == nil || snap.Path != abs {
		return failure(ErrNoSnapshot.Error())
	}

	ops, err := p.rec.Reconcile(ctx, snap, lines)
	if err != nil {
		return failure(err.Error())
	}
	if len(ops) == 0 {
		return success(map[string]interface{}{
			"changed": false,
			"path":    abs,
		})
	}

	report, fresh := p.runBatch(ctx, abs, hidden, ops, nil)
	data := reportData(report)
	data["path"] = abs
	data["changed"] = true
	if fresh != nil && p.adopt(fresh, hidden) {
		data["lines"] = fresh.DisplayNames()
	}
	return success(data)
}

func (p *Provider) mark(params map[string]interface{}) (*types.Result, error) {
	names, err := stringSlice(params["names"])
	if err != nil || len(names) == 0 {
		return failure("names parameter required")
	}
	modeStr, _ := params["mode"].(string)
	mode, err := ParseClipMode(modeStr)
	if err != nil {
		return failure(err.Error())
	}

	p.mu.RLock()
	snap := p.current
	p.mu.RUnlock()
	if snap == nil {
		return failure(ErrNoSnapshot.Error())
	}

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		entry, ok := snap.Lookup(strings.TrimSuffix(name, dirSuffix))
		if !ok {
			return failure(fmt.Sprintf("no such entry: %s", name))
		}
		entries = append(entries, entry)
	}

	p.clip.Mark(entries, mode, snap.Path)
	return success(map[string]interface{}{
		"marked": len(entries),
		"mode":   mode.String(),
		"source": snap.Path,
	})
}

func (p *Provider) paste(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	dest, ok := params["destination"].(string)
	if !ok || dest == "" {
		return failure("destination parameter required")
	}
	abs, err := p.resolve(dest)
	if err != nil {
		return failure(err.Error())
	}

	p.mu.RLock()
	hidden := p.showHidden
	p.mu.RUnlock()

	start := time.Now()
	report, fresh, err := p.clip.Paste(ctx, abs, hidden)
	if err != nil {
		return failure(err.Error())
	}
	p.recordBatch(report, time.Since(start))

	data := reportData(report)
	data["destination"] = abs
	if fresh != nil && p.adopt(fresh, hidden) {
		data["lines"] = fresh.DisplayNames()
	}
	return success(data)
}

func (p *Provider) clipboardStatus() (*types.Result, error) {
	sel := p.clip.Current()
	if sel == nil {
		return success(map[string]interface{}{"empty": true})
	}

	names := make([]string, len(sel.Entries))
	for i, e := range sel.Entries {
		names[i] = e.DisplayName()
	}
	return success(map[string]interface{}{
		"empty":  false,
		"mode":   sel.Mode.String(),
		"source": sel.SourcePath,
		"names":  names,
	})
}

func (p *Provider) metadata(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return failure("path parameter required")
	}
	abs, err := p.resolve(path)
	if err != nil {
		return failure(err.Error())
	}

	info, err := p.fs.Stat(ctx, abs)
	if err != nil {
		return failure(fmt.Sprintf("stat failed: %v", err))
	}

	data := map[string]interface{}{
		"path":     abs,
		"kind":     info.Kind.String(),
		"size":     info.Size,
		"mode":     info.Mode.String(),
		"owner_id": info.OwnerID,
		"modified": info.ModTime.Unix(),
	}

	if info.Kind == vfs.KindFile {
		if mtype, err := mimetype.DetectFile(abs); err == nil {
			data["mime"] = mtype.String()
			data["extension"] = mtype.Extension()
		}
	}
	return success(data)
}

func (p *Provider) search(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	pattern, ok := params["pattern"].(string)
	if !ok || pattern == "" {
		return failure("pattern parameter required")
	}

	root := p.cfg.Root
	if raw, ok := params["path"].(string); ok && raw != "" {
		abs, err := p.resolve(raw)
		if err != nil {
			return failure(err.Error())
		}
		root = abs
	}

	maxDepth := 0
	if d, ok := params["max_depth"].(float64); ok {
		maxDepth = int(d)
	}

	matches, err := searchNames(ctx, root, pattern, maxDepth, p.cfg.SearchLimit)
	if err != nil {
		return failure(fmt.Sprintf("search failed: %v", err))
	}
	return success(map[string]interface{}{
		"root":    root,
		"matches": matches,
		"count":   len(matches),
	})
}

func (p *Provider) tree(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return failure("path parameter required")
	}
	abs, err := p.resolve(path)
	if err != nil {
		return failure(err.Error())
	}

	maxDepth := 0
	if d, ok := params["max_depth"].(float64); ok {
		maxDepth = int(d)
	}

	rendered, err := treeString(ctx, abs, maxDepth)
	if err != nil {
		return failure(fmt.Sprintf("tree failed: %v", err))
	}
	return success(map[string]interface{}{"path": abs, "tree": rendered})
}

// runBatch executes ops and records batch metrics.
func (p *Provider) runBatch(ctx context.Context, dir string, hidden bool, ops []Operation, pre []OperationError) (*Report, *Snapshot) {
	start := time.Now()
	report, fresh := p.exec.Run(ctx, dir, hidden, ops, pre...)
	p.recordBatch(report, time.Since(start))

	if p.metrics != nil {
		// Failures cannot be attributed per kind from the report alone;
		// count submitted kinds and overall errors.
		for _, op := range ops {
			p.metrics.RecordOperation(op.Kind.String(), "submitted")
		}
	}
	return report, fresh
}

func (p *Provider) recordBatch(report *Report, elapsed time.Duration) {
	if p.metrics == nil || report == nil {
		return
	}
	status := "ok"
	if len(report.Errors) > 0 {
		status = "partial"
	}
	p.metrics.RecordBatch(status, elapsed)
}

// adopt replaces the current snapshot unless it has been superseded.
func (p *Provider) adopt(snap *Snapshot, hidden bool) bool {
	if snap == nil {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current != nil && snap.Generation < p.current.Generation {
		// A newer scan already delivered; stale result is discarded.
		return false
	}
	p.current = snap
	p.showHidden = hidden
	p.stale.Store(false)
	return true
}

// Current returns the latest adopted snapshot.
func (p *Provider) Current() *Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// resolve cleans a path and confines it to the configured root.
func (p *Provider) resolve(path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.cfg.Root, path)
	}
	abs := filepath.Clean(path)

	root := filepath.Clean(p.cfg.Root)
	if root != string(filepath.Separator) {
		if abs != root && !strings.HasPrefix(abs, root+string(filepath.Separator)) {
			return "", fmt.Errorf("path escapes browse root: %s", path)
		}
	}
	return abs, nil
}

func snapshotData(snap *Snapshot) map[string]interface{} {
	entries := make([]map[string]interface{}, len(snap.Entries))
	for i, e := range snap.Entries {
		entries[i] = map[string]interface{}{
			"name":     e.Name,
			"kind":     e.Kind.String(),
			"size":     e.Size,
			"mode":     e.Mode.String(),
			"owner_id": e.OwnerID,
			"modified": e.ModTime.Unix(),
		}
	}
	return map[string]interface{}{
		"path":       snap.Path,
		"generation": snap.Generation,
		"lines":      snap.DisplayNames(),
		"rendered":   FormatLong(snap),
		"entries":    entries,
		"count":      len(snap.Entries),
	}
}

func reportData(report *Report) map[string]interface{} {
	if report == nil {
		return map[string]interface{}{}
	}
	errs := make([]map[string]interface{}, len(report.Errors))
	for i, oe := range report.Errors {
		errs[i] = map[string]interface{}{
			"operation": oe.Op,
			"message":   oe.Message,
		}
	}
	return map[string]interface{}{
		"batch_id":  report.BatchID,
		"succeeded": report.Succeeded,
		"errors":    errs,
		"summary":   report.Summary(),
	}
}

// stringSlice coerces a JSON array parameter into []string.
func stringSlice(v interface{}) ([]string, error) {
	switch vals := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return vals, nil
	case []interface{}:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			s, ok := item.(string)
			if !ok {
				return nil, errors.New("expected string elements")
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, errors.New("expected array")
	}
}

func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}
