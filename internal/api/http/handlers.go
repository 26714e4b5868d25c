package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/dired/backend/internal/providers/explorer"
	"github.com/GriffinCanCode/dired/backend/internal/service"
	"github.com/GriffinCanCode/dired/backend/internal/shared/types"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	registry *service.Registry
	provider *explorer.Provider
}

// NewHandlers creates a new handler set
func NewHandlers(registry *service.Registry, provider *explorer.Provider) *Handlers {
	return &Handlers{registry: registry, provider: provider}
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "dired backend",
		"version": "0.3.0",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	var current gin.H
	if snap := h.provider.Current(); snap != nil {
		current = gin.H{
			"path":       snap.Path,
			"entries":    len(snap.Entries),
			"generation": snap.Generation,
			"stale":      h.provider.Stale(),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"service_registry": h.registry.Stats(),
		"snapshot":         current,
	})
}

// ListServices lists all available services
func (h *Handlers) ListServices(c *gin.Context) {
	var category *types.Category
	if categoryStr := c.Query("category"); categoryStr != "" {
		cat := types.Category(categoryStr)
		category = &cat
	}

	services := h.registry.List(category)
	c.JSON(http.StatusOK, gin.H{
		"services": services,
		"count":    len(services),
	})
}

// ExecuteService runs a registered service tool
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appCtx := &types.Context{ClientID: req.ClientID}
	result, err := h.registry.Execute(c.Request.Context(), req.ToolID, req.Params, appCtx)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	h.respond(c, result)
}

// Browse scans a directory into a fresh snapshot
func (h *Handlers) Browse(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path query parameter required"})
		return
	}

	params := map[string]interface{}{"path": path}
	if hiddenStr := c.Query("hidden"); hiddenStr != "" {
		hidden, err := strconv.ParseBool(hiddenStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "hidden must be a boolean"})
			return
		}
		params["show_hidden"] = hidden
	}

	result, _ := h.provider.Execute(c.Request.Context(), "explorer.scan", params, nil)
	h.respond(c, result)
}

// Commit reconciles an edited listing and applies the operations
func (h *Handlers) Commit(c *gin.Context) {
	var req types.CommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, _ := h.provider.Execute(c.Request.Context(), "explorer.commit", map[string]interface{}{
		"path":  req.Path,
		"lines": req.Lines,
	}, nil)
	h.respond(c, result)
}

// ClipboardStatus reports the current selection
func (h *Handlers) ClipboardStatus(c *gin.Context) {
	result, _ := h.provider.Execute(c.Request.Context(), "explorer.clipboard.status", nil, nil)
	h.respond(c, result)
}

// ClipboardMark stages entries for copy or cut
func (h *Handlers) ClipboardMark(c *gin.Context) {
	var req types.MarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, _ := h.provider.Execute(c.Request.Context(), "explorer.mark", map[string]interface{}{
		"names": req.Names,
		"mode":  req.Mode,
	}, nil)
	h.respond(c, result)
}

// ClipboardPaste pastes the selection into a destination
func (h *Handlers) ClipboardPaste(c *gin.Context) {
	var req types.PasteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, _ := h.provider.Execute(c.Request.Context(), "explorer.paste", map[string]interface{}{
		"destination": req.Destination,
	}, nil)
	h.respond(c, result)
}

// ClipboardClear drops the selection
func (h *Handlers) ClipboardClear(c *gin.Context) {
	result, _ := h.provider.Execute(c.Request.Context(), "explorer.clipboard.clear", nil, nil)
	h.respond(c, result)
}

// Search runs a recursive filename search
func (h *Handlers) Search(c *gin.Context) {
	pattern := c.Query("pattern")
	if pattern == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pattern query parameter required"})
		return
	}

	params := map[string]interface{}{"pattern": pattern}
	if path := c.Query("path"); path != "" {
		params["path"] = path
	}
	if depthStr := c.Query("max_depth"); depthStr != "" {
		depth, err := strconv.Atoi(depthStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "max_depth must be an integer"})
			return
		}
		params["max_depth"] = float64(depth)
	}

	result, _ := h.provider.Execute(c.Request.Context(), "explorer.search", params, nil)
	h.respond(c, result)
}

// respond maps a service result onto an HTTP response.
func (h *Handlers) respond(c *gin.Context, result *types.Result) {
	if result == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no result"})
		return
	}
	if !result.Success {
		msg := "operation failed"
		if result.Error != nil {
			msg = *result.Error
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result.Data})
}
