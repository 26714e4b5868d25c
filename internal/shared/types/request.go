package types

// ExecuteRequest represents a service execution request
type ExecuteRequest struct {
	ToolID   string                 `json:"tool_id" binding:"required"`
	Params   map[string]interface{} `json:"params" binding:"required"`
	ClientID *string                `json:"client_id,omitempty"`
}

// BrowseRequest represents a directory scan request
type BrowseRequest struct {
	Path       string `json:"path" binding:"required"`
	ShowHidden bool   `json:"show_hidden"`
}

// CommitRequest carries the edited listing back from the display surface
type CommitRequest struct {
	Path  string   `json:"path" binding:"required"`
	Lines []string `json:"lines"`
}

// MarkRequest marks entries for a later paste
type MarkRequest struct {
	Names []string `json:"names" binding:"required"`
	Mode  string   `json:"mode" binding:"required"`
}

// PasteRequest pastes the current selection into a destination
type PasteRequest struct {
	Destination string `json:"destination" binding:"required"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string                 `json:"type"`
	Message string                 `json:"message,omitempty"`
	Context map[string]interface{} `json:"context,omitempty"`
}
