// Package http provides HTTP handlers and routing for the dired REST API.
//
// All endpoints are implemented with the Gin framework. The convenience
// endpoints (/browse, /browse/commit, /clipboard/*, /search) are thin
// wrappers over the explorer service tools; /services/execute reaches any
// registered tool directly.
//
// Endpoints:
//   - Health: / and /health
//   - Services: /services, /services/execute
//   - Browsing: /browse, /browse/commit
//   - Clipboard: /clipboard, /clipboard/mark, /clipboard/paste, /clipboard/clear
//   - Search: /search
package http
