// Package ws provides WebSocket handling for real-time notifications.
//
// Clients connect to /stream and receive every notification the core
// publishes: scan results, batch summaries, per-operation errors and
// watcher invalidations.
//
// Message Types (Client → Server):
//   - ping: Keep-alive ping
//
// Message Types (Server → Client):
//   - system: Connection established
//   - notification: Severity-tagged message from the core
//   - pong: Ping reply
//
// Example Usage:
//
//	handler := ws.NewHandler(hub, metrics, logger)
//	router.GET("/stream", handler.HandleConnection)
package ws
