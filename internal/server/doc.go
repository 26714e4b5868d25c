// Package server wires configuration, logging, metrics, the explorer
// provider and the HTTP/WebSocket surfaces into one runnable service.
package server
