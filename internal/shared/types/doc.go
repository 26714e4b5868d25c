// Package types provides shared data structures for the dired backend.
//
// This package defines core types used across all backend components,
// ensuring type safety and consistent data structures.
//
// Core Types:
//   - Service: Service provider definition
//   - Tool: Service tool specification
//   - Context: Execution context for operations
//   - Result: Standard operation result
//   - Notification: User-facing message with severity
//
// Request Types:
//   - ExecuteRequest: Service tool execution
//   - CommitRequest: Edited listing commit
//   - WSMessage: WebSocket communication
//
// Example Usage:
//
//	result := &types.Result{
//	    Success: true,
//	    Data:    map[string]interface{}{"path": "/home/user"},
//	}
package types
