// Package providers groups the service providers exposed through the
// registry.
//
// Each provider implements a standardized tool-based interface: Definition()
// returns service metadata and tool definitions, Execute() runs a tool with
// parameters and context.
//
// Available Providers:
//   - Explorer: directory scanning, listing reconciliation, batch commits,
//     clipboard paste, metadata, search, and tree rendering
package providers
