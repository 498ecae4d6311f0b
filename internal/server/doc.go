// Package server implements the MCP (Model Context Protocol) server for sketch analysis tools.
//
// This package provides a JSON-RPC 2.0 server that exposes freehand stroke
// capture, shape detection, rendering, and diagram export through the MCP
// protocol. It's designed to work with Claude and other MCP-compatible
// clients, letting them turn hand-drawn strokes into structured diagrams.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// The server provides 10 sketch tools organized into categories:
//
// Canvas Operations:
//   - sketch_add_stroke: Add a single stroke
//   - sketch_add_strokes: Add a batch of strokes
//   - sketch_list_strokes: List strokes with bounds and point counts
//   - sketch_clear: Empty the canvas
//
// Detection:
//   - sketch_analyze: Group strokes, classify shapes, build the connector graph
//
// Export:
//   - sketch_export_drawio: Generate draw.io (mxGraph) XML from the last analysis
//
// Rendering:
//   - sketch_render_preview: Rasterize the canvas to a base64 PNG
//
// Persistence:
//   - sketch_save_backup: Write strokes to a gzip JSON backup
//   - sketch_load_backup: Restore strokes from a backup
//
// Configuration:
//   - sketch_params: Report the active detection parameters
//
// # Canvas State
//
// The server keeps the stroke canvas and the most recent analysis result in
// memory for the lifetime of the process. Export requires a prior analyze
// call; clearing the canvas or loading a backup discards the cached result.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New(engine, logger)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
