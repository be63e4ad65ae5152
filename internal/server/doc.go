// Package server implements the MCP (Model Context Protocol) server for shadow detection.
//
// This package provides a JSON-RPC 2.0 server that exposes the shadow engine
// through the MCP protocol, so that an MCP client can estimate thresholds,
// compute masks and score them interactively.
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
// Image Information:
//   - image_load: Load an image and get its metadata
//   - image_stretch: Stretch a colour image to 8 bits
//
// Shadow Detection:
//   - shadow_threshold: Global shadow threshold of a corpus
//   - shadow_index_thresholds: NDWI and NDVI thresholds of a corpus
//   - shadow_mask: Shadow mask of one image
//   - shadow_compare: Confusion matrix of two masks
//
// # Image Caching
//
// Decoded images are cached by path and reused across tool calls. Files the
// server writes are evicted from the cache so later calls read them again.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// Diagnostics go to the logger passed to New, never to stdout.
//
// # Usage
//
//	srv := server.New(logger.FromEnv())
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
