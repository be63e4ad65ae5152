// Package logger provides the structured logger used by the command-line
// tools, the batch runner and the MCP server.
//
// Every entry carries a component name plus optional fields. The zerolog
// adapter writes either JSON or a human-readable console format. The numeric
// packages never log; they return errors to their callers.
package logger
