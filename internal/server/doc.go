// Package server holds the runtime context shared by the MCP tool
// handlers, plus the HTTP surfaces of the streamable-http transport:
// health probes and the dedicated Prometheus metrics listener.
package server
