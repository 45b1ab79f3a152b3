package common

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/inboxscribe/inboxscribe/internal/google"
	"github.com/inboxscribe/inboxscribe/internal/instrumentation"
	"github.com/inboxscribe/inboxscribe/internal/server"
)

// Wrapped handlers are passed straight to MCPServer.AddTool, so they
// must be assignable to the server's handler type.
var _ mcpserver.ToolHandlerFunc = InstrumentedToolHandler("assignable", nil, nil)

func testServerContext(t *testing.T) *server.ServerContext {
	t.Helper()
	sc, err := server.NewServerContext(context.Background(), google.Config{
		CredentialsPath: "does-not-exist.json",
		TokenPath:       "does-not-exist.json",
	})
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}
	return sc
}

func TestInstrumentedToolHandlerPassthrough(t *testing.T) {
	sc := testServerContext(t)

	called := false
	handler := InstrumentedToolHandler("test_tool", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		called = true
		return mcp.NewToolResultText("ok"), nil
	})

	result, err := handler(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if !called {
		t.Error("wrapped handler was not invoked")
	}
	if result.IsError {
		t.Error("result should not be an error")
	}
}

func TestInstrumentedToolHandlerAuditSuccess(t *testing.T) {
	sc := testServerContext(t)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	sc.SetAuditLogger(instrumentation.NewAuditLogger(logger))

	handler := InstrumentedToolHandlerWithOperation("test_tool", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("ok"), nil
		})

	if _, err := handler(context.Background(), mcp.CallToolRequest{}); err != nil {
		t.Fatalf("handler error = %v", err)
	}

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("audit log is not JSON: %v", err)
	}
	if entry["msg"] != "tool_executed" {
		t.Errorf("msg = %v, want tool_executed", entry["msg"])
	}
	if entry["tool"] != "test_tool" {
		t.Errorf("tool = %v, want test_tool", entry["tool"])
	}
	if entry["success"] != true {
		t.Errorf("success = %v, want true", entry["success"])
	}
	if entry["operation"] != instrumentation.OperationList {
		t.Errorf("operation = %v, want %s", entry["operation"], instrumentation.OperationList)
	}
}

func TestInstrumentedToolHandlerAuditFailure(t *testing.T) {
	sc := testServerContext(t)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	sc.SetAuditLogger(instrumentation.NewAuditLogger(logger))

	handler := InstrumentedToolHandler("test_tool", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return nil, errors.New("backend unavailable")
		})

	if _, err := handler(context.Background(), mcp.CallToolRequest{}); err == nil {
		t.Fatal("handler error was swallowed")
	}

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("audit log is not JSON: %v", err)
	}
	if entry["msg"] != "tool_failed" {
		t.Errorf("msg = %v, want tool_failed", entry["msg"])
	}
	if entry["success"] != false {
		t.Errorf("success = %v, want false", entry["success"])
	}
	if entry["error"] != "backend unavailable" {
		t.Errorf("error = %v, want backend unavailable", entry["error"])
	}
}

func TestInstrumentedToolHandlerErrorResult(t *testing.T) {
	sc := testServerContext(t)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	sc.SetAuditLogger(instrumentation.NewAuditLogger(logger))

	// A tool-level error result counts as a failure even though the
	// handler returns err == nil.
	handler := InstrumentedToolHandler("test_tool", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultError("bad argument"), nil
		})

	result, err := handler(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result")
	}

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("audit log is not JSON: %v", err)
	}
	if entry["msg"] != "tool_failed" {
		t.Errorf("msg = %v, want tool_failed", entry["msg"])
	}
	if entry["success"] != false {
		t.Errorf("success = %v, want false", entry["success"])
	}
}
