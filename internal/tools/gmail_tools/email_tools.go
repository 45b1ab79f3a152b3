package gmail_tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"google.golang.org/api/googleapi"

	"github.com/inboxscribe/inboxscribe/internal/gmail"
	"github.com/inboxscribe/inboxscribe/internal/server"
)

// errorPayload is the structured error returned to the client when an
// operation fails after argument validation.
type errorPayload struct {
	Error string `json:"error"`
}

// draftErrorPayload is the structured error for the draft tool; it
// carries the success flag so clients can treat it like a DraftResult.
type draftErrorPayload struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func handleGetUnreadEmails(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	maxResults := sc.MaxResults()
	if v, ok := args["max_results"]; ok {
		f, ok := v.(float64)
		if !ok || f < 1 {
			return mcp.NewToolResultError("max_results must be a positive number"), nil
		}
		maxResults = int64(f)
	}

	provider := sc.MailProvider()
	if provider == nil {
		return jsonResult(errorPayload{Error: notAuthenticatedMessage})
	}

	result, err := gmail.ListUnread(provider, maxResults)
	if err != nil {
		return jsonResult(errorPayload{Error: describeError(err)})
	}

	return jsonResult(result)
}

func handleGetEmailDetails(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	messageID, ok := args["message_id"].(string)
	if !ok || messageID == "" {
		return mcp.NewToolResultError("message_id is required"), nil
	}

	provider := sc.MailProvider()
	if provider == nil {
		return jsonResult(errorPayload{Error: notAuthenticatedMessage})
	}

	details, err := gmail.FetchDetails(provider, messageID)
	if err != nil {
		return jsonResult(errorPayload{Error: describeError(err)})
	}

	return jsonResult(details)
}

func handleCreateDraftReply(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	messageID, ok := args["message_id"].(string)
	if !ok || messageID == "" {
		return mcp.NewToolResultError("message_id is required"), nil
	}

	threadID, ok := args["thread_id"].(string)
	if !ok || threadID == "" {
		return mcp.NewToolResultError("thread_id is required"), nil
	}

	replyBody, ok := args["reply_body"].(string)
	if !ok || replyBody == "" {
		return mcp.NewToolResultError("reply_body is required"), nil
	}

	overrideTo := ""
	if v, ok := args["sender_email"].(string); ok {
		overrideTo = v
	}

	provider := sc.MailProvider()
	if provider == nil {
		return jsonResult(draftErrorPayload{Error: notAuthenticatedMessage})
	}

	result, err := gmail.CreateDraftReply(provider, messageID, threadID, replyBody, overrideTo)
	if err != nil {
		return jsonResult(draftErrorPayload{Error: describeError(err)})
	}

	return jsonResult(result)
}

const notAuthenticatedMessage = "not authenticated with Gmail; run the auth command first"

// describeError renders an operation failure for the client. Gmail API
// errors get a recognizable prefix; everything else passes through.
func describeError(err error) string {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		reason := apiErr.Message
		if reason == "" {
			reason = fmt.Sprintf("HTTP %d", apiErr.Code)
		}
		return fmt.Sprintf("Gmail API error: %s", reason)
	}
	return err.Error()
}

// jsonResult serializes a payload as the tool result text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format output: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
