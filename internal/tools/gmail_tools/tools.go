package gmail_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/inboxscribe/inboxscribe/internal/instrumentation"
	"github.com/inboxscribe/inboxscribe/internal/server"
	"github.com/inboxscribe/inboxscribe/internal/tools/common"
)

// RegisterEmailTools registers the email tools with the MCP server.
func RegisterEmailTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	getUnreadTool := mcp.NewTool("get_unread_emails",
		mcp.WithDescription("Retrieve unread emails from the Gmail inbox, newest first. Bodies are decoded to plain text and truncated."),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum number of emails to return (default: 10, or the GMAIL_MAX_RESULTS environment variable)"),
		),
	)

	s.AddTool(getUnreadTool, common.InstrumentedToolHandlerWithOperation(
		"get_unread_emails", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetUnreadEmails(ctx, request, sc)
		}))

	getDetailsTool := mcp.NewTool("get_email_details",
		mcp.WithDescription("Retrieve a single email in full, including its complete decoded body and To/Cc/Date headers."),
		mcp.WithString("message_id",
			mcp.Required(),
			mcp.Description("The Gmail message ID of the email to fetch"),
		),
	)

	s.AddTool(getDetailsTool, common.InstrumentedToolHandlerWithOperation(
		"get_email_details", instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetEmailDetails(ctx, request, sc)
		}))

	createDraftTool := mcp.NewTool("create_draft_reply",
		mcp.WithDescription("Create a draft reply to an existing email on its thread. Nothing is sent; the draft can be reviewed and sent from Gmail."),
		mcp.WithString("message_id",
			mcp.Required(),
			mcp.Description("The Gmail message ID of the email to reply to"),
		),
		mcp.WithString("thread_id",
			mcp.Required(),
			mcp.Description("The thread ID the draft is placed on, for proper threading"),
		),
		mcp.WithString("reply_body",
			mcp.Required(),
			mcp.Description("The plain-text body of the reply"),
		),
		mcp.WithString("sender_email",
			mcp.Description("Override the recipient (default: the original sender)"),
		),
	)

	s.AddTool(createDraftTool, common.InstrumentedToolHandlerWithOperation(
		"create_draft_reply", instrumentation.OperationCreateDraft, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateDraftReply(ctx, request, sc)
		}))

	return nil
}
