// Package gmail_tools registers the email MCP tools: listing unread
// mail, fetching a single email and drafting replies.
package gmail_tools
