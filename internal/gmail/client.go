package gmail

import (
	"context"
	"fmt"

	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/inboxscribe/inboxscribe/internal/google"
)

// Client wraps the Gmail Users service for the authenticated account.
type Client struct {
	svc *gmail.UsersService
}

// NewClient creates a Gmail client authenticated with the persisted
// OAuth token. It fails when no token exists yet; run the auth command
// first in that case.
func NewClient(ctx context.Context, creds google.Config) (*Client, error) {
	httpClient, err := creds.HTTPClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found: %w. Run the auth command to authorize", err)
	}

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	return &Client{svc: svc.Users}, nil
}

// ListMessageIDs lists message IDs matching a Gmail search query.
func (c *Client) ListMessageIDs(query string, maxResults int64) ([]string, error) {
	res, err := c.svc.Messages.List("me").Q(query).MaxResults(maxResults).Do()
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(res.Messages))
	for _, m := range res.Messages {
		ids = append(ids, m.Id)
	}
	return ids, nil
}

// GetMessage fetches a message with its full payload.
func (c *Client) GetMessage(id string) (*gmail.Message, error) {
	return c.svc.Messages.Get("me", id).Format("full").Do()
}

// CreateDraft creates a draft from an encoded message on a thread.
func (c *Client) CreateDraft(raw, threadID string) (*gmail.Draft, error) {
	return c.svc.Drafts.Create("me", &gmail.Draft{
		Message: &gmail.Message{
			Raw:      raw,
			ThreadId: threadID,
		},
	}).Do()
}

// Profile returns the authenticated user's Gmail profile.
func (c *Client) Profile() (*gmail.Profile, error) {
	return c.svc.GetProfile("me").Do()
}
