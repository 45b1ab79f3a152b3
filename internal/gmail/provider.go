package gmail

import (
	gmail "google.golang.org/api/gmail/v1"
)

// MailProvider is the slice of the Gmail API the server depends on.
// Client implements it against the real service; tests substitute
// fakes.
type MailProvider interface {
	// ListMessageIDs returns the IDs of messages matching the query,
	// newest first, at most maxResults of them.
	ListMessageIDs(query string, maxResults int64) ([]string, error)

	// GetMessage fetches a single message with its full payload.
	GetMessage(id string) (*gmail.Message, error)

	// CreateDraft creates a draft from a base64url-encoded RFC 2822
	// message, attached to the given thread.
	CreateDraft(raw, threadID string) (*gmail.Draft, error)

	// Profile returns the authenticated user's Gmail profile.
	Profile() (*gmail.Profile, error)
}
