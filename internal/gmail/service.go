package gmail

import (
	"fmt"
	"os"
	"strconv"

	gmail "google.golang.org/api/gmail/v1"
)

// EnvMaxResults overrides the default unread listing size.
const EnvMaxResults = "GMAIL_MAX_RESULTS"

const (
	// UnreadQuery selects unread messages still in the inbox.
	UnreadQuery = "is:unread in:inbox"

	// MaxBodyChars caps the body length included in unread listings.
	MaxBodyChars = 2000

	// DefaultMaxResults is the unread listing size when neither the
	// caller nor the environment specifies one.
	DefaultMaxResults = 10
)

// MaxResultsFromEnv returns the unread listing size from
// GMAIL_MAX_RESULTS, or DefaultMaxResults when unset or invalid.
func MaxResultsFromEnv() int64 {
	v := os.Getenv(EnvMaxResults)
	if v == "" {
		return DefaultMaxResults
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 1 {
		return DefaultMaxResults
	}
	return n
}

// EmailSummary is one unread email in a listing. The body is truncated
// to MaxBodyChars.
type EmailSummary struct {
	MessageID string `json:"message_id"`
	ThreadID  string `json:"thread_id"`
	Sender    string `json:"sender"`
	Subject   string `json:"subject"`
	Snippet   string `json:"snippet"`
	Body      string `json:"body"`
}

// UnreadResult is the outcome of an unread listing.
type UnreadResult struct {
	Count   int            `json:"count,omitempty"`
	Message string         `json:"message,omitempty"`
	Emails  []EmailSummary `json:"emails"`
}

// EmailDetails is the full view of a single email. Missing headers
// come back as empty strings; the body is not truncated.
type EmailDetails struct {
	MessageID string `json:"message_id"`
	ThreadID  string `json:"thread_id"`
	Sender    string `json:"sender"`
	To        string `json:"to"`
	Cc        string `json:"cc"`
	Subject   string `json:"subject"`
	Date      string `json:"date"`
	Body      string `json:"body"`
}

// DraftResult describes a created draft reply.
type DraftResult struct {
	Success   bool   `json:"success"`
	DraftID   string `json:"draft_id"`
	MessageID string `json:"message_id"`
	ThreadID  string `json:"thread_id"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}

// ListUnread fetches up to maxResults unread inbox messages, newest
// first. Each message is fetched in full and decoded; a failure on any
// single message aborts the whole listing. An empty inbox yields a
// distinguished "no unread emails" result without any per-message
// fetches.
func ListUnread(provider MailProvider, maxResults int64) (UnreadResult, error) {
	ids, err := provider.ListMessageIDs(UnreadQuery, maxResults)
	if err != nil {
		return UnreadResult{}, err
	}

	if len(ids) == 0 {
		return UnreadResult{
			Message: "No unread emails found",
			Emails:  []EmailSummary{},
		}, nil
	}

	emails := make([]EmailSummary, 0, len(ids))
	for _, id := range ids {
		msg, err := provider.GetMessage(id)
		if err != nil {
			return UnreadResult{}, err
		}

		parsed, err := ParseMessage(msg)
		if err != nil {
			return UnreadResult{}, err
		}

		emails = append(emails, EmailSummary{
			MessageID: parsed.MessageID,
			ThreadID:  parsed.ThreadID,
			Sender:    parsed.Sender,
			Subject:   parsed.Subject,
			Snippet:   parsed.Snippet,
			Body:      TruncateBody(parsed.Body, MaxBodyChars),
		})
	}

	return UnreadResult{
		Count:  len(emails),
		Emails: emails,
	}, nil
}

// FetchDetails retrieves one email in full, including an untruncated
// body.
func FetchDetails(provider MailProvider, messageID string) (EmailDetails, error) {
	msg, err := provider.GetMessage(messageID)
	if err != nil {
		return EmailDetails{}, err
	}

	parsed, err := ParseMessage(msg)
	if err != nil {
		return EmailDetails{}, err
	}

	return EmailDetails{
		MessageID: parsed.MessageID,
		ThreadID:  parsed.ThreadID,
		Sender:    parsed.Sender,
		To:        headerOf(msg, "To"),
		Cc:        headerOf(msg, "Cc"),
		Subject:   parsed.Subject,
		Date:      headerOf(msg, "Date"),
		Body:      parsed.Body,
	}, nil
}

// CreateDraftReply composes a reply to an existing email and saves it
// as a draft on the given thread. Nothing is sent. The original message
// is fetched only for its headers; threading uses the caller's threadID.
func CreateDraftReply(provider MailProvider, messageID, threadID, body, overrideTo string) (DraftResult, error) {
	original, err := provider.GetMessage(messageID)
	if err != nil {
		return DraftResult{}, err
	}

	reply := BuildReply(original, body, overrideTo)

	draft, err := provider.CreateDraft(reply.Encode(), threadID)
	if err != nil {
		return DraftResult{}, fmt.Errorf("failed to create draft: %w", err)
	}

	result := DraftResult{
		Success:  true,
		DraftID:  draft.Id,
		ThreadID: threadID,
		To:       reply.To,
		Subject:  reply.Subject,
		Message:  "Draft reply created successfully. You can review and send it from Gmail.",
	}
	if draft.Message != nil {
		result.MessageID = draft.Message.Id
	}
	return result, nil
}

func headerOf(msg *gmail.Message, name string) string {
	if msg.Payload == nil {
		return ""
	}
	return HeaderValue(msg.Payload.Headers, name)
}
