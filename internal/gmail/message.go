package gmail

import (
	"encoding/base64"
	"fmt"
	"strings"

	gmail "google.golang.org/api/gmail/v1"
)

// maxPartDepth bounds the multipart recursion. Gmail itself nests only
// a handful of levels; anything deeper is treated as having no body.
const maxPartDepth = 20

// EmailMessage is the decoded view of a Gmail message.
type EmailMessage struct {
	MessageID string
	ThreadID  string
	Sender    string
	Subject   string
	Snippet   string
	Body      string
}

// HeaderValue extracts a header value by name from a header list.
// The match is case-insensitive and the first match wins; a missing
// header yields an empty string.
func HeaderValue(headers []*gmail.MessagePartHeader, name string) string {
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// DecodeBody extracts the plain-text body from a message payload,
// handling both simple and multipart messages.
//
// A payload carrying inline data is decoded and returned directly.
// Otherwise its parts are scanned in order: the first text/plain part
// with data wins, the first text/html part with data is kept as a
// fallback, and nested multiparts are descended into depth-first. The
// preference order is plain text > nested plain text > html > empty.
func DecodeBody(payload *gmail.MessagePart) (string, error) {
	return decodeBody(payload, 0)
}

func decodeBody(payload *gmail.MessagePart, depth int) (string, error) {
	if payload == nil || depth > maxPartDepth {
		return "", nil
	}

	if partData(payload) != "" {
		// Simple message with inline body data
		return decodePartData(payload.Body.Data)
	}

	// Multipart message: look for text/plain, falling back to text/html
	var htmlBody string
	for _, part := range payload.Parts {
		switch {
		case part.MimeType == "text/plain":
			if partData(part) != "" {
				return decodePartData(part.Body.Data)
			}
		case part.MimeType == "text/html" && htmlBody == "":
			if partData(part) != "" {
				decoded, err := decodePartData(part.Body.Data)
				if err != nil {
					return "", err
				}
				htmlBody = decoded
			}
		case len(part.Parts) > 0:
			// Nested multipart
			nested, err := decodeBody(part, depth+1)
			if err != nil {
				return "", err
			}
			if nested != "" {
				return nested, nil
			}
		}
	}

	return htmlBody, nil
}

// partData returns the inline body data of a part, or "" when absent.
func partData(part *gmail.MessagePart) string {
	if part == nil || part.Body == nil {
		return ""
	}
	return part.Body.Data
}

// decodePartData decodes base64url body data into UTF-8 text. Invalid
// UTF-8 sequences are replaced rather than rejected. Gmail emits both
// padded and unpadded base64url, so both are accepted.
func decodePartData(data string) (string, error) {
	raw, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		raw, err = base64.RawURLEncoding.DecodeString(data)
		if err != nil {
			return "", fmt.Errorf("failed to decode body data: %w", err)
		}
	}
	return strings.ToValidUTF8(string(raw), "�"), nil
}

// ParseMessage converts a raw Gmail API message into an EmailMessage.
func ParseMessage(msg *gmail.Message) (EmailMessage, error) {
	var headers []*gmail.MessagePartHeader
	if msg.Payload != nil {
		headers = msg.Payload.Headers
	}

	body, err := DecodeBody(msg.Payload)
	if err != nil {
		return EmailMessage{}, fmt.Errorf("failed to decode body of message %s: %w", msg.Id, err)
	}

	return EmailMessage{
		MessageID: msg.Id,
		ThreadID:  msg.ThreadId,
		Sender:    HeaderValue(headers, "From"),
		Subject:   HeaderValue(headers, "Subject"),
		Snippet:   msg.Snippet,
		Body:      body,
	}, nil
}

// TruncateBody hard-cuts body text to at most max characters. No
// ellipsis, no word-boundary awareness; just a length contract.
func TruncateBody(body string, max int) string {
	runes := []rune(body)
	if len(runes) <= max {
		return body
	}
	return string(runes[:max])
}
