package gmail

import (
	"encoding/base64"
	"fmt"
	"mime"
	"strings"

	gmail "google.golang.org/api/gmail/v1"
)

// Reply is a composed reply message, ready to be encoded for the
// drafts API.
type Reply struct {
	To         string
	Subject    string
	InReplyTo  string
	References string
	Body       string
}

// BuildReply composes a reply to an original message. The recipient
// defaults to the original sender unless overrideTo is given; when the
// original has no From header and no override was given, To stays
// empty. The subject gets a "Re: " prefix unless one is already
// present (any case). When the original carries a Message-ID header,
// In-Reply-To and References are set to it so mail clients thread the
// reply; when it does not, both stay empty.
func BuildReply(original *gmail.Message, body, overrideTo string) Reply {
	var headers []*gmail.MessagePartHeader
	if original.Payload != nil {
		headers = original.Payload.Headers
	}

	to := overrideTo
	if to == "" {
		to = HeaderValue(headers, "From")
	}

	subject := HeaderValue(headers, "Subject")
	if !strings.HasPrefix(strings.ToLower(subject), "re:") {
		subject = "Re: " + subject
	}

	messageID := HeaderValue(headers, "Message-ID")

	return Reply{
		To:         to,
		Subject:    subject,
		InReplyTo:  messageID,
		References: messageID,
		Body:       body,
	}
}

// Encode renders the reply as an RFC 2822 message and base64url-encodes
// it for the Gmail drafts API.
func (r Reply) Encode() string {
	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("To: %s\r\n", stripCRLF(r.To)))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", encodeRFC2047(stripCRLF(r.Subject))))
	if r.InReplyTo != "" {
		msg.WriteString(fmt.Sprintf("In-Reply-To: %s\r\n", stripCRLF(r.InReplyTo)))
	}
	if r.References != "" {
		msg.WriteString(fmt.Sprintf("References: %s\r\n", stripCRLF(r.References)))
	}
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(r.Body)

	return base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString([]byte(msg.String()))
}

// encodeRFC2047 encodes a header value per RFC 2047 when it contains
// non-ASCII characters.
func encodeRFC2047(s string) string {
	return mime.BEncoding.Encode("UTF-8", s)
}

// stripCRLF removes CR and LF from a header value. Header values come
// from the original message and must not be able to inject additional
// header lines into the draft.
func stripCRLF(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' {
			return -1
		}
		return r
	}, s)
}
