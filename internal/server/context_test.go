package server

import (
	"errors"
	"testing"

	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/inboxscribe/inboxscribe/internal/gmail"
)

type stubProvider struct{}

func (stubProvider) ListMessageIDs(string, int64) ([]string, error) {
	return nil, errors.New("not implemented")
}
func (stubProvider) GetMessage(string) (*gmailapi.Message, error) {
	return nil, errors.New("not implemented")
}
func (stubProvider) CreateDraft(string, string) (*gmailapi.Draft, error) {
	return nil, errors.New("not implemented")
}
func (stubProvider) Profile() (*gmailapi.Profile, error) {
	return nil, errors.New("not implemented")
}

func TestMailProviderWithoutToken(t *testing.T) {
	sc := testServerContext(t)

	if got := sc.MailProvider(); got != nil {
		t.Errorf("MailProvider() = %v, want nil without a token", got)
	}
}

func TestSetMailProvider(t *testing.T) {
	sc := testServerContext(t)

	var p gmail.MailProvider = stubProvider{}
	sc.SetMailProvider(p)

	if sc.MailProvider() == nil {
		t.Error("MailProvider() = nil after SetMailProvider()")
	}
}

func TestShutdownIdempotent(t *testing.T) {
	sc := testServerContext(t)

	if sc.IsShutdown() {
		t.Error("IsShutdown() = true before Shutdown()")
	}
	if err := sc.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if !sc.IsShutdown() {
		t.Error("IsShutdown() = false after Shutdown()")
	}
	if err := sc.Shutdown(); err != nil {
		t.Errorf("second Shutdown() error = %v", err)
	}

	select {
	case <-sc.Context().Done():
	default:
		t.Error("Context() not cancelled after Shutdown()")
	}
}

func TestMaxResultsFromEnv(t *testing.T) {
	tests := []struct {
		value string
		want  int64
	}{
		{value: "", want: gmail.DefaultMaxResults},
		{value: "25", want: 25},
		{value: "0", want: gmail.DefaultMaxResults},
		{value: "not-a-number", want: gmail.DefaultMaxResults},
	}

	for _, tt := range tests {
		t.Run("value "+tt.value, func(t *testing.T) {
			t.Setenv(gmail.EnvMaxResults, tt.value)

			sc := testServerContext(t)
			if got := sc.MaxResults(); got != tt.want {
				t.Errorf("MaxResults() = %d, want %d", got, tt.want)
			}
		})
	}
}
