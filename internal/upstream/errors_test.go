package upstream

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{401, KindUnauthorized},
		{403, KindUnauthorized},
		{404, KindNotFound},
		{429, KindRateLimited},
		{400, KindUnknown},
		{500, KindUnknown},
		{502, KindUnknown},
	}

	for _, tt := range tests {
		if got := ClassifyStatus(tt.status); got != tt.want {
			t.Errorf("ClassifyStatus(%d) = %s, want %s", tt.status, got, tt.want)
		}
	}
}

func TestStatusError(t *testing.T) {
	err := StatusError("airtable", 401, nil)
	if err.Kind != KindUnauthorized {
		t.Errorf("Expected kind %s, got %s", KindUnauthorized, err.Kind)
	}
	if err.Provider != "airtable" {
		t.Errorf("Expected provider airtable, got %s", err.Provider)
	}
	if err.Err == nil {
		t.Error("Expected a non-nil wrapped error when none was supplied")
	}
}

func TestTransportError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := TransportError("calendar", cause)
	if err.Kind != KindTransport {
		t.Errorf("Expected kind %s, got %s", KindTransport, err.Kind)
	}
	if err.Status != 0 {
		t.Errorf("Expected zero status for transport error, got %d", err.Status)
	}
	if !errors.Is(err, cause) {
		t.Error("Expected transport error to wrap its cause")
	}
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("list records: %w", StatusError("airtable", 429, nil))
	if got := KindOf(wrapped); got != KindRateLimited {
		t.Errorf("KindOf(wrapped) = %s, want %s", got, KindRateLimited)
	}
	if got := KindOf(errors.New("plain")); got != KindUnknown {
		t.Errorf("KindOf(plain) = %s, want %s", got, KindUnknown)
	}
}

func TestProviderOf(t *testing.T) {
	wrapped := fmt.Errorf("create event: %w", StatusError("calendar", 500, nil))
	if got := ProviderOf(wrapped); got != "calendar" {
		t.Errorf("ProviderOf(wrapped) = %q, want %q", got, "calendar")
	}
	if got := ProviderOf(errors.New("plain")); got != "" {
		t.Errorf("ProviderOf(plain) = %q, want empty", got)
	}
}
