package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an upstream failure into the categories callers can
// act on. Both adapters surface the kind to the caller instead of
// collapsing every failure into an empty result.
type Kind string

const (
	// KindUnauthorized indicates the provider rejected our credentials.
	KindUnauthorized Kind = "unauthorized"
	// KindNotFound indicates the addressed resource (calendar, table,
	// record) does not exist upstream.
	KindNotFound Kind = "not_found"
	// KindRateLimited indicates the provider throttled the request.
	KindRateLimited Kind = "rate_limited"
	// KindTransport indicates the request never produced an HTTP
	// response: DNS failure, timeout, connection reset.
	KindTransport Kind = "transport"
	// KindUnknown covers every other non-success outcome.
	KindUnknown Kind = "unknown"
)

// Error is a classified upstream failure. Provider names the remote
// system ("calendar" or "airtable"), Status carries the HTTP status
// code when one was received (zero for transport faults).
type Error struct {
	Provider string
	Kind     Kind
	Status   int
	Err      error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: %s (status %d): %v", e.Provider, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ClassifyStatus maps an upstream HTTP status code to a Kind. Only 200
// counts as success for the providers this service talks to; callers
// should not pass 200 here.
func ClassifyStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindUnauthorized
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusTooManyRequests:
		return KindRateLimited
	default:
		return KindUnknown
	}
}

// StatusError builds a classified error from a non-success HTTP status.
func StatusError(provider string, status int, err error) *Error {
	if err == nil {
		err = fmt.Errorf("request failed with status %d", status)
	}
	return &Error{
		Provider: provider,
		Kind:     ClassifyStatus(status),
		Status:   status,
		Err:      err,
	}
}

// TransportError builds a classified error for a request that never
// produced an HTTP response.
func TransportError(provider string, err error) *Error {
	return &Error{
		Provider: provider,
		Kind:     KindTransport,
		Err:      err,
	}
}

// KindOf extracts the Kind from an error chain. Errors that are not
// upstream errors report KindUnknown.
func KindOf(err error) Kind {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Kind
	}
	return KindUnknown
}

// ProviderOf extracts the provider name from an error chain, or ""
// when the error did not originate upstream.
func ProviderOf(err error) string {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Provider
	}
	return ""
}
