// Package calendar provides a typed client for the calendar provider's
// event API (Google Calendar v3 wire contract) over static bearer-token
// authentication.
package calendar
