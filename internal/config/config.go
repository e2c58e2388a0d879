package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all process configuration. Everything is read once at
// startup from the environment; there is no runtime reconfiguration.
// The credential variable names match the original deployment
// (GOOGLE_CALENDAR_TOKEN, AIRTABLE_API_KEY, AIRTABLE_BASE_ID, PORT).
type Config struct {
	// Calendar provider
	GoogleCalendarToken string `envconfig:"GOOGLE_CALENDAR_TOKEN"`
	// CalendarBaseURL overrides the Google Calendar API endpoint.
	// Used by tests; empty means the public endpoint.
	CalendarBaseURL string `envconfig:"CALENDAR_BASE_URL"`

	// Table store
	AirtableAPIKey  string `envconfig:"AIRTABLE_API_KEY"`
	AirtableBaseID  string `envconfig:"AIRTABLE_BASE_ID"`
	AirtableBaseURL string `envconfig:"AIRTABLE_BASE_URL" default:"https://api.airtable.com/v0"`

	// AirtableAllowedTables restricts which tables the HTTP adapter's
	// {table_name} path parameter may address. Empty means
	// unrestricted, matching the original behavior.
	AirtableAllowedTables []string `envconfig:"AIRTABLE_ALLOWED_TABLES"`

	// Table names for the task and contact flows.
	TasksTable    string `envconfig:"AIRTABLE_TASKS_TABLE" default:"Tasks"`
	ContactsTable string `envconfig:"AIRTABLE_CONTACTS_TABLE" default:"Contacts"`

	// Timezone is the label attached to event start/end times created
	// through the tool and reminder flows.
	Timezone string `envconfig:"TIMEZONE" default:"America/New_York"`

	// HTTP adapter listen port.
	Port int `envconfig:"PORT" default:"8000"`

	// Metrics server (streamable HTTP transport only).
	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"true"`
	MetricsAddr    string `envconfig:"METRICS_ADDR" default:":9090"`
}

// New parses configuration from the environment.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the credentials both providers require are
// present. Called by the serve and web commands before any client is
// built so misconfiguration fails at startup, not on first request.
func (c *Config) Validate() error {
	var missing []string
	if c.GoogleCalendarToken == "" {
		missing = append(missing, "GOOGLE_CALENDAR_TOKEN")
	}
	if c.AirtableAPIKey == "" {
		missing = append(missing, "AIRTABLE_API_KEY")
	}
	if c.AirtableBaseID == "" {
		missing = append(missing, "AIRTABLE_BASE_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// TableAllowed reports whether the HTTP adapter may address the given
// table. An empty allow-list permits every table.
func (c *Config) TableAllowed(table string) bool {
	if len(c.AirtableAllowedTables) == 0 {
		return true
	}
	for _, t := range c.AirtableAllowedTables {
		if strings.EqualFold(strings.TrimSpace(t), table) {
			return true
		}
	}
	return false
}

// Location resolves the configured timezone label. Falls back to UTC
// when the label is not in the zone database.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// HTTPAddr returns the HTTP adapter listen address.
func (c *Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
