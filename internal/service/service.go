package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/teemow/calbridge/internal/airtable"
	"github.com/teemow/calbridge/internal/calendar"
	"github.com/teemow/calbridge/internal/instrumentation"
	"github.com/teemow/calbridge/internal/logging"
)

// ErrInvalidInput marks caller mistakes (bad date formats, missing
// fields) so adapters can reject them without touching a provider.
var ErrInvalidInput = errors.New("invalid input")

// defaultWindow is the event-listing window applied when the caller
// omits a bound: now to now+7 days.
const defaultWindow = 7 * 24 * time.Hour

// CalendarClient is the calendar surface the service needs.
type CalendarClient interface {
	ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]calendar.Event, error)
	CreateEvent(ctx context.Context, event *calendar.Event) (*calendar.Event, error)
}

// TableClient is the table-store surface the service needs.
type TableClient interface {
	ListRecords(ctx context.Context, table, filterFormula string) ([]airtable.Record, error)
	CreateRecord(ctx context.Context, table string, fields map[string]any) (*airtable.Record, error)
}

// UpstreamMetrics receives one recording per outbound provider call.
// *instrumentation.Metrics satisfies it.
type UpstreamMetrics interface {
	RecordUpstreamCall(ctx context.Context, provider, operation, result string, duration time.Duration)
}

// Provider labels on upstream call metrics.
const (
	providerCalendar = "calendar"
	providerAirtable = "airtable"
)

// Options configures a Service.
type Options struct {
	// Timezone is the label attached to event times created through
	// the tool and reminder flows.
	Timezone string
	// TasksTable and ContactsTable name the store tables the task and
	// contact flows address.
	TasksTable    string
	ContactsTable string
	Logger        *slog.Logger
	// Metrics records outbound provider calls. Nil disables recording.
	Metrics UpstreamMetrics
}

// Service translates caller operations into outbound provider calls.
// It holds no state between calls: every read re-fetches from the
// remote provider and nothing is cached or persisted locally.
type Service struct {
	cal           CalendarClient
	store         TableClient
	timezone      string
	tasksTable    string
	contactsTable string
	logger        *slog.Logger
	metrics       UpstreamMetrics
}

// New creates a Service over the given provider clients.
func New(cal CalendarClient, store TableClient, opts Options) *Service {
	if opts.Timezone == "" {
		opts.Timezone = "America/New_York"
	}
	if opts.TasksTable == "" {
		opts.TasksTable = "Tasks"
	}
	if opts.ContactsTable == "" {
		opts.ContactsTable = "Contacts"
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Service{
		cal:           cal,
		store:         store,
		timezone:      opts.Timezone,
		tasksTable:    opts.TasksTable,
		contactsTable: opts.ContactsTable,
		logger:        opts.Logger,
		metrics:       opts.Metrics,
	}
}

// recordUpstream reports one provider call outcome to the metrics
// recorder, when one is configured.
func (s *Service) recordUpstream(ctx context.Context, provider, operation string, started time.Time, err error) {
	if s.metrics == nil {
		return
	}
	result := instrumentation.StatusSuccess
	if err != nil {
		result = instrumentation.StatusError
	}
	s.metrics.RecordUpstreamCall(ctx, provider, operation, result, time.Since(started))
}

// Timezone returns the configured display timezone label.
func (s *Service) Timezone() string {
	return s.timezone
}

// TasksTable returns the configured tasks table name.
func (s *Service) TasksTable() string {
	return s.tasksTable
}

// ContactsTable returns the configured contacts table name.
func (s *Service) ContactsTable() string {
	return s.contactsTable
}

// ListEvents fetches calendar events in [start, end). A zero start
// defaults to now (UTC); a zero end defaults to now+7 days, regardless
// of the given start. The provider expands recurring events and orders
// by start time.
func (s *Service) ListEvents(ctx context.Context, start, end time.Time) ([]calendar.Event, error) {
	now := time.Now().UTC()
	if start.IsZero() {
		start = now
	}
	if end.IsZero() {
		end = now.Add(defaultWindow)
	}

	started := time.Now()
	events, err := s.cal.ListEvents(ctx, start, end)
	s.recordUpstream(ctx, providerCalendar, "list_events", started, err)
	if err != nil {
		s.logger.Warn("event listing failed",
			logging.Operation("list_events"), logging.Err(err))
		return nil, err
	}

	s.logger.Debug("events listed",
		logging.Operation("list_events"), slog.Int("count", len(events)))
	return events, nil
}

// CreateEvent sends the event to the provider as given and returns the
// created representation.
func (s *Service) CreateEvent(ctx context.Context, event *calendar.Event) (*calendar.Event, error) {
	started := time.Now()
	created, err := s.cal.CreateEvent(ctx, event)
	s.recordUpstream(ctx, providerCalendar, "create_event", started, err)
	if err != nil {
		s.logger.Warn("event creation failed",
			logging.Operation("create_event"), logging.Err(err))
		return nil, err
	}

	s.logger.Info("event created",
		logging.Operation("create_event"), slog.String("event_id", created.ID))
	return created, nil
}

// ListRecords fetches records from the named table, passing the filter
// formula through verbatim when present.
func (s *Service) ListRecords(ctx context.Context, table, filterFormula string) ([]airtable.Record, error) {
	started := time.Now()
	records, err := s.store.ListRecords(ctx, table, filterFormula)
	s.recordUpstream(ctx, providerAirtable, "list_records", started, err)
	if err != nil {
		s.logger.Warn("record listing failed",
			logging.Operation("list_records"), logging.Table(table), logging.Err(err))
		return nil, err
	}

	s.logger.Debug("records listed",
		logging.Operation("list_records"), logging.Table(table), slog.Int("count", len(records)))
	return records, nil
}

// CreateRecord creates one record in the named table.
func (s *Service) CreateRecord(ctx context.Context, table string, fields map[string]any) (*airtable.Record, error) {
	started := time.Now()
	record, err := s.store.CreateRecord(ctx, table, fields)
	s.recordUpstream(ctx, providerAirtable, "create_record", started, err)
	if err != nil {
		s.logger.Warn("record creation failed",
			logging.Operation("create_record"), logging.Table(table), logging.Err(err))
		return nil, err
	}

	s.logger.Info("record created",
		logging.Operation("create_record"), logging.Table(table), slog.String("record_id", record.ID))
	return record, nil
}
