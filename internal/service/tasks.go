package service

import (
	"context"
	"fmt"

	"github.com/teemow/calbridge/internal/airtable"
)

// TaskInput describes a task to create. Name is required. Every other
// field is optional: an empty string means not provided, and the field
// is left out of the record entirely rather than sent as null.
type TaskInput struct {
	Name     string
	Status   string
	DueDate  string
	Priority string
	Notes    string
}

// FieldMap builds the store field map from the provided values only.
func (in TaskInput) FieldMap() map[string]any {
	fields := map[string]any{"Name": in.Name}
	if in.Status != "" {
		fields["Status"] = in.Status
	}
	if in.DueDate != "" {
		fields["Due Date"] = in.DueDate
	}
	if in.Priority != "" {
		fields["Priority"] = in.Priority
	}
	if in.Notes != "" {
		fields["Notes"] = in.Notes
	}
	return fields
}

// CreateTask creates a task record in the configured tasks table.
func (s *Service) CreateTask(ctx context.Context, in TaskInput) (*airtable.Record, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: task name is required", ErrInvalidInput)
	}
	return s.CreateRecord(ctx, s.tasksTable, in.FieldMap())
}
