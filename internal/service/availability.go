package service

import (
	"context"
	"fmt"
	"time"
)

// Slot is a requested time slot.
type Slot struct {
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
}

// Availability is the outcome of an availability check.
type Availability struct {
	Available bool     `json:"available"`
	Conflicts []string `json:"conflicts"`
	Slot      Slot     `json:"requested_slot"`
}

// CheckAvailability fetches events in the window [date start_time,
// +duration) and reports the slot free iff the provider returned zero
// events. Any returned event counts as a conflict, even one that only
// partially overlaps the window under the provider's inclusion rules;
// no local overlap filtering happens.
func (s *Service) CheckAvailability(ctx context.Context, slot Slot) (*Availability, error) {
	if slot.DurationMinutes <= 0 {
		slot.DurationMinutes = 60
	}

	start, err := time.Parse("2006-01-02T15:04:05", fmt.Sprintf("%sT%s:00", slot.Date, slot.StartTime))
	if err != nil {
		return nil, fmt.Errorf("%w: bad date/start_time (want YYYY-MM-DD and HH:MM): %v", ErrInvalidInput, err)
	}
	start = start.UTC()
	end := start.Add(time.Duration(slot.DurationMinutes) * time.Minute)

	events, err := s.ListEvents(ctx, start, end)
	if err != nil {
		return nil, err
	}

	conflicts := make([]string, 0, len(events))
	for _, ev := range events {
		conflicts = append(conflicts, ev.Title())
	}

	return &Availability{
		Available: len(events) == 0,
		Conflicts: conflicts,
		Slot:      slot,
	}, nil
}
