package service

import (
	"context"
	"strings"
)

// Contact is the caller-facing shape of a contact record.
type Contact struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// SearchContacts fetches every record of the contacts table and
// returns those whose Name or Email contains the search term,
// case-insensitively. The empty term matches everything.
func (s *Service) SearchContacts(ctx context.Context, term string) ([]Contact, error) {
	records, err := s.ListRecords(ctx, s.contactsTable, "")
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(term)
	matches := make([]Contact, 0, len(records))
	for _, rec := range records {
		name := rec.StringField("Name")
		email := rec.StringField("Email")
		if !strings.Contains(strings.ToLower(name), needle) &&
			!strings.Contains(strings.ToLower(email), needle) {
			continue
		}
		matches = append(matches, Contact{
			ID:    rec.ID,
			Name:  name,
			Email: email,
			Phone: rec.StringField("Phone"),
		})
	}
	return matches, nil
}
