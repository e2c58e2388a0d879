package airtable

// Record is a table-store row: the store-assigned id plus the field
// map. JSON field names follow the store's wire contract since the
// HTTP adapter returns records unmodified.
type Record struct {
	ID          string         `json:"id,omitempty"`
	CreatedTime string         `json:"createdTime,omitempty"`
	Fields      map[string]any `json:"fields"`
}

// StringField returns the named field as a string, or "" when the
// field is absent or not a string.
func (r *Record) StringField(name string) string {
	if r == nil || r.Fields == nil {
		return ""
	}
	if v, ok := r.Fields[name].(string); ok {
		return v
	}
	return ""
}

// recordList is the store's list-response envelope.
type recordList struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset,omitempty"`
}

// createRequest is the store's create envelope; fields are wrapped,
// never sent bare.
type createRequest struct {
	Fields map[string]any `json:"fields"`
}
