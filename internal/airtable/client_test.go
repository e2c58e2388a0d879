package airtable

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/calbridge/internal/upstream"
)

func newFakeStore(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-key", "appBASE")
}

func TestListRecords(t *testing.T) {
	client := newFakeStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/appBASE/Tasks", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Empty(t, r.URL.Query().Get("filterByFormula"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"records": []map[string]any{
				{"id": "rec1", "fields": map[string]any{"Name": "Ship release", "Status": "Open"}},
				{"id": "rec2", "fields": map[string]any{"Name": "Write docs"}},
			},
		})
	})

	records, err := client.ListRecords(context.Background(), "Tasks", "")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "rec1", records[0].ID)
	assert.Equal(t, "Ship release", records[0].StringField("Name"))
	assert.Equal(t, "Open", records[0].StringField("Status"))
	assert.Empty(t, records[1].StringField("Status"))
}

func TestListRecordsPassesFilterVerbatim(t *testing.T) {
	const formula = `AND({Status}='Open', {Priority}='High')`
	var got string
	client := newFakeStore(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query().Get("filterByFormula")
		_ = json.NewEncoder(w).Encode(map[string]any{"records": []any{}})
	})

	_, err := client.ListRecords(context.Background(), "Tasks", formula)
	require.NoError(t, err)
	assert.Equal(t, formula, got)
}

func TestListRecordsClassifiesStatus(t *testing.T) {
	tests := []struct {
		status int
		want   upstream.Kind
	}{
		{http.StatusUnauthorized, upstream.KindUnauthorized},
		{http.StatusForbidden, upstream.KindUnauthorized},
		{http.StatusNotFound, upstream.KindNotFound},
		{http.StatusTooManyRequests, upstream.KindRateLimited},
		{http.StatusInternalServerError, upstream.KindUnknown},
	}

	for _, tt := range tests {
		client := newFakeStore(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		})
		_, err := client.ListRecords(context.Background(), "Tasks", "")
		require.Error(t, err)
		assert.Equal(t, tt.want, upstream.KindOf(err), "status %d", tt.status)
		assert.Equal(t, "airtable", upstream.ProviderOf(err))
	}
}

func TestCreateRecordWrapsFieldsEnvelope(t *testing.T) {
	var received map[string]any
	client := newFakeStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/appBASE/Tasks", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "recNew",
			"fields": received["fields"],
		})
	})

	record, err := client.CreateRecord(context.Background(), "Tasks", map[string]any{
		"Name":   "X",
		"Status": "Open",
	})
	require.NoError(t, err)
	assert.Equal(t, "recNew", record.ID)

	fields, ok := received["fields"].(map[string]any)
	require.True(t, ok, "fields envelope missing")
	assert.Equal(t, "X", fields["Name"])
	assert.Equal(t, "Open", fields["Status"])
}

func TestCreateRecordTransportFault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewClient(srv.URL, "k", "appBASE")
	srv.Close()

	_, err := client.CreateRecord(context.Background(), "Tasks", map[string]any{"Name": "X"})
	require.Error(t, err)
	assert.Equal(t, upstream.KindTransport, upstream.KindOf(err))
}
