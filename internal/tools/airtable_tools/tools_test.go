package airtable_tools

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/calbridge/internal/airtable"
	"github.com/teemow/calbridge/internal/server"
	"github.com/teemow/calbridge/internal/service"
)

type fakeStore struct {
	records      []airtable.Record
	createdTable string
	created      map[string]any
	err          error
}

func (f *fakeStore) ListRecords(_ context.Context, table, _ string) ([]airtable.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func (f *fakeStore) CreateRecord(_ context.Context, table string, fields map[string]any) (*airtable.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.createdTable = table
	f.created = fields
	return &airtable.Record{ID: "rec-1", Fields: fields}, nil
}

func newTestContext(t *testing.T, store *fakeStore) *server.ServerContext {
	t.Helper()
	svc := service.New(nil, store, service.Options{})
	sc := server.NewServerContext(context.Background(), svc, nil, nil)
	t.Cleanup(sc.Shutdown)
	return sc
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("result content is not text: %T", result.Content[0])
	}
	return text.Text
}

func TestHandleCreateTask(t *testing.T) {
	store := &fakeStore{}
	sc := newTestContext(t, store)

	result, err := handleCreateTask(context.Background(), callRequest(map[string]interface{}{
		"name":     "Write report",
		"status":   "In Progress",
		"due_date": "2025-02-01",
	}), sc)
	if err != nil {
		t.Fatalf("handleCreateTask() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	if store.createdTable != "Tasks" {
		t.Errorf("created table = %q, want %q", store.createdTable, "Tasks")
	}
	want := map[string]any{
		"Name":     "Write report",
		"Status":   "In Progress",
		"Due Date": "2025-02-01",
	}
	if len(store.created) != len(want) {
		t.Errorf("field map = %v, want exactly %v", store.created, want)
	}
	for k, v := range want {
		if store.created[k] != v {
			t.Errorf("field %q = %v, want %v", k, store.created[k], v)
		}
	}

	if text := resultText(t, result); !strings.Contains(text, "rec-1") {
		t.Errorf("result text missing record ID: %q", text)
	}
}

func TestHandleCreateTask_OmittedOptionalsAbsent(t *testing.T) {
	store := &fakeStore{}
	sc := newTestContext(t, store)

	_, err := handleCreateTask(context.Background(), callRequest(map[string]interface{}{
		"name": "Bare task",
	}), sc)
	if err != nil {
		t.Fatalf("handleCreateTask() error = %v", err)
	}

	if len(store.created) != 1 {
		t.Errorf("field map = %v, want only the Name key", store.created)
	}
	if store.created["Name"] != "Bare task" {
		t.Errorf("Name = %v, want %q", store.created["Name"], "Bare task")
	}
}

func TestHandleCreateTask_MissingName(t *testing.T) {
	sc := newTestContext(t, &fakeStore{})

	result, err := handleCreateTask(context.Background(), callRequest(map[string]interface{}{
		"status": "To Do",
	}), sc)
	if err != nil {
		t.Fatalf("handleCreateTask() error = %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result for missing name")
	}
}

func TestHandleSearchContacts(t *testing.T) {
	store := &fakeStore{records: []airtable.Record{
		{ID: "rec-a", Fields: map[string]any{"Name": "Alice Adams", "Email": "alice@example.com", "Phone": "555-0100"}},
		{ID: "rec-b", Fields: map[string]any{"Name": "Bob Brown", "Email": "bob@example.com"}},
	}}
	sc := newTestContext(t, store)

	result, err := handleSearchContacts(context.Background(), callRequest(map[string]interface{}{
		"search_term": "ALICE",
	}), sc)
	if err != nil {
		t.Fatalf("handleSearchContacts() error = %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "Alice Adams") {
		t.Errorf("result text = %q, want Alice Adams", text)
	}
	if strings.Contains(text, "Bob Brown") {
		t.Errorf("result text = %q, should not include non-matching contact", text)
	}
}

func TestHandleSearchContacts_NoMatches(t *testing.T) {
	sc := newTestContext(t, &fakeStore{})

	result, err := handleSearchContacts(context.Background(), callRequest(map[string]interface{}{
		"search_term": "nobody",
	}), sc)
	if err != nil {
		t.Fatalf("handleSearchContacts() error = %v", err)
	}
	if result.IsError {
		t.Fatal("empty match set is not an error")
	}
	if text := resultText(t, result); !strings.Contains(text, "No contacts matched") {
		t.Errorf("result text = %q, want no-match message", text)
	}
}

func TestHandleSearchContacts_MissingTerm(t *testing.T) {
	sc := newTestContext(t, &fakeStore{})

	result, err := handleSearchContacts(context.Background(), callRequest(map[string]interface{}{}), sc)
	if err != nil {
		t.Fatalf("handleSearchContacts() error = %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result for missing search_term")
	}
}
