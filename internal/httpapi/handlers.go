package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/teemow/calbridge/internal/airtable"
	"github.com/teemow/calbridge/internal/calendar"
	"github.com/teemow/calbridge/internal/service"
)

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "calbridge is running"})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleCreateEvent accepts a raw calendar event object and forwards it
// to the provider unchanged.
func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var event calendar.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		writeBadRequest(w, fmt.Sprintf("invalid event body: %v", err))
		return
	}

	created, err := s.svc.CreateEvent(r.Context(), &event)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "event": created})
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	var start, end time.Time

	if v := r.URL.Query().Get("start_time"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeBadRequest(w, fmt.Sprintf("invalid start_time: %v", err))
			return
		}
		start = t
	}
	if v := r.URL.Query().Get("end_time"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeBadRequest(w, fmt.Sprintf("invalid end_time: %v", err))
			return
		}
		end = t
	}

	events, err := s.svc.ListEvents(r.Context(), start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	if events == nil {
		events = []calendar.Event{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

func (s *Server) handleCheckAvailability(w http.ResponseWriter, r *http.Request) {
	var slot service.Slot
	if err := json.NewDecoder(r.Body).Decode(&slot); err != nil {
		writeBadRequest(w, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	availability, err := s.svc.CheckAvailability(r.Context(), slot)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, availability)
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	table := mux.Vars(r)["table_name"]
	if !s.tableAllowed(table) {
		writeJSON(w, http.StatusForbidden, errorBody{
			Error: fmt.Sprintf("table %q is not allowed", table),
			Kind:  kindInvalidInput,
		})
		return
	}

	records, err := s.svc.ListRecords(r.Context(), table, r.URL.Query().Get("filter_formula"))
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []airtable.Record{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"records": records})
}

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	table := mux.Vars(r)["table_name"]
	if !s.tableAllowed(table) {
		writeJSON(w, http.StatusForbidden, errorBody{
			Error: fmt.Sprintf("table %q is not allowed", table),
			Kind:  kindInvalidInput,
		})
		return
	}

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeBadRequest(w, fmt.Sprintf("invalid field map: %v", err))
		return
	}

	record, err := s.svc.CreateRecord(r.Context(), table, fields)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "record": record})
}

type taskRequest struct {
	Name     string `json:"name"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
	DueDate  string `json:"due_date"`
	Notes    string `json:"notes"`
}

// handleCreateTask creates a task record with the conventional defaults
// for omitted fields: status "To Do", priority "Medium", empty notes.
// The due date is only written when given.
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.Name == "" {
		writeBadRequest(w, "name is required")
		return
	}

	if req.Status == "" {
		req.Status = "To Do"
	}
	if req.Priority == "" {
		req.Priority = "Medium"
	}

	fields := map[string]any{
		"Name":     req.Name,
		"Status":   req.Status,
		"Priority": req.Priority,
		"Notes":    req.Notes,
	}
	if req.DueDate != "" {
		fields["Due Date"] = req.DueDate
	}

	record, err := s.svc.CreateRecord(r.Context(), s.svc.TasksTable(), fields)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "task": record})
}

type contactSearchRequest struct {
	SearchTerm string `json:"search_term"`
}

func (s *Server) handleSearchContacts(w http.ResponseWriter, r *http.Request) {
	var req contactSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	contacts, err := s.svc.SearchContacts(r.Context(), req.SearchTerm)
	if err != nil {
		writeError(w, err)
		return
	}
	if contacts == nil {
		contacts = []service.Contact{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"contacts": contacts, "count": len(contacts)})
}

type reminderRequest struct {
	Title    string `json:"title"`
	DateTime string `json:"datetime"`
	Notes    string `json:"notes"`
}

// handleCreateReminder runs the composite flow. Partial outcomes still
// return 200; the body reports which of the two writes landed.
func (s *Server) handleCreateReminder(w http.ResponseWriter, r *http.Request) {
	var req reminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.Title == "" {
		writeBadRequest(w, "title is required")
		return
	}
	if req.DateTime == "" {
		writeBadRequest(w, "datetime is required")
		return
	}

	result, err := s.svc.CreateReminder(r.Context(), service.ReminderInput{
		Title:    req.Title,
		DateTime: req.DateTime,
		Notes:    req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":          result.FullyCreated(),
		"calendar_created": result.CalendarCreated,
		"airtable_created": result.AirtableCreated,
		"calendar_event":   result.Event,
		"airtable_task":    result.Task,
	})
}
