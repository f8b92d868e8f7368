package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/eventgate/server/internal/domain"
	"github.com/eventgate/server/internal/service"
	"github.com/eventgate/server/internal/session"
)

// maxCSVUploadBytes caps the in-memory portion of a CSV upload.
const maxCSVUploadBytes = 10 << 20 // 10MB

// EventHandler handles event creation: single, bulk, and CSV import.
type EventHandler struct {
	events   *service.EventService
	sessions *session.Manager
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(events *service.EventService, sessions *session.Manager) *EventHandler {
	return &EventHandler{events: events, sessions: sessions}
}

// HandleCreate creates one event from the submitted form. Non-organizers
// get a permission flash and land back on the profile page.
// POST /create_event
func (h *EventHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok || !id.IsOrganizer() {
		flashAndRedirect(w, r, h.sessions, "/profile", http.StatusSeeOther,
			"Permission denied.")
		return
	}

	form := parseEventForm(r)
	if err := validate.Struct(form); err != nil {
		if msg := missingFieldsMessage(err); msg != "" {
			flashAndRedirect(w, r, h.sessions, "/profile", http.StatusSeeOther, msg)
			return
		}
		serverError(w, "validate event form", err)
		return
	}

	_, err := h.events.Create(r.Context(), id, form.Name, form.Description, form.Time, form.Location)
	switch {
	case err == nil:
		flashAndRedirect(w, r, h.sessions, "/profile", http.StatusSeeOther,
			"Event created successfully.")
	case errors.Is(err, domain.ErrForbidden):
		flashAndRedirect(w, r, h.sessions, "/profile", http.StatusSeeOther,
			"Permission denied.")
	case errors.Is(err, domain.ErrInvalidInput):
		flashAndRedirect(w, r, h.sessions, "/profile", http.StatusSeeOther,
			"All fields are required.")
	default:
		serverError(w, "create event", err)
	}
}

// HandleCreateBulk creates events from parallel form arrays. Unlike single
// create, a missing or non-organizer session redirects to login without a
// message; the original system behaves this way and it is kept as-is.
// POST /create_events_bulk
func (h *EventHandler) HandleCreateBulk(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok || !id.IsOrganizer() {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		flashAndRedirect(w, r, h.sessions, "/profile", http.StatusSeeOther,
			"No valid event data to add.")
		return
	}

	count, err := h.events.CreateBulk(r.Context(), id,
		r.PostForm["event_name[]"],
		r.PostForm["description[]"],
		r.PostForm["event_time[]"],
		r.PostForm["location[]"],
	)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		serverError(w, "create events bulk", err)
		return
	}

	if count == 0 {
		flashAndRedirect(w, r, h.sessions, "/profile", http.StatusSeeOther,
			"No valid event data to add.")
		return
	}
	flashAndRedirect(w, r, h.sessions, "/profile", http.StatusSeeOther,
		fmt.Sprintf("Added %d events.", count))
}

// HandleImportCSV creates events from an uploaded CSV file. As with bulk
// create, permission failures redirect to login silently.
// POST /import_events_csv
func (h *EventHandler) HandleImportCSV(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok || !id.IsOrganizer() {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseMultipartForm(maxCSVUploadBytes); err != nil {
		flashAndRedirect(w, r, h.sessions, "/profile", http.StatusSeeOther,
			"No file part in the request.")
		return
	}

	file, header, err := r.FormFile("csv_file")
	if err != nil {
		flashAndRedirect(w, r, h.sessions, "/profile", http.StatusSeeOther,
			"No file part in the request.")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		flashAndRedirect(w, r, h.sessions, "/profile", http.StatusSeeOther,
			"No file selected.")
		return
	}

	count, err := h.events.ImportCSV(r.Context(), id, header.Filename, file)
	switch {
	case err == nil:
		if count == 0 {
			flashAndRedirect(w, r, h.sessions, "/profile", http.StatusSeeOther,
				"No valid event data in the CSV file.")
			return
		}
		flashAndRedirect(w, r, h.sessions, "/profile", http.StatusSeeOther,
			fmt.Sprintf("Imported %d events from CSV.", count))
	case errors.Is(err, domain.ErrFileFormat):
		flashAndRedirect(w, r, h.sessions, "/profile", http.StatusSeeOther,
			"Only CSV files are allowed.")
	case errors.Is(err, domain.ErrInvalidInput):
		flashAndRedirect(w, r, h.sessions, "/profile", http.StatusSeeOther,
			"No file selected.")
	case errors.Is(err, domain.ErrCSVParse):
		// The parse detail goes to the log, not the user.
		slog.Error("import events csv", "error", err)
		flashAndRedirect(w, r, h.sessions, "/profile", http.StatusSeeOther,
			"The CSV file could not be processed.")
	case errors.Is(err, domain.ErrForbidden):
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	default:
		serverError(w, "import events csv", err)
	}
}
