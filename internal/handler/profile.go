package handler

import (
	"net/http"

	"github.com/eventgate/server/internal/service"
	"github.com/eventgate/server/internal/session"
	"github.com/eventgate/server/internal/view"
)

// ProfileHandler handles the home redirect and the role-scoped profile page.
type ProfileHandler struct {
	events   *service.EventService
	sessions *session.Manager
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(events *service.EventService, sessions *session.Manager) *ProfileHandler {
	return &ProfileHandler{events: events, sessions: sessions}
}

// HandleHome redirects to the profile when a session exists, otherwise to
// the login page.
// GET /
func (h *ProfileHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	if _, ok := IdentityFromContext(r.Context()); ok {
		http.Redirect(w, r, "/profile", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

// HandleProfile renders the role-scoped event list: organizers see only
// their own events, attendees see all of them.
// GET /profile
func (h *ProfileHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		flashAndRedirect(w, r, h.sessions, "/login", http.StatusFound,
			"Please log in first.")
		return
	}

	events, err := h.events.ListForRole(r.Context(), id)
	if err != nil {
		serverError(w, "list events for profile", err)
		return
	}

	renderPage(w, r, view.ProfilePage(id, events, h.sessions.PopFlashes(w, r)))
}
