package handler

import (
	"log/slog"
	"net/http"

	"github.com/eventgate/server/internal/session"
	"github.com/eventgate/server/internal/view"
)

// renderPage writes a view page, falling back to a generic 500 if the
// template fails before any bytes reach the client.
func renderPage(w http.ResponseWriter, r *http.Request, page view.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(r.Context(), w); err != nil {
		serverError(w, "render page", err)
	}
}

// serverError logs an unexpected failure and responds with a generic 500.
// Internal detail never reaches the client.
func serverError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// flashAndRedirect queues flash messages and redirects. Flash signing can
// only fail on a broken secret, which is fatal at startup, so a failure
// here is logged and the redirect proceeds without the message.
func flashAndRedirect(w http.ResponseWriter, r *http.Request, sessions *session.Manager, target string, code int, messages ...string) {
	if err := sessions.Flash(w, r, messages...); err != nil {
		slog.Error("queue flash", "error", err)
	}
	http.Redirect(w, r, target, code)
}
