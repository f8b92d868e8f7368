package handler

import (
	"net/http"

	"github.com/eventgate/server/internal/service"
	"github.com/eventgate/server/internal/session"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, events *service.EventService, sessions *session.Manager, loginLimiter *service.TokenBucket) {
	authHandler := NewAuthHandler(auth, sessions, loginLimiter)
	profileHandler := NewProfileHandler(events, sessions)
	eventHandler := NewEventHandler(events, sessions)

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.HandleFunc("GET /{$}", profileHandler.HandleHome)
	mux.HandleFunc("GET /profile", profileHandler.HandleProfile)

	mux.HandleFunc("GET /register", authHandler.HandleRegisterPage)
	mux.HandleFunc("POST /register", authHandler.HandleRegister)
	mux.HandleFunc("GET /login", authHandler.HandleLoginPage)
	mux.HandleFunc("POST /login", authHandler.HandleLogin)
	mux.HandleFunc("GET /logout", authHandler.HandleLogoutPage)
	mux.HandleFunc("POST /logout", authHandler.HandleLogout)

	mux.HandleFunc("POST /create_event", eventHandler.HandleCreate)
	mux.HandleFunc("POST /create_events_bulk", eventHandler.HandleCreateBulk)
	mux.HandleFunc("POST /import_events_csv", eventHandler.HandleImportCSV)
}
