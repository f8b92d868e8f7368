package handler

import (
	"errors"
	"net"
	"net/http"

	"github.com/eventgate/server/internal/domain"
	"github.com/eventgate/server/internal/service"
	"github.com/eventgate/server/internal/session"
	"github.com/eventgate/server/internal/view"
)

// AuthHandler handles registration, login, and logout.
type AuthHandler struct {
	auth         *service.AuthService
	sessions     *session.Manager
	loginLimiter *service.TokenBucket
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, sessions *session.Manager, loginLimiter *service.TokenBucket) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, loginLimiter: loginLimiter}
}

// HandleRegisterPage renders the registration form.
// GET /register
func (h *AuthHandler) HandleRegisterPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, view.RegisterPage(h.sessions.PopFlashes(w, r)))
}

// HandleRegister creates a new user from the submitted form.
// POST /register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	form := parseRegisterForm(r)
	if err := validate.Struct(form); err != nil {
		if msg := missingFieldsMessage(err); msg != "" {
			flashAndRedirect(w, r, h.sessions, "/register", http.StatusSeeOther, msg)
			return
		}
		serverError(w, "validate register form", err)
		return
	}

	_, err := h.auth.Register(r.Context(), form.Name, form.Email, form.Password, form.Role)
	switch {
	case err == nil:
		flashAndRedirect(w, r, h.sessions, "/login", http.StatusSeeOther,
			"Registration successful. Please log in.")
	case errors.Is(err, domain.ErrDuplicateEmail):
		flashAndRedirect(w, r, h.sessions, "/register", http.StatusSeeOther,
			"That email is already registered.")
	case errors.Is(err, domain.ErrInvalidInput):
		flashAndRedirect(w, r, h.sessions, "/register", http.StatusSeeOther,
			"Role must be organizer or attendee.")
	default:
		serverError(w, "register user", err)
	}
}

// HandleLoginPage renders the login form.
// GET /login
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, view.LoginPage(h.sessions.PopFlashes(w, r)))
}

// HandleLogin authenticates the submitted credentials and issues a session.
// POST /login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	// Throttled logins get the same generic failure as bad credentials.
	if !h.loginLimiter.Allow(clientIP(r)) {
		flashAndRedirect(w, r, h.sessions, "/login", http.StatusSeeOther,
			"Invalid email or password.")
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	user, err := h.auth.Login(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			flashAndRedirect(w, r, h.sessions, "/login", http.StatusSeeOther,
				"Invalid email or password.")
			return
		}
		serverError(w, "login user", err)
		return
	}

	id := domain.Identity{UserID: user.ID, Name: user.Name, Role: user.Role}
	if err := h.sessions.Issue(w, id); err != nil {
		serverError(w, "issue session", err)
		return
	}

	flashAndRedirect(w, r, h.sessions, "/profile", http.StatusSeeOther,
		"Logged in successfully.")
}

// HandleLogoutPage renders the logout confirmation view. Requests without a
// session are redirected to the login page.
// GET /logout
func (h *AuthHandler) HandleLogoutPage(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	renderPage(w, r, view.LogoutPage(id.Name))
}

// HandleLogout clears the session unconditionally, even when no session is
// present, and redirects to the login page.
// POST /logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	flashAndRedirect(w, r, h.sessions, "/login", http.StatusSeeOther,
		"You have been logged out.")
}

// clientIP returns the remote address without the port, used as the login
// rate limit key.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
