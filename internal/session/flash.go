package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	flashCookie = "flash"
	flashTTL    = 10 * time.Minute
)

// Flash appends one-shot messages for the next rendered page. Messages
// already queued on the request are preserved, so a handler chain may flash
// more than once before redirecting.
func (m *Manager) Flash(w http.ResponseWriter, r *http.Request, messages ...string) error {
	queued := m.readFlashes(r)
	queued = append(queued, messages...)

	claims := jwt.MapClaims{
		"msgs": queued,
		"exp":  time.Now().Add(flashTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return fmt.Errorf("sign flash: %w", err)
	}

	http.SetCookie(w, m.cookie(flashCookie, token, int(flashTTL.Seconds())))
	return nil
}

// PopFlashes returns all queued flash messages and clears them, so each
// message is shown at most once.
func (m *Manager) PopFlashes(w http.ResponseWriter, r *http.Request) []string {
	messages := m.readFlashes(r)
	if _, err := r.Cookie(flashCookie); err == nil {
		http.SetCookie(w, m.cookie(flashCookie, "", -1))
	}
	return messages
}

func (m *Manager) readFlashes(r *http.Request) []string {
	cookie, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}

	claims, err := m.parse(cookie.Value)
	if err != nil {
		// Tampered or expired flash cookies are dropped silently.
		return nil
	}

	raw, ok := claims["msgs"].([]any)
	if !ok {
		return nil
	}
	var messages []string
	for _, v := range raw {
		if s, ok := v.(string); ok {
			messages = append(messages, s)
		}
	}
	return messages
}
