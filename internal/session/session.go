// Package session implements the signed client-side session: an HMAC-signed
// cookie carrying the authenticated identity, plus one-shot flash messages.
// No server-side state is kept; clearing the cookie ends the session.
package session

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/eventgate/server/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

const (
	sessionCookie = "session"
	sessionTTL    = 24 * time.Hour
)

// Manager signs and verifies session cookies.
type Manager struct {
	secret []byte
	secure bool
}

// NewManager creates a Manager signing with the given secret. secure
// controls the Secure cookie attribute; disable only for local development.
func NewManager(secret string, secure bool) *Manager {
	return &Manager{secret: []byte(secret), secure: secure}
}

// Issue writes a signed session cookie for the given identity.
func (m *Manager) Issue(w http.ResponseWriter, id domain.Identity) error {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(id.UserID, 10),
		"name": id.Name,
		"role": id.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(sessionTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}

	http.SetCookie(w, m.cookie(sessionCookie, token, int(sessionTTL.Seconds())))
	return nil
}

// Read extracts the identity from the request's session cookie. The second
// return value is false when no valid session is present.
func (m *Manager) Read(r *http.Request) (domain.Identity, bool) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return domain.Identity{}, false
	}

	claims, err := m.parse(cookie.Value)
	if err != nil {
		return domain.Identity{}, false
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return domain.Identity{}, false
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return domain.Identity{}, false
	}

	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)
	return domain.Identity{UserID: userID, Name: name, Role: role}, true
}

// Clear removes the session cookie. Safe to call without a session.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, m.cookie(sessionCookie, "", -1))
}

func (m *Manager) parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

func (m *Manager) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
