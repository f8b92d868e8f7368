package handler_test

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func TestIntegration_RegisterLoginCreateLogout(t *testing.T) {
	app := newTestApp(t)

	// 1. Register a new organizer.
	resp := app.postForm(t, "/register", url.Values{
		"name":     {"Integration User"},
		"email":    {"integ@example.com"},
		"password": {"password123"},
		"role":     {"organizer"},
	})
	expectRedirect(t, resp, http.StatusSeeOther, "/login")

	// 2. The login page shows the registration flash exactly once.
	resp = app.get(t, "/login")
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("read login page: %v", err)
	}
	if !strings.Contains(string(body), "Registration successful") {
		t.Fatal("expected registration flash on login page")
	}

	resp = app.get(t, "/login")
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if strings.Contains(string(body), "Registration successful") {
		t.Fatal("flash message must not appear a second time")
	}

	// 3. Login with the new credentials.
	resp = app.postForm(t, "/login", url.Values{
		"email":    {"integ@example.com"},
		"password": {"password123"},
	})
	expectRedirect(t, resp, http.StatusSeeOther, "/profile")

	// 4. The profile greets the user by name.
	resp = app.get(t, "/profile")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /profile: expected 200, got %d", resp.StatusCode)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "Integration User") {
		t.Fatal("expected profile page to greet the user")
	}

	// 5. Create an event and see it listed.
	resp = app.postForm(t, "/create_event", url.Values{
		"event_name":  {"Launch Party"},
		"description": {"Celebrating the launch"},
		"event_time":  {"2026-06-01 19:00"},
		"location":    {"Main Hall"},
	})
	expectRedirect(t, resp, http.StatusSeeOther, "/profile")

	resp = app.get(t, "/profile")
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "Launch Party") {
		t.Fatal("expected created event on profile page")
	}
	if !strings.Contains(string(body), "Event created successfully") {
		t.Fatal("expected creation flash on profile page")
	}

	// 6. The logout confirmation renders for a logged-in user.
	resp = app.get(t, "/logout")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /logout: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// 7. Logout clears the session.
	resp = app.postForm(t, "/logout", url.Values{})
	expectRedirect(t, resp, http.StatusSeeOther, "/login")

	resp = app.get(t, "/profile")
	resp.Body.Close()
	expectRedirect(t, resp, http.StatusFound, "/login")
}

func TestIntegration_RoleScopedListing(t *testing.T) {
	app := newTestApp(t)

	// Organizer A creates an event.
	app.loginAs(t, "alice@example.com", "organizer")
	resp := app.postForm(t, "/create_event", url.Values{
		"event_name":  {"Alice Event"},
		"description": {"d"},
		"event_time":  {"t"},
		"location":    {"l"},
	})
	expectRedirect(t, resp, http.StatusSeeOther, "/profile")
	app.postForm(t, "/logout", url.Values{})

	// Organizer B creates another and sees only their own.
	app.loginAs(t, "bob@example.com", "organizer")
	resp = app.postForm(t, "/create_event", url.Values{
		"event_name":  {"Bob Event"},
		"description": {"d"},
		"event_time":  {"t"},
		"location":    {"l"},
	})
	expectRedirect(t, resp, http.StatusSeeOther, "/profile")

	resp = app.get(t, "/profile")
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if strings.Contains(string(body), "Alice Event") {
		t.Fatal("organizer must not see another organizer's events")
	}
	if !strings.Contains(string(body), "Bob Event") {
		t.Fatal("organizer must see their own events")
	}
	app.postForm(t, "/logout", url.Values{})

	// An attendee sees everything.
	app.loginAs(t, "carol@example.com", "attendee")
	resp = app.get(t, "/profile")
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "Alice Event") || !strings.Contains(string(body), "Bob Event") {
		t.Fatal("attendee must see all events")
	}
}

func TestIntegration_DuplicateEmailFlash(t *testing.T) {
	app := newTestApp(t)

	form := url.Values{
		"name":     {"First"},
		"email":    {"dup@example.com"},
		"password": {"password123"},
		"role":     {"attendee"},
	}
	resp := app.postForm(t, "/register", form)
	expectRedirect(t, resp, http.StatusSeeOther, "/login")

	form.Set("name", "Second")
	resp = app.postForm(t, "/register", form)
	expectRedirect(t, resp, http.StatusSeeOther, "/register")

	resp = app.get(t, "/register")
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "already registered") {
		t.Fatal("expected duplicate email flash on register page")
	}
}
