// Package view renders the server-side HTML pages from embedded templates.
// Each page is a layout plus a content template parsed into its own set, so
// page-level definitions never collide.
package view

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/eventgate/server/internal/domain"
)

//go:embed templates/*.html
var files embed.FS

var (
	registerTmpl = mustParse("register.html")
	loginTmpl    = mustParse("login.html")
	profileTmpl  = mustParse("profile.html")
	logoutTmpl   = mustParse("logout.html")
)

func mustParse(page string) *template.Template {
	return template.Must(template.ParseFS(files, "templates/layout.html", "templates/"+page))
}

// Page is a renderable view: a template set bound to its data.
type Page struct {
	tmpl *template.Template
	data any
}

// Render writes the page to w. The template executes into a buffer first so
// a render failure never leaves a half-written response body.
func (p Page) Render(ctx context.Context, w io.Writer) error {
	buf := new(bytes.Buffer)
	if err := p.tmpl.ExecuteTemplate(buf, "layout.html", p.data); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// AuthData backs the register and login forms.
type AuthData struct {
	Flashes []string
}

// RegisterPage renders the registration form.
func RegisterPage(flashes []string) Page {
	return Page{tmpl: registerTmpl, data: AuthData{Flashes: flashes}}
}

// LoginPage renders the login form.
func LoginPage(flashes []string) Page {
	return Page{tmpl: loginTmpl, data: AuthData{Flashes: flashes}}
}

// ProfileData backs the role-scoped profile page. Organizers see their own
// events plus the creation forms; attendees see every event.
type ProfileData struct {
	Name        string
	IsOrganizer bool
	Events      []domain.Event
	Flashes     []string
}

// ProfilePage renders the profile page for the given identity.
func ProfilePage(id domain.Identity, events []domain.Event, flashes []string) Page {
	return Page{tmpl: profileTmpl, data: ProfileData{
		Name:        id.Name,
		IsOrganizer: id.IsOrganizer(),
		Events:      events,
		Flashes:     flashes,
	}}
}

// LogoutData backs the logout confirmation page.
type LogoutData struct {
	Name string
}

// LogoutPage renders the logout confirmation view.
func LogoutPage(name string) Page {
	return Page{tmpl: logoutTmpl, data: LogoutData{Name: name}}
}
