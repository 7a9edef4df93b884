// Package identity derives the naming and identity values of a generated add-in
// project from the user-supplied display name.
package identity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DefaultHost is where generated client apps are served during development.
const DefaultHost = "https://localhost:8443"

// ErrEmptyName is returned when a display name has no usable characters.
var ErrEmptyName = errors.New("project name must contain at least one letter or digit")

// Project is the identity of one generated add-in.
type Project struct {
	DisplayName   string    // raw user input, emitted verbatim in the manifest
	SanitizedName string    // lowercase alphanumerics joined by single hyphens
	ID            uuid.UUID // stable for the lifetime of the manifest file
	Host          string    // scheme + authority, no trailing slash
	IconURL       string
	HiResIconURL  string
}

// New builds a Project. A nil id gets a fresh random UUID. Empty icon URLs
// default to the generated hi-res icon under host.
func New(displayName, host string, id uuid.UUID, iconURL, hiResIconURL string) (*Project, error) {
	if strings.TrimSpace(displayName) == "" {
		return nil, fmt.Errorf("project name is required")
	}
	name := Sanitize(displayName)
	if name == "" {
		return nil, fmt.Errorf("sanitizing %q: %w", displayName, ErrEmptyName)
	}

	if host == "" {
		host = DefaultHost
	}
	host = strings.TrimSuffix(host, "/")

	if id == uuid.Nil {
		id = uuid.New()
	}

	defaultIcon := host + "/images/hi-res-icon.png"
	if iconURL == "" {
		iconURL = defaultIcon
	}
	if hiResIconURL == "" {
		hiResIconURL = defaultIcon
	}

	return &Project{
		DisplayName:   displayName,
		SanitizedName: name,
		ID:            id,
		Host:          host,
		IconURL:       iconURL,
		HiResIconURL:  hiResIconURL,
	}, nil
}

// Sanitize lowercases name, drops everything that is not an ASCII letter, digit,
// space or hyphen, and joins the remaining words with single hyphens.
//
//	Sanitize("My Office Add-in")                      == "my-office-add-in"
//	Sanitize("Some's bad * character$ ~!@#$%^&*()")  == "somes-bad-character"
func Sanitize(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-', r == '_', r == ' ', r == '\t':
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), "-")
}
