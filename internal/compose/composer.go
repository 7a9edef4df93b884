// Package compose builds the Outlook add-in manifest from a project identity
// and a resolved selection of extension points.
package compose

import (
	"fmt"
	"regexp"

	"github.com/officegen-labs/officegen/internal/catalog"
	"github.com/officegen-labs/officegen/internal/identity"
	"github.com/officegen-labs/officegen/internal/manifest"
	"github.com/officegen-labs/officegen/internal/selection"
)

var imageURLPattern = regexp.MustCompile(`(?i)^https://.+\.(png|jpe?g|gif|bmp)$`)

// Options carries the manifest values that do not come from the selection.
type Options struct {
	// StartPage, when set, is used as the source location of every form.
	// Manifest-only projects have no generated client app to point at.
	StartPage string

	ProviderName    string
	Version         string
	Locale          string
	Permissions     string
	RequestedHeight int // ItemRead forms only
}

// DefaultOptions returns the values a freshly generated project uses.
func DefaultOptions() Options {
	return Options{
		ProviderName:    "Contoso",
		Version:         "1.0.0.0",
		Locale:          "en-US",
		Permissions:     "ReadWriteItem",
		RequestedHeight: 250,
	}
}

// IconURLError reports an icon URL that is not an https image URL.
type IconURLError struct {
	Field string
	URL   string
}

func (e *IconURLError) Error() string {
	return fmt.Sprintf("%s %q must be an https URL to a .png, .jpg, .jpeg, .gif or .bmp image", e.Field, e.URL)
}

// Compose produces the manifest for project and sel. Forms and rules mirror
// the selection exactly; nothing the selection does not imply is emitted.
func Compose(project *identity.Project, sel *selection.Selection, opts Options) (*manifest.OfficeApp, error) {
	if project == nil || sel == nil {
		return nil, fmt.Errorf("composing manifest: project and selection are required")
	}
	if len(sel.Forms) == 0 {
		return nil, fmt.Errorf("composing manifest: %w", selection.ErrEmptySelection)
	}

	if !imageURLPattern.MatchString(project.HiResIconURL) {
		return nil, &IconURLError{Field: "HighResolutionIconUrl", URL: project.HiResIconURL}
	}
	if !imageURLPattern.MatchString(project.IconURL) {
		return nil, &IconURLError{Field: "IconUrl", URL: project.IconURL}
	}

	defaults := DefaultOptions()
	if opts.ProviderName == "" {
		opts.ProviderName = defaults.ProviderName
	}
	if opts.Version == "" {
		opts.Version = defaults.Version
	}
	if opts.Locale == "" {
		opts.Locale = defaults.Locale
	}
	if opts.Permissions == "" {
		opts.Permissions = defaults.Permissions
	}

	app := &manifest.OfficeApp{
		XMLNSXSI:              manifest.XSINamespace,
		Type:                  manifest.TypeMailApp,
		ID:                    project.ID.String(),
		Version:               opts.Version,
		ProviderName:          opts.ProviderName,
		DefaultLocale:         opts.Locale,
		DisplayName:           manifest.Value{DefaultValue: project.DisplayName},
		Description:           manifest.Value{DefaultValue: project.DisplayName},
		IconURL:               manifest.Value{DefaultValue: project.IconURL},
		HighResolutionIconURL: manifest.Value{DefaultValue: project.HiResIconURL},
		Hosts:                 manifest.Hosts{Host: []manifest.Host{{Name: "Mailbox"}}},
		Requirements: manifest.Requirements{Sets: manifest.Sets{Set: []manifest.Set{
			{Name: "MailBox", MinVersion: "1.1"},
		}}},
		Permissions: opts.Permissions,
		Rule: manifest.RuleSet{
			Type: manifest.TypeRuleCollection,
			Mode: "Or",
		},
	}

	for _, f := range sel.Forms {
		app.FormSettings.Forms = append(app.FormSettings.Forms, buildForm(f, project.Host, opts))
	}

	for _, r := range sel.Rules {
		app.Rule.Rules = append(app.Rule.Rules, manifest.Rule{
			Type:     manifest.TypeItemIs,
			ItemType: string(r.ItemType),
			FormType: string(r.FormType),
		})
	}

	return app, nil
}

func buildForm(f selection.Form, host string, opts Options) manifest.Form {
	source := opts.StartPage
	if source == "" {
		source = f.Variant.StartPage(host)
	}

	settings := manifest.DesktopSettings{
		SourceLocation: manifest.Value{DefaultValue: source},
	}
	if f.Type == catalog.FormItemRead {
		settings.RequestedHeight = opts.RequestedHeight
	}

	return manifest.Form{
		Type:            manifest.XSIType(f.Type),
		DesktopSettings: settings,
	}
}
