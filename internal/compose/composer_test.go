package compose

import (
	"bytes"
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"

	"github.com/officegen-labs/officegen/internal/catalog"
	"github.com/officegen-labs/officegen/internal/identity"
	"github.com/officegen-labs/officegen/internal/manifest"
	"github.com/officegen-labs/officegen/internal/selection"
)

const displayName = "My Office Add-in"

var (
	uuidPattern  = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	hiResPattern = regexp.MustCompile(`(?i)^https://.+\.(png|jpe?g|gif|bmp)$`)
)

func newProject(t *testing.T) *identity.Project {
	t.Helper()
	p, err := identity.New(displayName, "https://localhost:8443", uuid.Nil, "", "")
	if err != nil {
		t.Fatalf("identity.New() error: %v", err)
	}
	return p
}

func resolve(t *testing.T, points ...catalog.ExtensionPoint) *selection.Selection {
	t.Helper()
	sel, err := selection.Resolve(points)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	return sel
}

func allPoints() []catalog.ExtensionPoint {
	var out []catalog.ExtensionPoint
	for _, e := range catalog.Entries() {
		out = append(out, e.Point)
	}
	return out
}

func TestCompose_AllPoints(t *testing.T) {
	project := newProject(t)
	app, err := Compose(project, resolve(t, allPoints()...), DefaultOptions())
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}

	if !uuidPattern.MatchString(app.ID) {
		t.Errorf("Id %q is not a canonical UUID", app.ID)
	}
	if app.ID != project.ID.String() {
		t.Errorf("Id = %q, want %q", app.ID, project.ID)
	}
	if app.DisplayName.DefaultValue != displayName {
		t.Errorf("DisplayName = %q, want %q", app.DisplayName.DefaultValue, displayName)
	}
	if !hiResPattern.MatchString(app.HighResolutionIconURL.DefaultValue) {
		t.Errorf("HighResolutionIconUrl %q is not an image URL", app.HighResolutionIconURL.DefaultValue)
	}

	read := app.FindForm("ItemRead")
	if read == nil {
		t.Fatal("missing ItemRead form")
	}
	if got := read.DesktopSettings.SourceLocation.DefaultValue; got != "https://localhost:8443/appread/index.html" {
		t.Errorf("ItemRead source = %q", got)
	}
	edit := app.FindForm("ItemEdit")
	if edit == nil {
		t.Fatal("missing ItemEdit form")
	}
	if got := edit.DesktopSettings.SourceLocation.DefaultValue; got != "https://localhost:8443/appcompose/index.html" {
		t.Errorf("ItemEdit source = %q", got)
	}
	if edit.DesktopSettings.RequestedHeight != 0 {
		t.Error("ItemEdit forms carry no RequestedHeight")
	}

	for _, r := range [][2]string{
		{"Message", "Read"}, {"Message", "Edit"},
		{"Appointment", "Read"}, {"Appointment", "Edit"},
	} {
		if !app.HasRule(r[0], r[1]) {
			t.Errorf("missing rule %s/%s", r[0], r[1])
		}
	}
	if len(app.Rule.Rules) != 4 {
		t.Errorf("got %d rules, want 4", len(app.Rule.Rules))
	}

	assertSchemaValid(t, app)
}

func TestCompose_ReadOnlySelection(t *testing.T) {
	app, err := Compose(newProject(t), resolve(t,
		catalog.MessageReadCommandSurface,
		catalog.AppointmentAttendeeCommandSurface,
	), DefaultOptions())
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}

	if types := app.FormTypes(); len(types) != 1 || types[0] != "ItemRead" {
		t.Errorf("FormTypes() = %v, want [ItemRead]", types)
	}
	if app.FindForm("ItemEdit") != nil {
		t.Error("ItemEdit form must be absent")
	}
	if !app.HasRule("Message", "Read") || !app.HasRule("Appointment", "Read") {
		t.Error("missing read rules")
	}
	if app.HasRule("Message", "Edit") || app.HasRule("Appointment", "Edit") {
		t.Error("edit rules must be absent")
	}

	assertSchemaValid(t, app)
}

func TestCompose_ComposeOnlySelection(t *testing.T) {
	app, err := Compose(newProject(t), resolve(t,
		catalog.MessageComposeCommandSurface,
	), DefaultOptions())
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}

	if types := app.FormTypes(); len(types) != 1 || types[0] != "ItemEdit" {
		t.Errorf("FormTypes() = %v, want [ItemEdit]", types)
	}
	if len(app.Rule.Rules) != 1 || !app.HasRule("Message", "Edit") {
		t.Errorf("Rules = %+v, want only Message/Edit", app.Rule.Rules)
	}

	assertSchemaValid(t, app)
}

func TestCompose_StartPageOverride(t *testing.T) {
	opts := DefaultOptions()
	opts.StartPage = "https://localhost:8443/manifest-only/index.html"

	app, err := Compose(newProject(t), resolve(t, allPoints()...), opts)
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	for _, f := range app.FormSettings.Forms {
		if f.DesktopSettings.SourceLocation.DefaultValue != opts.StartPage {
			t.Errorf("form %s source = %q, want %q", f.Type, f.DesktopSettings.SourceLocation.DefaultValue, opts.StartPage)
		}
	}
}

func TestCompose_Deterministic(t *testing.T) {
	project := newProject(t)
	sel := resolve(t, allPoints()...)

	first, err := Compose(project, sel, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	second, err := Compose(project, sel, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	a, err := manifest.Marshal(first)
	if err != nil {
		t.Fatal(err)
	}
	b, err := manifest.Marshal(second)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("Compose() output differs between runs:\n%s\n---\n%s", a, b)
	}
}

func TestCompose_IconValidation(t *testing.T) {
	tests := []struct {
		name  string
		icon  string
		hiRes string
		field string
	}{
		{"svg hi-res", "", "https://localhost:8443/images/icon.svg", "HighResolutionIconUrl"},
		{"http hi-res", "", "http://localhost:8443/images/icon.png", "HighResolutionIconUrl"},
		{"page icon", "https://localhost:8443/index.html", "", "IconUrl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project, err := identity.New(displayName, "", uuid.Nil, tt.icon, tt.hiRes)
			if err != nil {
				t.Fatal(err)
			}
			_, err = Compose(project, resolve(t, catalog.MessageReadCommandSurface), DefaultOptions())
			var iconErr *IconURLError
			if !errors.As(err, &iconErr) {
				t.Fatalf("err = %v, want IconURLError", err)
			}
			if iconErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", iconErr.Field, tt.field)
			}
		})
	}

	t.Run("upper-case extension accepted", func(t *testing.T) {
		project, err := identity.New(displayName, "", uuid.Nil, "", "https://cdn.example.com/Logo.JPEG")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := Compose(project, resolve(t, catalog.MessageReadCommandSurface), DefaultOptions()); err != nil {
			t.Errorf("Compose() error: %v", err)
		}
	})
}

func TestCompose_RequiresInputs(t *testing.T) {
	if _, err := Compose(nil, &selection.Selection{}, DefaultOptions()); err == nil {
		t.Error("expected error for nil project")
	}
	if _, err := Compose(newProject(t), &selection.Selection{}, DefaultOptions()); !errors.Is(err, selection.ErrEmptySelection) {
		t.Errorf("err = %v, want ErrEmptySelection", err)
	}
}

func TestCompose_FillsZeroOptions(t *testing.T) {
	app, err := Compose(newProject(t), resolve(t, catalog.MessageReadCommandSurface), Options{})
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	if app.ProviderName == "" || app.Version == "" || app.DefaultLocale == "" || app.Permissions == "" {
		t.Errorf("zero options not defaulted: %+v", app)
	}
	assertSchemaValid(t, app)
}

// ─── Test Helpers ──────────────────────────────────────────────────

func assertSchemaValid(t *testing.T, app *manifest.OfficeApp) {
	t.Helper()
	result, err := manifest.Validate(app)
	if err != nil {
		t.Fatalf("manifest.Validate() error: %v", err)
	}
	if !result.Valid {
		for _, issue := range result.Issues {
			t.Errorf("  %s", issue)
		}
		t.Fatal("composed manifest failed schema validation")
	}
}
