package manifest

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate_Valid(t *testing.T) {
	result, err := Validate(sampleApp())
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if !result.Valid {
		for _, issue := range result.Issues {
			t.Errorf("  path=%s keyword=%s message=%s", issue.Path, issue.Keyword, issue.Message)
		}
		t.Fatal("expected valid manifest")
	}
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*OfficeApp)
		path   string
	}{
		{"bad id", func(a *OfficeApp) { a.ID = "not-a-uuid" }, "/Id"},
		{"empty display name", func(a *OfficeApp) { a.DisplayName.DefaultValue = "" }, "/DisplayName/DefaultValue"},
		{"non-image hi-res icon", func(a *OfficeApp) {
			a.HighResolutionIconURL.DefaultValue = "https://localhost:8443/icon.svg"
		}, "/HighResolutionIconUrl/DefaultValue"},
		{"http icon", func(a *OfficeApp) {
			a.IconURL.DefaultValue = "http://localhost:8443/icon.png"
		}, "/IconUrl/DefaultValue"},
		{"unknown form type", func(a *OfficeApp) {
			a.FormSettings.Forms[0].Type = "ItemPreview"
		}, "/FormSettings/Form/0/xsiType"},
		{"unknown item type", func(a *OfficeApp) {
			a.Rule.Rules[0].ItemType = "Task"
		}, "/Rule/Rule/0/ItemType"},
		{"duplicate rule", func(a *OfficeApp) {
			a.Rule.Rules = append(a.Rule.Rules, a.Rule.Rules[0])
		}, "/Rule/Rule"},
		{"bad permission", func(a *OfficeApp) { a.Permissions = "Everything" }, "/Permissions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := sampleApp()
			tt.mutate(app)

			result, err := Validate(app)
			if err != nil {
				t.Fatalf("Validate() error: %v", err)
			}
			if result.Valid {
				t.Fatal("expected invalid result")
			}
			found := false
			for _, issue := range result.Issues {
				if issue.Path == tt.path {
					found = true
				}
				if issue.Message == "" {
					t.Errorf("issue at %s has empty message", issue.Path)
				}
			}
			if !found {
				t.Errorf("no issue at %s; got %+v", tt.path, result.Issues)
			}
		})
	}
}

func TestValidate_NoForms(t *testing.T) {
	app := sampleApp()
	app.FormSettings.Forms = nil
	result, err := Validate(app)
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if result.Valid {
		t.Error("a manifest without forms must be invalid")
	}
}

func TestValidateXML(t *testing.T) {
	data, err := Marshal(sampleApp())
	if err != nil {
		t.Fatal(err)
	}
	result, err := ValidateXML(data)
	if err != nil {
		t.Fatalf("ValidateXML() error: %v", err)
	}
	if !result.Valid {
		t.Errorf("round-tripped manifest invalid: %+v", result.Issues)
	}

	if _, err := ValidateXML([]byte("not xml")); err == nil {
		t.Error("expected parse error")
	}
}

func TestCheck(t *testing.T) {
	if err := Check(sampleApp(), "manifest-x.xml"); err != nil {
		t.Fatalf("Check() error: %v", err)
	}

	app := sampleApp()
	app.ID = "nope"
	err := Check(app, "manifest-x.xml")

	var schemaErr *SchemaValidationError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("err = %v, want SchemaValidationError", err)
	}
	if schemaErr.File != "manifest-x.xml" {
		t.Errorf("File = %q", schemaErr.File)
	}
	if !strings.Contains(err.Error(), "/Id") {
		t.Errorf("error should name the failing path, got: %v", err)
	}
}
