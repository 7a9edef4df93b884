package scaffold

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"text/template"

	"github.com/officegen-labs/officegen/internal/catalog"
	"github.com/officegen-labs/officegen/internal/identity"
	"github.com/officegen-labs/officegen/internal/jsondoc"
)

// Supported client technologies.
const (
	TechNg           = "ng"
	TechHTML         = "html"
	TechManifestOnly = "manifest-only"
)

// ValidTechs lists every supported technology.
var ValidTechs = []string{TechNg, TechHTML, TechManifestOnly}

// ErrUnknownTech is returned for a technology without a template set.
var ErrUnknownTech = errors.New("unknown technology")

// Data holds all template variables available to scaffold templates.
type Data struct {
	ProjectName string // sanitized, e.g. "my-office-add-in"
	DisplayName string // raw, e.g. "My Office Add-in"
	Tech        string
	AddinRoot   string // slash-separated, relative to the project root; "" is the root
	Host        string

	// Variant is set while rendering a variant tree.
	Variant catalog.AppVariant
}

// NewData derives template data from a project identity.
func NewData(project *identity.Project, tech, addinRoot string) (*Data, error) {
	root, err := cleanRoot(addinRoot)
	if err != nil {
		return nil, err
	}
	if !IsValidTech(tech) {
		return nil, fmt.Errorf("%w %q (valid: %s)", ErrUnknownTech, tech, strings.Join(ValidTechs, ", "))
	}
	return &Data{
		ProjectName: project.SanitizedName,
		DisplayName: project.DisplayName,
		Tech:        tech,
		AddinRoot:   root,
		Host:        project.Host,
	}, nil
}

// Under joins rel onto the add-in root.
func (d Data) Under(rel string) string {
	if rel == "" {
		if d.AddinRoot == "" {
			return "."
		}
		return d.AddinRoot
	}
	return path.Join(d.AddinRoot, rel)
}

// StartPage is the start page URL of the variant being rendered.
func (d Data) StartPage() string {
	return d.Variant.StartPage(d.Host)
}

// IsCompose reports whether the variant being rendered is the compose app.
func (d Data) IsCompose() bool {
	return d.Variant == catalog.VariantCompose
}

// IsValidTech reports whether tech has a template set.
func IsValidTech(tech string) bool {
	for _, t := range ValidTechs {
		if t == tech {
			return true
		}
	}
	return false
}

// rootFile maps one embedded template to a project-root file.
type rootFile struct {
	src  string
	dst  string
	kind Kind
}

// rootFiles returns the project-root files for tech, in plan order.
func rootFiles(tech string) []rootFile {
	files := []rootFile{
		{src: "root/package.json.tmpl", dst: "package.json", kind: KindMerge},
		{src: "root/gulpfile.js.tmpl", dst: "gulpfile.js", kind: KindRendered},
		{src: "root/manifest.xsd", dst: "manifest.xsd", kind: KindStatic},
		{src: "root/gitignore", dst: ".gitignore", kind: KindLines},
	}
	if tech == TechManifestOnly {
		return files
	}
	return append(files,
		rootFile{src: "client/bowerrc.tmpl", dst: ".bowerrc", kind: KindMerge},
		rootFile{src: tech + "/bower.json.tmpl", dst: "bower.json", kind: KindMerge},
		rootFile{src: tech + "/tsd.json.tmpl", dst: "tsd.json", kind: KindMerge},
		rootFile{src: "client/jsconfig.json.tmpl", dst: "jsconfig.json", kind: KindMerge},
		rootFile{src: "client/tsconfig.json.tmpl", dst: "tsconfig.json", kind: KindMerge},
	)
}

// Build plans every file for the given variants. Variants are ignored for
// manifest-only projects, which have no client app. Build does not touch the
// filesystem.
func Build(variants []catalog.AppVariant, data *Data) (*Plan, error) {
	if data == nil {
		return nil, fmt.Errorf("planning scaffold: template data is required")
	}
	if !IsValidTech(data.Tech) {
		return nil, fmt.Errorf("%w %q", ErrUnknownTech, data.Tech)
	}

	plan := &Plan{}

	for _, f := range rootFiles(data.Tech) {
		entry, err := planFile(f.src, f.dst, f.kind, *data)
		if err != nil {
			return nil, err
		}
		if err := plan.Add(entry); err != nil {
			return nil, err
		}
	}

	if data.Tech == TechManifestOnly {
		return plan, nil
	}

	// Shared assets are planned once regardless of how many variants exist.
	if err := planTree(plan, "assets", data.AddinRoot, *data); err != nil {
		return nil, err
	}

	seen := make(map[catalog.AppVariant]bool)
	for _, v := range variants {
		if seen[v] {
			continue
		}
		seen[v] = true

		vd := *data
		vd.Variant = v
		if err := planTree(plan, data.Tech+"/app", vd.Under(v.Dir()), vd); err != nil {
			return nil, err
		}
	}

	return plan, nil
}

// planTree walks an embedded template directory and plans each file under
// dstRoot. Files ending in .tmpl are rendered; everything else is copied
// verbatim, which keeps client-side {{ }} bindings away from text/template.
func planTree(plan *Plan, srcDir, dstRoot string, data Data) error {
	root := path.Join("templates", srcDir)
	if _, err := fs.Stat(scaffoldFS, root); err != nil {
		return fmt.Errorf("template set %q not found: %w", srcDir, err)
	}

	return fs.WalkDir(scaffoldFS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel := strings.TrimPrefix(p, root+"/")
		kind := KindStatic
		if strings.HasSuffix(rel, ".tmpl") {
			kind = KindRendered
			rel = strings.TrimSuffix(rel, ".tmpl")
		}

		src := strings.TrimPrefix(p, "templates/")
		entry, err := planFile(src, path.Join(dstRoot, rel), kind, data)
		if err != nil {
			return err
		}
		return plan.Add(entry)
	})
}

// planFile loads one template and turns it into a plan entry.
func planFile(src, dst string, kind Kind, data Data) (Entry, error) {
	raw, err := fs.ReadFile(scaffoldFS, path.Join("templates", src))
	if err != nil {
		return Entry{}, fmt.Errorf("reading template %s: %w", src, err)
	}

	entry := Entry{Path: dst, Kind: kind, Source: src}

	if kind == KindStatic || kind == KindLines {
		entry.Content = raw
		return entry, nil
	}

	rendered, err := render(src, raw, data)
	if err != nil {
		return Entry{}, err
	}

	if kind == KindRendered {
		entry.Content = rendered
		return entry, nil
	}

	entry.Defaults, entry.Required, err = splitLayers(src, rendered)
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// render executes a Go template.
func render(name string, raw []byte, data Data) ([]byte, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// splitLayers parses a merge template of the form
// {"defaults": {...}, "required": {...}}.
func splitLayers(name string, rendered []byte) (*jsondoc.Object, *jsondoc.Object, error) {
	doc, err := jsondoc.Parse(rendered)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing merge template %s: %w", name, err)
	}

	defaults := doc.Object("defaults")
	required := doc.Object("required")
	if defaults == nil || required == nil {
		return nil, nil, fmt.Errorf("merge template %s must define \"defaults\" and \"required\" objects", name)
	}
	return defaults, required, nil
}

// cleanRoot validates the add-in root path and normalizes it to slash form.
func cleanRoot(root string) (string, error) {
	root = strings.ReplaceAll(strings.TrimSpace(root), "\\", "/")
	if root == "" || root == "." {
		return "", nil
	}
	if path.IsAbs(root) {
		return "", fmt.Errorf("add-in root %q must be relative to the project root", root)
	}
	cleaned := path.Clean(root)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("add-in root %q escapes the project root", root)
	}
	return cleaned, nil
}
