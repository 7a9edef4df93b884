// Package generator runs a complete add-in generation: it resolves the
// selected extension points, composes and validates the manifest, plans the
// project files and hands everything to the merge engine.
package generator

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/officegen-labs/officegen/internal/compose"
	"github.com/officegen-labs/officegen/internal/identity"
	"github.com/officegen-labs/officegen/internal/manifest"
	"github.com/officegen-labs/officegen/internal/merge"
	"github.com/officegen-labs/officegen/internal/scaffold"
	"github.com/officegen-labs/officegen/internal/selection"
)

// ErrStartPageRequired is returned for manifest-only projects without a start
// page: no client app is generated for the forms to point at.
var ErrStartPageRequired = errors.New("manifest-only projects need a start page for their forms")

// Request holds everything the user supplies for one generation.
type Request struct {
	DisplayName string
	Points      []string // extension point names
	Tech        string
	AddinRoot   string // where client apps go, relative to TargetDir
	TargetDir   string // project root; "" is the working directory

	Host         string // dev server origin; defaults to identity.DefaultHost
	IconURL      string
	HiResIconURL string
	StartPage    string // overrides every form's source location
	ProviderName string
}

// Outcome describes a finished generation.
type Outcome struct {
	Project      *identity.Project
	Selection    *selection.Selection
	Manifest     *manifest.OfficeApp
	ManifestPath string // plan path of the manifest file
	ReusedID     bool   // Id was taken from an existing manifest
	Plan         *scaffold.Plan
	Result       *merge.Result
}

type options struct {
	fs       afero.Fs
	logger   *zap.Logger
	idSource func() uuid.UUID
}

// Option configures Generate.
type Option func(*options)

// WithFs sets the filesystem to read from and write to. Defaults to the OS.
func WithFs(fsys afero.Fs) Option {
	return func(o *options) { o.fs = fsys }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithIDSource sets how a new manifest Id is chosen.
func WithIDSource(fn func() uuid.UUID) Option {
	return func(o *options) { o.idSource = fn }
}

// Generate produces or updates an add-in project. Fatal errors leave the
// manifest unwritten. Individual write failures are not errors: they are
// reported in Outcome.Result.Failures.
func Generate(ctx context.Context, req Request, opts ...Option) (*Outcome, error) {
	o := options{
		fs:       afero.NewOsFs(),
		logger:   zap.NewNop(),
		idSource: uuid.New,
	}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger.With(zap.String("project", req.DisplayName))

	if err := validate(&req); err != nil {
		return nil, err
	}

	sel, err := selection.ResolveNames(req.Points)
	if err != nil {
		return nil, fmt.Errorf("resolving extension points: %w", err)
	}
	log.Debug("selection resolved",
		zap.Int("points", len(sel.Points)),
		zap.Int("forms", len(sel.Forms)),
		zap.Int("rules", len(sel.Rules)))

	manifestPath := manifest.FileName(identity.Sanitize(req.DisplayName))
	id, reused := existingID(o.fs, filepath.Join(req.TargetDir, manifestPath), log)
	if !reused {
		id = o.idSource()
	}

	project, err := identity.New(req.DisplayName, req.Host, id, req.IconURL, req.HiResIconURL)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	composeOpts := compose.DefaultOptions()
	composeOpts.StartPage = req.StartPage
	if req.ProviderName != "" {
		composeOpts.ProviderName = req.ProviderName
	}

	var (
		app  *manifest.OfficeApp
		plan *scaffold.Plan
		g    errgroup.Group
	)
	g.Go(func() error {
		var err error
		app, err = compose.Compose(project, sel, composeOpts)
		return err
	})
	g.Go(func() error {
		data, err := scaffold.NewData(project, req.Tech, req.AddinRoot)
		if err != nil {
			return err
		}
		plan, err = scaffold.Build(sel.Variants, data)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := manifest.Check(app, manifestPath); err != nil {
		return nil, err
	}
	xmlData, err := manifest.Marshal(app)
	if err != nil {
		return nil, err
	}
	if err := plan.Add(scaffold.Entry{Path: manifestPath, Kind: scaffold.KindManifest, Content: xmlData}); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, e := range plan.Entries {
		log.Debug("planned", zap.String("path", e.Path), zap.String("kind", string(e.Kind)))
	}

	snap, err := merge.LoadSnapshot(o.fs, req.TargetDir, plan)
	if err != nil {
		return nil, err
	}
	result, err := merge.NewEngine(o.fs, log).Apply(plan, req.TargetDir, snap)
	if err != nil {
		return nil, err
	}

	log.Info("generation finished",
		zap.Int("written", len(result.Written)),
		zap.Int("merged", len(result.Merged)),
		zap.Int("unchanged", len(result.Unchanged)),
		zap.Int("failures", result.FailureCount()))

	return &Outcome{
		Project:      project,
		Selection:    sel,
		Manifest:     app,
		ManifestPath: manifestPath,
		ReusedID:     reused,
		Plan:         plan,
		Result:       result,
	}, nil
}

// validate checks the request fields no later stage owns.
func validate(req *Request) error {
	if req.DisplayName == "" {
		return fmt.Errorf("project name is required")
	}
	if !scaffold.IsValidTech(req.Tech) {
		return fmt.Errorf("%w %q", scaffold.ErrUnknownTech, req.Tech)
	}
	if req.Tech == scaffold.TechManifestOnly && req.StartPage == "" {
		return ErrStartPageRequired
	}
	if req.Host == "" {
		req.Host = identity.DefaultHost
	}
	u, err := url.Parse(req.Host)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("host %q must be an https origin such as %s", req.Host, identity.DefaultHost)
	}
	return nil
}

// existingID returns the Id of the manifest at path when it parses.
func existingID(fsys afero.Fs, path string, log *zap.Logger) (uuid.UUID, bool) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return uuid.Nil, false
	}
	app, err := manifest.Parse(data)
	if err != nil {
		log.Warn("existing manifest is unreadable, assigning a new Id", zap.String("path", path), zap.Error(err))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(app.ID)
	if err != nil || id == uuid.Nil {
		log.Warn("existing manifest has no usable Id", zap.String("path", path), zap.String("id", app.ID))
		return uuid.Nil, false
	}
	return id, true
}
