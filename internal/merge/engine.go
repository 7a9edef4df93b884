package merge

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/officegen-labs/officegen/internal/jsondoc"
	"github.com/officegen-labs/officegen/internal/scaffold"
)

// Change is one key modified in an existing configuration file.
type Change struct {
	File    string // plan path of the merged file
	Path    string // key path inside the document, or the added line
	Kind    jsondoc.ChangeKind
	From    any
	To      any
	Version VersionChange // set for updated values that look like versions
}

func (c Change) String() string {
	switch c.Kind {
	case jsondoc.Added:
		return fmt.Sprintf("%s: added %s", c.File, c.Path)
	case jsondoc.Extended:
		return fmt.Sprintf("%s: extended %s", c.File, c.Path)
	}
	if c.Version != "" {
		return fmt.Sprintf("%s: %s %s %v -> %v", c.File, c.Version, c.Path, c.From, c.To)
	}
	return fmt.Sprintf("%s: updated %s", c.File, c.Path)
}

// Result summarizes an Apply.
type Result struct {
	Written   []string // created, or overwritten in full
	Merged    []string // existing configuration files that gained keys or lines
	Unchanged []string // already had the planned content
	Skipped   []string // not attempted
	Changes   []Change
	Failures  []*WriteError
	Warnings  []string
}

// FailureCount returns how many planned files could not be written.
func (r *Result) FailureCount() int {
	return len(r.Failures)
}

// Engine applies scaffold plans to a filesystem.
type Engine struct {
	fs     afero.Fs
	logger *zap.Logger
}

// NewEngine returns an engine writing to fsys. A nil logger disables logging.
func NewEngine(fsys afero.Fs, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{fs: fsys, logger: logger}
}

// prepared is a plan entry resolved to the exact bytes to write.
type prepared struct {
	entry     *scaffold.Entry
	data      []byte
	existed   bool
	unchanged bool
	changes   []Change
}

// Apply writes plan under targetDir, merging configuration files into the
// contents recorded in existing. Every merge target is parsed before the
// first write; a corrupt one aborts with a *CorruptTargetError. Write
// failures are collected and do not stop independent writes, but any failure
// causes the manifest to be skipped.
func (e *Engine) Apply(plan *scaffold.Plan, targetDir string, existing Snapshot) (*Result, error) {
	if plan == nil {
		return nil, fmt.Errorf("applying plan: plan is required")
	}

	var files, manifests []*prepared
	for i := range plan.Entries {
		entry := &plan.Entries[i]
		p, err := e.prepare(entry, existing)
		if err != nil {
			return nil, err
		}
		if entry.Kind == scaffold.KindManifest {
			manifests = append(manifests, p)
		} else {
			files = append(files, p)
		}
	}

	result := &Result{}

	for _, p := range files {
		e.write(targetDir, p, result)
	}

	for _, p := range manifests {
		if result.FailureCount() > 0 {
			e.logger.Warn("skipping manifest after write failures",
				zap.String("path", p.entry.Path),
				zap.Int("failures", result.FailureCount()))
			result.Skipped = append(result.Skipped, p.entry.Path)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s was not written because %d other file(s) failed", p.entry.Path, result.FailureCount()))
			continue
		}
		e.write(targetDir, p, result)
	}

	return result, nil
}

// prepare computes the final content of one entry without touching the
// filesystem.
func (e *Engine) prepare(entry *scaffold.Entry, existing Snapshot) (*prepared, error) {
	old, existed := existing[entry.Path]
	p := &prepared{entry: entry, existed: existed}

	if entry.Kind == scaffold.KindLines && existed {
		data, added := appendLines(old, entry.Content)
		p.data = data
		p.unchanged = len(added) == 0
		for _, l := range added {
			p.changes = append(p.changes, Change{File: entry.Path, Path: l, Kind: jsondoc.Added, To: l})
		}
		return p, nil
	}

	if entry.Kind != scaffold.KindMerge {
		p.data = entry.Content
		p.unchanged = existed && bytes.Equal(old, entry.Content)
		return p, nil
	}

	if !existed {
		data, err := jsondoc.Encode(entry.Document())
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", entry.Path, err)
		}
		p.data = data
		return p, nil
	}

	doc, err := jsondoc.Parse(old)
	if err != nil {
		return nil, &CorruptTargetError{Path: entry.Path, Err: err}
	}

	var changes []jsondoc.Change
	if entry.Defaults != nil {
		changes = append(changes, jsondoc.Fill(doc, entry.Defaults)...)
	}
	if entry.Required != nil {
		changes = append(changes, jsondoc.Merge(doc, entry.Required)...)
	}

	// A document the plan has nothing to add to keeps its original bytes,
	// comments and formatting included.
	if len(changes) == 0 {
		p.data = old
		p.unchanged = true
		return p, nil
	}

	for _, c := range changes {
		mc := Change{File: entry.Path, Path: c.Path, Kind: c.Kind, From: c.From, To: c.To}
		if c.Kind == jsondoc.Updated {
			mc.Version = classifyVersions(c.From, c.To)
		}
		p.changes = append(p.changes, mc)
	}

	data, err := jsondoc.Encode(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", entry.Path, err)
	}
	p.data = data
	return p, nil
}

// write stores one prepared entry and records the outcome in result.
func (e *Engine) write(targetDir string, p *prepared, result *Result) {
	path := p.entry.Path

	if p.unchanged {
		e.logger.Debug("unchanged", zap.String("path", path))
		result.Unchanged = append(result.Unchanged, path)
		return
	}

	full := filepath.Join(targetDir, filepath.FromSlash(path))
	if err := e.fs.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		e.fail(path, err, result)
		return
	}
	if err := writeFileAtomic(e.fs, full, p.data); err != nil {
		e.fail(path, err, result)
		return
	}

	if p.existed && (p.entry.Kind == scaffold.KindMerge || p.entry.Kind == scaffold.KindLines) {
		e.logger.Debug("merged", zap.String("path", path), zap.Int("changes", len(p.changes)))
		result.Merged = append(result.Merged, path)
		result.Changes = append(result.Changes, p.changes...)
		return
	}

	e.logger.Debug("written", zap.String("path", path), zap.String("kind", string(p.entry.Kind)))
	result.Written = append(result.Written, path)
}

// writeFileAtomic writes data to a temp file beside path and renames it over
// path, so a failed write leaves the previous contents in place.
func writeFileAtomic(fsys afero.Fs, path string, data []byte) (err error) {
	tmp, err := afero.TempFile(fsys, filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = fsys.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err = fsys.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", tmpName, err)
	}
	if err = fsys.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

func (e *Engine) fail(path string, err error, result *Result) {
	e.logger.Warn("write failed", zap.String("path", path), zap.Error(err))
	result.Failures = append(result.Failures, &WriteError{Path: path, Err: err})
}
