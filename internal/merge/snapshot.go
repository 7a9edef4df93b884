package merge

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/officegen-labs/officegen/internal/scaffold"
)

// Snapshot holds the existing contents of planned files, keyed by plan path.
// Paths with no file on disk are absent.
type Snapshot map[string][]byte

// Has reports whether path existed when the snapshot was taken.
func (s Snapshot) Has(path string) bool {
	_, ok := s[path]
	return ok
}

// LoadSnapshot reads every planned path under targetDir. Missing files and
// directories are skipped; any other read failure is returned.
func LoadSnapshot(fsys afero.Fs, targetDir string, plan *scaffold.Plan) (Snapshot, error) {
	snap := make(Snapshot)
	for _, e := range plan.Entries {
		full := filepath.Join(targetDir, filepath.FromSlash(e.Path))

		info, err := fsys.Stat(full)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading existing %s: %w", e.Path, err)
		}
		if info.IsDir() {
			// Left for the write phase to report.
			continue
		}

		data, err := afero.ReadFile(fsys, full)
		if err != nil {
			return nil, fmt.Errorf("reading existing %s: %w", e.Path, err)
		}
		snap[e.Path] = data
	}
	return snap, nil
}
