package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/officegen-labs/officegen/internal/branding"
	"github.com/officegen-labs/officegen/internal/manifest"
	"github.com/officegen-labs/officegen/internal/printer"
)

var validateDir string

func init() {
	validateCmd.Flags().StringVar(&validateDir, "dir", ".", "Project directory searched when no manifest is given")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [manifest]",
	Short: "Check add-in manifests against the manifest schema",
	Long: `Check a manifest against the schema the generator validates with. Without an
argument every manifest-*.xml in --dir is checked.

Examples:
  ` + branding.CLIName() + ` validate
  ` + branding.CLIName() + ` validate manifest-my-add-in.xml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	p := newPrinter(cmd)

	paths := args
	if len(paths) == 0 {
		found, err := afero.Glob(mailFs, filepath.Join(validateDir, "manifest-*.xml"))
		if err != nil {
			return fmt.Errorf("searching for manifests: %w", err)
		}
		if len(found) == 0 {
			_ = p.Error("No manifest found",
				fmt.Sprintf("%s contains no manifest-*.xml file.", filepath.Clean(validateDir)),
				[]string{fmt.Sprintf("Run '%s mail' to generate one, or pass the manifest path.", branding.CLIName())})
			return &reportedError{msg: "no manifest found"}
		}
		paths = found
	}

	failed := 0
	for _, path := range paths {
		if !checkManifestFile(p, path) {
			failed++
		}
	}
	if failed > 0 {
		return &reportedError{msg: fmt.Sprintf("%d invalid manifest(s)", failed)}
	}
	return nil
}

// checkManifestFile reports on one manifest and returns whether it is valid.
func checkManifestFile(p *printer.Printer, path string) bool {
	data, err := afero.ReadFile(mailFs, path)
	if err != nil {
		p.Warning("%s: %v\n", path, err)
		return false
	}

	result, err := manifest.ValidateXML(data)
	if err != nil {
		p.Warning("%s: %v\n", path, err)
		return false
	}
	if result.Valid {
		p.Success("%s is valid\n", path)
		return true
	}

	p.Warning("%s: %d validation issue(s)\n", path, len(result.Issues))
	for _, issue := range result.Issues {
		p.Info("    - %s\n", issue)
	}
	return false
}
