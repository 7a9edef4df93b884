package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/officegen-labs/officegen/internal/branding"
	"github.com/officegen-labs/officegen/internal/catalog"
	"github.com/officegen-labs/officegen/internal/compose"
	"github.com/officegen-labs/officegen/internal/config"
	"github.com/officegen-labs/officegen/internal/generator"
	"github.com/officegen-labs/officegen/internal/manifest"
	"github.com/officegen-labs/officegen/internal/merge"
	"github.com/officegen-labs/officegen/internal/scaffold"
	"github.com/officegen-labs/officegen/internal/selection"
)

// mailFs is where the mail command reads and writes.
var mailFs afero.Fs = afero.NewOsFs()

var (
	mailTech         string
	mailPoints       []string
	mailRoot         string
	mailHost         string
	mailIconURL      string
	mailHiResIconURL string
	mailStartPage    string
	mailProvider     string
	mailDir          string
)

func init() {
	mailCmd.Flags().StringVar(&mailTech, "tech", "", "Client technology: "+strings.Join(scaffold.ValidTechs, ", ")+" (default from config)")
	mailCmd.Flags().StringSliceVarP(&mailPoints, "extension-point", "e", nil, "Extension point to support (repeatable; see 'points')")
	mailCmd.Flags().StringVar(&mailRoot, "root", "", "Directory for the client apps, relative to --dir")
	mailCmd.Flags().StringVar(&mailHost, "host", "", "https origin the apps are served from (default from config)")
	mailCmd.Flags().StringVar(&mailIconURL, "icon-url", "", "https URL of the add-in icon")
	mailCmd.Flags().StringVar(&mailHiResIconURL, "hi-res-icon-url", "", "https URL of the high resolution icon (default: --icon-url)")
	mailCmd.Flags().StringVar(&mailStartPage, "start-page", "", "Source location for every form, replacing the generated app pages")
	mailCmd.Flags().StringVar(&mailProvider, "provider-name", "", "Manifest ProviderName (default from config)")
	mailCmd.Flags().StringVar(&mailDir, "dir", ".", "Project directory")
	rootCmd.AddCommand(mailCmd)
}

var mailCmd = &cobra.Command{
	Use:   "mail <name>",
	Short: "Generate or update an Outlook mail add-in",
	Long: `Generate an Outlook mail add-in: a manifest covering the selected extension
points, a client app for each form they need, and the project's build
configuration. In an existing project, package.json, bower.json and the other
configuration files are merged rather than replaced, and the manifest keeps
its Id.

Examples:
  ` + branding.CLIName() + ` mail "My Add-in" -e MessageReadCommandSurface -e MessageComposeCommandSurface
  ` + branding.CLIName() + ` mail "My Add-in" --tech html --root src/public -e AppointmentAttendeeCommandSurface
  ` + branding.CLIName() + ` mail "My Add-in" --tech manifest-only --start-page https://contoso.com/addin/index.html -e MessageReadCommandSurface`,
	Args: cobra.ExactArgs(1),
	RunE: runMail,
}

func runMail(cmd *cobra.Command, args []string) error {
	p := newPrinter(cmd)

	req := generator.Request{
		DisplayName:  args[0],
		Points:       mailPoints,
		Tech:         flagOrConfig(cmd, "tech", mailTech, config.KeyTech),
		AddinRoot:    mailRoot,
		TargetDir:    mailDir,
		Host:         flagOrConfig(cmd, "host", mailHost, config.KeyHost),
		IconURL:      flagOrConfig(cmd, "icon-url", mailIconURL, config.KeyIconURL),
		HiResIconURL: mailHiResIconURL,
		StartPage:    mailStartPage,
		ProviderName: flagOrConfig(cmd, "provider-name", mailProvider, config.KeyProviderName),
	}
	if req.HiResIconURL == "" {
		req.HiResIconURL = req.IconURL
	}

	p.Step("Generating %q (%s) in %s\n", req.DisplayName, req.Tech, filepath.Clean(req.TargetDir))

	out, err := generator.Generate(cmd.Context(), req,
		generator.WithFs(mailFs),
		generator.WithLogger(logger))
	if err != nil {
		return reportMailError(cmd, err)
	}

	printOutcome(cmd, out)

	if n := out.Result.FailureCount(); n > 0 {
		lines := make([]string, 0, n)
		for _, f := range out.Result.Failures {
			lines = append(lines, "  "+f.Error())
		}
		_ = p.Error(
			fmt.Sprintf("%d file(s) could not be written", n),
			strings.Join(lines, "\n"),
			[]string{"Fix the paths above and run the same command again; files already written are kept."})
		return &reportedError{msg: fmt.Sprintf("%d write failure(s)", n)}
	}
	return nil
}

// flagOrConfig returns the flag value when the user set it, else the config
// value for key.
func flagOrConfig(cmd *cobra.Command, flag, value, key string) string {
	if cmd.Flags().Changed(flag) {
		return value
	}
	return config.Get(key)
}

func printOutcome(cmd *cobra.Command, out *generator.Outcome) {
	p := newPrinter(cmd)
	r := out.Result

	names := make([]string, 0, len(out.Selection.Points))
	for _, pt := range out.Selection.Points {
		names = append(names, string(pt))
	}
	p.Info("Extension points: %s\n", strings.Join(names, ", "))

	for _, path := range r.Written {
		p.Info("  create  %s\n", path)
	}
	for _, path := range r.Merged {
		p.Info("  merge   %s\n", path)
	}
	for _, path := range r.Unchanged {
		p.Info("  same    %s\n", path)
	}
	for _, c := range r.Changes {
		if c.Version == merge.Downgrade {
			p.Warning("%s\n", c)
		}
	}
	for _, w := range r.Warnings {
		p.Warning("%s\n", w)
	}

	if r.FailureCount() > 0 {
		return
	}

	idNote := "new Id"
	if out.ReusedID {
		idNote = "Id kept"
	}
	p.Success("%s written (%s %s)\n", out.ManifestPath, idNote, out.Project.ID)

	p.Info("\nNext steps:\n")
	p.Info("  npm install\n")
	if out.Plan.Find("bower.json") != nil {
		p.Info("  bower install && tsd install\n")
	}
	p.Info("  gulp serve-static    host the add-in\n")
	p.Info("  gulp validate        check %s\n", out.ManifestPath)
}

// reportMailError prints a fatal generation error with remedies.
func reportMailError(cmd *cobra.Command, err error) error {
	p := newPrinter(cmd)

	var (
		unknownPoint *catalog.UnknownExtensionPointError
		iconErr      *compose.IconURLError
		schemaErr    *manifest.SchemaValidationError
		corrupt      *merge.CorruptTargetError
	)

	switch {
	case errors.As(err, &unknownPoint):
		_ = p.Error("Unknown extension point", err.Error(),
			[]string{fmt.Sprintf("Run '%s points' to list the supported extension points.", branding.CLIName())})
	case errors.Is(err, selection.ErrEmptySelection):
		_ = p.Error("No extension point selected", err.Error(),
			[]string{"Pass --extension-point at least once, e.g. -e MessageReadCommandSurface."})
	case errors.Is(err, scaffold.ErrUnknownTech):
		_ = p.Error("Unknown technology", err.Error(),
			[]string{"Use --tech " + strings.Join(scaffold.ValidTechs, ", --tech ") + "."})
	case errors.Is(err, generator.ErrStartPageRequired):
		_ = p.Error("Start page required", err.Error(),
			[]string{"Pass --start-page with the https page that hosts your add-in, or pick --tech ng or --tech html."})
	case errors.As(err, &iconErr):
		_ = p.Error("Invalid icon URL", err.Error(),
			[]string{"Point --icon-url at an https .png, .jpg, .gif or .bmp image."})
	case errors.As(err, &schemaErr):
		lines := make([]string, 0, len(schemaErr.Issues))
		for _, issue := range schemaErr.Issues {
			lines = append(lines, "  "+issue.String())
		}
		_ = p.Error("Manifest failed schema validation", strings.Join(lines, "\n"),
			[]string{"Nothing was written. Adjust the values reported above and try again."})
	case errors.As(err, &corrupt):
		_ = p.Error("Cannot merge into "+corrupt.Path, err.Error(),
			[]string{
				"Fix the JSON in " + corrupt.Path + " and run again",
				"Remove " + corrupt.Path + " to have it generated from scratch",
			})
	default:
		return err
	}
	return &reportedError{msg: err.Error()}
}
