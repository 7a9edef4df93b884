package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/officegen-labs/officegen/internal/catalog"
)

var (
	pointsVariant string
	pointsJSON    bool
)

var pointsCmd = &cobra.Command{
	Use:   "points [query]",
	Short: "List the Outlook extension points",
	Long: `List the extension points an add-in can be generated for, with the client
app, manifest form and activation rule each one implies.

The query matches against point names and descriptions (case-insensitive substring).
Use --variant to show only points served by the compose or read app.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPoints,
}

func init() {
	pointsCmd.Flags().StringVar(&pointsVariant, "variant", "", "Filter by client app (compose, read)")
	pointsCmd.Flags().BoolVar(&pointsJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(pointsCmd)
}

// pointEntry is one catalog row for display.
type pointEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
	Form        string `json:"form"`
	Rule        string `json:"rule"`
}

func runPoints(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}
	if pointsVariant != "" && pointsVariant != string(catalog.VariantCompose) && pointsVariant != string(catalog.VariantRead) {
		return fmt.Errorf("--variant must be %q or %q, got %q", catalog.VariantCompose, catalog.VariantRead, pointsVariant)
	}

	var entries []pointEntry
	for _, e := range catalog.Entries() {
		if !matchesPoint(e, query, pointsVariant) {
			continue
		}
		entries = append(entries, pointEntry{
			Name:        string(e.Point),
			Description: e.Description,
			Variant:     string(e.Variant),
			Form:        string(e.Form),
			Rule:        e.Rule.String(),
		})
	}

	if pointsJSON {
		return printPointsJSON(cmd, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No extension points match.")
		return nil
	}
	return printPointsTable(cmd, entries)
}

func matchesPoint(e catalog.Entry, query, variant string) bool {
	if variant != "" && string(e.Variant) != variant {
		return false
	}
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(string(e.Point)), q) ||
		strings.Contains(strings.ToLower(e.Description), q)
}

func printPointsTable(cmd *cobra.Command, entries []pointEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tAPP\tFORM\tRULE\tDESCRIPTION")
	for _, e := range entries {
		desc := e.Description
		if len(desc) > 60 {
			desc = desc[:57] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.Name, e.Variant, e.Form, e.Rule, desc)
	}
	return w.Flush()
}

func printPointsJSON(cmd *cobra.Command, entries []pointEntry) error {
	if entries == nil {
		entries = []pointEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
