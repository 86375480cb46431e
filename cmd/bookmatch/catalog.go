// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bookmatch/internal/catalog"
	"github.com/pdiddy/bookmatch/internal/match"
	"github.com/pdiddy/bookmatch/internal/suggestion"
	"github.com/pdiddy/bookmatch/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the book catalog (import, list, export, match)",
	Long: `Catalog manages the local SQLite book catalog that recommendations are
matched against.`,
}

// --- import subcommand ---

var catalogImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import books from a YAML list",
	Long: `Import reads a YAML list of books (title, author, genre, summary,
image_url) and upserts them. Books without an id get one derived from the
normalized title and author, so re-importing the same file updates rows in
place. Books without a title are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogImport,
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	store, err := catalog.NewStore(loadConfig().Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Import(cmd.Context(), args[0], os.Stdout)
	return err
}

// --- list subcommand ---

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog books in insertion order",
	RunE:  runCatalogList,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	store, err := catalog.NewStore(loadConfig().Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.All(cmd.Context())
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		if entries == nil {
			entries = []types.CatalogEntry{}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("Catalog is empty.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-36s  %-24s  %-16s\n", "#", "Title", "Author", "Genre")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 86))
	for i, e := range entries {
		fmt.Fprintf(os.Stdout, "%-4d  %-36s  %-24s  %-16s\n",
			i+1, truncate(e.Title, 36), truncate(e.Author, 24), truncate(e.Genre, 16))
	}
	fmt.Fprintf(os.Stdout, "\n%d books\n", len(entries))
	return nil
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the catalog to stdout as YAML or JSON",
	RunE:  runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := catalog.NewStore(loadConfig().Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	switch format {
	case "yaml", "":
		return store.ExportYAML(cmd.Context(), os.Stdout)
	case "json":
		return store.ExportJSON(cmd.Context(), os.Stdout)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
}

// --- match subcommand ---

var catalogMatchCmd = &cobra.Command{
	Use:   "match",
	Short: "Show which catalog books a suggestion would match",
	Long: `Match runs the catalog matcher offline against a hand-written
suggestion and prints every qualifying book with its similarity scores.
The book marked with * is the one a recommendation would return.`,
	RunE: runCatalogMatch,
}

func runCatalogMatch(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	author, _ := cmd.Flags().GetString("author")
	genre, _ := cmd.Flags().GetString("genre")
	reqGenre, _ := cmd.Flags().GetString("request-genre")
	if reqGenre == "" {
		reqGenre = genre
	}

	store, err := catalog.NewStore(loadConfig().Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.All(cmd.Context())
	if err != nil {
		return err
	}

	s := suggestion.Parse(fmt.Sprintf("title: %s\nauthor: %s\ngenre: %s", title, author, genre))
	req := types.PreferenceRequest{Genre: reqGenre}

	cands := match.Candidates(s, entries, req)
	if len(cands) == 0 {
		fmt.Println("No catalog book qualifies.")
		return nil
	}
	best, _ := match.Best(s, entries, req)

	fmt.Fprintf(os.Stdout, "   %-36s  %-6s  %-6s  %-6s  %s\n", "Title", "title", "author", "genre", "score")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 72))
	for _, c := range cands {
		mark := " "
		if c.Entry.ID == best.ID {
			mark = "*"
		}
		fmt.Fprintf(os.Stdout, "%s  %-36s  %.3f   %.3f   %.3f   %.3f\n",
			mark, truncate(c.Entry.Title, 36), c.TitleSim, c.AuthorSim, c.GenreSim, c.Score)
	}
	return nil
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	catalogListCmd.Flags().Bool("json", false, "output books as JSON")

	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	catalogMatchCmd.Flags().String("title", "", "suggested title")
	catalogMatchCmd.Flags().String("author", "", "suggested author")
	catalogMatchCmd.Flags().String("genre", "", "suggested genre")
	catalogMatchCmd.Flags().String("request-genre", "", "genre the reader asked for (default: --genre)")

	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogExportCmd)
	catalogCmd.AddCommand(catalogMatchCmd)

	rootCmd.AddCommand(catalogCmd)
}
