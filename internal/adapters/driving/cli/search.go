package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tashri/internal/core/domain"
)

var (
	searchLimit    int
	searchJSON     bool
	searchZone     string
	searchDocument string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search ingested legislation",
	Long: `Runs a full-text (BM25) search over every ingested provision.

Quoted phrases, AND/OR/NOT between terms and trailing * prefixes are
supported; any other punctuation is ignored. When the query finds nothing,
looser variants of it are tried automatically.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringVar(&searchZone, "zone", "", "restrict to a legal zone (federal, difc, adgm)")
	searchCmd.Flags().StringVar(&searchDocument, "document", "", "restrict to a document id")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	opts := domain.SearchOptions{
		Limit:      searchLimit,
		Zone:       domain.LegalZone(searchZone),
		DocumentID: searchDocument,
	}

	resp, err := searchService.Search(cmd.Context(), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return printJSON(cmd, resp)
	}

	return outputSearchTable(cmd, resp)
}

func outputSearchTable(cmd *cobra.Command, resp *domain.SearchResponse) error {
	out := cmd.OutOrStderr()
	if len(resp.Results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println(styled(out, headingStyle, "Results:"))
	if resp.UsedFallback {
		cmd.Println(styled(out, mutedStyle, fmt.Sprintf("  (no exact match; showing results for: %s)", resp.Variant)))
	}
	cmd.Println()
	for i := range resp.Results {
		r := &resp.Results[i]

		// Format: [N] document › provision - title (score)
		heading := fmt.Sprintf("%s › %s", r.DocumentID, r.ProvisionRef)
		if r.Title != "" {
			heading += " - " + r.Title
		}
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, styled(out, headingStyle, heading), r.Score)
		cmd.Printf("      %s\n", styled(out, mutedStyle, r.DocumentTitle))
		if r.Snippet != "" {
			cmd.Printf("      %s\n", r.Snippet)
		}
		cmd.Println()
	}

	return nil
}

// printJSON writes v as indented JSON to stdout so it can be piped.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
