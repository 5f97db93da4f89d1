package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tashri/internal/core/domain"
)

var (
	lookupJSON      bool
	definitionsTerm string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [reference]",
	Short: "Resolve a reference to a document id",
	Long: `Maps a free-form reference to a stored document id. Accepts ids,
short names ("PDPL"), law numbers ("No. 45/2021") and title fragments.`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

var provisionCmd = &cobra.Command{
	Use:   "provision [document] [provision]",
	Short: "Print one article or section",
	Long: `Prints a provision of a statute. The document may be any reference
"resolve" accepts; the provision may be "Article 5", "Art. 5", "s. 12",
"5a" or a provision ref such as "art5".`,
	Args: cobra.ExactArgs(2),
	RunE: runProvision,
}

var definitionsCmd = &cobra.Command{
	Use:   "definitions [document]",
	Short: "List the defined terms of a statute",
	Args:  cobra.ExactArgs(1),
	RunE:  runDefinitions,
}

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "List ingested statutes",
	Args:  cobra.NoArgs,
	RunE:  runDocuments,
}

func init() {
	for _, c := range []*cobra.Command{resolveCmd, provisionCmd, definitionsCmd, documentsCmd} {
		c.Flags().BoolVar(&lookupJSON, "json", false, "output as JSON")
		rootCmd.AddCommand(c)
	}
	definitionsCmd.Flags().StringVarP(&definitionsTerm, "term", "t", "", "only terms containing this text")
}

func runResolve(cmd *cobra.Command, args []string) error {
	if resolverService == nil {
		return errors.New("resolver service not configured")
	}

	res, err := resolverService.Resolve(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("resolve failed: %w", err)
	}

	if lookupJSON {
		return printJSON(cmd, res)
	}
	if !res.Found {
		return errors.New(res.Reason)
	}

	cmd.Printf("%s %s\n", res.DocumentID, styled(cmd.OutOrStderr(), mutedStyle, "("+res.Strategy+")"))
	return nil
}

func runProvision(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	lookup, err := documentService.GetProvision(cmd.Context(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	if lookupJSON {
		return printJSON(cmd, lookup)
	}
	if !lookup.Found() {
		return errors.New(lookup.Reason)
	}

	out := cmd.OutOrStderr()
	p := lookup.Provision
	heading := fmt.Sprintf("%s %s", lookup.Reference.Label, p.Section)
	if p.Title != "" {
		heading += " - " + p.Title
	}
	cmd.Println(styled(out, headingStyle, heading))
	cmd.Println(styled(out, mutedStyle, lookup.Document.Label()))
	if p.Chapter != "" {
		cmd.Println(styled(out, mutedStyle, p.Chapter))
	}
	cmd.Println()
	cmd.Println(p.Content)
	return nil
}

func runDefinitions(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	defs, res, err := documentService.Definitions(cmd.Context(), args[0], definitionsTerm)
	if err != nil {
		return fmt.Errorf("definitions failed: %w", err)
	}
	if !res.Found {
		return errors.New(res.Reason)
	}

	if lookupJSON {
		return printJSON(cmd, defs)
	}
	if len(defs) == 0 {
		cmd.Println("No definitions found.")
		return nil
	}

	out := cmd.OutOrStderr()
	for _, d := range defs {
		cmd.Println(styled(out, headingStyle, d.Term))
		cmd.Printf("  %s\n", d.Definition)
		if d.SourceProvision != "" {
			cmd.Printf("  %s\n", styled(out, mutedStyle, "("+d.SourceProvision+")"))
		}
		cmd.Println()
	}
	return nil
}

func runDocuments(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, err := documentService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	if lookupJSON {
		return printJSON(cmd, docs)
	}
	if len(docs) == 0 {
		cmd.Println("No documents ingested. Run \"tashri ingest\" first.")
		return nil
	}

	out := cmd.OutOrStderr()
	for i := range docs {
		d := &docs[i]
		name := d.ShortName
		if name == "" {
			name = "-"
		}
		cmd.Printf("%-22s %-7s %-10s %s\n", d.ID, d.LegalZone, name, d.Label())
		if d.Status == domain.StatusRepealed || d.Status == domain.StatusAmended {
			cmd.Printf("%-22s %s\n", "", styled(out, warningStyle, string(d.Status)))
		}
	}
	return nil
}
