package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tashri/internal/core/domain"
)

var (
	citationStyle string
	citationJSON  bool
)

var citationCmd = &cobra.Command{
	Use:   "citation",
	Short: "Validate and format citations",
	Long: `Commands for checking citations against ingested legislation.

Accepted forms include "Article 2, Federal Decree-Law No. 45 of 2021",
"PDPL, Art. 2", "Section 5, DIFC DPL", "fdl-45-2021, art. 2" and the
Arabic "المادة 2 من ...".`,
}

var citationValidateCmd = &cobra.Command{
	Use:   "validate [citation]",
	Short: "Check a citation names a stored statute and provision",
	Args:  cobra.ExactArgs(1),
	RunE:  runCitationValidate,
}

var citationFormatCmd = &cobra.Command{
	Use:   "format [citation]",
	Short: "Re-render a citation in a citation style",
	Long: `Re-renders a citation. Styles:
  full      - "Article 2, Federal Decree-Law No. 45 of 2021"
  short     - "Art. 2, Federal Decree-Law No. 45 of 2021"
  pinpoint  - "Art. 2"`,
	Args: cobra.ExactArgs(1),
	RunE: runCitationFormat,
}

func init() {
	citationValidateCmd.Flags().BoolVar(&citationJSON, "json", false, "output as JSON")
	citationFormatCmd.Flags().StringVarP(&citationStyle, "style", "s", string(domain.StyleFull), "full, short or pinpoint")
	citationCmd.AddCommand(citationValidateCmd)
	citationCmd.AddCommand(citationFormatCmd)
	rootCmd.AddCommand(citationCmd)
}

func runCitationValidate(cmd *cobra.Command, args []string) error {
	if citationService == nil {
		return errors.New("citation service not configured")
	}

	v, err := citationService.Validate(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if citationJSON {
		return printJSON(cmd, v)
	}

	out := cmd.OutOrStderr()
	if v.Valid {
		cmd.Println(styled(out, successStyle, "✓ Valid citation"))
		cmd.Printf("  %s\n", v.Normalized)
		cmd.Printf("  Document: %s (%s)\n", v.DocumentID, v.Status)
	} else {
		cmd.Println(styled(out, errorStyle, "✗ Invalid citation"))
	}
	for _, w := range v.Warnings {
		cmd.Printf("  %s\n", styled(out, warningStyle, "! "+w))
	}
	return nil
}

func runCitationFormat(cmd *cobra.Command, args []string) error {
	if citationService == nil {
		return errors.New("citation service not configured")
	}

	formatted, err := citationService.Format(cmd.Context(), args[0], domain.CitationStyle(citationStyle))
	if err != nil {
		return fmt.Errorf("format failed: %w", err)
	}

	cmd.Println(formatted)
	return nil
}
