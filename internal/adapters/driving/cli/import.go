package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tashri/internal/adapters/driven/export"
	"github.com/custodia-labs/tashri/internal/core/domain"
)

var importCmd = &cobra.Command{
	Use:   "import [path...]",
	Short: "Load exported JSON documents into the database",
	Long: `Loads statutes written by "ingest --out" without fetching them again.
Each path is either a <id>.json file or a directory of them. Existing
documents with the same id are replaced.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	files, err := importFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		cmd.Println("No JSON documents found.")
		return nil
	}

	out := cmd.OutOrStderr()
	failed := 0
	for _, path := range files {
		doc, err := importDocument(cmd, path)
		if err != nil {
			failed++
			cmd.Printf("  %s %s: %v\n", styled(out, errorStyle, "✗"), filepath.Base(path), err)
			continue
		}
		cmd.Printf("  %s %s: %d provisions, %d definitions\n",
			styled(out, successStyle, "✓"), doc.ID, len(doc.Provisions), len(doc.Definitions))
	}

	cmd.Printf("Done: %d imported, %d failed\n", len(files)-failed, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}

func importDocument(cmd *cobra.Command, path string) (*domain.ParsedDocument, error) {
	doc, err := export.ReadDocument(path)
	if err != nil {
		return nil, err
	}
	if !doc.LegalZone.IsValid() {
		return nil, fmt.Errorf("%w: unknown zone %q", domain.ErrInvalidInput, doc.LegalZone)
	}
	if !domain.ValidDocumentID(doc.LegalZone, doc.ID) {
		return nil, fmt.Errorf("%w: id %q does not match the %s id format", domain.ErrInvalidInput, doc.ID, doc.LegalZone)
	}
	if err := documentStore.SaveDocument(cmd.Context(), doc); err != nil {
		return nil, fmt.Errorf("saving %s: %w", doc.ID, err)
	}
	return doc, nil
}

// importFiles expands directories to the *.json files they contain.
func importFiles(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(p, "*.json"))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	return files, nil
}
