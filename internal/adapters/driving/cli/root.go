// Package cli provides the tashri command-line interface.
//
// Commands are registered on rootCmd from each file's init function.
// Services are package-level and wired lazily before a command runs, so
// tests can replace them with mocks.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tashri/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

// Global flags.
var (
	verbose     bool
	configPath  string
	dataDir     string
	catalogPath string
)

// annotationServices on a command selects how much of the application it
// needs: servicesNone or servicesConfig. Commands without it get everything.
const (
	annotationServices = "services"
	servicesNone       = "none"
	servicesConfig     = "config"
)

var rootCmd = &cobra.Command{
	Use:   "tashri",
	Short: "UAE legislation ingestion, search and citation toolkit",
	Long: `tashri ingests federal, DIFC and ADGM legislation into a local database,
then searches it, resolves references to statutes and validates citations.

Run "tashri ingest" first to populate the database from the source catalogue.`,
	SilenceUsage: true,
}

func init() {
	// Assigned here rather than in the literal: prepare refers to rootCmd,
	// which would otherwise form an initialization cycle.
	rootCmd.PersistentPreRunE = prepare
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.tashri/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "database directory (default ~/.tashri/data)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "source catalogue TOML (default built-in catalogue)")
}

// Execute runs the root command and releases services afterwards.
func Execute(ctx context.Context) error {
	defer closeServices()
	return rootCmd.ExecuteContext(ctx)
}

func prepare(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if servicesReady {
		return nil
	}
	switch servicesFor(cmd) {
	case servicesNone:
		return nil
	case servicesConfig:
		return initConfig()
	}
	return initServices()
}

// servicesFor returns the services annotation of cmd. cobra's generated
// help and completion commands need none.
func servicesFor(cmd *cobra.Command) string {
	for c := cmd; c != nil && c != rootCmd; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return servicesNone
		}
	}
	return cmd.Annotations[annotationServices]
}
