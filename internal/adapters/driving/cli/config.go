package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "Show configuration",
	Long:        `Shows the effective configuration: values from the config file merged over the defaults.`,
	Annotations: map[string]string{annotationServices: servicesConfig},
	RunE:        runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show current settings",
	Annotations: map[string]string{annotationServices: servicesConfig},
	RunE:        runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Print the config file path",
	Annotations: map[string]string{annotationServices: servicesConfig},
	RunE:        runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	values, err := configStore.Values()
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	cmd.Println(styled(cmd.OutOrStderr(), headingStyle, "Current Settings"))
	cmd.Printf("  (%s)\n", configStore.Path())
	cmd.Println()
	for _, kv := range values {
		cmd.Printf("  %s = %v\n", kv.Key, kv.Value)
	}
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}
	cmd.Println(configStore.Path())
	return nil
}
