package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "nodesearch",
		Short:         "Strategy based node search over Elasticsearch and OpenSearch",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path")

	rootCmd.AddCommand(
		newServeCommand(&configFile),
		newSearchCommand(&configFile),
		newStrategiesCommand(&configFile),
		newMigrateCommand(&configFile),
		newImportCommand(&configFile),
		newVersionCommand(),
	)

	return rootCmd
}
