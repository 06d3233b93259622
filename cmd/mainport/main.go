package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "mainport",
		Short:        "Airport capacity scenario dashboard",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config.toml path (default: next to the executable)")

	rootCmd.AddCommand(serveCmd(&configPath))
	rootCmd.AddCommand(computeCmd(&configPath))
	rootCmd.AddCommand(validateCmd(&configPath))
	rootCmd.AddCommand(initConfigCmd(&configPath))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd(configPath *string) *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), *configPath, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "HTTP port (only used when config.toml sets none)")
	cmd.Flags().BoolVar(&opts.dev, "dev", false, "development mode: console logs, no browser")
	cmd.Flags().StringVar(&opts.dataDir, "data-dir", "", "reference data directory (overrides config)")
	return cmd
}

func computeCmd(configPath *string) *cobra.Command {
	var scenarioPath string
	var dataDir string

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute KPIs for a scenario file and print them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompute(cmd.OutOrStdout(), *configPath, dataDir, scenarioPath)
		},
	}

	cmd.Flags().StringVarP(&scenarioPath, "scenario", "s", "", "scenario YAML file (default scenario when empty)")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "reference data directory (overrides config)")
	return cmd
}

func validateCmd(configPath *string) *cobra.Command {
	var scenarioPath string
	var dataDir string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration, reference data and an optional scenario file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.OutOrStdout(), *configPath, dataDir, scenarioPath)
		},
	}

	cmd.Flags().StringVarP(&scenarioPath, "scenario", "s", "", "scenario YAML file to check")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "reference data directory (overrides config)")
	return cmd
}

func initConfigCmd(configPath *string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write a config.toml with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInitConfig(cmd.OutOrStdout(), *configPath, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
