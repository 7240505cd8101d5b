package cmd

import (
	"fmt"
	"os"

	"github.com/sofmeright/typefreight/src/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	rootDir string
	verbose bool
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "typefreight",
	Short: "TypeScript lint and format CLI",
	Long:  "TypeFreight — cache-aware linting and formatting for TypeScript projects.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it.
		if cmd.Name() == "version" {
			return nil
		}
		if rootDir == "" {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting working directory: %w", err)
			}
			rootDir = wd
		}
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .typefreight.yml)")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "project root (default: working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
