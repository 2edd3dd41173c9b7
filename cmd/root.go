// Package cmd holds the CLI entry points.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// defaultConfig the embedded config template written on first start
	defaultConfig []byte
	cfgFile       string
)

var rootCmd = &cobra.Command{
	Use:   "ankibridge-service",
	Short: "Local HTTP bridge exposing a flashcard collection over a JSON action protocol",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config/config.yaml", "config file path")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the CLI. The embedded default config is written to disk on
// first start.
func Execute(embedded []byte) {
	defaultConfig = embedded
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
