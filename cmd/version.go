package cmd

import (
	"fmt"

	"github.com/ankibridge/ankibridge-service/internal/app"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s", app.Name, app.Version)
		if app.GitTag != "" {
			fmt.Printf(" (%s)", app.GitTag)
		}
		if app.BuildTime != "" {
			fmt.Printf(" built %s", app.BuildTime)
		}
		fmt.Println()
	},
}
