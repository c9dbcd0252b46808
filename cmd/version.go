package cmd

import (
	"fmt"
	"strings"

	display "github.com/inference-gateway/hotcli/internal/display"
	cobra "github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Display version information for hotcli and the display providers compiled in.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "hotcli version %s\n", version)
		fmt.Fprintf(out, "commit: %s\n", commit)
		fmt.Fprintf(out, "built at: %s\n", date)
		fmt.Fprintf(out, "displays: %s\n", providerNames())
	},
}

func providerNames() string {
	var names []string
	for _, p := range display.GetAllProviders() {
		names = append(names, p.GetDisplayInfo().Name)
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
