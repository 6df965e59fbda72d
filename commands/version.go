package commands

import (
	"fmt"

	"github.com/K0NGR3SS/slrledger/internal/ui"
	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags "-X ...commands.Version=...".
var Version = "v1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of slrledger",
	Run: func(cmd *cobra.Command, args []string) {
		ui.PrintBanner(Version)
		fmt.Println("slrledger " + Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
