package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the current version of ivsb
const Version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of ivsb",
	Long:  "Print the version number of ivsb",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ivsb version %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("ivsb version {{.Version}}\n")
}
