package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/navkit"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of navkit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("navkit version %s\n", strings.TrimSpace(navkit.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
