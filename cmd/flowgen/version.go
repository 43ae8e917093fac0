package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowgenhq/flowgen/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the flowgen version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("flowgen %s\n", version.Get())
	},
}
