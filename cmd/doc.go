// Copyright © 2026 Geoff Holden <geoff@geoffholden.com>

package cmd

import (
	"github.com/spf13/cobra"
)

// docCmd represents the doc command
var docCmd = &cobra.Command{
	Use:   "doc",
	Short: "Documentation generator",
	Long:  `Generators for documentation and shell completion.`,
}

func init() {
	RootCmd.AddCommand(docCmd)

	docCmd.PersistentFlags().String("output", "./", "Output directory")
}

func outputDir(cmd *cobra.Command) string {
	dir, err := cmd.Flags().GetString("output")
	if err != nil || dir == "" {
		return "./"
	}
	return dir
}
