// Copyright © 2026 Geoff Holden <geoff@geoffholden.com>

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// manCmd represents the man command
var manCmd = &cobra.Command{
	Use:   "man",
	Short: "Generate man pages",
	Long:  `Generates a set of man pages for dhtwx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		header := &doc.GenManHeader{
			Title:   "DHTWX",
			Section: "1",
		}
		return doc.GenManTree(RootCmd, header, outputDir(cmd))
	},
}

func init() {
	docCmd.AddCommand(manCmd)
}
