package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/twopieare/foundry-fund-me/version"
)

var Version = &cobra.Command{
	Use:   "version",
	Short: "Show this node's version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(version.Version)
		return nil
	},
}
