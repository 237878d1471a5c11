package main

import (
	"github.com/twopieare/foundry-fund-me/cmd/fundme/cmd"
	"github.com/twopieare/foundry-fund-me/cmd/utils"
)

func main() {
	rootCmd := cmd.RootCmd
	rootCmd.PersistentFlags().StringVar(&utils.FundMeHome, "home-dir", "", "base dir (default is $HOME/.fundme)")
	rootCmd.PersistentFlags().StringVar(&utils.FundMeConfig, "config", "", "path to config file")

	rootCmd.AddCommand(
		cmd.RunNode,
		cmd.ExportCommand,
		cmd.Version)

	if err := cmd.RootCmd.Execute(); err != nil {
		panic(err)
	}
}
