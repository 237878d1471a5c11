package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/twopieare/foundry-fund-me/cmd/utils"
	"github.com/twopieare/foundry-fund-me/config"
)

var cfg *config.Config

var RootCmd = &cobra.Command{
	Use:   "fundme",
	Short: "FundMe Go Node",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		v := viper.New()
		v.SetConfigFile(utils.GetFundMeConfigPath())
		cfg = config.GetConfig()

		if err := v.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
					panic(err)
				}
			}
		} else if err := v.Unmarshal(cfg); err != nil {
			panic(err)
		}

		if cfg.KeepLastStates < 1 {
			panic("keep_last_states field should be greater than 0")
		}
	},
}
