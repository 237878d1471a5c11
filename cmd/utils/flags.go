package utils

import (
	"os"
	"path/filepath"
)

var (
	FundMeHome   string
	FundMeConfig string
)

func GetFundMeHome() string {
	if FundMeHome != "" {
		return FundMeHome
	}

	home := os.Getenv("FUNDMEHOME")

	if home != "" {
		return home
	}

	return os.ExpandEnv(filepath.Join("$HOME", ".fundme"))
}

func GetFundMeConfigPath() string {
	if FundMeConfig != "" {
		return FundMeConfig
	}

	return GetFundMeHome() + "/config/config.toml"
}
