package config

import (
	"os"
	"path/filepath"

	"github.com/twopieare/foundry-fund-me/cmd/utils"
)

const (
	// LogFormatPlain is a format for colored text
	LogFormatPlain = "plain"
	// LogFormatJSON is a format for json output
	LogFormatJSON = "json"

	// OracleModeMock serves a fixed configurable price.
	OracleModeMock = "mock"
	// OracleModeChainlink reads a live AggregatorV3 feed over an Ethereum RPC.
	OracleModeChainlink = "chainlink"

	defaultConfigDir = "config"
	defaultDataDir   = "data"
)

// DefaultConfig returns the configuration a fresh node starts with.
func DefaultConfig() *Config {
	return &Config{
		RootDir: utils.GetFundMeHome(),

		LogLevel:  "info",
		LogFormat: LogFormatPlain,
		LogPath:   "stdout",

		DBBackend:      "goleveldb",
		StateCacheSize: 1000000,
		KeepLastStates: 120,

		APIListenAddress: "tcp://0.0.0.0:8841",

		OracleMode:   OracleModeMock,
		MockPrice:    "200000000000",
		MockDecimals: 8,
	}
}

// GetConfig returns the node configuration with its root directory prepared.
func GetConfig() *Config {
	cfg := DefaultConfig()
	EnsureRoot(cfg.RootDir)

	return cfg
}

// Config is the top level configuration of a fundme node.
type Config struct {
	RootDir string `mapstructure:"home"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	LogPath   string `mapstructure:"log_path"`

	// DBBackend selects the durable storage engine: goleveldb or memdb.
	DBBackend      string `mapstructure:"db_backend"`
	StateCacheSize int    `mapstructure:"state_cache_size"`
	KeepLastStates int64  `mapstructure:"keep_last_states"`

	APIListenAddress string `mapstructure:"api_listen_addr"`

	// OwnerAddress is fixed at node start and never changes afterwards.
	OwnerAddress string `mapstructure:"owner_address"`

	OracleMode       string `mapstructure:"oracle_mode"`
	EthereumEndpoint string `mapstructure:"ethereum_endpoint"`
	PriceFeedAddress string `mapstructure:"price_feed_address"`
	MockPrice        string `mapstructure:"mock_price"`
	MockDecimals     uint8  `mapstructure:"mock_decimals"`
}

// DataDir returns the directory databases live in.
func (cfg *Config) DataDir() string {
	return filepath.Join(cfg.RootDir, defaultDataDir)
}

// EnsureRoot creates the root, config and data directories if they are
// missing.
func EnsureRoot(rootDir string) {
	if err := ensureDir(rootDir); err != nil {
		panic(err.Error())
	}
	if err := ensureDir(filepath.Join(rootDir, defaultConfigDir)); err != nil {
		panic(err.Error())
	}
	if err := ensureDir(filepath.Join(rootDir, defaultDataDir)); err != nil {
		panic(err.Error())
	}
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0700)
}
