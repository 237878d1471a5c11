package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/twopieare/foundry-fund-me/api"
	"github.com/twopieare/foundry-fund-me/cmd/utils"
	"github.com/twopieare/foundry-fund-me/config"
	"github.com/twopieare/foundry-fund-me/core/bank"
	eventsdb "github.com/twopieare/foundry-fund-me/core/events"
	"github.com/twopieare/foundry-fund-me/core/fundme"
	"github.com/twopieare/foundry-fund-me/core/oracle"
	"github.com/twopieare/foundry-fund-me/core/oracle/chainlink"
	"github.com/twopieare/foundry-fund-me/core/oracle/mock"
	"github.com/twopieare/foundry-fund-me/core/statistics"
	"github.com/twopieare/foundry-fund-me/core/types"
	"github.com/twopieare/foundry-fund-me/helpers"
	"github.com/twopieare/foundry-fund-me/log"
)

// RunNode is the command that allows the CLI to start a node.
var RunNode = &cobra.Command{
	Use:   "node",
	Short: "Run the FundMe node",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runNode()
	},
}

func runNode() error {
	log.InitLog(cfg)

	if !types.IsHexAddress(cfg.OwnerAddress) {
		return fmt.Errorf("owner_address %q is not a valid address", cfg.OwnerAddress)
	}
	owner := types.HexToAddress(cfg.OwnerAddress)

	priceSource, err := newPriceSource(cfg)
	if err != nil {
		return err
	}

	storage, err := utils.NewStorage(cfg.DBBackend, cfg.DataDir())
	if err != nil {
		return err
	}
	defer storage.Close()

	stats := statistics.New()

	app, err := fundme.NewFundMe(fundme.Options{
		Owner:          owner,
		Oracle:         priceSource,
		Bank:           bank.NewInMemory(),
		StateDB:        storage.StateDB(),
		EventsDB:       eventsdb.NewEventsStore(storage.EventDB()),
		StateCacheSize: cfg.StateCacheSize,
		KeepLastStates: cfg.KeepLastStates,
		Logger:         log.With("module", "node"),
		Statistics:     stats,
	})
	if err != nil {
		return err
	}

	go api.RunApi(app, stats, cfg)

	log.Info("node started", "owner", owner.Hex(), "oracle", cfg.OracleMode, "api", cfg.APIListenAddress)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("node stopped")

	return nil
}

func newPriceSource(cfg *config.Config) (oracle.PriceSource, error) {
	switch cfg.OracleMode {
	case config.OracleModeMock:
		if !helpers.IsValidBigInt(cfg.MockPrice) {
			return nil, fmt.Errorf("mock_price %q is not a valid integer", cfg.MockPrice)
		}

		return mock.NewAggregator(cfg.MockDecimals, helpers.StringToBigInt(cfg.MockPrice)), nil
	case config.OracleModeChainlink:
		return chainlink.NewAggregator(cfg.EthereumEndpoint, cfg.PriceFeedAddress)
	}

	return nil, fmt.Errorf("unknown oracle_mode %q", cfg.OracleMode)
}
