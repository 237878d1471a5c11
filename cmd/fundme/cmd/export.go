package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/twopieare/foundry-fund-me/cmd/utils"
	"github.com/twopieare/foundry-fund-me/core/bank"
	eventsdb "github.com/twopieare/foundry-fund-me/core/events"
	"github.com/twopieare/foundry-fund-me/core/fundme"
	"github.com/twopieare/foundry-fund-me/core/oracle/mock"
	"github.com/twopieare/foundry-fund-me/core/types"
)

var ExportCommand = &cobra.Command{
	Use:   "export",
	Short: "Dump the ledger state as JSON",
	RunE:  export,
}

func init() {
	ExportCommand.Flags().Bool("indent", false, "pretty-print the output")
}

func export(cmd *cobra.Command, args []string) error {
	indent, err := cmd.Flags().GetBool("indent")
	if err != nil {
		return err
	}

	owner := types.Address{}
	if types.IsHexAddress(cfg.OwnerAddress) {
		owner = types.HexToAddress(cfg.OwnerAddress)
	}

	storage, err := utils.NewStorage(cfg.DBBackend, cfg.DataDir())
	if err != nil {
		return err
	}
	defer storage.Close()

	app, err := fundme.NewFundMe(fundme.Options{
		Owner:          owner,
		Oracle:         mock.NewAggregator(mock.DefaultDecimals, mock.DefaultInitialAnswer()),
		Bank:           bank.NewInMemory(),
		StateDB:        storage.StateDB(),
		EventsDB:       eventsdb.NewEventsStore(storage.EventDB()),
		StateCacheSize: cfg.StateCacheSize,
		KeepLastStates: cfg.KeepLastStates,
	})
	if err != nil {
		return err
	}

	appState := app.Export()

	var out []byte
	if indent {
		out, err = json.MarshalIndent(appState, "", "  ")
	} else {
		out, err = json.Marshal(appState)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, string(out))

	return nil
}
