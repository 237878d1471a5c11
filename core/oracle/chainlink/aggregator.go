// Package chainlink implements the live price source backed by a Chainlink
// AggregatorV3 feed contract on an Ethereum-compatible network.
package chainlink

import (
	"context"
	"math/big"
	"strings"
	"sync"
	"time"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
)

const aggregatorV3ABI = `[
	{"inputs":[],"name":"decimals","outputs":[{"internalType":"uint8","name":"","type":"uint8"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"version","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"latestRoundData","outputs":[
		{"internalType":"uint80","name":"roundId","type":"uint80"},
		{"internalType":"int256","name":"answer","type":"int256"},
		{"internalType":"uint256","name":"startedAt","type":"uint256"},
		{"internalType":"uint256","name":"updatedAt","type":"uint256"},
		{"internalType":"uint80","name":"answeredInRound","type":"uint80"}],
	"stateMutability":"view","type":"function"}
]`

const callTimeout = 10 * time.Second

// Aggregator reads prices from an AggregatorV3 feed over JSON-RPC. The
// connection is dialed lazily and reused.
type Aggregator struct {
	endpoint string
	feed     common.Address
	abi      abi.ABI

	lock   sync.Mutex
	client *ethclient.Client
}

// NewAggregator creates a price source for the feed contract deployed at
// feedAddress, reachable through the given JSON-RPC endpoint.
func NewAggregator(endpoint string, feedAddress string) (*Aggregator, error) {
	if !common.IsHexAddress(feedAddress) {
		return nil, errors.Errorf("invalid price feed address %q", feedAddress)
	}

	parsed, err := abi.JSON(strings.NewReader(aggregatorV3ABI))
	if err != nil {
		return nil, errors.Wrap(err, "failed parsing aggregator abi")
	}

	return &Aggregator{
		endpoint: endpoint,
		feed:     common.HexToAddress(feedAddress),
		abi:      parsed,
	}, nil
}

// LatestPrice returns the answer of the feed's latest round.
func (a *Aggregator) LatestPrice() (*big.Int, error) {
	out, err := a.call("latestRoundData")
	if err != nil {
		return nil, err
	}
	if len(out) != 5 {
		return nil, errors.Errorf("latestRoundData returned %d values, want 5", len(out))
	}

	answer, ok := out[1].(*big.Int)
	if !ok {
		return nil, errors.New("latestRoundData answer is not an integer")
	}

	return answer, nil
}

// Decimals returns the feed's decimal precision.
func (a *Aggregator) Decimals() (uint8, error) {
	out, err := a.call("decimals")
	if err != nil {
		return 0, err
	}
	if len(out) != 1 {
		return 0, errors.Errorf("decimals returned %d values, want 1", len(out))
	}

	decimals, ok := out[0].(uint8)
	if !ok {
		return 0, errors.New("decimals is not a uint8")
	}

	return decimals, nil
}

// Version returns the feed's aggregator version.
func (a *Aggregator) Version() (*big.Int, error) {
	out, err := a.call("version")
	if err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, errors.Errorf("version returned %d values, want 1", len(out))
	}

	version, ok := out[0].(*big.Int)
	if !ok {
		return nil, errors.New("version is not an integer")
	}

	return version, nil
}

func (a *Aggregator) call(method string) ([]interface{}, error) {
	client, err := a.getClient()
	if err != nil {
		return nil, errors.Wrap(err, "failed dialing ethereum endpoint")
	}

	data, err := a.abi.Pack(method)
	if err != nil {
		return nil, errors.Wrapf(err, "failed packing %s call", method)
	}

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	output, err := client.CallContract(ctx, ethereum.CallMsg{To: &a.feed, Data: data}, nil)
	if err != nil {
		a.resetClient()
		return nil, errors.Wrapf(err, "failed calling %s on feed %s", method, a.feed.Hex())
	}

	out, err := a.abi.Unpack(method, output)
	if err != nil {
		return nil, errors.Wrapf(err, "failed unpacking %s output", method)
	}

	return out, nil
}

func (a *Aggregator) getClient() (*ethclient.Client, error) {
	a.lock.Lock()
	defer a.lock.Unlock()

	if a.client != nil {
		return a.client, nil
	}

	client, err := ethclient.Dial(a.endpoint)
	if err != nil {
		return nil, err
	}

	a.client = client
	return client, nil
}

func (a *Aggregator) resetClient() {
	a.lock.Lock()
	defer a.lock.Unlock()

	if a.client != nil {
		a.client.Close()
		a.client = nil
	}
}
