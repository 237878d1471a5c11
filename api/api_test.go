package api

import (
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	db "github.com/tendermint/tm-db"
	"github.com/twopieare/foundry-fund-me/core/bank"
	"github.com/twopieare/foundry-fund-me/core/code"
	eventsdb "github.com/twopieare/foundry-fund-me/core/events"
	"github.com/twopieare/foundry-fund-me/core/fundme"
	"github.com/twopieare/foundry-fund-me/core/oracle/mock"
	"github.com/twopieare/foundry-fund-me/core/types"
	"github.com/twopieare/foundry-fund-me/helpers"
)

type decodedResponse struct {
	Code uint32 `json:"code"`
	Log  string `json:"log"`
}

func newTestApi(t *testing.T) {
	t.Helper()

	testApp, err := fundme.NewFundMe(fundme.Options{
		Owner:          types.Address{0xfe},
		Oracle:         mock.NewAggregator(mock.DefaultDecimals, mock.DefaultInitialAnswer()),
		Bank:           bank.NewInMemory(),
		StateDB:        db.NewMemDB(),
		EventsDB:       eventsdb.NewEventsStore(db.NewMemDB()),
		StateCacheSize: 1024,
		KeepLastStates: 120,
	})
	if err != nil {
		t.Fatal(err)
	}

	app = testApp
}

func serve(handler http.HandlerFunc, r *http.Request, vars map[string]string) (int, decodedResponse) {
	if vars != nil {
		r = mux.SetURLVars(r, vars)
	}

	recorder := httptest.NewRecorder()
	handler(recorder, r)

	var response decodedResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		panic(err)
	}

	return recorder.Code, response
}

func TestGetFunderInvalidIndex(t *testing.T) {
	newTestApi(t)

	status, response := serve(GetFunderAtIndex,
		httptest.NewRequest("GET", "/api/funder/abc", nil),
		map[string]string{"index": "abc"})

	if status != http.StatusBadRequest {
		t.Fatalf("invalid status: %d", status)
	}
	if response.Code != code.DecodeError {
		t.Fatalf("response code is not %d: %d", code.DecodeError, response.Code)
	}
}

func TestGetFunderOutOfRange(t *testing.T) {
	newTestApi(t)

	status, response := serve(GetFunderAtIndex,
		httptest.NewRequest("GET", "/api/funder/3", nil),
		map[string]string{"index": "3"})

	if status != http.StatusNotFound {
		t.Fatalf("invalid status: %d", status)
	}
	if response.Code != code.DecodeError {
		t.Fatalf("response code is not %d: %d", code.DecodeError, response.Code)
	}
}

func TestGetAmountFundedInvalidAddress(t *testing.T) {
	newTestApi(t)

	status, response := serve(GetAmountFunded,
		httptest.NewRequest("GET", "/api/funded/zz", nil),
		map[string]string{"address": "zz"})

	if status != http.StatusBadRequest {
		t.Fatalf("invalid status: %d", status)
	}
	if response.Code != code.DecodeError {
		t.Fatalf("response code is not %d: %d", code.DecodeError, response.Code)
	}
}

func TestGetEventsInvalidHeight(t *testing.T) {
	newTestApi(t)

	status, response := serve(GetEvents,
		httptest.NewRequest("GET", "/api/events/x", nil),
		map[string]string{"height": "x"})

	if status != http.StatusBadRequest {
		t.Fatalf("invalid status: %d", status)
	}
	if response.Code != code.DecodeError {
		t.Fatalf("response code is not %d: %d", code.DecodeError, response.Code)
	}
}

func TestGetHeldBalance(t *testing.T) {
	newTestApi(t)

	result := app.Fund(types.HexToAddress("0x04bea23efb744dc93b4fda4c20bf4a21c6e195f1"), helpers.CoinToAtto(big.NewInt(1)))
	if result.Code != code.OK {
		t.Fatalf("fund failed: %s", result.Log)
	}

	status, response := serve(GetHeldBalance,
		httptest.NewRequest("GET", "/api/balance", nil), nil)

	if status != http.StatusOK {
		t.Fatalf("invalid status: %d", status)
	}
	if response.Code != 0 {
		t.Fatalf("response code is not OK: %d", response.Code)
	}
}
