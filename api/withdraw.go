package api

import (
	"encoding/json"
	"net/http"

	"github.com/twopieare/foundry-fund-me/core/code"
	"github.com/twopieare/foundry-fund-me/core/types"
)

type WithdrawRequest struct {
	From string `json:"from"`
	// Cheaper selects the registry-snapshotting variant. Results are
	// identical either way.
	Cheaper bool `json:"cheaper"`
}

type WithdrawResponse struct {
	Height      uint64 `json:"height"`
	HeldBalance string `json:"held_balance"`
}

func Withdraw(w http.ResponseWriter, r *http.Request) {
	var request WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeResponse(w, http.StatusBadRequest, Response{Code: code.DecodeError, Log: "invalid request body"})
		return
	}

	if !types.IsHexAddress(request.From) {
		writeResponse(w, http.StatusBadRequest, Response{Code: code.DecodeError, Log: "invalid from address"})
		return
	}
	from := types.HexToAddress(request.From)

	withdraw := app.Withdraw
	if request.Cheaper {
		withdraw = app.CheaperWithdraw
	}
	result := withdraw(from)

	if result.Code != code.OK {
		writeResponse(w, http.StatusBadRequest, Response{Code: result.Code, Log: result.Log})
		return
	}

	writeResponse(w, http.StatusOK, Response{
		Code: 0,
		Result: WithdrawResponse{
			Height:      app.Height(),
			HeldBalance: app.HeldBalance().String(),
		},
	})
}
