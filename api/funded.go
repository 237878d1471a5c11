package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/twopieare/foundry-fund-me/core/code"
	"github.com/twopieare/foundry-fund-me/core/types"
)

type AmountFundedResponse struct {
	Address      string `json:"address"`
	AmountFunded string `json:"amount_funded"`
}

func GetAmountFunded(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if !types.IsHexAddress(vars["address"]) {
		writeResponse(w, http.StatusBadRequest, Response{Code: code.DecodeError, Log: "invalid address"})
		return
	}
	address := types.HexToAddress(vars["address"])

	writeResponse(w, http.StatusOK, Response{
		Code: 0,
		Result: AmountFundedResponse{
			Address:      address.Hex(),
			AmountFunded: app.AmountFunded(address).String(),
		},
	})
}
