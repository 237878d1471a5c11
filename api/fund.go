package api

import (
	"encoding/json"
	"net/http"

	"github.com/twopieare/foundry-fund-me/core/code"
	"github.com/twopieare/foundry-fund-me/core/types"
	"github.com/twopieare/foundry-fund-me/helpers"
)

type FundRequest struct {
	From  string `json:"from"`
	Value string `json:"value"`
}

type FundResponse struct {
	Height       uint64 `json:"height"`
	AmountFunded string `json:"amount_funded"`
}

func Fund(w http.ResponseWriter, r *http.Request) {
	var request FundRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeResponse(w, http.StatusBadRequest, Response{Code: code.DecodeError, Log: "invalid request body"})
		return
	}

	if !types.IsHexAddress(request.From) {
		writeResponse(w, http.StatusBadRequest, Response{Code: code.DecodeError, Log: "invalid from address"})
		return
	}
	from := types.HexToAddress(request.From)

	if !helpers.IsValidBigInt(request.Value) {
		writeResponse(w, http.StatusBadRequest, Response{Code: code.DecodeError, Log: "invalid value"})
		return
	}
	value := helpers.StringToBigInt(request.Value)

	result := app.Fund(from, value)
	if result.Code != code.OK {
		writeResponse(w, http.StatusBadRequest, Response{Code: result.Code, Log: result.Log})
		return
	}

	writeResponse(w, http.StatusOK, Response{
		Code: 0,
		Result: FundResponse{
			Height:       app.Height(),
			AmountFunded: app.AmountFunded(from).String(),
		},
	})
}
