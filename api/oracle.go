package api

import (
	"net/http"

	"github.com/twopieare/foundry-fund-me/core/code"
)

type OracleResponse struct {
	Version  string `json:"version"`
	Decimals uint8  `json:"decimals"`
}

func GetOracle(w http.ResponseWriter, r *http.Request) {
	version, err := app.OracleVersion()
	if err != nil {
		writeResponse(w, http.StatusBadGateway, Response{Code: code.OracleFailure, Log: err.Error()})
		return
	}

	decimals, err := app.OracleDecimals()
	if err != nil {
		writeResponse(w, http.StatusBadGateway, Response{Code: code.OracleFailure, Log: err.Error()})
		return
	}

	writeResponse(w, http.StatusOK, Response{
		Code:   0,
		Result: OracleResponse{Version: version.String(), Decimals: decimals},
	})
}
