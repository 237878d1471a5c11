package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/twopieare/foundry-fund-me/core/code"
)

type FunderResponse struct {
	Index  uint32 `json:"index"`
	Funder string `json:"funder"`
}

func GetFunderAtIndex(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	index, err := strconv.ParseUint(vars["index"], 10, 32)
	if err != nil {
		writeResponse(w, http.StatusBadRequest, Response{Code: code.DecodeError, Log: "invalid index"})
		return
	}

	funder, err := app.FunderAtIndex(uint32(index))
	if err != nil {
		writeResponse(w, http.StatusNotFound, Response{Code: code.DecodeError, Log: err.Error()})
		return
	}

	writeResponse(w, http.StatusOK, Response{
		Code:   0,
		Result: FunderResponse{Index: uint32(index), Funder: funder.Hex()},
	})
}
