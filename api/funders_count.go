package api

import (
	"net/http"
)

type FundersCountResponse struct {
	Count uint32 `json:"count"`
}

func GetFundersCount(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, http.StatusOK, Response{
		Code:   0,
		Result: FundersCountResponse{Count: app.FundersCount()},
	})
}
