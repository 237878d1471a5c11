package api

import (
	"net/http"
)

type MinimumResponse struct {
	MinimumContribution string `json:"minimum_contribution"`
}

func GetMinimum(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, http.StatusOK, Response{
		Code:   0,
		Result: MinimumResponse{MinimumContribution: app.MinimumContribution().String()},
	})
}
