package api

import (
	"net/http"
)

type HeldBalanceResponse struct {
	HeldBalance string `json:"held_balance"`
}

func GetHeldBalance(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, http.StatusOK, Response{
		Code:   0,
		Result: HeldBalanceResponse{HeldBalance: app.HeldBalance().String()},
	})
}
