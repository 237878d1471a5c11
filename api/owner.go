package api

import (
	"net/http"
)

type OwnerResponse struct {
	Owner string `json:"owner"`
}

func GetOwner(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, http.StatusOK, Response{
		Code:   0,
		Result: OwnerResponse{Owner: app.Owner().Hex()},
	})
}
