package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/twopieare/foundry-fund-me/core/code"
	eventsdb "github.com/twopieare/foundry-fund-me/core/events"
)

type EventsResponse struct {
	Events eventsdb.Events `json:"events"`
}

func GetEvents(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	height, err := strconv.ParseUint(vars["height"], 10, 32)
	if err != nil {
		writeResponse(w, http.StatusBadRequest, Response{Code: code.DecodeError, Log: "invalid height"})
		return
	}

	writeResponse(w, http.StatusOK, Response{
		Code:   0,
		Result: EventsResponse{Events: app.Events(uint32(height))},
	})
}
