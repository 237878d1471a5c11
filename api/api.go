package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/twopieare/foundry-fund-me/config"
	"github.com/twopieare/foundry-fund-me/core/fundme"
	"github.com/twopieare/foundry-fund-me/core/statistics"
	"github.com/twopieare/foundry-fund-me/log"
)

var (
	app   *fundme.FundMe
	stats *statistics.Data
)

// RunApi serves the node's HTTP API until the process exits.
func RunApi(f *fundme.FundMe, data *statistics.Data, cfg *config.Config) {
	app = f
	stats = data

	router := mux.NewRouter().StrictSlash(true)

	router.HandleFunc("/api/owner", GetOwner).Methods("GET")
	router.HandleFunc("/api/minimum", GetMinimum).Methods("GET")
	router.HandleFunc("/api/oracle", GetOracle).Methods("GET")
	router.HandleFunc("/api/balance", GetHeldBalance).Methods("GET")
	router.HandleFunc("/api/funded/{address}", GetAmountFunded).Methods("GET")
	router.HandleFunc("/api/funder/{index}", GetFunderAtIndex).Methods("GET")
	router.HandleFunc("/api/fundersCount", GetFundersCount).Methods("GET")
	router.HandleFunc("/api/events/{height}", GetEvents).Methods("GET")
	router.HandleFunc("/api/fund", Fund).Methods("POST")
	router.HandleFunc("/api/withdraw", Withdraw).Methods("POST")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	router.Use(timingMiddleware)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"POST", "GET"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	listenAddr := strings.TrimPrefix(cfg.APIListenAddress, "tcp://")
	log.Error("api stopped", "err", http.ListenAndServe(listenAddr, handler))
}

func timingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		stats.APIRequest(r.URL.Path, time.Since(start))
	})
}

type Response struct {
	Code   uint32      `json:"code"`
	Result interface{} `json:"result,omitempty"`
	Log    string      `json:"log,omitempty"`
}

func writeResponse(w http.ResponseWriter, status int, response Response) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(response)
}
