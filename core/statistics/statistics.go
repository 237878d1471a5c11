// Package statistics collects prometheus metrics for ledger operations and
// the API. All methods are safe on a nil *Data so metrics stay optional.
package statistics

import (
	"math/big"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Data is the metrics bundle of a running node.
type Data struct {
	fundCount     prometheus.Counter
	withdrawCount prometheus.Counter
	heldBalance   prometheus.Gauge
	fundersCount  prometheus.Gauge
	apiDuration   *prometheus.HistogramVec
}

// New registers the ledger metrics on the default prometheus registry.
func New() *Data {
	return &Data{
		fundCount: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "fundme",
			Name:      "fund_total",
			Help:      "Accepted contributions",
		}),
		withdrawCount: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "fundme",
			Name:      "withdraw_total",
			Help:      "Completed withdrawals",
		}),
		heldBalance: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "fundme",
			Name:      "held_balance",
			Help:      "Held balance in atto units",
		}),
		fundersCount: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "fundme",
			Name:      "funders_count",
			Help:      "Registry entries, duplicates included",
		}),
		apiDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fundme",
			Name:      "api_request_duration_seconds",
			Help:      "API response timings",
		}, []string{"path"}),
	}
}

// Fund accounts an accepted contribution.
func (d *Data) Fund() {
	if d == nil {
		return
	}
	d.fundCount.Inc()
}

// Withdraw accounts a completed withdrawal.
func (d *Data) Withdraw() {
	if d == nil {
		return
	}
	d.withdrawCount.Inc()
}

// SetLedger publishes the current held balance and registry size.
func (d *Data) SetLedger(heldBalance *big.Int, fundersCount uint32) {
	if d == nil {
		return
	}

	balance, _ := new(big.Float).SetInt(heldBalance).Float64()
	d.heldBalance.Set(balance)
	d.fundersCount.Set(float64(fundersCount))
}

// APIRequest accounts one served API request.
func (d *Data) APIRequest(path string, duration time.Duration) {
	if d == nil {
		return
	}
	d.apiDuration.WithLabelValues(path).Observe(duration.Seconds())
}
