// Package metrics provides Prometheus metrics for the simulator.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder bundles the simulator's Prometheus collectors. A nil Recorder is
// safe to use; every method no-ops.
type Recorder struct {
	StepsTotal  prometheus.Counter
	OrdersTotal *prometheus.CounterVec
	FillsTotal  *prometheus.CounterVec

	Mid         *prometheus.GaugeVec
	Spread      *prometheus.GaugeVec
	Inventory   *prometheus.GaugeVec
	PnL         *prometheus.GaugeVec
	MaxDrawdown *prometheus.GaugeVec
}

// NewRecorder creates and registers the simulator collectors.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &Recorder{
		StepsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sim_steps_total",
			Help: "Number of simulation steps executed",
		}),
		OrdersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sim_orders_total",
			Help: "Synthetic taker orders generated",
		}, []string{"market", "side"}),
		FillsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sim_fills_total",
			Help: "Maker fills recorded",
		}, []string{"market", "side"}),
		Mid: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sim_market_mid",
			Help: "Current mid probability per market",
		}, []string{"market"}),
		Spread: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sim_market_spread",
			Help: "Current quoted spread per market",
		}, []string{"market"}),
		Inventory: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sim_market_inventory",
			Help: "Signed net inventory per market",
		}, []string{"market"}),
		PnL: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sim_market_pnl",
			Help: "Cumulative PnL per market",
		}, []string{"market"}),
		MaxDrawdown: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sim_market_max_drawdown",
			Help: "Running maximum drawdown per market",
		}, []string{"market"}),
	}
	reg.MustRegister(
		r.StepsTotal, r.OrdersTotal, r.FillsTotal,
		r.Mid, r.Spread, r.Inventory, r.PnL, r.MaxDrawdown,
	)
	return r
}

// ObserveOrder counts one synthetic order.
func (r *Recorder) ObserveOrder(marketName, side string) {
	if r == nil {
		return
	}
	r.OrdersTotal.WithLabelValues(marketName, side).Inc()
}

// ObserveFill counts one maker fill.
func (r *Recorder) ObserveFill(marketName, side string) {
	if r == nil {
		return
	}
	r.FillsTotal.WithLabelValues(marketName, side).Inc()
}

// ObserveMarket updates the per-market gauges from the latest state.
func (r *Recorder) ObserveMarket(marketName string, mid, spread, inventory, pnl, maxDrawdown float64) {
	if r == nil {
		return
	}
	r.Mid.WithLabelValues(marketName).Set(mid)
	r.Spread.WithLabelValues(marketName).Set(spread)
	r.Inventory.WithLabelValues(marketName).Set(inventory)
	r.PnL.WithLabelValues(marketName).Set(pnl)
	r.MaxDrawdown.WithLabelValues(marketName).Set(maxDrawdown)
}

// ObserveStep counts one completed engine step.
func (r *Recorder) ObserveStep() {
	if r == nil {
		return
	}
	r.StepsTotal.Inc()
}

// Serve 启动Prometheus指标服务器
func Serve(addr string) {
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		_ = http.ListenAndServe(addr, nil)
	}()
}
