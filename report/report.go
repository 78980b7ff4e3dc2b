// Package report turns final market states and run traces into external
// artifacts: a tabular CSV report, a JSON trace dump and aggregate summary
// statistics. Writers never mutate simulation state; I/O failures propagate
// to the caller.
package report

import (
	"sort"

	"prediction-maker-go/market"
)

// Row is one line of the tabular report. Column order and field set are a
// compatibility contract with downstream tooling.
type Row struct {
	Market      string  `json:"market"`
	Mid         float64 `json:"mid"`
	Spread      float64 `json:"spread"`
	Inventory   float64 `json:"inventory"`
	PnL         float64 `json:"pnl"`
	FillCount   uint64  `json:"fill_count"`
	Notional    float64 `json:"notional"`
	MaxDrawdown float64 `json:"max_drawdown"`
}

// Rows builds one report row per market, sorted by market name.
func Rows(states map[string]*market.State) []Row {
	names := make([]string, 0, len(states))
	for name := range states {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]Row, 0, len(names))
	for _, name := range names {
		s := states[name]
		rows = append(rows, Row{
			Market:      name,
			Mid:         s.Mid,
			Spread:      s.Spread,
			Inventory:   s.Inventory,
			PnL:         s.PnL,
			FillCount:   s.FillCount,
			Notional:    s.Notional,
			MaxDrawdown: s.MaxDrawdown,
		})
	}
	return rows
}

// Summary aggregates the run across all markets.
type Summary struct {
	TotalPnL      float64 `json:"total_pnl"`
	TotalFills    uint64  `json:"total_fills"`
	TotalNotional float64 `json:"total_notional"`
	MaxDrawdown   float64 `json:"max_drawdown"`
}

// Summarize computes run-level totals; MaxDrawdown is the worst across
// markets, not a portfolio drawdown.
func Summarize(states map[string]*market.State) Summary {
	var sum Summary
	for _, s := range states {
		sum.TotalPnL += s.PnL
		sum.TotalFills += s.FillCount
		sum.TotalNotional += s.Notional
		if s.MaxDrawdown > sum.MaxDrawdown {
			sum.MaxDrawdown = s.MaxDrawdown
		}
	}
	return sum
}
