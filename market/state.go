// Package market holds the per-market ledger the simulator mutates:
// fair-price estimate, quoted spread, inventory, exposure and PnL accounting.
package market

import "time"

// Fill is one executed trade from the maker's perspective.
type Fill struct {
	Side      string    `json:"side"` // "buy" or "sell"
	Size      float64   `json:"size"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// State is the mutable ledger for a single prediction market.
// Mid is a probability in [0.01, 0.99]; all prices live in [0, 1].
// InventoryLimit and ExposureLimit are soft risk signals: they are never
// enforced as hard caps, the maker only reacts to them.
type State struct {
	Name      string  `json:"name"`
	Mid       float64 `json:"mid"`
	Spread    float64 `json:"spread"`
	Inventory float64 `json:"inventory"`
	Exposure  float64 `json:"exposure"`

	PnL         float64 `json:"pnl"`
	PeakPnL     float64 `json:"peak_pnl"`
	MaxDrawdown float64 `json:"max_drawdown"`

	Fills     []Fill  `json:"fills"`
	FillCount uint64  `json:"fill_count"`
	Notional  float64 `json:"notional"`

	// 风险参数，创建后不再变更
	InventoryLimit float64 `json:"inventory_limit"`
	ExposureLimit  float64 `json:"exposure_limit"`
	Fee            float64 `json:"fee"`
}

// NewState creates a market ledger with default risk parameters.
func NewState(name string, initialMid float64) *State {
	return &State{
		Name:           name,
		Mid:            initialMid,
		Spread:         0.05,
		InventoryLimit: 100.0,
		ExposureLimit:  10000.0,
	}
}

// RecordFill appends a fill to the ledger and updates inventory, exposure
// and the redundant FillCount/Notional aggregates.
func (s *State) RecordFill(side string, size, price float64) {
	s.Fills = append(s.Fills, Fill{
		Side:      side,
		Size:      size,
		Price:     price,
		Timestamp: time.Now(),
	})
	s.FillCount++
	s.Notional += abs(size) * price

	switch side {
	case "buy":
		s.Inventory += size
	case "sell":
		s.Inventory -= size
	}

	s.Exposure = abs(s.Inventory) * s.Mid
}

// Snapshot is an immutable copy of the reportable fields.
type Snapshot struct {
	Name        string  `json:"name"`
	Mid         float64 `json:"mid"`
	Spread      float64 `json:"spread"`
	Inventory   float64 `json:"inventory"`
	Exposure    float64 `json:"exposure"`
	PnL         float64 `json:"pnl"`
	FillCount   uint64  `json:"fill_count"`
	Notional    float64 `json:"notional"`
	MaxDrawdown float64 `json:"max_drawdown"`
}

// Snapshot copies the reportable fields; the fill ledger is not included.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Name:        s.Name,
		Mid:         s.Mid,
		Spread:      s.Spread,
		Inventory:   s.Inventory,
		Exposure:    s.Exposure,
		PnL:         s.PnL,
		FillCount:   s.FillCount,
		Notional:    s.Notional,
		MaxDrawdown: s.MaxDrawdown,
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
