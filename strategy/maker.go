// Package strategy implements the quoting and fill-matching logic for a
// single prediction market. A Maker never stores a reference to the market
// ledger; the engine passes it in for the duration of one tick.
package strategy

import "prediction-maker-go/market"

// Order is an incoming taker intent. Synthetic flow always uses marketable
// prices (1.0 for buys, 0.0 for sells).
type Order struct {
	Side  string  `json:"side"`
	Size  float64 `json:"size"`
	Price float64 `json:"price"`
}

// Maker generates two-sided quotes and absorbs incoming order flow for one
// market. It keeps a bounded rolling window of signed trade flow as a
// lagging short-term signal.
type Maker struct {
	config Config

	// imbalance 按到达顺序保存带符号的成交流量，超出容量时淘汰最旧的
	imbalance []float64
}

// NewMaker builds a maker for the given market. The market's current spread
// becomes the maker's base spread.
func NewMaker(state *market.State, cfg Config) *Maker {
	cfg.BaseSpread = state.Spread
	return &Maker{config: cfg}
}

// Config returns the maker's quoting parameters.
func (m *Maker) Config() Config {
	return m.config
}

// Quote computes the current two-sided quote and writes the adaptive spread
// back into the market state. Inventory and mid are not mutated, so calling
// Quote repeatedly without an intervening fill yields the same result.
//
// If the spread collapses and the shading clamps push both sides to the same
// boundary, bid may equal ask; that is accepted, not defended against.
func (m *Maker) Quote(state *market.State) (bid, ask, size float64) {
	mid := state.Mid

	// Sum the most recent WindowSize entries; fewer entries means sum all.
	imbalance := 0.0
	for i, n := 0, len(m.imbalance); i < m.config.WindowSize && i < n; i++ {
		imbalance += m.imbalance[n-1-i]
	}
	absImb := abs(imbalance)

	// Adaptive spread: widens with flow imbalance and inventory risk.
	spread := m.config.BaseSpread *
		(1.0 + absImb/10.0 + abs(state.Inventory)*m.config.InventorySkew)
	spread = clamp(spread, m.config.MinSpread, m.config.MaxSpread)

	// Shade the quoted center away from the inventory direction: a long
	// position shades quotes down to encourage selling.
	skew := state.Inventory * m.config.InventorySkew
	midShaded := clamp(mid-skew, 0.01, 0.99)

	bid = max(0.0, midShaded-spread/2.0)
	ask = min(1.0, midShaded+spread/2.0)

	// Quote size shrinks as inventory risk grows.
	size = clamp(10.0-abs(state.Inventory)/10.0, 1.0, 20.0)

	state.Spread = spread
	return bid, ask, size
}

// OnFill records a fill into the imbalance window and applies the
// flow-driven mid adjustment. When |inventory| exceeds 80% of the soft
// limit a second, fixed corrective nudge is applied on top.
func (m *Maker) OnFill(state *market.State, side string, size float64) {
	delta := size
	if side != "buy" {
		delta = -size
	}

	m.imbalance = append(m.imbalance, delta)
	maxWindow := m.config.WindowSize * 4
	if maxWindow < 100 {
		maxWindow = 100
	}
	if n := len(m.imbalance); n > maxWindow {
		m.imbalance = m.imbalance[n-maxWindow:]
	}

	// Diminishing-returns price impact, bounded below 0.05 in magnitude.
	const alpha = 0.05
	adjustment := alpha * (delta / (10.0 + abs(delta)))
	state.Mid = clamp(state.Mid+adjustment, 0.01, 0.99)

	if abs(state.Inventory) > state.InventoryLimit*0.8 {
		correction := 0.05
		if state.Inventory > 0 {
			correction = -0.05
		}
		state.Mid = clamp(state.Mid+correction, 0.01, 0.99)
	}
}

// OnTick quotes once, matches the incoming orders against that quote in
// input order, and applies the resulting fills. Orders that do not cross
// are dropped; there is no resting backlog. Fills within the same tick all
// execute at the tick's quoted prices.
func (m *Maker) OnTick(state *market.State, flow []Order) []market.Fill {
	bid, ask, _ := m.Quote(state)

	var fills []market.Fill
	for _, order := range flow {
		switch {
		case order.Side == "buy" && order.Price >= ask:
			// Taker buys, we sell at the ask.
			fills = append(fills, market.Fill{Side: "sell", Size: order.Size, Price: ask})
		case order.Side == "sell" && order.Price <= bid:
			// Taker sells, we buy at the bid.
			fills = append(fills, market.Fill{Side: "buy", Size: order.Size, Price: bid})
		}
	}

	for _, fill := range fills {
		state.RecordFill(fill.Side, fill.Size, fill.Price)
		m.OnFill(state, fill.Side, fill.Size)
	}

	return fills
}

// WindowLen reports the current imbalance window occupancy.
func (m *Maker) WindowLen() int {
	return len(m.imbalance)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

