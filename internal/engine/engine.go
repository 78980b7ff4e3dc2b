// Package engine drives the simulation: it synthesizes random taker flow,
// runs each market's maker against it, and keeps the PnL and drawdown
// accounting.
package engine

import (
	"math/rand"
	"sort"

	"go.uber.org/zap"

	"prediction-maker-go/infrastructure/logger"
	"prediction-maker-go/market"
	"prediction-maker-go/metrics"
	"prediction-maker-go/strategy"
)

// FillInfo is the per-fill slice of a step result.
type FillInfo struct {
	Side  string  `json:"side"`
	Size  float64 `json:"size"`
	Price float64 `json:"price"`
}

// StepResult is the per-market outcome of one tick, snapshotted after mean
// reversion. Immutable once produced.
type StepResult struct {
	Fills     []FillInfo `json:"fills"`
	Mid       float64    `json:"mid"`
	Inventory float64    `json:"inventory"`
	PnL       float64    `json:"pnl"`
	Spread    float64    `json:"spread"`
}

// Engine orchestrates N independent (market, maker) pairs. Markets are
// processed sequentially in sorted-name order; a stable order is required
// because all markets share one deterministic RNG stream.
type Engine struct {
	markets map[string]*market.State
	makers  map[string]*strategy.Maker
	names   []string
	time    uint64
	rng     *rand.Rand

	// 可选依赖，nil 时跳过
	Logger  *logger.Logger
	Metrics *metrics.Recorder
}

// New builds an engine with default maker parameters. One maker is derived
// per market, seeding its base spread from the market's initial spread.
func New(markets map[string]*market.State, seed int64) *Engine {
	return NewWithMakerConfig(markets, seed, strategy.DefaultConfig())
}

// NewWithMakerConfig builds an engine with explicit maker parameters.
func NewWithMakerConfig(markets map[string]*market.State, seed int64, cfg strategy.Config) *Engine {
	makers := make(map[string]*strategy.Maker, len(markets))
	names := make([]string, 0, len(markets))
	for name, state := range markets {
		makers[name] = strategy.NewMaker(state, cfg)
		names = append(names, name)
	}
	sort.Strings(names)

	return &Engine{
		markets: markets,
		makers:  makers,
		names:   names,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Markets exposes the per-market ledgers for reporting.
func (e *Engine) Markets() map[string]*market.State {
	return e.markets
}

// Time returns the number of completed steps.
func (e *Engine) Time() uint64 {
	return e.time
}

// simulateOrderFlow synthesizes 1-3 marketable taker orders for one market.
// Flow is biased by the current mid relative to the 0.5 midpoint of the
// probability space: a high mid attracts buyers, a low mid sellers.
func (e *Engine) simulateOrderFlow(state *market.State) []strategy.Order {
	n := 1 + e.rng.Intn(3)
	orders := make([]strategy.Order, 0, n)

	for i := 0; i < n; i++ {
		noise := e.rng.Float64()*0.3 - 0.15
		side := "sell"
		if state.Mid+noise > 0.5 {
			side = "buy"
		}

		size := clamp(e.rng.Float64()*4.0+4.0, 1.0, 30.0)

		// Buyers pay up to 1.0, sellers accept down to 0.0.
		price := 0.0
		if side == "buy" {
			price = 1.0
		}

		orders = append(orders, strategy.Order{Side: side, Size: size, Price: price})
		e.Metrics.ObserveOrder(state.Name, side)
	}

	return orders
}

// stepMarket runs one market through one tick with the given order flow.
func (e *Engine) stepMarket(name string, orders []strategy.Order) StepResult {
	state := e.markets[name]
	mm, ok := e.makers[name]
	if !ok {
		// One maker per market is built at construction; a miss here is a
		// programming-logic fault, not a runtime condition.
		panic("engine: no maker for market " + name)
	}

	midBefore := state.Mid
	fills := mm.OnTick(state, orders)

	// Every fill in the tick marks PnL against the pre-fill mid.
	for _, fill := range fills {
		signed := fill.Size
		if fill.Side != "buy" {
			signed = -fill.Size
		}
		state.PnL += -signed * (fill.Price - midBefore)
		if state.PnL > state.PeakPnL {
			state.PeakPnL = state.PnL
		}
		if dd := state.PeakPnL - state.PnL; dd > state.MaxDrawdown {
			state.MaxDrawdown = dd
		}
		e.Metrics.ObserveFill(name, fill.Side)
	}

	// 每个 tick 将 mid 轻微拉回 0.5
	state.Mid = state.Mid*0.995 + 0.5*0.005

	result := StepResult{
		Fills:     make([]FillInfo, 0, len(fills)),
		Mid:       state.Mid,
		Inventory: state.Inventory,
		PnL:       state.PnL,
		Spread:    state.Spread,
	}
	for _, fill := range fills {
		result.Fills = append(result.Fills, FillInfo{Side: fill.Side, Size: fill.Size, Price: fill.Price})
	}

	e.Metrics.ObserveMarket(name, state.Mid, state.Spread, state.Inventory, state.PnL, state.MaxDrawdown)
	return result
}

// Step executes one simulation tick across all markets.
func (e *Engine) Step() map[string]StepResult {
	results := make(map[string]StepResult, len(e.names))

	for _, name := range e.names {
		orders := e.simulateOrderFlow(e.markets[name])
		res := e.stepMarket(name, orders)
		results[name] = res

		if e.Logger != nil {
			e.Logger.Debug("step",
				zap.Uint64("tick", e.time),
				zap.String("market", name),
				zap.Int("fills", len(res.Fills)),
				zap.Float64("mid", res.Mid),
				zap.Float64("inventory", res.Inventory),
				zap.Float64("pnl", res.PnL),
			)
		}
	}

	e.time++
	e.Metrics.ObserveStep()
	return results
}

// Run executes exactly steps ticks and returns the ordered trace. There is
// no early termination condition.
func (e *Engine) Run(steps int) []map[string]StepResult {
	trace := make([]map[string]StepResult, 0, steps)
	for i := 0; i < steps; i++ {
		trace = append(trace, e.Step())
	}
	return trace
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
