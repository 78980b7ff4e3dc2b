package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"prediction-maker-go/market"
)

func newTestState(mid float64) *market.State {
	s := market.NewState("test", mid)
	s.Spread = 0.05
	s.InventoryLimit = 200
	s.ExposureLimit = 10000
	return s
}

func TestNewMakerSeedsBaseSpreadFromState(t *testing.T) {
	s := newTestState(0.5)
	s.Spread = 0.08

	mm := NewMaker(s, DefaultConfig())

	assert.Equal(t, 0.08, mm.Config().BaseSpread)
}

func TestQuoteFlatBook(t *testing.T) {
	s := newTestState(0.5)
	mm := NewMaker(s, DefaultConfig())

	bid, ask, size := mm.Quote(s)

	// No imbalance, no inventory: spread stays at base.
	assert.InDelta(t, 0.5-0.025, bid, 1e-12)
	assert.InDelta(t, 0.5+0.025, ask, 1e-12)
	assert.Equal(t, 10.0, size)
	assert.Equal(t, 0.05, s.Spread)
	assert.Equal(t, 0.5, s.Mid) // Quote never mutates mid
}

func TestQuoteIdempotentWithoutFills(t *testing.T) {
	s := newTestState(0.62)
	s.Inventory = 37
	mm := NewMaker(s, DefaultConfig())

	bid1, ask1, size1 := mm.Quote(s)
	bid2, ask2, size2 := mm.Quote(s)

	assert.Equal(t, bid1, bid2)
	assert.Equal(t, ask1, ask2)
	assert.Equal(t, size1, size2)
}

func TestQuoteSpreadClampedToBounds(t *testing.T) {
	cfg := DefaultConfig()
	s := newTestState(0.5)
	s.Inventory = 1e6 // absurd inventory blows up the raw spread
	mm := NewMaker(s, cfg)

	mm.Quote(s)

	assert.Equal(t, cfg.MaxSpread, s.Spread)

	// Tiny base spread clamps up to the minimum.
	s2 := newTestState(0.5)
	s2.Spread = 0.0001
	mm2 := NewMaker(s2, cfg)
	mm2.Quote(s2)
	assert.Equal(t, cfg.MinSpread, s2.Spread)
}

func TestQuoteShadesAgainstInventory(t *testing.T) {
	s := newTestState(0.5)
	mm := NewMaker(s, DefaultConfig())
	bidFlat, askFlat, _ := mm.Quote(s)

	s.Inventory = 50 // long: quotes shade down to encourage selling
	mm2 := NewMaker(s, DefaultConfig())
	bidLong, askLong, _ := mm2.Quote(s)

	assert.Less(t, bidLong, bidFlat)
	assert.Less(t, askLong, askFlat)
}

func TestQuoteSizeShrinksWithInventory(t *testing.T) {
	s := newTestState(0.5)
	mm := NewMaker(s, DefaultConfig())

	_, _, size := mm.Quote(s)
	assert.Equal(t, 10.0, size)

	s.Inventory = -60
	_, _, size = mm.Quote(s)
	assert.InDelta(t, 10.0-6.0, size, 1e-12)

	s.Inventory = -95 // floor at 1, even before the hard limit
	_, _, size = mm.Quote(s)
	assert.Equal(t, 1.0, size)

	s.Inventory = 500
	_, _, size = mm.Quote(s)
	assert.Equal(t, 1.0, size)
}

func TestQuoteBoundsInExtremeMarkets(t *testing.T) {
	for _, mid := range []float64{0.01, 0.05, 0.5, 0.95, 0.99} {
		s := newTestState(mid)
		mm := NewMaker(s, DefaultConfig())
		bid, ask, _ := mm.Quote(s)

		assert.GreaterOrEqual(t, bid, 0.0)
		assert.LessOrEqual(t, ask, 1.0)
		assert.LessOrEqual(t, bid, ask)
	}
}

func TestOnFillAdjustsMidWithDiminishingImpact(t *testing.T) {
	s := newTestState(0.5)
	mm := NewMaker(s, DefaultConfig())

	mm.OnFill(s, "buy", 10)

	// 0.05 * 10/(10+10) = 0.025
	assert.InDelta(t, 0.525, s.Mid, 1e-12)

	mm.OnFill(s, "sell", 10)
	assert.InDelta(t, 0.5, s.Mid, 1e-12)

	// Impact is bounded below 0.05 even for huge fills.
	before := s.Mid
	mm.OnFill(s, "buy", 1e6)
	assert.Less(t, s.Mid-before, 0.05)
}

func TestOnFillCorrectiveNudgeBeyondSoftLimit(t *testing.T) {
	s := newTestState(0.5)
	s.InventoryLimit = 100
	mm := NewMaker(s, DefaultConfig())

	// Below 80% of the limit: only the flow-driven adjustment applies.
	s.Inventory = 79
	mm.OnFill(s, "buy", 1)
	flowOnly := 0.05 * (1.0 / 11.0)
	assert.InDelta(t, 0.5+flowOnly, s.Mid, 1e-12)

	// Past the threshold a long position gets an extra -0.05 nudge.
	s.Mid = 0.5
	s.Inventory = 81
	mm.OnFill(s, "buy", 1)
	assert.InDelta(t, 0.5+flowOnly-0.05, s.Mid, 1e-12)

	// Short side nudges up.
	s.Mid = 0.5
	s.Inventory = -81
	mm.OnFill(s, "sell", 1)
	assert.InDelta(t, 0.5-flowOnly+0.05, s.Mid, 1e-12)
}

func TestOnFillMidStaysClamped(t *testing.T) {
	s := newTestState(0.98)
	mm := NewMaker(s, DefaultConfig())
	for i := 0; i < 50; i++ {
		mm.OnFill(s, "buy", 30)
	}
	assert.LessOrEqual(t, s.Mid, 0.99)

	s.Mid = 0.02
	for i := 0; i < 50; i++ {
		mm.OnFill(s, "sell", 30)
	}
	assert.GreaterOrEqual(t, s.Mid, 0.01)
}

func TestImbalanceWindowEviction(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WindowSize = 20 // capacity max(20*4, 100) = 100
	s := newTestState(0.5)
	mm := NewMaker(s, cfg)

	for i := 0; i < 150; i++ {
		mm.OnFill(s, "buy", 1)
	}

	assert.Equal(t, 100, mm.WindowLen())
}

func TestOnTickMatchesMarketableOrders(t *testing.T) {
	s := newTestState(0.5)
	mm := NewMaker(s, DefaultConfig())

	flow := []Order{
		{Side: "buy", Size: 5, Price: 1.0},  // crosses the ask, maker sells
		{Side: "sell", Size: 3, Price: 0.0}, // crosses the bid, maker buys
	}
	fills := mm.OnTick(s, flow)

	assert.Len(t, fills, 2)
	assert.Equal(t, "sell", fills[0].Side)
	assert.Equal(t, 5.0, fills[0].Size)
	assert.Equal(t, "buy", fills[1].Side)
	assert.Equal(t, 3.0, fills[1].Size)

	// Both fills executed at the tick's quoted prices.
	assert.Greater(t, fills[0].Price, fills[1].Price)

	// Ledger updated: sold 5, bought 3.
	assert.Equal(t, -2.0, s.Inventory)
	assert.Equal(t, uint64(2), s.FillCount)
}

func TestOnTickDropsNonCrossingOrders(t *testing.T) {
	s := newTestState(0.5)
	mm := NewMaker(s, DefaultConfig())

	flow := []Order{
		{Side: "buy", Size: 5, Price: 0.40},  // below the ask
		{Side: "sell", Size: 5, Price: 0.60}, // above the bid
	}
	fills := mm.OnTick(s, flow)

	assert.Empty(t, fills)
	assert.Zero(t, s.Inventory)
	assert.Zero(t, s.FillCount)
}

func TestOnTickQuotesOnceBeforeFills(t *testing.T) {
	s := newTestState(0.5)
	mm := NewMaker(s, DefaultConfig())

	flow := []Order{
		{Side: "buy", Size: 10, Price: 1.0},
		{Side: "buy", Size: 10, Price: 1.0},
		{Side: "buy", Size: 10, Price: 1.0},
	}
	fills := mm.OnTick(s, flow)

	assert.Len(t, fills, 3)
	// Same execution price for every fill in the tick, even though each
	// fill moved the mid.
	assert.Equal(t, fills[0].Price, fills[1].Price)
	assert.Equal(t, fills[1].Price, fills[2].Price)
}

func TestConfigValidate(t *testing.T) {
	assert.True(t, DefaultConfig().Validate())

	bad := DefaultConfig()
	bad.WindowSize = 0
	assert.False(t, bad.Validate())

	bad = DefaultConfig()
	bad.MinSpread = 0.6 // above max
	assert.False(t, bad.Validate())

	bad = DefaultConfig()
	bad.InventorySkew = -1
	assert.False(t, bad.Validate())
}
