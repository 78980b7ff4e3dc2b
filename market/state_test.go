package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStateDefaults(t *testing.T) {
	s := NewState("team_x_wins", 0.5)

	assert.Equal(t, "team_x_wins", s.Name)
	assert.Equal(t, 0.5, s.Mid)
	assert.Equal(t, 0.05, s.Spread)
	assert.Equal(t, 100.0, s.InventoryLimit)
	assert.Equal(t, 10000.0, s.ExposureLimit)
	assert.Zero(t, s.Inventory)
	assert.Zero(t, s.PnL)
	assert.Empty(t, s.Fills)
}

func TestRecordFillUpdatesLedger(t *testing.T) {
	s := NewState("m", 0.5)

	s.RecordFill("buy", 10, 0.48)
	s.RecordFill("sell", 4, 0.52)

	assert.Equal(t, 6.0, s.Inventory)
	assert.Equal(t, uint64(2), s.FillCount)
	assert.Len(t, s.Fills, 2)
	assert.InDelta(t, 10*0.48+4*0.52, s.Notional, 1e-12)
	assert.InDelta(t, 6.0*0.5, s.Exposure, 1e-12)

	assert.Equal(t, "buy", s.Fills[0].Side)
	assert.Equal(t, 10.0, s.Fills[0].Size)
	assert.Equal(t, 0.48, s.Fills[0].Price)
	assert.False(t, s.Fills[0].Timestamp.IsZero())
}

func TestRecordFillExposureTracksInventorySign(t *testing.T) {
	s := NewState("m", 0.4)

	s.RecordFill("sell", 15, 0.38)

	assert.Equal(t, -15.0, s.Inventory)
	// Exposure uses |inventory|, never goes negative.
	assert.InDelta(t, 15.0*0.4, s.Exposure, 1e-12)
}

func TestFillCountMatchesLedgerLength(t *testing.T) {
	s := NewState("m", 0.5)
	for i := 0; i < 25; i++ {
		side := "buy"
		if i%2 == 1 {
			side = "sell"
		}
		s.RecordFill(side, float64(i%5+1), 0.5)
	}

	assert.Equal(t, uint64(len(s.Fills)), s.FillCount)

	notional := 0.0
	for _, f := range s.Fills {
		notional += f.Size * f.Price
	}
	assert.InDelta(t, notional, s.Notional, 1e-9)
}

func TestSnapshotCopiesReportableFields(t *testing.T) {
	s := NewState("m", 0.55)
	s.RecordFill("buy", 5, 0.5)
	s.PnL = 1.5
	s.MaxDrawdown = 0.3

	snap := s.Snapshot()

	assert.Equal(t, s.Name, snap.Name)
	assert.Equal(t, s.Mid, snap.Mid)
	assert.Equal(t, s.Spread, snap.Spread)
	assert.Equal(t, s.Inventory, snap.Inventory)
	assert.Equal(t, s.Exposure, snap.Exposure)
	assert.Equal(t, s.PnL, snap.PnL)
	assert.Equal(t, s.FillCount, snap.FillCount)
	assert.Equal(t, s.Notional, snap.Notional)
	assert.Equal(t, s.MaxDrawdown, snap.MaxDrawdown)

	// Snapshot is a copy, mutating the state must not leak into it.
	s.PnL = -2
	assert.Equal(t, 1.5, snap.PnL)
}
