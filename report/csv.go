package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"prediction-maker-go/market"
)

// WriteCSV writes one row per market to path. The header
// market,mid,spread,inventory,pnl,fill_count,notional,max_drawdown
// must stay stable for downstream consumers.
func WriteCSV(path string, states map[string]*market.State) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{
		"market",
		"mid",
		"spread",
		"inventory",
		"pnl",
		"fill_count",
		"notional",
		"max_drawdown",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	for _, r := range Rows(states) {
		record := []string{
			r.Market,
			fmtFloat(r.Mid),
			fmtFloat(r.Spread),
			fmtFloat(r.Inventory),
			fmtFloat(r.PnL),
			strconv.FormatUint(r.FillCount, 10),
			fmtFloat(r.Notional),
			fmtFloat(r.MaxDrawdown),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
