package models

import (
	"prediction-maker-go/config"
	"prediction-maker-go/strategy"
)

// SimulateRequest describes one simulation run. Omitted fields fall back to
// the server's current default scenario.
type SimulateRequest struct {
	Steps        int                            `json:"steps"`
	Seed         *int64                         `json:"seed,omitempty"`
	Maker        *strategy.Config               `json:"maker,omitempty"`
	Markets      map[string]config.MarketConfig `json:"markets,omitempty"`
	IncludeTrace bool                           `json:"includeTrace"`
}

// Merge applies the request on top of the default scenario and returns the
// effective scenario for this run.
func (r SimulateRequest) Merge(defaults config.Scenario) config.Scenario {
	cfg := defaults
	if r.Steps > 0 {
		cfg.Run.Steps = r.Steps
	}
	if r.Seed != nil {
		cfg.Run.Seed = *r.Seed
	}
	if r.Maker != nil {
		cfg.Maker = *r.Maker
	}
	if len(r.Markets) > 0 {
		cfg.Markets = r.Markets
	}
	return cfg
}
