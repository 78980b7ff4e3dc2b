// Package config defines the simulation scenario: run length, RNG seed,
// maker parameters, per-market initial conditions and output targets.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"prediction-maker-go/infrastructure/logger"
	"prediction-maker-go/market"
	"prediction-maker-go/strategy"
)

// Scenario is the top-level simulation configuration.
type Scenario struct {
	Run     RunConfig               `yaml:"run" json:"run"`
	Maker   strategy.Config         `yaml:"maker" json:"maker"`
	Markets map[string]MarketConfig `yaml:"markets" json:"markets"`
	Output  OutputConfig            `yaml:"output" json:"output"`
	Logging logger.Config           `yaml:"logging" json:"-"`
}

type RunConfig struct {
	Steps int   `yaml:"steps" json:"steps"`
	Seed  int64 `yaml:"seed" json:"seed"`
}

// MarketConfig 单个市场的初始条件与风险参数
type MarketConfig struct {
	Mid            float64 `yaml:"mid" json:"mid"`
	Spread         float64 `yaml:"spread" json:"spread"`
	InventoryLimit float64 `yaml:"inventoryLimit" json:"inventoryLimit"`
	ExposureLimit  float64 `yaml:"exposureLimit" json:"exposureLimit"`
	Fee            float64 `yaml:"fee" json:"fee"`
}

type OutputConfig struct {
	Report string `yaml:"report" json:"report"` // CSV 报表路径
	Trace  string `yaml:"trace" json:"trace"`   // JSON trace 路径
}

// DefaultScenario returns the standard three-market demo scenario.
func DefaultScenario() Scenario {
	return Scenario{
		Run:   RunConfig{Steps: 200, Seed: 123},
		Maker: strategy.DefaultConfig(),
		Markets: map[string]MarketConfig{
			"inflation_gt_20":      {Mid: 0.30, Spread: 0.05, InventoryLimit: 200, ExposureLimit: 10000},
			"election_candidate_a": {Mid: 0.55, Spread: 0.05, InventoryLimit: 200, ExposureLimit: 10000},
			"team_x_wins":          {Mid: 0.50, Spread: 0.05, InventoryLimit: 200, ExposureLimit: 10000},
		},
		Output: OutputConfig{
			Report: "simulation_report.csv",
			Trace:  "trace.json",
		},
		Logging: logger.DefaultConfig(),
	}
}

// Load reads a YAML scenario from path and validates it. Fields absent from
// the file keep their DefaultScenario values, except Markets, which is
// replaced wholesale when present.
func Load(path string) (Scenario, error) {
	cfg := DefaultScenario()
	// yaml merges into a non-nil map, which would mix file markets with the
	// defaults; Markets is replaced wholesale instead.
	cfg.Markets = nil
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse yaml: %w", err)
	}
	if len(cfg.Markets) == 0 {
		cfg.Markets = DefaultScenario().Markets
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate ensures the scenario describes a runnable simulation.
func Validate(cfg Scenario) error {
	if cfg.Run.Steps <= 0 {
		return errors.New("run.steps must be > 0")
	}
	if !cfg.Maker.Validate() {
		return errors.New("maker config is invalid")
	}
	if len(cfg.Markets) == 0 {
		return errors.New("at least one market is required")
	}
	for name, mc := range cfg.Markets {
		if name == "" {
			return errors.New("market name must not be empty")
		}
		if mc.Mid <= 0 || mc.Mid >= 1 {
			return fmt.Errorf("market %s mid must be in (0, 1)", name)
		}
		if mc.Spread <= 0 {
			return fmt.Errorf("market %s spread must be > 0", name)
		}
		if mc.InventoryLimit <= 0 {
			return fmt.Errorf("market %s inventoryLimit must be > 0", name)
		}
		if mc.ExposureLimit <= 0 {
			return fmt.Errorf("market %s exposureLimit must be > 0", name)
		}
		if mc.Fee < 0 {
			return fmt.Errorf("market %s fee must be >= 0", name)
		}
	}
	return nil
}

// BuildMarkets constructs the per-market ledgers from the scenario.
func BuildMarkets(cfg Scenario) map[string]*market.State {
	states := make(map[string]*market.State, len(cfg.Markets))
	for name, mc := range cfg.Markets {
		s := market.NewState(name, mc.Mid)
		s.Spread = mc.Spread
		s.InventoryLimit = mc.InventoryLimit
		s.ExposureLimit = mc.ExposureLimit
		s.Fee = mc.Fee
		states[name] = s
	}
	return states
}
