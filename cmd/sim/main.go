package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"prediction-maker-go/config"
	"prediction-maker-go/infrastructure/logger"
	"prediction-maker-go/internal/engine"
	"prediction-maker-go/report"
)

// 批量模拟入口：按场景跑完固定步数，输出 CSV 报表与 JSON trace。
func main() {
	cfgPath := flag.String("config", "", "scenario YAML path (empty = built-in demo scenario)")
	steps := flag.Int("steps", 0, "override run.steps")
	seed := flag.Int64("seed", 0, "override run.seed (0 = keep scenario seed)")
	reportPath := flag.String("report", "", "override CSV report path")
	tracePath := flag.String("trace", "", "override JSON trace path")
	logLevel := flag.String("logLevel", "info", "log level: debug, info, warn, error")
	flag.Parse()

	cfg := config.DefaultScenario()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load scenario: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *steps > 0 {
		cfg.Run.Steps = *steps
	}
	if *seed != 0 {
		cfg.Run.Seed = *seed
	}
	if *reportPath != "" {
		cfg.Output.Report = *reportPath
	}
	if *tracePath != "" {
		cfg.Output.Trace = *tracePath
	}
	cfg.Logging.Level = *logLevel

	log, err := logger.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	states := config.BuildMarkets(cfg)
	eng := engine.NewWithMakerConfig(states, cfg.Run.Seed, cfg.Maker)
	eng.Logger = log

	log.Info("running simulation",
		zap.Int("steps", cfg.Run.Steps),
		zap.Int64("seed", cfg.Run.Seed),
		zap.Int("markets", len(states)),
	)
	trace := eng.Run(cfg.Run.Steps)

	if err := report.WriteCSV(cfg.Output.Report, states); err != nil {
		log.Error("report failed", zap.Error(err))
		os.Exit(1)
	}
	log.Info("report written", zap.String("path", cfg.Output.Report))

	if err := report.WriteTrace(cfg.Output.Trace, trace); err != nil {
		log.Error("trace failed", zap.Error(err))
		os.Exit(1)
	}
	log.Info("trace written", zap.String("path", cfg.Output.Trace))

	// 最终市场状态
	for _, row := range report.Rows(states) {
		fmt.Printf("%s {\n", row.Market)
		fmt.Printf("    mid: %.4f\n", row.Mid)
		fmt.Printf("    spread: %.4f\n", row.Spread)
		fmt.Printf("    inventory: %.2f\n", row.Inventory)
		fmt.Printf("    pnl: %.4f\n", row.PnL)
		fmt.Printf("    fill_count: %d\n", row.FillCount)
		fmt.Printf("    notional: %.2f\n", row.Notional)
		fmt.Printf("    max_drawdown: %.4f\n", row.MaxDrawdown)
		fmt.Printf("}\n")
	}

	sum := report.Summarize(states)
	fmt.Printf("total pnl: %.4f  total fills: %d  total notional: %.2f  max drawdown: %.4f\n",
		sum.TotalPnL, sum.TotalFills, sum.TotalNotional, sum.MaxDrawdown)
}
