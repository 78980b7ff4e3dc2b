package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"go.uber.org/zap"

	"prediction-maker-go/config"
	"prediction-maker-go/infrastructure/logger"
	"prediction-maker-go/internal/api"
	"prediction-maker-go/metrics"
)

// 常驻模拟服务：HTTP API + Prometheus 指标 + 场景热更新。
func main() {
	addr := flag.String("addr", ":8080", "listen address")
	cfgPath := flag.String("config", "", "default scenario YAML path (empty = built-in demo scenario)")
	watch := flag.Bool("watch", true, "hot reload the scenario file on change")
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
	cfg.Logging.Level = *logLevel

	log, err := logger.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	store := api.NewScenarioStore(cfg)
	rec := metrics.NewRecorder(nil)
	handler := api.NewRouter(store, log, rec)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// 场景文件热更新
	if *watch && *cfgPath != "" {
		watcher := config.Watcher{
			Path: *cfgPath,
			OnError: func(err error) {
				log.Warn("scenario reload failed", zap.Error(err))
			},
		}
		go func() {
			err := watcher.Start(ctx, func(updated config.Scenario) {
				store.Update(updated)
				log.Info("scenario reloaded", zap.String("path", *cfgPath))
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Warn("scenario watcher stopped", zap.Error(err))
			}
		}()
	}

	srv := &http.Server{Addr: *addr, Handler: handler}
	go func() {
		log.Info("simulation server listening", zap.String("addr", *addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", zap.Error(err))
			cancel()
		}
	}()

	// systemd 就绪通知（非 systemd 环境下为 no-op）
	_, _ = daemon.SdNotify(false, daemon.SdNotifyReady)

	<-ctx.Done()
	_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
