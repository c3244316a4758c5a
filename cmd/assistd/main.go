package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"dashchat/pkg/ai"
	_ "dashchat/pkg/ai/providers"
	"dashchat/pkg/config"
	"dashchat/pkg/logging"
	"dashchat/pkg/server"
	"dashchat/pkg/version"

	"github.com/joho/godotenv"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Summary())
		return
	}

	// Optional .env for local development; absence is fine.
	if err := godotenv.Load(); err == nil {
		slog.Debug("dotenv_loaded")
	}

	cfg, err := config.Load(config.GetConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	logging.InitStderr(cfg)
	slog.Info("assistd_starting",
		"version", version.Summary(),
		"provider", cfg.Server.LLMProvider,
		"model", cfg.Server.Model,
		"addr", cfg.Server.Addr)

	provider, err := ai.GetProviderFromConfig(cfg)
	if err != nil {
		slog.Error("provider_init_failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(cfg, provider).ListenAndServe(ctx); err != nil {
		slog.Error("server_failed", "error", err)
		os.Exit(1)
	}
	slog.Info("assistd_stopped")
}
