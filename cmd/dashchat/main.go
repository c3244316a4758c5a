package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"dashchat/pkg/api"
	"dashchat/pkg/assist"
	"dashchat/pkg/config"
	"dashchat/pkg/credential"
	"dashchat/pkg/intent"
	"dashchat/pkg/logging"
	"dashchat/pkg/pagectx"
	"dashchat/pkg/ui"
	"dashchat/pkg/version"

	tea "charm.land/bubbletea/v2"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Summary())
		return
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

	// Logs go to a file because the TUI owns the terminal.
	if _, err := logging.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging unavailable: %v\n", err)
	}
	slog.Info("dashchat_starting", "version", version.Summary())

	gate := credential.NewGate(credential.NewFileStore(credential.DefaultStorePath()))

	collector := newCollector(cfg)
	if closer, ok := collector.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	client := api.NewClient(cfg.AssistantURL)
	client.SetTimeout(time.Duration(cfg.APITimeoutSeconds) * time.Second)

	session := assist.NewSession(gate, intent.NewState(), collector, client)

	p := tea.NewProgram(ui.NewModel(session))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running UI: %v\n", err)
		os.Exit(1)
	}
}

// newCollector picks the snapshot source. A browser that fails to
// attach degrades to empty snapshots instead of blocking the chat.
func newCollector(cfg config.Config) pagectx.Collector {
	if cfg.SnapshotMode != "live" {
		slog.Info("page_capture_static")
		return pagectx.StaticCollector{}
	}

	collector, err := pagectx.NewRodCollector(cfg.DashboardURL)
	if err != nil {
		slog.Warn("page_capture_unavailable", "error", err)
		return pagectx.StaticCollector{}
	}
	return collector
}
