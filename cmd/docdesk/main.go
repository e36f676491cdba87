// ABOUTME: Entry point for the docdesk documentation assistant
// ABOUTME: Subcommands: serve the HTTP service, check health, ask one question

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/2389/docdesk/internal/config"
	"github.com/2389/docdesk/internal/gateway"
	"github.com/2389/docdesk/internal/knowledge"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: docdesk <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  serve     Start the documentation assistant server")
		fmt.Println("  health    Check server health")
		fmt.Println("  ask       Ask one question and print the answer")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx, os.Args[2:])
	case "health":
		err = runHealth(ctx, os.Args[2:])
	case "ask":
		err = runAsk(ctx, os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "path to docdesk.yaml (optional, defaults apply)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	table := knowledge.Builtin()
	if cfg.Knowledge.Path != "" {
		loaded, err := knowledge.Load(cfg.Knowledge.Path)
		if err != nil {
			return err
		}
		table = loaded
		logger.Info("knowledge table loaded", "path", cfg.Knowledge.Path, "entries", table.Len())
	} else {
		logger.Info("using builtin knowledge table", "entries", table.Len())
	}

	return gateway.New(cfg, table, logger).Serve(ctx)
}

// newLogger builds the process logger from config.
func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
