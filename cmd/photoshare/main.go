package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/iamasit07/photoshare/internal/cli"
	"github.com/iamasit07/photoshare/internal/config"
	"github.com/iamasit07/photoshare/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	envFile := config.LoadDotEnv()

	cfg := config.LoadConfig()
	log, err := logger.NewLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	defer log.Sync()

	if envFile == "" {
		log.Debug("No .env file found")
	} else {
		log.Debug("loaded env file", zap.String("path", envFile))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, closer, err := cli.OpenStorage(ctx, cfg, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	defer closer.Close()

	app := cli.NewApp(ctx, cfg, storage, os.Stdout, log)
	if err := app.Commands().Execute(ctx, os.Args[1:]); err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			return 0
		case !errors.Is(err, cli.ErrReported):
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return 1
	}
	return 0
}
