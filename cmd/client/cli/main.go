package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/vkuzmenko/classmate/internal/buildinfo"
	"github.com/vkuzmenko/classmate/internal/client/cli"
	"github.com/vkuzmenko/classmate/internal/client/config"
	"github.com/vkuzmenko/classmate/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	logger := logging.NewTextLogger(os.Stderr, level)
	app := cli.NewApp(cfg, logger)
	app.Run(ctx)
}
