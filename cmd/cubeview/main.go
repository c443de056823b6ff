// Package main is the entry point for the interactive cube map viewer.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/cubeview/internal/app"
	"github.com/Faultbox/cubeview/internal/config"
	"github.com/Faultbox/cubeview/internal/logger"
)

func main() {
	flags := config.BindFlags(flag.CommandLine)
	saveConfig := flag.String("save-config", "", "Write the effective config to this path and exit")
	invert := flag.Bool("invert-mouse", false, "Invert mouse drag direction")
	flag.Parse()

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if *invert {
		cfg.Viewer.InvertMouse = true
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *saveConfig != "" {
		if err := cfg.SaveTo(*saveConfig); err != nil {
			logger.Fatal("failed to save config", zap.Error(err))
		}
		logger.Info("config saved", zap.String("path", *saveConfig))
		return
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	logger.Info("=== cubeview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("viewer closed normally")
}

func run(cfg *config.Config) error {
	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to start viewer: %w", err)
	}
	defer a.Close()
	return a.Run()
}
