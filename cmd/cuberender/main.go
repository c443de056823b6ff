// Package main renders a single cube map view to an image file without
// opening a window.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/cubeview/internal/config"
	"github.com/Faultbox/cubeview/internal/imageio"
	"github.com/Faultbox/cubeview/internal/logger"
	"github.com/Faultbox/cubeview/internal/render"
	"github.com/Faultbox/cubeview/internal/viewer"
)

func main() {
	flags := config.BindFlags(flag.CommandLine)
	yaw := flag.Float64("yaw", 0, "Camera yaw in degrees, positive turns towards +X")
	pitch := flag.Float64("pitch", 0, "Camera pitch in degrees, positive looks down")
	out := flag.String("o", "render.png", "Output image (png, jpg, bmp, webp, tiff, gif)")
	info := flag.Bool("info", false, "Draw the info box")
	flag.Parse()

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, float32(*yaw), float32(*pitch), *info, *out); err != nil {
		logger.Error("render failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, yaw, pitch float32, info bool, out string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	p, err := viewer.ParamsFromConfig(cfg)
	if err != nil {
		return err
	}
	p.Cubemap, err = viewer.LoadCubemap(cfg.Cubemap)
	if err != nil {
		return err
	}
	p.Orientation = viewer.Orientation(yaw, pitch)
	p.ShowInfo = info
	p.Fov = min(max(p.Fov, render.MinFov), render.MaxFov)

	start := time.Now()
	f, err := render.Still(p, render.Options{
		Workers: cfg.Render.Workers,
		LUTSize: cfg.Render.LUTSize,
		Logger:  logger.Named("render"),
	})
	if err != nil {
		return err
	}
	logger.Info("frame rendered",
		zap.Stringer("mode", p.Mode),
		zap.Int("width", f.Width()),
		zap.Int("height", f.Height()),
		zap.Duration("took", time.Since(start)))

	if err := imageio.Save(f.Img, out); err != nil {
		return err
	}
	logger.Info("image saved", zap.String("file", out))
	return nil
}
