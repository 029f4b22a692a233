// Package main is the entry point for the figurine viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/figurine/internal/app"
	"github.com/Faultbox/figurine/internal/assets"
	"github.com/Faultbox/figurine/internal/config"
	"github.com/Faultbox/figurine/internal/engine/renderer"
	"github.com/Faultbox/figurine/internal/engine/window"
	"github.com/Faultbox/figurine/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Save error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(config.UserPath())
		return
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Figurine ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("figurine error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("closed normally")
}

func run(cfg *config.Config) error {
	meshes := assets.NewManager(assets.NewProcedural())
	if cfg.Assets.Model != "" {
		src, err := assets.OpenGLTF(cfg.Assets.Model)
		if err != nil {
			return err
		}
		meshes.AddSource(src)
		logger.Info("model loaded", zap.String("path", cfg.Assets.Model), zap.Strings("meshes", src.Names()))
	}

	// The window creates the GL context the renderer needs.
	win, err := window.New(window.Config{
		Title:      "figurine",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	}, logger.Named("window"))
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Close()

	width, height := win.Size()
	r, err := renderer.New(renderer.Config{Width: width, Height: height}, logger.Named("renderer"))
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	a, err := app.New(cfg, r, logger.Named("app"))
	if err != nil {
		r.Close()
		return err
	}
	defer a.Close()

	tex := app.LoadTexture(cfg.Assets.Texture, cfg.Assets.MaxTextureSize, logger.Named("texture"))
	if err := a.Load(meshes, tex); err != nil {
		return err
	}
	hits, misses := meshes.CacheStats()
	logger.Debug("meshes resolved", zap.Int("cache_hits", hits), zap.Int("cache_misses", misses))

	return a.Run(win)
}
