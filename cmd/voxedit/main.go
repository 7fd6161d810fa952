// Package main is the entry point for the voxedit document tool. It
// builds an editing session and dispatches the action names given on
// the command line, which is mainly useful for scripting and smoke
// testing the document core.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/voxedit/internal/config"
	"github.com/Faultbox/voxedit/internal/editor"
	"github.com/Faultbox/voxedit/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== voxedit ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	s := editor.NewSession(cfg)

	args := flag.Args()
	if len(args) == 0 {
		fmt.Println("usage: voxedit [flags] action...")
		fmt.Println("actions:")
		for _, name := range s.Actions() {
			fmt.Printf("  %s\n", name)
		}
		return
	}

	for _, name := range args {
		if err := s.Invoke(name); err != nil {
			logger.Error("action failed", zap.String("action", name), zap.Error(err))
			os.Exit(1)
		}
	}

	// Resolve derived layers before reporting.
	s.Image.Update()

	img := s.Image
	voxels := 0
	for _, l := range img.Layers {
		voxels += l.Mesh.Count()
	}
	fmt.Printf("layers: %d, cameras: %d, materials: %d, voxels: %d\n",
		len(img.Layers), len(img.Cameras), len(img.Materials), voxels)
	fmt.Printf("undo steps: %d, dirty: %v\n", s.History.UndoSteps(), img.Dirty())

	logger.Info("done",
		zap.Int("layers", len(img.Layers)),
		zap.Int("undo_steps", s.History.UndoSteps()))
}
