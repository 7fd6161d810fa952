package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Scene defaults
	if cfg.Scene.BoxMin != [3]float32{-16, -16, 0} {
		t.Errorf("expected box min (-16,-16,0), got %v", cfg.Scene.BoxMin)
	}
	if cfg.Scene.BoxMax != [3]float32{16, 16, 32} {
		t.Errorf("expected box max (16,16,32), got %v", cfg.Scene.BoxMax)
	}
	if cfg.Scene.ExportWidth != 1024 || cfg.Scene.ExportHeight != 1024 {
		t.Errorf("expected export 1024x1024, got %dx%d", cfg.Scene.ExportWidth, cfg.Scene.ExportHeight)
	}

	// History defaults
	if cfg.History.MaxEntries != 64 {
		t.Errorf("expected 64 history entries, got %d", cfg.History.MaxEntries)
	}

	// Paint defaults
	if cfg.Paint.Color != [4]uint8{255, 255, 255, 255} {
		t.Errorf("expected opaque white paint color, got %v", cfg.Paint.Color)
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voxedit.yaml")
	content := `
history:
  max_entries: 8
paint:
  color: [255, 0, 0, 255]
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}

	if cfg.History.MaxEntries != 8 {
		t.Errorf("expected 8 history entries, got %d", cfg.History.MaxEntries)
	}
	if cfg.Paint.Color != [4]uint8{255, 0, 0, 255} {
		t.Errorf("expected red paint color, got %v", cfg.Paint.Color)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected level debug, got %s", cfg.Logging.Level)
	}
	// Values absent from the file keep their defaults.
	if cfg.Scene.ExportWidth != 1024 {
		t.Errorf("expected default export width, got %d", cfg.Scene.ExportWidth)
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "voxedit.yaml")

	cfg := Default()
	cfg.History.MaxEntries = 16
	cfg.Scene.ExportWidth = 512

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if loaded.History.MaxEntries != 16 {
		t.Errorf("expected 16 history entries, got %d", loaded.History.MaxEntries)
	}
	if loaded.Scene.ExportWidth != 512 {
		t.Errorf("expected export width 512, got %d", loaded.Scene.ExportWidth)
	}
}
