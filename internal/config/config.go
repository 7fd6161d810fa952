// Package config handles editor configuration loading and management.
package config

// Config holds all editor settings.
type Config struct {
	Scene   SceneConfig   `yaml:"scene"`
	History HistoryConfig `yaml:"history"`
	Paint   PaintConfig   `yaml:"paint"`
	Logging LoggingConfig `yaml:"logging"`
}

// SceneConfig holds defaults for new documents.
type SceneConfig struct {
	BoxMin       [3]float32 `yaml:"box_min,flow"`
	BoxMax       [3]float32 `yaml:"box_max,flow"`
	ExportWidth  int        `yaml:"export_width"`
	ExportHeight int        `yaml:"export_height"`
}

// HistoryConfig holds undo history settings.
type HistoryConfig struct {
	MaxEntries int `yaml:"max_entries"` // undo snapshots kept before trimming
}

// PaintConfig holds painting defaults.
type PaintConfig struct {
	Color [4]uint8 `yaml:"color,flow"` // RGBA paint color for new shape layers
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Scene: SceneConfig{
			BoxMin:       [3]float32{-16, -16, 0},
			BoxMax:       [3]float32{16, 16, 32},
			ExportWidth:  1024,
			ExportHeight: 1024,
		},
		History: HistoryConfig{
			MaxEntries: 64,
		},
		Paint: PaintConfig{
			Color: [4]uint8{255, 255, 255, 255},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
