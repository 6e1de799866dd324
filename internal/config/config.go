// Package config handles application configuration loading and management.
package config

// Config holds all application settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Labels   LabelsConfig   `yaml:"labels"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// CameraConfig holds the initial camera pose. Angles are in degrees.
type CameraConfig struct {
	Bearing float32 `yaml:"bearing"`
	Pitch   float32 `yaml:"pitch"`
	Roll    float32 `yaml:"roll"`
	Zoom    float32 `yaml:"zoom"`
	Animate bool    `yaml:"animate"`
}

// LabelsConfig holds text placement settings.
type LabelsConfig struct {
	FontSize      float32 `yaml:"font_size"`
	Pitched       bool    `yaml:"pitched"` // draw glyphs in the map plane instead of the viewport
	RotateWithMap bool    `yaml:"rotate_with_map"`
	KeepUpright   bool    `yaml:"keep_upright"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Camera: CameraConfig{
			Bearing: 0,
			Pitch:   40,
			Roll:    0,
			Zoom:    14,
			Animate: true,
		},
		Labels: LabelsConfig{
			FontSize:      16,
			Pitched:       true,
			RotateWithMap: true,
			KeepUpright:   true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
