package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagPitch      = flag.Float64("pitch", -1, "Camera pitch in degrees (0-90)")
	flagBearing    = flag.Float64("bearing", -1, "Camera bearing in degrees")
	flagZoom       = flag.Float64("zoom", 0, "Initial zoom level")
	flagStatic     = flag.Bool("static", false, "Disable camera animation")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagPitch >= 0 {
		cfg.Camera.Pitch = float32(*flagPitch)
	}
	if *flagBearing >= 0 {
		cfg.Camera.Bearing = float32(*flagBearing)
	}
	if *flagZoom > 0 {
		cfg.Camera.Zoom = float32(*flagZoom)
	}
	if *flagStatic {
		cfg.Camera.Animate = false
	}
}
