// Package config loads application configuration from environment variables
// and the optional YAML page registry.
package config

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// AppConfig holds all application-level configuration loaded from environment
// variables.
type AppConfig struct {
	// Port is the HTTP server port. Defaults to 8080.
	Port int `envconfig:"PORT" default:"8080"`

	// AssetRoot is the directory containing the Vite build output.
	AssetRoot string `envconfig:"VITELINK_ASSET_ROOT" default:"dist"`

	// BasePath is the public base path the frontend was built with (Vite's
	// "base" option). Applied to every manifest key and path at load time.
	BasePath string `envconfig:"VITELINK_BASE_PATH"`

	// ManifestName is the manifest location relative to AssetRoot.
	ManifestName string `envconfig:"VITELINK_MANIFEST" default:".vite/manifest.json"`

	// DevServer marks the Vite dev server as active: manifest lookups are
	// suppressed and non-API traffic is proxied to DevServerURL.
	DevServer bool `envconfig:"VITELINK_DEV_SERVER"`

	// DevServerURL is the Vite dev server origin.
	DevServerURL string `envconfig:"VITELINK_DEV_SERVER_URL" default:"http://localhost:5173"`

	// PagesFile is the YAML page registry path. A missing file means the
	// server renders no pages and only serves static assets and the API.
	PagesFile string `envconfig:"VITELINK_PAGES" default:"pages.yaml"`

	// LogLevel sets the minimum log level (debug, info, warn, error).
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// LogDir, when set, switches logging from the console to a rotated JSON
	// file under this directory.
	LogDir string `envconfig:"VITELINK_LOG_DIR"`
}

// Load reads AppConfig from environment variables using envconfig.
func Load() (*AppConfig, error) {
	var c AppConfig
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &c, nil
}

// SlogLevel converts the LogLevel string to a slog.Level.
// Unknown values default to slog.LevelInfo.
func (c *AppConfig) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogFile returns the log file path under LogDir.
func (c *AppConfig) LogFile() string {
	return filepath.Join(c.LogDir, "vitelink.log")
}
