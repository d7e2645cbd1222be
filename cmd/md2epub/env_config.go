package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without editing book.toml.
type envConfig struct {
	ConfigPath string        // MD2EPUB_CONFIG: config file path
	Dest       string        // MD2EPUB_DEST: output directory
	Timeout    time.Duration // MD2EPUB_TIMEOUT: remote image download timeout
	AssetPath  string        // MD2EPUB_ASSET_PATH: custom style and template directory
}

// knownEnvVars lists valid MD2EPUB_* environment variables.
var knownEnvVars = map[string]bool{
	"MD2EPUB_CONFIG":     true,
	"MD2EPUB_DEST":       true,
	"MD2EPUB_TIMEOUT":    true,
	"MD2EPUB_ASSET_PATH": true,
}

// loadEnvConfig reads the recognized MD2EPUB_* variables.
// An unparsable timeout is ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MD2EPUB_CONFIG"),
		Dest:       os.Getenv("MD2EPUB_DEST"),
		AssetPath:  os.Getenv("MD2EPUB_ASSET_PATH"),
	}

	if timeout := os.Getenv("MD2EPUB_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars prints a warning for every unrecognized MD2EPUB_* variable.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MD2EPUB_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}
