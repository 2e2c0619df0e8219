// Package config handles configuration for the CLI client.
package config

import (
	"flag"
	"os"

	"github.com/akosarev/notekeeper/internal/flagx"
)

// Config holds runtime settings for the notekeeper CLI.
type Config struct {
	// ServerURL is the base URL of the backend HTTP API.
	ServerURL string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)
	return cfg
}

func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-server"})

	fs := flag.NewFlagSet("cli", flag.ContinueOnError)
	fs.StringVar(&config.ServerURL, "server", config.ServerURL, "server base URL")
	fs.StringVar(&config.ServerURL, "s", config.ServerURL, "server base URL (short)")
	_ = fs.Parse(args)
}
