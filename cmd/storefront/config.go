package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the CLI configuration, loadable from environment variables
// (STOREFRONT_ prefix) or YAML config files. Command-specific flags are
// parsed separately per subcommand, so aconfig skips flag parsing.
type Config struct {
	BaseURL   string        `default:"http://localhost:3000" usage:"Storefront API base URL"`
	PageSize  int           `default:"20" usage:"Catalog page size (10, 20 or 50)"`
	Timeout   time.Duration `default:"30s" usage:"HTTP request timeout"`
	TokenFile string        `usage:"Path to the persisted session token (default: user config dir)"`
	LogLevel  string        `default:"warn" usage:"Log level (debug, info, warn, error)"`
}

// LoadConfig loads configuration from environment variables and YAML config
// files, then fills in the per-user token file default.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "STOREFRONT",
		SkipFlags: true,
		Files:     []string{"storefront.yaml", configPath("config.yaml")},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	if cfg.TokenFile == "" {
		cfg.TokenFile = configPath("token")
	}
	return &cfg, nil
}

// configPath resolves name inside the per-user storefront config directory.
func configPath(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "storefront", name)
}
