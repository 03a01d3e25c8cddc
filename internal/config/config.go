// Package config loads and persists postar settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/xlordnoro/postar/internal/logging"
	"github.com/xlordnoro/postar/internal/paths"
)

// LinksConfig carries the link-shortener prefixes and button images
// used when assembling post markup.
type LinksConfig struct {
	SpastePrefix string `mapstructure:"spaste_prefix"`
	OuoPrefix    string `mapstructure:"ouo_prefix"`
	FcLcPrefix   string `mapstructure:"fclc_prefix"`
	TorrentImage string `mapstructure:"torrent_image"`
	DDLImage     string `mapstructure:"ddl_image"`
}

// Config is the full postar configuration.
type Config struct {
	// ShowsBase is the base URL files are served from.
	ShowsBase string `mapstructure:"shows_base"`
	// TorrentsBase is the base URL batch torrents are served from.
	TorrentsBase string `mapstructure:"torrents_base"`
	// EncoderName appears as the primary source in encoding tables.
	EncoderName string `mapstructure:"encoder_name"`
	// StateFile overrides the default novelty state location.
	StateFile string `mapstructure:"state_file"`

	Links   LinksConfig    `mapstructure:"links"`
	Logging logging.Config `mapstructure:"logging"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Links: LinksConfig{
			SpastePrefix: "https://www.spaste.com/r/LRZdw6?link=",
			OuoPrefix:    "https://ouo.io/s/QgcGSmNw?s=",
			FcLcPrefix:   "https://fc.lc/st?api=3053afcd9e6bde75550be021b9d8aa183f18d5ae&url=",
			TorrentImage: "http://i.imgur.com/CBig9hc.png",
			DDLImage:     "http://i.imgur.com/UjCePGg.png",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from the config file, falling back to
// defaults when no file exists.
func Load() (*Config, error) {
	v := viper.New()

	configPath, err := paths.ConfigPath()
	if err != nil {
		return nil, fmt.Errorf("unable to get config path: %w", err)
	}
	v.SetConfigFile(configPath)

	if _, err := os.Stat(configPath); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	return cfg, nil
}

// StatePath resolves the novelty state file location.
func (c *Config) StatePath() (string, error) {
	if strings.TrimSpace(c.StateFile) != "" {
		return c.StateFile, nil
	}
	return paths.StatePath()
}

// Save writes the configuration to the config file.
func (c *Config) Save() error {
	configPath, err := paths.ConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("unable to create config dir: %w", err)
	}

	return os.WriteFile(configPath, []byte(c.ToTOML()), 0644)
}

// ConfigExists reports whether a settings file is present.
func ConfigExists() bool {
	path, err := paths.ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// ToTOML renders the config as an annotated TOML document.
func (c *Config) ToTOML() string {
	return fmt.Sprintf(`# Postar Configuration
# Generated by: postar config init

# Base URL episode files are served from
shows_base = %q

# Base URL batch torrents are served from
torrents_base = %q

# Encoder name shown as the primary source in encoding tables
encoder_name = %q

# Novelty state file (empty = <config>/postar/processed.json)
state_file = %q

[links]
spaste_prefix = %q
ouo_prefix = %q
fclc_prefix = %q
torrent_image = %q
ddl_image = %q

[logging]
# Log level: debug, info, warn, error
level = %q
# Log file (empty = <config>/postar/logs/postar.log)
file = %q
max_size_mb = %d
max_backups = %d
`,
		c.ShowsBase, c.TorrentsBase, c.EncoderName, c.StateFile,
		c.Links.SpastePrefix, c.Links.OuoPrefix, c.Links.FcLcPrefix,
		c.Links.TorrentImage, c.Links.DDLImage,
		c.Logging.Level, c.Logging.File, c.Logging.MaxSizeMB, c.Logging.MaxBackups)
}
