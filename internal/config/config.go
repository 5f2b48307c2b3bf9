package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete tock configuration
type Config struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	TUI     TUIConfig     `mapstructure:"tui" yaml:"tui"`
	Export  ExportConfig  `mapstructure:"export" yaml:"export"`
}

// StorageConfig controls where the task list is kept
type StorageConfig struct {
	// Path is the task file. A leading ~ expands to the home directory.
	Path string `mapstructure:"path" yaml:"path"`
	// Lock refuses to open the task file while another session holds it.
	Lock bool `mapstructure:"lock" yaml:"lock"`
}

// LoggingConfig controls the debug log
type LoggingConfig struct {
	// Enabled turns debug logging on. When false nothing is written.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Level is the minimum level written: debug, info, warn or error.
	Level string `mapstructure:"level" yaml:"level"`
	// Dir holds debug.log and its rotated backups.
	Dir string `mapstructure:"dir" yaml:"dir"`
	// MaxSizeMB is the size at which debug.log is rotated (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	// MaxBackups is how many rotated logs to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups" yaml:"max_backups"`
	// Compress gzips rotated logs
	Compress bool `mapstructure:"compress" yaml:"compress"`
}

// TUIConfig controls the chat interface
type TUIConfig struct {
	// AltScreen runs the chat in the terminal's alternate screen
	AltScreen bool `mapstructure:"alt_screen" yaml:"alt_screen"`
	// MaxTranscript caps the number of exchanges kept on screen (default: 500)
	MaxTranscript int `mapstructure:"max_transcript" yaml:"max_transcript"`
}

// ExportConfig controls the export command
type ExportConfig struct {
	// Format is used when --format is not given: text, json, csv or pdf
	Format string `mapstructure:"format" yaml:"format"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Path: filepath.Join(DataDir(), "tasks.txt"),
			Lock: true,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			Dir:        filepath.Join(DataDir(), "logs"),
			MaxSizeMB:  10,
			MaxBackups: 3,
			Compress:   false,
		},
		TUI: TUIConfig{
			AltScreen:     true,
			MaxTranscript: 500,
		},
		Export: ExportConfig{
			Format: "text",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("storage.path", defaults.Storage.Path)
	viper.SetDefault("storage.lock", defaults.Storage.Lock)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	viper.SetDefault("logging.compress", defaults.Logging.Compress)

	viper.SetDefault("tui.alt_screen", defaults.TUI.AltScreen)
	viper.SetDefault("tui.max_transcript", defaults.TUI.MaxTranscript)

	viper.SetDefault("export.format", defaults.Export.Format)
}

// Keys returns every configuration key in file order.
func Keys() []string {
	return []string{
		"storage.path",
		"storage.lock",
		"logging.enabled",
		"logging.level",
		"logging.dir",
		"logging.max_size_mb",
		"logging.max_backups",
		"logging.compress",
		"tui.alt_screen",
		"tui.max_transcript",
		"export.format",
	}
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.Storage.Path = ExpandPath(cfg.Storage.Path)
	cfg.Logging.Dir = ExpandPath(cfg.Logging.Dir)

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DataDir returns the directory holding the task file and logs
func DataDir() string {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func xdgDir(env, homeRel string) string {
	if xdg := os.Getenv(env); xdg != "" {
		return filepath.Join(xdg, "tock")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tock"
	}
	return filepath.Join(home, homeRel, "tock")
}
