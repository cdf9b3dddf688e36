// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/bethropolis/codeview/internal/lexer"
	"github.com/bethropolis/codeview/internal/logger"
	"github.com/bethropolis/codeview/internal/scheme"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"` // [logger] table
	Editor EditorConfig  `toml:"editor"`

	path      string
	undecoded []string
}

// EditorConfig holds the code view settings.
type EditorConfig struct {
	// Scheme is a catalog scheme name or a path to a .toml/.yaml scheme file.
	Scheme string `toml:"scheme"`
	// Lexer is a tokenizer name, or "auto" to pick one from the file.
	Lexer string `toml:"lexer"`
	// HighlightMode is the backend "auto" prefers: "chroma" or "treesitter".
	HighlightMode string `toml:"highlight_mode"`
	TabWidth      int    `toml:"tab_width"`
	// ViewportHeight limits the visible lines; 0 follows the terminal.
	ViewportHeight  int    `toml:"viewport_height"`
	SystemClipboard bool   `toml:"system_clipboard"`
	SchemeDir       string `toml:"scheme_dir"` // extra schemes; defaults to the user config dir
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			Scheme:          scheme.DefaultName,
			Lexer:           DefaultLexer,
			HighlightMode:   DefaultHighlightMode,
			TabWidth:        DefaultTabWidth,
			SystemClipboard: SystemClipboard,
		},
	}
}

// DefaultPath is the config file used when none is given.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName, DefaultConfigFileName), nil
}

// loadFromFile decodes filePath over cfg. A missing file is not an error.
func (c *Config) loadFromFile(filePath string) error {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}
	metadata, err := toml.DecodeFile(filePath, c)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	c.path = filePath
	for _, key := range metadata.Undecoded() {
		c.undecoded = append(c.undecoded, key.String())
	}
	return nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() error {
	defaults := NewDefaultConfig()

	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.ViewportHeight < 0 {
		c.Editor.ViewportHeight = 0
	}
	if c.Editor.Scheme == "" {
		c.Editor.Scheme = defaults.Editor.Scheme
	}
	if c.Editor.Lexer == "" {
		c.Editor.Lexer = defaults.Editor.Lexer
	}
	mode, err := lexer.ParseMode(c.Editor.HighlightMode)
	if err != nil {
		return err
	}
	c.Editor.HighlightMode = string(mode)

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	return nil
}

// Load builds the configuration: defaults, then the file at configFilePath
// (or the default location when empty), then flag overrides, then
// validation. The logger is usually not initialized yet, so nothing is
// logged here; see LogWarnings.
func Load(configFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	effectivePath := configFilePath
	if effectivePath == "" {
		if p, err := DefaultPath(); err == nil {
			effectivePath = p
		}
	}
	if effectivePath != "" {
		if err := cfg.loadFromFile(effectivePath); err != nil {
			return nil, err
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the file the config was read from, if any.
func (c *Config) Path() string { return c.path }

// Undecoded returns the keys in the config file that match no setting.
func (c *Config) Undecoded() []string { return c.undecoded }

// LogWarnings reports load-time findings once the logger is up.
func (c *Config) LogWarnings() {
	if c.path != "" {
		logger.Infof("Loaded configuration from: %s", c.path)
	}
	if len(c.undecoded) > 0 {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", c.path, c.undecoded)
	}
}

// SchemeDirPath returns the directory custom schemes are loaded from.
func (c *Config) SchemeDirPath() string {
	if c.Editor.SchemeDir != "" {
		return c.Editor.SchemeDir
	}
	dir, err := scheme.UserDir()
	if err != nil {
		return ""
	}
	return dir
}
