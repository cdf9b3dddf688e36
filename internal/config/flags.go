// internal/config/flags.go
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Flags holds values parsed from command-line flags. Only flags the user set
// override the config file.
type Flags struct {
	ConfigFilePath  string
	LogLevel        string
	LogFilePath     string
	Scheme          string
	Lexer           string
	HighlightMode   string
	TabWidth        int
	ViewportHeight  int
	SystemClipboard bool
	EnableTags      string
	DisableTags     string
	EnablePkgs      string
	DisablePkgs     string

	set *pflag.FlagSet
}

// DefineFlags registers the flags on fs.
func (f *Flags) DefineFlags(fs *pflag.FlagSet) {
	f.set = fs
	fs.StringVarP(&f.ConfigFilePath, "config", "c", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	fs.StringVar(&f.LogLevel, "loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	fs.StringVar(&f.LogFilePath, "logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	fs.StringVarP(&f.Scheme, "scheme", "s", "", "Color scheme name or scheme file path - Overrides config file")
	fs.StringVarP(&f.Lexer, "lexer", "l", "", "Lexer name, 'treesitter:<lang>', 'plain' or 'auto' - Overrides config file")
	fs.StringVar(&f.HighlightMode, "highlight-mode", "", "Backend preferred by the auto lexer (chroma, treesitter) - Overrides config file")
	fs.IntVar(&f.TabWidth, "tabwidth", 0, "Number of spaces per tab - Overrides config file")
	fs.IntVar(&f.ViewportHeight, "height", 0, "Visible lines (0 follows the terminal) - Overrides config file")
	fs.BoolVar(&f.SystemClipboard, "system-clipboard", false, "Use system clipboard instead of internal clipboard")
	fs.StringVar(&f.EnableTags, "log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	fs.StringVar(&f.DisableTags, "log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	fs.StringVar(&f.EnablePkgs, "log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	fs.StringVar(&f.DisablePkgs, "log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
}

// ApplyOverrides updates cfg with the flags that were set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.set == nil {
		return
	}
	f.set.Visit(func(fl *pflag.Flag) {
		switch fl.Name {
		case "loglevel":
			cfg.Logger.LogLevel = f.LogLevel
		case "logfile":
			cfg.Logger.LogFilePath = f.LogFilePath
		case "scheme":
			cfg.Editor.Scheme = f.Scheme
		case "lexer":
			cfg.Editor.Lexer = f.Lexer
		case "highlight-mode":
			cfg.Editor.HighlightMode = f.HighlightMode
		case "tabwidth":
			if f.TabWidth > 0 {
				cfg.Editor.TabWidth = f.TabWidth
			}
		case "height":
			if f.ViewportHeight >= 0 {
				cfg.Editor.ViewportHeight = f.ViewportHeight
			}
		case "system-clipboard":
			cfg.Editor.SystemClipboard = f.SystemClipboard
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(f.DisablePkgs)
		}
	})
}

func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
