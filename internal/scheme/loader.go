package scheme

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/bethropolis/codeview/internal/logger"
)

// LoadFile reads a .toml, .yaml or .yml scheme from disk. The scheme is named
// after the file.
func LoadFile(path string) (*Scheme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scheme file '%s': %w", path, err)
	}
	return Parse(nameFromPath(path), filepath.Ext(path), data)
}

func loadFS(fsys fs.FS, path string) (*Scheme, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scheme file '%s': %w", path, err)
	}
	return Parse(nameFromPath(path), filepath.Ext(path), data)
}

// Parse decodes scheme data in the format named by ext (".toml", ".yaml" or
// ".yml").
func Parse(name, ext string, data []byte) (*Scheme, error) {
	doc := make(map[string]any)
	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, fmt.Errorf("failed to parse TOML scheme '%s': %w", name, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML scheme '%s': %w", name, err)
		}
	default:
		return nil, fmt.Errorf("unsupported scheme format '%s' for '%s'", ext, name)
	}

	s, err := FromMap(name, doc)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Successfully parsed scheme '%s'", name)
	return s, nil
}

func nameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

func isSchemeFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml", ".yaml", ".yml":
		return true
	}
	return false
}
