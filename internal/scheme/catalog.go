package scheme

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bethropolis/codeview/internal/logger"
)

// DefaultName is the scheme used when none is configured.
const DefaultName = "dracula"

//go:embed schemes/*.toml
var bundled embed.FS

// Catalog is a read-only set of named schemes. It is built once and passed
// to whatever needs to look schemes up.
type Catalog struct {
	schemes map[string]*Scheme
}

// NewCatalog loads every scheme file at the root of fsys.
func NewCatalog(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{schemes: make(map[string]*Scheme)}
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read scheme directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !isSchemeFile(e.Name()) {
			continue
		}
		s, err := loadFS(fsys, path.Clean(e.Name()))
		if err != nil {
			return nil, err
		}
		c.schemes[s.Name] = s
	}
	logger.Debugf("Scheme catalog loaded %d schemes", len(c.schemes))
	return c, nil
}

// NewBundledCatalog returns the catalog of schemes compiled into the binary.
func NewBundledCatalog() (*Catalog, error) {
	sub, err := fs.Sub(bundled, "schemes")
	if err != nil {
		return nil, err
	}
	return NewCatalog(sub)
}

// WithDir returns a catalog holding c's schemes plus the scheme files in dir,
// which override bundled schemes of the same name. A missing dir is not an
// error. Files that fail to load are skipped with a warning.
func (c *Catalog) WithDir(dir string) (*Catalog, error) {
	out := &Catalog{schemes: make(map[string]*Scheme, len(c.schemes))}
	for name, s := range c.schemes {
		out.schemes[name] = s
	}

	files, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		logger.Infof("Scheme directory '%s' does not exist. No custom schemes loaded.", dir)
		return out, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read scheme directory '%s': %w", dir, err)
	}

	loaded := 0
	for _, f := range files {
		if f.IsDir() || !isSchemeFile(f.Name()) {
			continue
		}
		p := filepath.Join(dir, f.Name())
		s, err := LoadFile(p)
		if err != nil {
			logger.Warnf("Failed to load scheme from '%s': %v", p, err)
			continue
		}
		if _, ok := out.schemes[s.Name]; ok {
			logger.Warnf("Scheme '%s' from '%s' overrides an existing scheme", s.Name, p)
		}
		out.schemes[s.Name] = s
		loaded++
	}
	logger.Infof("Loaded %d custom schemes from %s", loaded, dir)
	return out, nil
}

// UserDir is the directory custom schemes are read from.
func UserDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "codeview", "schemes"), nil
}

// Load returns the scheme with the given name (case-insensitive).
func (c *Catalog) Load(name string) (*Scheme, error) {
	s, ok := c.schemes[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownScheme, name)
	}
	return s, nil
}

// Names returns the scheme names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.schemes))
	for name := range c.schemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
