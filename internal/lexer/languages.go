package lexer

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	gosrc "github.com/smacker/go-tree-sitter/golang"
	pythonsrc "github.com/smacker/go-tree-sitter/python"

	"github.com/bethropolis/codeview/internal/logger"
)

//go:embed queries/*/*.scm
var embeddedQueries embed.FS

// Language is a tree-sitter grammar with its highlight query.
type Language struct {
	// Name is the display name of the language
	Name string

	// TreeSitterLang is the tree-sitter language instance
	TreeSitterLang *sitter.Language

	// Extensions maps file extensions to this language
	Extensions []string

	// QueryPath is the directory under queries/ holding highlights.scm
	QueryPath string

	queryOnce sync.Once
	query     *sitter.Query
	queryErr  error
}

// Query compiles the highlight query once and returns it.
func (l *Language) Query() (*sitter.Query, error) {
	l.queryOnce.Do(func() {
		path := fmt.Sprintf("queries/%s/highlights.scm", l.QueryPath)
		src, err := fs.ReadFile(embeddedQueries, path)
		if err != nil {
			l.queryErr = fmt.Errorf("load query for %s: %w", l.Name, err)
			return
		}
		l.query, l.queryErr = sitter.NewQuery(src, l.TreeSitterLang)
		if l.queryErr != nil {
			l.queryErr = fmt.Errorf("compile query %s: %w", path, l.queryErr)
			return
		}
		logger.Debugf("Loaded query from %s for %s (%d bytes)", path, l.Name, len(src))
	})
	return l.query, l.queryErr
}

var (
	// Global language registry
	registry struct {
		sync.RWMutex
		languages     []*Language
		extToLanguage map[string]*Language
	}

	initOnce sync.Once
)

func initRegistry() {
	initOnce.Do(func() {
		registry.extToLanguage = make(map[string]*Language)
		register(&Language{
			Name:           "Go",
			TreeSitterLang: gosrc.GetLanguage(),
			Extensions:     []string{".go"},
			QueryPath:      "go",
		})
		register(&Language{
			Name:           "Python",
			TreeSitterLang: pythonsrc.GetLanguage(),
			Extensions:     []string{".py", ".pyw"},
			QueryPath:      "python",
		})
		logger.Debugf("Language registry initialized with %d languages", len(registry.languages))
	})
}

func register(lang *Language) {
	registry.Lock()
	defer registry.Unlock()

	registry.languages = append(registry.languages, lang)
	for _, ext := range lang.Extensions {
		lowerExt := strings.ToLower(ext)
		if existing, ok := registry.extToLanguage[lowerExt]; ok {
			logger.Warnf("Extension %s already registered to %s, overriding with %s",
				lowerExt, existing.Name, lang.Name)
		}
		registry.extToLanguage[lowerExt] = lang
	}
}

// LanguageForFile returns the tree-sitter language for a file path, or nil.
func LanguageForFile(filePath string) *Language {
	initRegistry()

	registry.RLock()
	defer registry.RUnlock()
	return registry.extToLanguage[strings.ToLower(filepath.Ext(filePath))]
}

// LanguageByName looks a tree-sitter language up by case-insensitive name.
func LanguageByName(name string) *Language {
	initRegistry()

	registry.RLock()
	defer registry.RUnlock()
	for _, l := range registry.languages {
		if strings.EqualFold(l.Name, name) {
			return l
		}
	}
	return nil
}

// Languages returns all registered tree-sitter languages.
func Languages() []*Language {
	initRegistry()

	registry.RLock()
	defer registry.RUnlock()
	result := make([]*Language, len(registry.languages))
	copy(result, registry.languages)
	return result
}
