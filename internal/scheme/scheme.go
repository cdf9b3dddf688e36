// Package scheme loads color schemes and resolves them into the styles the
// highlighter's tags and the editor surface use.
package scheme

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bethropolis/codeview/internal/logger"
)

var (
	// ErrMissingGeneral is returned when a scheme has no general table.
	ErrMissingGeneral = errors.New("general table must be present in color scheme")
	// ErrUnknownScheme is returned for a scheme name the catalog does not know.
	ErrUnknownScheme = errors.New("unknown color scheme")
	// ErrMalformed is returned for scheme values of the wrong type or format.
	ErrMalformed = errors.New("malformed color scheme")
)

// Categories are the per-kind tables a scheme may carry besides editor and
// general.
var Categories = []string{"keyword", "name", "operator", "string", "number", "comment", "generic", "extras"}

// Scheme is a decoded color scheme. It is never modified after loading.
type Scheme struct {
	Name    string
	Editor  map[string]any
	General map[string]any
	Tables  map[string]map[string]any
}

// FromMap builds a Scheme from a decoded document. Keys other than editor,
// general and the categories are ignored with a warning.
func FromMap(name string, doc map[string]any) (*Scheme, error) {
	s := &Scheme{Name: name, Tables: make(map[string]map[string]any)}
	var unknown []string
	for key, v := range doc {
		switch {
		case key == "editor":
			t, err := table(key, v)
			if err != nil {
				return nil, fmt.Errorf("scheme %s: %w", name, err)
			}
			s.Editor = t
		case key == "general":
			t, err := table(key, v)
			if err != nil {
				return nil, fmt.Errorf("scheme %s: %w", name, err)
			}
			s.General = t
		case isCategory(key):
			t, err := table(key, v)
			if err != nil {
				return nil, fmt.Errorf("scheme %s: %w", name, err)
			}
			s.Tables[key] = t
		default:
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		logger.Warnf("Scheme '%s': unrecognized tables %v", name, unknown)
	}
	return s, nil
}

func table(key string, v any) (map[string]any, error) {
	t, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q is a %T, not a table", ErrMalformed, key, v)
	}
	return t, nil
}

func isCategory(key string) bool {
	for _, c := range Categories {
		if c == key {
			return true
		}
	}
	return false
}
