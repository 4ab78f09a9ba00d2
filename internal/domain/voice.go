package domain

import (
	"fmt"
	"strings"
)

// Default drill locales
const (
	DefaultSourceLang = "es-ES"
	DefaultTargetLang = "en-GB"
)

// Voice is a synthesis voice exposed by a speech backend
type Voice struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Lang string `json:"lang"`
}

// Label returns the "name (lang)" text shown in voice pickers
func (v Voice) Label() string {
	return fmt.Sprintf("%s (%s)", v.Name, v.Lang)
}

// LangPrefix returns the primary language subtag, e.g. "es" for "es-ES"
func LangPrefix(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_"); i >= 0 {
		return tag[:i]
	}
	return tag
}

// Locales maps table columns to language tags: column 1 is spoken with
// the source locale, every other column with the target locale.
type Locales struct {
	Source string
	Target string
}

// DefaultLocales returns the es-ES / en-GB pair
func DefaultLocales() Locales {
	return Locales{Source: DefaultSourceLang, Target: DefaultTargetLang}
}

// ForColumn returns the language tag for a 1-based column
func (l Locales) ForColumn(col int) string {
	if col == 1 {
		return l.Source
	}
	return l.Target
}
