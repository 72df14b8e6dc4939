// Package emitter is the registry of client-code emitters. The catalog is a
// fixed table; languages without an emitter are listed for display only.
package emitter

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/swagger2snippet/internal/emitter/goemitter"
	"github.com/mark3labs/swagger2snippet/internal/emitter/jsemitter"
	"github.com/mark3labs/swagger2snippet/internal/emitter/pyemitter"
	"github.com/mark3labs/swagger2snippet/internal/emitter/rbemitter"
	"github.com/mark3labs/swagger2snippet/internal/request"
)

var (
	// ErrUnsupportedLanguage is returned for ids missing from the catalog.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrNotImplemented is returned for catalogued languages without an emitter.
	ErrNotImplemented = errors.New("generator not implemented")
)

// EmitFunc renders req using one of the language's variants.
type EmitFunc func(variant string, req request.Descriptor) string

// LanguageSpec is one catalog entry.
type LanguageSpec struct {
	ID          string
	DisplayName string
	// Variants are client-library flavors; the first is the default.
	Variants []string
	// Extension is the source file extension, with the dot.
	Extension string
	emit      EmitFunc
}

// Implemented reports whether code can be generated for the language.
func (l LanguageSpec) Implemented() bool { return l.emit != nil }

// DefaultVariant returns the first variant.
func (l LanguageSpec) DefaultVariant() string {
	if len(l.Variants) == 0 {
		return ""
	}
	return l.Variants[0]
}

// HasVariant reports whether v is one of the language's variants.
func (l LanguageSpec) HasVariant(v string) bool {
	for _, known := range l.Variants {
		if known == v {
			return true
		}
	}
	return false
}

var catalog = []LanguageSpec{
	{ID: "javascript", DisplayName: "JavaScript", Variants: jsemitter.Variants, Extension: ".js", emit: jsemitter.Emit},
	{ID: "python", DisplayName: "Python", Variants: pyemitter.Variants, Extension: ".py", emit: pyemitter.Emit},
	{ID: "ruby", DisplayName: "Ruby", Variants: rbemitter.Variants, Extension: ".rb", emit: rbemitter.Emit},
	{ID: "php", DisplayName: "PHP", Variants: []string{"curl", "guzzle"}, Extension: ".php"},
	{ID: "go", DisplayName: "Go", Variants: goemitter.Variants, Extension: ".go", emit: goemitter.Emit},
	{ID: "java", DisplayName: "Java", Variants: []string{"okhttp", "httpclient"}, Extension: ".java"},
	{ID: "csharp", DisplayName: "C#", Variants: []string{"httpclient"}, Extension: ".cs"},
	{ID: "swift", DisplayName: "Swift", Variants: []string{"urlsession"}, Extension: ".swift"},
	{ID: "kotlin", DisplayName: "Kotlin", Variants: []string{"okhttp"}, Extension: ".kt"},
}

// Languages returns the catalog in display order.
func Languages() []LanguageSpec {
	out := make([]LanguageSpec, len(catalog))
	for i, l := range catalog {
		l.Variants = append([]string(nil), l.Variants...)
		out[i] = l
	}
	return out
}

// Lookup finds a language by id, ignoring case and surrounding space.
func Lookup(id string) (LanguageSpec, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, l := range catalog {
		if l.ID == id {
			l.Variants = append([]string(nil), l.Variants...)
			return l, true
		}
	}
	return LanguageSpec{}, false
}

// CatalogEntry is the public shape of one language.
type CatalogEntry struct {
	Name        string   `json:"name" yaml:"name"`
	Variants    []string `json:"variants" yaml:"variants"`
	Implemented bool     `json:"implemented" yaml:"implemented"`
}

// Supported returns the catalog keyed by language id.
func Supported() map[string]CatalogEntry {
	out := make(map[string]CatalogEntry, len(catalog))
	for _, l := range catalog {
		out[l.ID] = CatalogEntry{
			Name:        l.DisplayName,
			Variants:    append([]string(nil), l.Variants...),
			Implemented: l.Implemented(),
		}
	}
	return out
}

// Snippet is generated source for one request.
type Snippet struct {
	Language string `json:"language"`
	Variant  string `json:"variant"`
	Code     string `json:"code"`
}

// Generate renders req for language and variant. An unknown variant falls
// back to the language's default. Headers are rendered as given.
func Generate(language, variant string, req request.Descriptor) (*Snippet, error) {
	lang, ok := Lookup(language)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, language)
	}
	if !lang.Implemented() {
		return nil, fmt.Errorf("%w: %s", ErrNotImplemented, lang.ID)
	}
	v := strings.ToLower(strings.TrimSpace(variant))
	if !lang.HasVariant(v) {
		if v != "" {
			slog.Debug("unknown variant, using default", "language", lang.ID, "variant", variant, "default", lang.DefaultVariant())
		}
		v = lang.DefaultVariant()
	}
	return &Snippet{Language: lang.ID, Variant: v, Code: lang.emit(v, req)}, nil
}

// Result carries either generated code or an error message.
type Result struct {
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

// GenerateResult is Generate with the error folded into the result.
func GenerateResult(language, variant string, req request.Descriptor) Result {
	s, err := Generate(language, variant, req)
	if err != nil {
		return Result{Error: err.Error()}
	}
	return Result{Code: s.Code}
}
