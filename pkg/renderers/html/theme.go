package html

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

// DefaultThemeName is the built in console theme.
const DefaultThemeName = "wishform"

// DefaultManifest returns the built in theme with light and dark variants.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"surface":  "#ffffff",
			"text":     "#1f2933",
			"accent":   "#2f6fde",
			"muted":    "#6b7785",
			"status":   "#0b6e4f",
			"border":   "#d3d9e0",
			"radius":   "6px",
			"font":     "system-ui, sans-serif",
			"spacing":  "0.75rem",
			"table-bg": "#f5f7fa",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"surface":  "#111827",
					"text":     "#e5e7eb",
					"muted":    "#9ca3af",
					"border":   "#374151",
					"table-bg": "#1f2937",
				},
			},
		},
	}
}

type manifestRegistry interface {
	Register(manifest *theme.Manifest) error
}

// ManifestSelector resolves themes from registered manifests. It satisfies
// theme.ThemeSelector so callers can swap in any other go-theme selector.
type ManifestSelector struct {
	mu             sync.RWMutex
	registry       manifestRegistry
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector registers manifests and falls back to defaultTheme and
// defaultVariant when Select is called with empty names.
func NewManifestSelector(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) (*ManifestSelector, error) {
	s := &ManifestSelector{
		registry:       theme.NewRegistry(),
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultTheme:   strings.TrimSpace(defaultTheme),
		defaultVariant: strings.TrimSpace(defaultVariant),
	}
	for _, manifest := range manifests {
		if err := s.Register(manifest); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Register adds a manifest. Names must be unique.
func (s *ManifestSelector) Register(manifest *theme.Manifest) error {
	if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
		return fmt.Errorf("html: theme manifest name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.manifests[manifest.Name]; exists {
		return fmt.Errorf("html: theme %q already registered", manifest.Name)
	}
	if err := s.registry.Register(manifest); err != nil {
		return fmt.Errorf("html: register theme %q: %w", manifest.Name, err)
	}
	s.manifests[manifest.Name] = manifest
	return nil
}

// Select returns the manifest for name and variant. Unknown variants are an
// error; an empty variant selects the base tokens.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if strings.TrimSpace(name) == "" {
		name = s.defaultTheme
	}
	if strings.TrimSpace(variant) == "" {
		variant = s.defaultVariant
	}

	s.mu.RLock()
	manifest, ok := s.manifests[name]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("html: theme %q not found", name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("html: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

type themeView struct {
	Name    string
	Variant string
	CSS     string
}

// resolveTokens merges the variant tokens over the base tokens.
func resolveTokens(selection *theme.Selection) map[string]string {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	tokens := make(map[string]string, len(selection.Manifest.Tokens))
	for key, value := range selection.Manifest.Tokens {
		tokens[key] = value
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			tokens[key] = value
		}
	}
	return tokens
}

func buildThemeView(selection *theme.Selection) themeView {
	if selection == nil {
		return themeView{}
	}
	return themeView{
		Name:    selection.Theme,
		Variant: selection.Variant,
		CSS:     cssVarsStyle(resolveTokens(selection)),
	}
}

func cssVarsStyle(tokens map[string]string) string {
	if len(tokens) == 0 {
		return ""
	}
	keys := make([]string, 0, len(tokens))
	for key := range tokens {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString("  --wf-")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(tokens[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
