// Package theme provides the theme, locale, and area model for static
// content deployment, including theme.xml descriptor parsing and
// inheritance-chain resolution.
package theme

import (
	"strings"

	"github.com/avkozyr/static-deploy/pkg/errors"
)

// ThemeCode is a theme identifier in "Vendor/name" format (e.g. "Hyva/default").
// It is immutable once constructed; equality is plain string equality.
type ThemeCode string

// NewThemeCode builds a ThemeCode from vendor and name parts.
func NewThemeCode(vendor, name string) ThemeCode {
	return ThemeCode(vendor + "/" + name)
}

// ParseThemeCode parses "Vendor/name". It reports false for anything that is
// not exactly two non-empty parts separated by a single slash.
func ParseThemeCode(s string) (ThemeCode, bool) {
	vendor, name, found := strings.Cut(s, "/")
	if !found || vendor == "" || name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return ThemeCode(s), true
}

// Vendor returns the part before the slash.
func (c ThemeCode) Vendor() string {
	vendor, _, _ := strings.Cut(string(c), "/")
	return vendor
}

// Name returns the part after the slash.
func (c ThemeCode) Name() string {
	_, name, _ := strings.Cut(string(c), "/")
	return name
}

func (c ThemeCode) String() string {
	return string(c)
}

// LocaleCode is a locale identifier (e.g. "en_US", "nl_NL").
type LocaleCode string

// NewLocaleCode wraps an already-validated locale string without checking it.
// User-supplied input must go through ValidatedLocale instead.
func NewLocaleCode(s string) LocaleCode {
	return LocaleCode(s)
}

// ValidatedLocale validates s against the strict xx_YY form and wraps it.
func ValidatedLocale(s string) (LocaleCode, error) {
	if !IsValidLocale(s) {
		return "", errors.Newf(errors.ErrInvalidLocale,
			"invalid locale format %q: expected xx_YY (e.g., en_US)", s).
			WithDetail("locale", s)
	}
	return LocaleCode(s), nil
}

// IsValidLocale reports whether s is xx_YY: two lowercase ASCII letters,
// an underscore, two uppercase ASCII letters.
func IsValidLocale(s string) bool {
	if len(s) != 5 || s[2] != '_' {
		return false
	}
	return s[0] >= 'a' && s[0] <= 'z' &&
		s[1] >= 'a' && s[1] <= 'z' &&
		s[3] >= 'A' && s[3] <= 'Z' &&
		s[4] >= 'A' && s[4] <= 'Z'
}

func (l LocaleCode) String() string {
	return string(l)
}

// Area is the deployment target context.
type Area string

const (
	AreaFrontend  Area = "frontend"
	AreaAdminhtml Area = "adminhtml"
)

// ParseArea parses an area name. Values outside the closed set report false;
// the caller decides whether that is fatal.
func ParseArea(s string) (Area, bool) {
	switch s {
	case "frontend":
		return AreaFrontend, true
	case "adminhtml":
		return AreaAdminhtml, true
	default:
		return "", false
	}
}

func (a Area) String() string {
	return string(a)
}

// ThemeType determines the deployment strategy for a theme.
type ThemeType int

const (
	// TypeHyva themes deploy via direct file copy.
	TypeHyva ThemeType = iota
	// TypeLuma themes delegate to bin/magento for LESS/RequireJS compilation.
	TypeLuma
)

func (t ThemeType) String() string {
	if t == TypeHyva {
		return "hyva"
	}
	return "luma"
}

// Theme is a discovered theme with its metadata. It is constructed once
// during discovery and read-only afterwards; locale jobs share the same
// *Theme rather than copying it.
type Theme struct {
	// Vendor name (e.g. "Hyva", "Magento")
	Vendor string
	// Theme name (e.g. "reset", "luma")
	Name string
	// Area the theme belongs to
	Area Area
	// Path is the theme's root directory on disk
	Path string
	// Parent is the immediate parent theme code, nil for a root theme
	Parent *ThemeCode
	// Type determines the deployment strategy
	Type ThemeType
}

// Code returns the theme's identifier as a ThemeCode.
func (t *Theme) Code() ThemeCode {
	return NewThemeCode(t.Vendor, t.Name)
}

// FullName returns "Vendor/name".
func (t *Theme) FullName() string {
	return t.Vendor + "/" + t.Name
}

// maxParentDepth bounds ResolveParentChain. A theme graph with a cycle
// (A->B->A, both discovered) would otherwise walk forever; real chains are
// 2-4 themes deep.
const maxParentDepth = 32

// ResolveParentChain walks the parent references of t through all, nearest
// ancestor first. Lookups are constrained to the theme's own area. A parent
// code that resolves to nothing ends the walk; broken references produce a
// shorter chain, not an error.
func ResolveParentChain(t *Theme, all []*Theme) []*Theme {
	chain := make([]*Theme, 0, 4)
	current := t.Parent

	for current != nil && len(chain) < maxParentDepth {
		var parent *Theme
		for _, candidate := range all {
			if candidate.Area == t.Area && candidate.Code() == *current {
				parent = candidate
				break
			}
		}
		if parent == nil {
			break
		}
		chain = append(chain, parent)
		current = parent.Parent
	}

	return chain
}
