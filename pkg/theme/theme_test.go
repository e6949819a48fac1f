// Test Type: Unit Test
// Description: Tests for the theme package - codes, locales, areas, and parent chain resolution

package theme_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avkozyr/static-deploy/pkg/errors"
	"github.com/avkozyr/static-deploy/pkg/theme"
)

func TestParseThemeCode(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		ok     bool
		vendor string
		theme  string
	}{
		{
			name:   "valid code",
			input:  "Hyva/default",
			ok:     true,
			vendor: "Hyva",
			theme:  "default",
		},
		{
			name:   "valid code with hyphen",
			input:  "Acme/hyva-child",
			ok:     true,
			vendor: "Acme",
			theme:  "hyva-child",
		},
		{
			name:  "no slash",
			input: "Hyvadefault",
			ok:    false,
		},
		{
			name:  "empty vendor",
			input: "/default",
			ok:    false,
		},
		{
			name:  "empty name",
			input: "Hyva/",
			ok:    false,
		},
		{
			name:  "too many parts",
			input: "Hyva/default/extra",
			ok:    false,
		},
		{
			name:  "empty string",
			input: "",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := theme.ParseThemeCode(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.vendor, code.Vendor())
				assert.Equal(t, tt.theme, code.Name())
				assert.Equal(t, tt.input, code.String())
			}
		})
	}
}

func TestIsValidLocale(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"en_US", true},
		{"nl_NL", true},
		{"de_DE", true},
		{"pt_BR", true},
		{"EN_US", false}, // language part must be lowercase
		{"en_us", false}, // region part must be uppercase
		{"en-US", false}, // hyphen separator
		{"en_USA", false},
		{"e_US", false},
		{"en_", false},
		{"", false},
		{"enUS5", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.valid, theme.IsValidLocale(tt.input))
		})
	}
}

func TestValidatedLocale(t *testing.T) {
	locale, err := theme.ValidatedLocale("fr_FR")
	require.NoError(t, err)
	assert.Equal(t, "fr_FR", locale.String())

	_, err = theme.ValidatedLocale("french")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidLocale))
}

func TestParseArea(t *testing.T) {
	area, ok := theme.ParseArea("frontend")
	assert.True(t, ok)
	assert.Equal(t, theme.AreaFrontend, area)

	area, ok = theme.ParseArea("adminhtml")
	assert.True(t, ok)
	assert.Equal(t, theme.AreaAdminhtml, area)

	_, ok = theme.ParseArea("webapi_rest")
	assert.False(t, ok)

	_, ok = theme.ParseArea("Frontend")
	assert.False(t, ok)
}

func parentCode(vendor, name string) *theme.ThemeCode {
	code := theme.NewThemeCode(vendor, name)
	return &code
}

func TestResolveParentChain(t *testing.T) {
	base := &theme.Theme{Vendor: "Hyva", Name: "reset", Area: theme.AreaFrontend}
	def := &theme.Theme{Vendor: "Hyva", Name: "default", Area: theme.AreaFrontend,
		Parent: parentCode("Hyva", "reset")}
	child := &theme.Theme{Vendor: "Acme", Name: "shop", Area: theme.AreaFrontend,
		Parent: parentCode("Hyva", "default")}
	adminDefault := &theme.Theme{Vendor: "Hyva", Name: "default", Area: theme.AreaAdminhtml}

	all := []*theme.Theme{base, def, child, adminDefault}

	tests := []struct {
		name  string
		start *theme.Theme
		want  []*theme.Theme
	}{
		{
			name:  "two level chain, nearest ancestor first",
			start: child,
			want:  []*theme.Theme{def, base},
		},
		{
			name:  "single parent",
			start: def,
			want:  []*theme.Theme{base},
		},
		{
			name:  "root theme has empty chain",
			start: base,
			want:  []*theme.Theme{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := theme.ResolveParentChain(tt.start, all)
			require.Len(t, chain, len(tt.want))
			for i, want := range tt.want {
				assert.Same(t, want, chain[i])
			}
		})
	}
}

func TestResolveParentChain_BrokenReference(t *testing.T) {
	orphan := &theme.Theme{Vendor: "Acme", Name: "shop", Area: theme.AreaFrontend,
		Parent: parentCode("Gone", "theme")}

	chain := theme.ResolveParentChain(orphan, []*theme.Theme{orphan})
	assert.Empty(t, chain, "unresolvable parent ends the walk without error")
}

func TestResolveParentChain_WrongAreaNotMatched(t *testing.T) {
	parent := &theme.Theme{Vendor: "Hyva", Name: "default", Area: theme.AreaAdminhtml}
	child := &theme.Theme{Vendor: "Acme", Name: "shop", Area: theme.AreaFrontend,
		Parent: parentCode("Hyva", "default")}

	chain := theme.ResolveParentChain(child, []*theme.Theme{parent, child})
	assert.Empty(t, chain, "parent lookup is constrained to the theme's own area")
}

func TestResolveParentChain_CycleTerminates(t *testing.T) {
	a := &theme.Theme{Vendor: "Acme", Name: "a", Area: theme.AreaFrontend,
		Parent: parentCode("Acme", "b")}
	b := &theme.Theme{Vendor: "Acme", Name: "b", Area: theme.AreaFrontend,
		Parent: parentCode("Acme", "a")}

	chain := theme.ResolveParentChain(a, []*theme.Theme{a, b})
	assert.LessOrEqual(t, len(chain), 32, "cyclic parent graph must not walk forever")
	assert.NotEmpty(t, chain)
}

func TestThemeAccessors(t *testing.T) {
	th := &theme.Theme{Vendor: "Hyva", Name: "default", Area: theme.AreaFrontend}
	assert.Equal(t, "Hyva/default", th.FullName())
	assert.Equal(t, theme.NewThemeCode("Hyva", "default"), th.Code())
	assert.Equal(t, "hyva", theme.TypeHyva.String())
	assert.Equal(t, "luma", theme.TypeLuma.String())
}
