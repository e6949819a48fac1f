package theme

import (
	"strings"

	"github.com/beevik/etree"
)

// hyvaMarkerModule is the module reference that marks a theme as Hyva.
const hyvaMarkerModule = "Hyva_Theme"

// hyvaVendorPrefix marks parent-chain codes in the Hyva vendor namespace.
const hyvaVendorPrefix = "Hyva/"

// ParseThemeXML extracts the declared parent theme code from a theme.xml
// document. A missing, empty, or malformed <parent> element reports false; a
// theme may legitimately have no parent, so this is absence, never an error.
func ParseThemeXML(doc string) (ThemeCode, bool) {
	d := etree.NewDocument()
	if err := d.ReadFromString(doc); err != nil {
		return "", false
	}

	parent := d.FindElement("//parent")
	if parent == nil {
		return "", false
	}
	return ParseThemeCode(strings.TrimSpace(parent.Text()))
}

// IsHyvaTheme reports whether a theme is Hyva based on its theme.xml content
// and its already-resolved parent chain codes. This is a heuristic, not a
// schema check: a Hyva_Theme reference anywhere in the document counts, as
// does any ancestor in the Hyva vendor namespace.
func IsHyvaTheme(themeXML string, parentChain []string) bool {
	if strings.Contains(themeXML, hyvaMarkerModule) {
		return true
	}
	for _, code := range parentChain {
		if strings.HasPrefix(code, hyvaVendorPrefix) {
			return true
		}
	}
	return false
}

// DetectThemeType classifies a theme as Hyva or Luma.
func DetectThemeType(themeXML string, parentChain []string) ThemeType {
	if IsHyvaTheme(themeXML, parentChain) {
		return TypeHyva
	}
	return TypeLuma
}
