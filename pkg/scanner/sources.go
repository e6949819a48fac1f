package scanner

import (
	"os"
	"path/filepath"

	"github.com/avkozyr/static-deploy/pkg/theme"
)

// SourceKind tags the origin of a static-file layer.
type SourceKind int

const (
	// KindThemeModuleOverride is a theme-local override of a module's assets:
	// app/design/{area}/{Vendor}/{theme}/{Module_Name}/web/
	KindThemeModuleOverride SourceKind = iota
	// KindThemeWeb is a theme's own web directory:
	// app/design/{area}/{Vendor}/{theme}/web/
	KindThemeWeb
	// KindVendorModule is a vendor module's assets:
	// vendor/{vendor}/{package}/view/{area}/web/ (plus src/ and base variants)
	KindVendorModule
	// KindLibrary is the shared library layer: lib/web/
	KindLibrary
)

func (k SourceKind) String() string {
	switch k {
	case KindThemeModuleOverride:
		return "theme-module-override"
	case KindThemeWeb:
		return "theme-web"
	case KindVendorModule:
		return "vendor-module"
	default:
		return "library"
	}
}

// FileSource is one directory that may contribute static files to a theme's
// output. Sources are produced fresh per deployment job and carry enough
// metadata to compute the destination sub-path.
type FileSource struct {
	Kind SourceKind
	// Theme is the owning theme's full name for theme-scoped sources.
	Theme string
	// Module is the module identifier for module-scoped sources; it doubles
	// as the destination sub-path.
	Module string
	// Path is the source directory on disk.
	Path string
}

// DestSubpath returns the sub-path under the job output directory that this
// source's files land in. Theme and library layers copy to the root.
func (s FileSource) DestSubpath() string {
	return s.Module
}

// ThemeWebSource returns the theme's own web layer, if present.
func ThemeWebSource(t *theme.Theme) []FileSource {
	webPath := filepath.Join(t.Path, "web")
	if !dirExists(webPath) {
		return nil
	}
	return []FileSource{{Kind: KindThemeWeb, Theme: t.FullName(), Path: webPath}}
}

// LibrarySource returns the shared lib/web layer, if present.
func LibrarySource(root string) []FileSource {
	libPath := filepath.Join(root, "lib", "web")
	if !dirExists(libPath) {
		return nil
	}
	return []FileSource{{Kind: KindLibrary, Path: libPath}}
}

// ThemeModuleOverrides returns the theme's module override layers. Module
// directories are direct children whose name contains an underscore (e.g.
// Magento_Catalog) and which carry a web/ subdirectory.
func ThemeModuleOverrides(t *theme.Theme) []FileSource {
	entries, err := os.ReadDir(t.Path)
	if err != nil {
		return nil
	}

	sources := make([]FileSource, 0, 8)
	for _, entry := range entries {
		if !entry.IsDir() || !containsUnderscore(entry.Name()) {
			continue
		}
		webPath := filepath.Join(t.Path, entry.Name(), "web")
		if !dirExists(webPath) {
			continue
		}
		sources = append(sources, FileSource{
			Kind:   KindThemeModuleOverride,
			Theme:  t.FullName(),
			Module: entry.Name(),
			Path:   webPath,
		})
	}
	return sources
}

// CollectFileSources enumerates every layer that contributes files for a
// theme, highest priority first:
//
//  1. current theme's module overrides
//  2. current theme's own web assets
//  3. for each ancestor, nearest first: overrides, then web assets
//  4. vendor module assets (area, Hyva src layout, base, src base)
//  5. shared library assets
//
// A layer whose directory does not exist is silently omitted.
func CollectFileSources(t *theme.Theme, parentChain []*theme.Theme, root string) []FileSource {
	sources := make([]FileSource, 0, 100)

	sources = append(sources, ThemeModuleOverrides(t)...)
	sources = append(sources, ThemeWebSource(t)...)

	for _, parent := range parentChain {
		sources = append(sources, ThemeModuleOverrides(parent)...)
		sources = append(sources, ThemeWebSource(parent)...)
	}

	sources = append(sources, VendorModuleSources(root, t.Area)...)
	sources = append(sources, LibrarySource(root)...)

	return sources
}

func containsUnderscore(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '_' {
			return true
		}
	}
	return false
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
