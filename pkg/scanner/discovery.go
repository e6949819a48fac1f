// Package scanner discovers themes under app/design and enumerates, in
// priority order, every directory that may contribute static files to a
// theme's deployed output.
package scanner

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/avkozyr/static-deploy/pkg/logging"
	"github.com/avkozyr/static-deploy/pkg/theme"
)

// DiscoverThemes lists app/design/{area} and builds a Theme for every
// {Vendor}/{theme} directory carrying a theme.xml descriptor. Vendors are
// scanned in parallel across a bounded pool, so enumeration order is
// unspecified; callers must sort before presenting results. An absent area
// directory yields an empty list, not an error.
func DiscoverThemes(root string, area theme.Area, workers int) ([]*theme.Theme, error) {
	logger := logging.GetLogger("scanner.discovery")

	designPath := filepath.Join(root, "app", "design", area.String())
	vendors, err := os.ReadDir(designPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", designPath).Msg("Area directory absent, nothing to discover")
			return nil, nil
		}
		return nil, err
	}

	if workers < 1 {
		workers = 1
	}

	var (
		mu     sync.Mutex
		themes []*theme.Theme
		wg     sync.WaitGroup
	)
	sem := make(chan struct{}, workers)

	for _, vendor := range vendors {
		if !vendor.IsDir() {
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(vendorName string) {
			defer wg.Done()
			defer func() { <-sem }()

			found := scanVendorThemes(filepath.Join(designPath, vendorName), vendorName, area)
			if len(found) == 0 {
				return
			}
			mu.Lock()
			themes = append(themes, found...)
			mu.Unlock()
		}(vendor.Name())
	}
	wg.Wait()

	logger.Debug().
		Str("area", area.String()).
		Int("themes", len(themes)).
		Msg("Theme discovery complete")
	return themes, nil
}

func scanVendorThemes(vendorDir, vendorName string, area theme.Area) []*theme.Theme {
	logger := logging.GetLogger("scanner.discovery")

	entries, err := os.ReadDir(vendorDir)
	if err != nil {
		return nil
	}

	var themes []*theme.Theme
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		themePath := filepath.Join(vendorDir, entry.Name())

		data, err := os.ReadFile(filepath.Join(themePath, "theme.xml"))
		if err != nil {
			// Not a theme directory.
			continue
		}
		doc := string(data)

		var parent *theme.ThemeCode
		var parentNames []string
		if code, ok := theme.ParseThemeXML(doc); ok {
			parent = &code
			parentNames = []string{code.String()}
		}

		t := &theme.Theme{
			Vendor: vendorName,
			Name:   entry.Name(),
			Area:   area,
			Path:   themePath,
			Parent: parent,
			Type:   theme.DetectThemeType(doc, parentNames),
		}
		logger.Trace().
			Str("theme", t.FullName()).
			Str("type", t.Type.String()).
			Msg("Discovered theme")
		themes = append(themes, t)
	}
	return themes
}
