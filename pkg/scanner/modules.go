package scanner

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/beevik/etree"

	"github.com/avkozyr/static-deploy/pkg/theme"
)

// moduleName resolves a package's Magento module name from its module.xml,
// trying etc/module.xml then the Hyva-style src/etc/module.xml. A package
// without either descriptor contributes no sources.
func moduleName(packageDir string) (string, bool) {
	candidates := []string{
		filepath.Join(packageDir, "etc", "module.xml"),
		filepath.Join(packageDir, "src", "etc", "module.xml"),
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		return parseModuleXML(string(data))
	}
	return "", false
}

// parseModuleXML extracts the name attribute of the <module> element.
// Malformed documents or a missing attribute report false, never an error.
func parseModuleXML(doc string) (string, bool) {
	d := etree.NewDocument()
	if err := d.ReadFromString(doc); err != nil {
		return "", false
	}

	module := d.FindElement("//module")
	if module == nil {
		return "", false
	}
	name := module.SelectAttrValue("name", "")
	if name == "" {
		return "", false
	}
	return name, true
}

// VendorModuleSources scans vendor/{vendor}/{package} for module web assets
// belonging to the given area, in the fixed layout order: view/{area}/web,
// src/view/{area}/web, view/base/web, src/view/base/web. Vendors are scanned
// in parallel but the returned order stays deterministic.
func VendorModuleSources(root string, area theme.Area) []FileSource {
	vendorPath := filepath.Join(root, "vendor")
	vendors, err := os.ReadDir(vendorPath)
	if err != nil {
		return nil
	}

	perVendor := make([][]FileSource, len(vendors))
	var wg sync.WaitGroup

	for i, vendor := range vendors {
		if !vendor.IsDir() {
			continue
		}
		wg.Add(1)
		go func(i int, vendorDir string) {
			defer wg.Done()
			perVendor[i] = scanVendor(vendorDir, area)
		}(i, filepath.Join(vendorPath, vendor.Name()))
	}
	wg.Wait()

	var sources []FileSource
	for _, batch := range perVendor {
		sources = append(sources, batch...)
	}
	return sources
}

func scanVendor(vendorDir string, area theme.Area) []FileSource {
	packages, err := os.ReadDir(vendorDir)
	if err != nil {
		return nil
	}

	var sources []FileSource
	for _, pkg := range packages {
		if !pkg.IsDir() {
			continue
		}
		packageDir := filepath.Join(vendorDir, pkg.Name())

		name, ok := moduleName(packageDir)
		if !ok {
			continue
		}

		layouts := []string{
			filepath.Join(packageDir, "view", area.String(), "web"),
			filepath.Join(packageDir, "src", "view", area.String(), "web"),
			filepath.Join(packageDir, "view", "base", "web"),
			filepath.Join(packageDir, "src", "view", "base", "web"),
		}
		for _, webPath := range layouts {
			if dirExists(webPath) {
				sources = append(sources, FileSource{
					Kind:   KindVendorModule,
					Module: name,
					Path:   webPath,
				})
			}
		}
	}
	return sources
}
