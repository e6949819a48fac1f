package copier

import (
	"path/filepath"
	"strings"
)

// devExtensions are file extensions excluded from deployment unless
// development files are explicitly included. Matched case-insensitively.
var devExtensions = map[string]struct{}{
	"ts":           {}, // TypeScript source
	"tsx":          {}, // TypeScript JSX
	"mts":          {}, // TypeScript module
	"cts":          {}, // TypeScript CommonJS module
	"less":         {}, // LESS source
	"scss":         {}, // SASS source
	"sass":         {}, // SASS source
	"md":           {}, // Markdown docs
	"markdown":     {}, // Markdown docs
	"yml":          {}, // YAML configs
	"yaml":         {}, // YAML configs
	"lock":         {}, // Lock files
	"npmignore":    {},
	"gitignore":    {},
	"eslintrc":     {},
	"prettierrc":   {},
	"editorconfig": {},
	"jshintrc":     {},
	"nycrc":        {},
	"babelrc":      {},
	"flowconfig":   {},
}

// devFiles are exact file names excluded from deployment. Matched
// case-sensitively.
var devFiles = map[string]struct{}{
	// Package managers
	"package.json":      {},
	"package-lock.json": {},
	"yarn.lock":         {},
	"pnpm-lock.yaml":    {},
	"composer.json":     {},
	"composer.lock":     {},
	// TypeScript
	"tsconfig.json":       {},
	"tsconfig.base.json":  {},
	"tsconfig.build.json": {},
	// Docs
	"LICENSE":         {},
	"LICENSE.md":      {},
	"LICENSE.txt":     {},
	"MIT-LICENSE":     {},
	"README":          {},
	"README.md":       {},
	"README.txt":      {},
	"CHANGELOG":       {},
	"CHANGELOG.md":    {},
	"HISTORY.md":      {},
	"CONTRIBUTING.md": {},
	// Config files
	".gitignore":         {},
	".npmignore":         {},
	".npmrc":             {},
	".yarnrc":            {},
	".eslintrc":          {},
	".eslintrc.js":       {},
	".eslintrc.json":     {},
	".eslintrc.cjs":      {},
	".prettierrc":        {},
	".prettierrc.js":     {},
	".prettierrc.json":   {},
	".editorconfig":      {},
	".jshintrc":          {},
	".babelrc":           {},
	".babelrc.js":        {},
	".babelrc.json":      {},
	"babel.config.js":    {},
	"babel.config.json":  {},
	".nycrc":             {},
	".nycrc.json":        {},
	"jest.config.js":     {},
	"jest.config.json":   {},
	"karma.conf.js":      {},
	"webpack.config.js":  {},
	"rollup.config.js":   {},
	"vite.config.js":     {},
	"vite.config.ts":     {},
	".browserslistrc":    {},
	".stylelintrc":       {},
	".stylelintrc.json":  {},
	"Makefile":           {},
	"Gruntfile.js":       {},
	"Gulpfile.js":        {},
}

// devDirectories are path segments that mark a whole subtree as development
// content. Matched case-sensitively.
var devDirectories = map[string]struct{}{
	"node_modules": {},
	".git":         {},
	".svn":         {},
	".hg":          {},
}

// ShouldExclude reports whether path is development content that must not be
// deployed. With includeDev set, nothing is excluded.
func ShouldExclude(path string, includeDev bool) bool {
	if includeDev {
		return false
	}

	for _, segment := range strings.Split(filepath.ToSlash(path), "/") {
		if _, ok := devDirectories[segment]; ok {
			return true
		}
	}

	name := filepath.Base(path)
	if _, ok := devFiles[name]; ok {
		return true
	}

	if ext := filepath.Ext(name); ext != "" {
		ext = strings.ToLower(strings.TrimPrefix(ext, "."))
		if _, ok := devExtensions[ext]; ok {
			return true
		}
	}

	return false
}
