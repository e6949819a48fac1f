// Package config assembles the runtime configuration for a deployment run
// from CLI flags and the optional .static-deploy.toml defaults file at the
// deployment root.
package config

import (
	"path/filepath"
	"runtime"

	"github.com/go-playground/validator/v10"

	"github.com/avkozyr/static-deploy/pkg/errors"
	"github.com/avkozyr/static-deploy/pkg/logging"
	"github.com/avkozyr/static-deploy/pkg/theme"
)

// Flags holds the raw CLI values before parsing. Empty slices and zero
// values mean "not set"; the defaults file and built-in defaults fill them.
type Flags struct {
	Root       string
	Areas      []string
	Themes     []string
	Locales    []string
	Jobs       int
	Verbose    bool
	IncludeDev bool
}

// Config is the validated runtime configuration for one run.
type Config struct {
	// Root is the Magento root directory (absolute).
	Root string `validate:"required"`
	// Areas to deploy.
	Areas []theme.Area `validate:"min=1"`
	// Themes is an optional Vendor/name filter; empty means all discovered.
	Themes []string
	// Locales to deploy, strictly validated.
	Locales []theme.LocaleCode `validate:"min=1,dive,locale"`
	// Jobs is the worker pool size, minimum 1.
	Jobs int `validate:"min=1"`
	// Verbose enables progress output and per-job logging.
	Verbose bool
	// IncludeDev disables development-file filtering.
	IncludeDev bool
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Locale codes are xx_YY: two lowercase letters, underscore, two
	// uppercase letters.
	_ = v.RegisterValidation("locale", func(fl validator.FieldLevel) bool {
		return theme.IsValidLocale(fl.Field().String())
	})
	return v
}

// New builds and validates a Config from CLI flags, layering defaults from
// .static-deploy.toml underneath unset flags. Invalid locales fail here,
// before any work starts; unrecognized area names are filtered out.
func New(flags Flags) (*Config, error) {
	logger := logging.GetLogger("config")

	root := flags.Root
	if root == "" {
		root = "."
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	fileCfg, found, err := LoadFile(root)
	if err != nil {
		return nil, err
	}
	if found {
		logger.Debug().Str("root", root).Msg("Loaded defaults from " + FileName)
	}

	areaNames := flags.Areas
	if len(areaNames) == 0 {
		areaNames = fileCfg.Areas
	}
	if len(areaNames) == 0 {
		areaNames = []string{"frontend", "adminhtml"}
	}

	areas := make([]theme.Area, 0, len(areaNames))
	for _, name := range areaNames {
		area, ok := theme.ParseArea(name)
		if !ok {
			logger.Warn().Str("area", name).Msg("Ignoring unknown area")
			continue
		}
		areas = append(areas, area)
	}

	localeNames := flags.Locales
	if len(localeNames) == 0 {
		localeNames = fileCfg.Locales
	}
	if len(localeNames) == 0 {
		localeNames = []string{"en_US"}
	}

	locales := make([]theme.LocaleCode, 0, len(localeNames))
	for _, name := range localeNames {
		locales = append(locales, theme.NewLocaleCode(name))
	}

	jobs := flags.Jobs
	if jobs == 0 {
		jobs = fileCfg.Jobs
	}
	if jobs < 1 {
		jobs = runtime.NumCPU()
	}

	cfg := &Config{
		Root:       root,
		Areas:      areas,
		Themes:     flags.Themes,
		Locales:    locales,
		Jobs:       jobs,
		Verbose:    flags.Verbose,
		IncludeDev: flags.IncludeDev || fileCfg.IncludeDev,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the assembled configuration; locale violations surface as
// INVALID_LOCALE with the offending value.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	if fieldErrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrs {
			if fe.Tag() == "locale" {
				return errors.Newf(errors.ErrInvalidLocale,
					"invalid locale format %q: expected xx_YY (e.g., en_US)", fe.Value()).
					WithDetail("locale", fe.Value())
			}
		}
	}
	return errors.Wrap(err, errors.ErrInternal, "invalid configuration")
}
