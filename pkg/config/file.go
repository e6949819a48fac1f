package config

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/avkozyr/static-deploy/pkg/errors"
)

// FileName is the optional per-root defaults file.
const FileName = ".static-deploy.toml"

// FileConfig mirrors the .static-deploy.toml schema. Every field is a
// default that explicit CLI flags override.
type FileConfig struct {
	Areas      []string `toml:"areas"`
	Locales    []string `toml:"locales"`
	Jobs       int      `toml:"jobs"`
	IncludeDev bool     `toml:"include_dev"`
}

// LoadFile reads .static-deploy.toml from the deployment root. An absent
// file is not an error; a malformed one is, since it is user-supplied
// configuration.
func LoadFile(root string) (FileConfig, bool, error) {
	path := filepath.Join(root, FileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, false, nil
		}
		return FileConfig{}, false, errors.Wrap(err, errors.ErrIo, "cannot read config file").
			WithDetail("path", path)
	}

	var cfg FileConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return FileConfig{}, false, errors.Wrap(err, errors.ErrInvalidDescriptor, "failed to parse TOML").
			WithDetail("path", path)
	}
	return cfg, true, nil
}
