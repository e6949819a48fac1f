// Test Type: Unit Test
// Description: Tests for the cli package - exit code mapping, theme filtering, and command wiring

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avkozyr/static-deploy/pkg/config"
	"github.com/avkozyr/static-deploy/pkg/deployer"
	"github.com/avkozyr/static-deploy/pkg/errors"
	"github.com/avkozyr/static-deploy/pkg/interrupt"
	"github.com/avkozyr/static-deploy/pkg/theme"
)

func TestExitCode(t *testing.T) {
	success := deployer.DeployResult{Status: deployer.StatusSuccess}
	delegated := deployer.DeployResult{Status: deployer.StatusDelegated}
	failed := deployer.DeployResult{Status: deployer.StatusFailed}

	tests := []struct {
		name      string
		results   []deployer.DeployResult
		cancelled bool
		want      int
	}{
		{
			name:    "all success",
			results: []deployer.DeployResult{success, delegated},
			want:    ExitSuccess,
		},
		{
			name:    "partial failure",
			results: []deployer.DeployResult{success, failed},
			want:    ExitPartial,
		},
		{
			name:    "total failure",
			results: []deployer.DeployResult{failed, failed},
			want:    ExitTotalFailure,
		},
		{
			name:      "cancellation wins over everything",
			results:   []deployer.DeployResult{success, failed},
			cancelled: true,
			want:      ExitCancelled,
		},
		{
			name:    "no jobs",
			results: nil,
			want:    ExitSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := interrupt.NewFlag()
			if tt.cancelled {
				flag.Set()
			}
			assert.Equal(t, tt.want, exitCode(tt.results, flag))
		})
	}
}

func writeThemeXML(t *testing.T, root, area, vendor, name, body string) {
	t.Helper()
	path := filepath.Join(root, "app", "design", area, vendor, name, "theme.xml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}

func TestDiscoverThemes_Filter(t *testing.T) {
	root := t.TempDir()
	writeThemeXML(t, root, "frontend", "Hyva", "default",
		`<theme><registration>Hyva_Theme</registration></theme>`)
	writeThemeXML(t, root, "frontend", "Acme", "shop",
		`<theme><parent>Hyva/default</parent></theme>`)

	cfg := &config.Config{
		Root:  root,
		Areas: []theme.Area{theme.AreaFrontend},
		Jobs:  2,
	}

	themes, err := discoverThemes(cfg)
	require.NoError(t, err)
	assert.Len(t, themes, 2)

	cfg.Themes = []string{"Acme/shop"}
	themes, err = discoverThemes(cfg)
	require.NoError(t, err)
	require.Len(t, themes, 1)
	assert.Equal(t, "Acme/shop", themes[0].FullName())
}

func TestDiscoverThemes_UnknownFilterIsError(t *testing.T) {
	root := t.TempDir()
	writeThemeXML(t, root, "frontend", "Hyva", "default",
		`<theme><registration>Hyva_Theme</registration></theme>`)

	cfg := &config.Config{
		Root:   root,
		Areas:  []theme.Area{theme.AreaFrontend},
		Themes: []string{"Ghost/theme"},
		Jobs:   2,
	}

	_, err := discoverThemes(cfg)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrThemeNotFound))
}

func TestNewRootCmd_Flags(t *testing.T) {
	cmd := NewRootCmd()

	for _, name := range []string{"area", "theme", "locale", "jobs", "include-dev"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	assert.NotNil(t, cmd.PersistentFlags().Lookup("verbose"))

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	assert.True(t, names["version"])
	assert.True(t, names["completion"])
}

func TestRunDeploy_RootNotFound(t *testing.T) {
	err := runDeploy(config.Flags{Root: filepath.Join(t.TempDir(), "missing")})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRootNotFound))
}
