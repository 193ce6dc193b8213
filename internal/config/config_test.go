package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubsite/internal/dates"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "donotbuild.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "https://neotechclub.qzz.io", cfg.SiteURL)
	assert.Equal(t, dates.DefaultZone, cfg.Timezone)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Contains(t, cfg.ContentFiles, "events.yaml")
	assert.Contains(t, cfg.Exclude, "*.yaml")
}

func TestLoadPartialConfigIsNormalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "donotbuild.yaml")
	body := "exclude:\n  - \"*.md\"\n  - node_modules\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	// The file only pins exclusions; everything else gets defaults.
	assert.Equal(t, []string{"*.md", "node_modules"}, cfg.Exclude)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, dates.DefaultZone, cfg.Timezone)
	assert.NotEmpty(t, cfg.ContentFiles)
}

func TestLoadFullConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "donotbuild.yaml")
	body := `site_url: https://example.org
timezone: UTC
output_dir: dist
content_files:
  - events.yaml
exclude: []
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.org", cfg.SiteURL)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "dist", cfg.OutputDir)
	assert.Equal(t, []string{"events.yaml"}, cfg.ContentFiles)
	assert.Empty(t, cfg.Exclude)
}

func TestLoadRejectsEmptyPathAndBadYAML(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "donotbuild.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t- broken"), 0o600))
	_, err = Load(path)
	assert.Error(t, err)
}
