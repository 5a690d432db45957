package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maze516/fuel-lang/config"
)

func TestLoadEnvDefaults(t *testing.T) {
	os.Unsetenv("FUEL_LIBPATH")
	os.Unsetenv("FUEL_MAX_STEPS")
	os.Unsetenv("FUEL_TRACE")

	e, err := config.LoadEnv()
	require.NoError(t, err)
	require.Empty(t, e.LibPath)
	require.Equal(t, 0, e.MaxSteps)
	require.False(t, e.Trace)
}

func TestLoadEnvReadsVariables(t *testing.T) {
	t.Setenv("FUEL_LIBPATH", "/a/lib:/b/lib")
	t.Setenv("FUEL_MAX_STEPS", "500")
	t.Setenv("FUEL_TRACE", "true")

	e, err := config.LoadEnv()
	require.NoError(t, err)
	require.Equal(t, []string{"/a/lib", "/b/lib"}, e.LibPath)
	require.Equal(t, 500, e.MaxSteps)
	require.True(t, e.Trace)
}

func TestLoadManifestMissingFileIsNotAnError(t *testing.T) {
	m, err := config.LoadManifest(filepath.Join(t.TempDir(), "missing-fuel.yaml"))
	require.NoError(t, err)
	require.Equal(t, config.Manifest{}, m)
}

func TestLoadManifestParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fuel.yaml")
	contents := "libpath:\n  - ./lib\n  - ./vendor/fuel\nmodule: app\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))

	m, err := config.LoadManifest(path)
	require.NoError(t, err)
	require.Equal(t, []string{"./lib", "./vendor/fuel"}, m.LibPath)
	require.Equal(t, "app", m.ModuleName)
}

func TestLoadManifestInvalidYAMLErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fuel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not: [valid"), 0600))

	_, err := config.LoadManifest(path)
	require.Error(t, err)
}
