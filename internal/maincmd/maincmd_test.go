package maincmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(prev)) })
}

func TestLibPathFallsBackToFlagWhenNoEnvOrManifest(t *testing.T) {
	chdir(t, t.TempDir())
	c := &Cmd{LibPath: "./lib:./vendor"}
	require.Equal(t, []string{"./lib", "./vendor"}, c.libPath())
}

func TestLibPathPrefersManifestOverFlag(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	contents := "libpath:\n  - ./fromManifest\nmodule: app\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, manifestFile), []byte(contents), 0600))

	c := &Cmd{LibPath: "./fromFlag"}
	require.Equal(t, []string{"./fromManifest"}, c.libPath())
}

func TestLibPathPrefersEnvOverManifestAndFlag(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	contents := "libpath:\n  - ./fromManifest\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, manifestFile), []byte(contents), 0600))
	t.Setenv("FUEL_LIBPATH", "./fromEnv")

	c := &Cmd{LibPath: "./fromFlag"}
	require.Equal(t, []string{"./fromEnv"}, c.libPath())
}
