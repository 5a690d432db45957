package environment

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/maze516/fuel-lang/config"
	"github.com/maze516/fuel-lang/lang/evaluator"
	"github.com/maze516/fuel-lang/lang/reader"
	"github.com/maze516/fuel-lang/lang/types"
)

// manifestFile is the project manifest consulted, in the current
// directory, when a scope carries no explicit library path.
const manifestFile = "fuel.yaml"

// configLibPath falls back to the config package's environment and
// manifest sources when the caller (CLI or embedding host) never set an
// explicit sc.Global.LibPath, so "import" still has a search path to use
// outside of a wired-up CLI.
func configLibPath() []string {
	if env, err := config.LoadEnv(); err == nil && len(env.LibPath) > 0 {
		return env.LibPath
	}
	if manifest, err := config.LoadManifest(manifestFile); err == nil && len(manifest.LibPath) > 0 {
		return manifest.LibPath
	}
	return nil
}

func registerImports(sc *types.Scope) {
	builtin(sc, "import", "(import name-or-path)", "Loads and evaluates a module file from the library search path.", importFn)
}

// resolveModulePath returns name (with a .fuel extension appended if
// missing) when that path exists as given; otherwise it searches sc's
// library path, or the config sources when that path is empty, for a file
// of that name.
func resolveModulePath(sc *types.Scope, name string) (string, error) {
	fileName := name
	if filepath.Ext(fileName) == "" {
		fileName += ".fuel"
	}
	if _, err := os.Stat(fileName); err == nil {
		return fileName, nil
	}
	libPath := sc.Global.LibPath
	if len(libPath) == 0 {
		libPath = configLibPath()
	}
	for _, dir := range libPath {
		candidate := filepath.Join(dir, fileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", types.NewError(sc, "import: module %q not found on library path", name)
}

func importFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 1 {
		return nil, arityError(sc, "import", "1", len(args))
	}
	rawName := args[0].Display()
	moduleName := strings.TrimSuffix(filepath.Base(rawName), ".fuel")

	path, err := resolveModulePath(sc, rawName)
	if err != nil {
		return nil, err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, types.NewError(sc, "import: cannot read %q: %v", path, err)
	}
	forms, err := reader.ReadAll(string(src))
	if err != nil {
		return nil, err
	}
	// Forms are evaluated directly in the importing scope, rather than an
	// isolated child, so the module's top-level defn/def bindings become
	// visible to the caller - otherwise "import" could never be used to
	// pull in reusable functions.
	prevModule := sc.ModuleName
	sc.ModuleName = moduleName
	result, err := evaluator.EvalBody(forms, sc)
	sc.ModuleName = prevModule
	return result, err
}
