package fuel_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	fuel "github.com/maze516/fuel-lang"
	"github.com/maze516/fuel-lang/internal/filetest"
)

var update = false

// TestGoldenFiles evaluates every testdata/*.fuel script and compares its
// accumulated print/println output against the matching *.fuel.want file.
func TestGoldenFiles(t *testing.T) {
	const dir = "testdata"
	for _, fi := range filetest.SourceFiles(t, dir, ".fuel") {
		fi := fi
		t.Run(fi.Name(), func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join(dir, fi.Name()))
			if err != nil {
				t.Fatal(err)
			}
			var buf bytes.Buffer
			_, err = fuel.Eval(string(src), fuel.Options{Output: &buf})
			if err != nil {
				t.Fatalf("eval %s: %v", fi.Name(), err)
			}
			filetest.DiffOutput(t, fi, buf.String(), dir, &update)
		})
	}
}
