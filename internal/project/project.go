package project

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths identifies the source file to process and the project root used to
// resolve symbol scopes.
type Paths struct {
	Root       string
	SourceFile string
}

// Resolve applies the shared CLI convention used by both the harvester and
// the lint frontend:
//   - a directory argument implies src/<dirname>.jl inside it;
//   - a file argument implies the enclosing project, stepping out of src/;
//   - an explicit root (from a flag or config) overrides the derived one.
//
// The resolved source file must exist; nothing can be harvested otherwise.
func Resolve(arg, root string) (Paths, error) {
	if arg == "" && root == "" {
		return Paths{}, fmt.Errorf("no source file or project directory given")
	}

	if arg == "" {
		arg = root
	}

	abs, err := filepath.Abs(arg)
	if err != nil {
		return Paths{}, fmt.Errorf("failed to resolve path %s: %w", arg, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return Paths{}, fmt.Errorf("cannot access %s: %w", abs, err)
	}

	var p Paths
	if info.IsDir() {
		p.Root = abs
		p.SourceFile = filepath.Join(abs, "src", filepath.Base(abs)+".jl")
	} else {
		p.SourceFile = abs
		p.Root = rootForFile(abs)
	}

	if root != "" && root != arg {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return Paths{}, fmt.Errorf("failed to resolve project root %s: %w", root, err)
		}
		p.Root = absRoot
	}

	if _, err := os.Stat(p.SourceFile); err != nil {
		return Paths{}, fmt.Errorf("source file not found: %s", p.SourceFile)
	}

	return p, nil
}

// rootForFile derives a project root from a source file location, stepping
// out of a conventional src/ directory when present.
func rootForFile(file string) string {
	dir := filepath.Dir(file)
	if filepath.Base(dir) == "src" {
		return filepath.Dir(dir)
	}
	return dir
}
