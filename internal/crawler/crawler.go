package crawler

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Crawler scans a Julia project tree for source files.
type Crawler struct {
	ignored []string
}

// New creates a new crawler instance.
func New() *Crawler {
	return &Crawler{
		ignored: []string{".git", "deps", "docs", "test"},
	}
}

// ScanProject walks the root directory and streams each Julia source file to
// the callback, preventing large memory buildup on big projects.
func (c *Crawler) ScanProject(root string, onFile func(path, source string)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip ignored directories
		if d.IsDir() {
			for _, ign := range c.ignored {
				if d.Name() == ign {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), ".jl") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			// Skip unreadable files instead of failing the whole scan
			return nil
		}

		onFile(path, string(content))
		return nil
	})
}
