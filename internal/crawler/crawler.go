// Package crawler discovers the Python source files a run should format.
package crawler

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Crawler resolves files and directories into Python source paths.
type Crawler struct {
	ignored []string
}

// New creates a crawler with the default ignore list.
func New() *Crawler {
	return &Crawler{
		ignored: []string{".git", "venv", ".venv", "node_modules", "__pycache__", ".tox"},
	}
}

// Resolve expands paths (files or directories) into the Python files beneath
// them, streaming each hit through onFile to avoid building large slices for
// big trees. Explicit file arguments skip the directory ignore list but still
// must carry a Python extension.
func (c *Crawler) Resolve(paths []string, onFile func(path string)) error {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", path, err)
		}
		if !info.IsDir() {
			if isPython(path) {
				onFile(path)
			}
			continue
		}
		if err := c.walk(path, onFile); err != nil {
			return err
		}
	}
	return nil
}

func (c *Crawler) walk(root string, onFile func(path string)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			for _, ign := range c.ignored {
				if d.Name() == ign {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if isPython(d.Name()) {
			onFile(path)
		}
		return nil
	})
}

func isPython(name string) bool {
	return strings.HasSuffix(name, ".py") || strings.HasSuffix(name, ".pyw")
}
