// Copyright © 2025 The phpls authors

package analysis

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
	"go.opentelemetry.io/otel/attribute"
)

// IndexWorkspace walks the directory tree under root, parses every
// .php file, and registers each as a loaded document. A .gitignore at
// the root is honored. Files that fail to read are skipped, and files
// with syntax errors are indexed with their diagnostics; a parse that
// cannot run (for example on context cancellation) stops the walk and
// its error is returned. The index is rebuilt from source on every
// start.
//
// Returns the number of documents indexed.
func (p *Project) IndexWorkspace(ctx context.Context, root string) (int, error) {
	ctx, span := p.tracer.Start(ctx, "workspace.index")
	defer span.End()

	ignore, _ := gitignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))

	count := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		if d.IsDir() {
			if shouldSkipDir(d.Name()) {
				return filepath.SkipDir
			}
			if ignore != nil && rel != "." && ignore.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".php" {
			return nil
		}
		if ignore != nil && ignore.MatchesPath(rel) {
			return nil
		}
		src, readErr := os.ReadFile(path) //nolint:gosec // indexes user-specified workspace files
		if readErr != nil {
			return nil
		}
		if _, updErr := p.UpdateDocument(ctx, pathToURI(path), string(src)); updErr != nil {
			return updErr
		}
		count++
		return nil
	})
	span.SetAttributes(attribute.Int("documents", count))
	if err != nil {
		return count, err
	}
	return count, nil
}

// shouldSkipDir filters directories that never hold project sources:
// hidden directories, vendor, and node_modules.
func shouldSkipDir(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	if strings.HasPrefix(name, ".") {
		return true
	}
	return name == "vendor" || name == "node_modules"
}

// pathToURI converts a filesystem path to a file:// URI.
func pathToURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return "file://" + path
}
