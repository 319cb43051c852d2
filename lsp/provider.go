// Copyright © 2025 The phpls authors

package lsp

import (
	"fmt"
	"os"
)

// FSProvider reads document content from the local filesystem. It is
// the default content provider behind the analysis project; missing or
// unreadable files surface as wrapped errors which the core treats as
// "document unavailable".
type FSProvider struct{}

// Read returns the text of the document at uri.
func (FSProvider) Read(uri string) (string, error) {
	data, err := os.ReadFile(uriToPath(uri)) //nolint:gosec // serves editor-requested files
	if err != nil {
		return "", fmt.Errorf("read %s: %w", uri, err)
	}
	return string(data), nil
}

// URIToPath translates a file:// URI to a filesystem path.
func (FSProvider) URIToPath(uri string) string {
	return uriToPath(uri)
}
