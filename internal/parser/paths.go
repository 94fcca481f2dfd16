package parser

import (
	"net/url"
	"path/filepath"
	"strings"
)

const fileScheme = "file://"

// NormalizeURI strips a file:// scheme and percent-decodes the remainder.
// Anything else is returned unchanged.
func NormalizeURI(uri string) string {
	rest, ok := strings.CutPrefix(uri, fileScheme)
	if !ok {
		return uri
	}
	decoded, err := url.PathUnescape(rest)
	if err != nil {
		return rest
	}
	return decoded
}

// Relativize returns path relative to root when path lies strictly inside
// root. Paths outside root, including already relative ones, come back
// unchanged.
func Relativize(path, root string) string {
	if path == "" || root == "" {
		return path
	}

	cleanRoot := filepath.Clean(root)
	cleanPath := filepath.Clean(path)

	prefix := cleanRoot
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}

	if rel, ok := strings.CutPrefix(cleanPath, prefix); ok && rel != "" {
		return rel
	}
	return path
}
