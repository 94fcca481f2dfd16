package indexer

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dshills/symquery/pkg/types"
)

// SymbolGraphSuffix identifies exported symbol graph documents. Matching is
// case-sensitive.
const SymbolGraphSuffix = ".symbols.json"

// Discover walks dir recursively and returns the symbol graph documents it
// contains, sorted by path. Hidden files and directories below dir are
// skipped. An empty result is reported as types.ErrNoDocuments.
func Discover(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip hidden entries, but never the root itself
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() || !strings.HasSuffix(d.Name(), SymbolGraphSuffix) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w in %s: %w", types.ErrNoDocuments, dir, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to discover symbol graphs: %w", err)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", types.ErrNoDocuments, dir)
	}

	sort.Strings(files)
	return files, nil
}
