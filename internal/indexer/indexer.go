package indexer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/log"

	"github.com/dshills/symquery/internal/parser"
	"github.com/dshills/symquery/internal/storage"
	"github.com/dshills/symquery/pkg/types"
)

// Indexer coordinates the indexing pipeline: discover -> parse -> store
type Indexer struct {
	parser *parser.Parser
	logger *log.Logger
}

// Option configures an Indexer
type Option func(*Indexer)

// WithLogger sets the logger used for progress reporting
func WithLogger(logger *log.Logger) Option {
	return func(idx *Indexer) {
		if logger != nil {
			idx.logger = logger
		}
	}
}

// Statistics contains statistics about the indexing operation
type Statistics struct {
	Documents      int
	SymbolsSeen    int
	RowsWritten    int
	Skipped        int
	FormatVersions []string
	Duration       time.Duration
}

// New creates an Indexer that relativizes source paths against projectRoot
func New(projectRoot string, opts ...Option) *Indexer {
	idx := &Indexer{
		parser: parser.New(projectRoot),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// Index ingests every symbol graph under sourceDir into the store at dbPath
// and returns the number of records written.
func Index(ctx context.Context, sourceDir, dbPath, projectRoot string, opts ...Option) (int, error) {
	stats, err := New(projectRoot, opts...).Index(ctx, sourceDir, dbPath)
	if err != nil {
		return 0, err
	}
	return stats.RowsWritten, nil
}

// Index ingests every symbol graph under sourceDir into the store at dbPath.
// All documents are written in one transaction; any failure rolls the whole
// run back and leaves the store as it was.
func (idx *Indexer) Index(ctx context.Context, sourceDir, dbPath string) (*Statistics, error) {
	startTime := time.Now()

	files, err := Discover(sourceDir)
	if err != nil {
		return nil, err
	}
	idx.logger.Info("discovered symbol graphs", "dir", sourceDir, "count", len(files))

	if err := ensureStoreDir(dbPath); err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	tx, err := store.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	stats := &Statistics{}
	versions := make(map[string]*semver.Version)

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := idx.parser.ParseFile(file)
		if err != nil {
			return nil, err
		}

		for i := range result.Symbols {
			if err := tx.UpsertSymbol(ctx, storage.FromTypesSymbol(result.Symbols[i])); err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			stats.RowsWritten++
		}

		stats.Documents++
		stats.SymbolsSeen += result.SymbolsSeen
		stats.Skipped += result.Skipped()
		version := "none"
		if result.FormatVersion != nil {
			version = result.FormatVersion.String()
			versions[version] = result.FormatVersion
		}

		idx.logger.Debug("indexed symbol graph",
			"path", file,
			"module", result.Module,
			"version", version,
			"symbols", len(result.Symbols))
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	stats.FormatVersions = sortedVersions(versions)
	stats.Duration = time.Since(startTime)

	idx.logger.Info("index committed",
		"rows", stats.RowsWritten,
		"documents", stats.Documents,
		"duration", stats.Duration)

	return stats, nil
}

// ensureStoreDir creates the directory holding the store file
func ensureStoreDir(dbPath string) error {
	if dbPath == storage.MemoryPath {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return &storage.StoreError{Kind: types.ErrStoreOpen, Op: dbPath, Err: err}
	}
	return nil
}

func sortedVersions(versions map[string]*semver.Version) []string {
	collection := make(semver.Collection, 0, len(versions))
	for _, v := range versions {
		collection = append(collection, v)
	}
	sort.Sort(collection)

	out := make([]string, len(collection))
	for i, v := range collection {
		out[i] = v.String()
	}
	return out
}
