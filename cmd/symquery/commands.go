package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/symquery/internal/indexer"
	"github.com/dshills/symquery/internal/mcp"
	"github.com/dshills/symquery/internal/output"
	"github.com/dshills/symquery/internal/query"
	"github.com/dshills/symquery/internal/storage"
)

func newIndexCommand(opts *globalOptions) *cobra.Command {
	var symbolGraphDir string
	var rebuild bool

	cmd := &cobra.Command{
		Use:     "index",
		Short:   "Ingest exported symbol graphs into the index",
		Example: "symquery index --symbol-graph-dir .build/aiq-symbol-graphs --rebuild",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}

			dir := cfg.SymbolGraphDir
			if symbolGraphDir != "" {
				dir = absPath(opts.workDir, symbolGraphDir)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if rebuild {
				// Nothing is removed unless there is something to index
				if _, err := indexer.Discover(dir); err != nil {
					return err
				}
				if err := removeIndex(cfg.DBPath); err != nil {
					return err
				}
				logger.Info("removed existing index", "db", cfg.DBPath)
			}

			idx := indexer.New(cfg.ProjectRoot, indexer.WithLogger(logger))
			stats, err := idx.Index(ctx, dir, cfg.DBPath)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d symbols from %d documents into %s\n",
				stats.RowsWritten, stats.Documents, cfg.DBPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&symbolGraphDir, "symbol-graph-dir", "", "Directory holding *.symbols.json files (default: <root>/.build/aiq-symbol-graphs)")
	cmd.Flags().BoolVar(&rebuild, "rebuild", false, "Delete the existing index before ingesting")
	return cmd
}

func newTypeCommand(opts *globalOptions) *cobra.Command {
	var membersLimit int

	cmd := &cobra.Command{
		Use:     "type NAME",
		Short:   "Look up types by exact name",
		Example: "symquery type Foo --members-limit 10",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if err := requireIndex(cfg.DBPath); err != nil {
				return err
			}

			limit := cfg.MembersLimit
			if cmd.Flags().Changed("members-limit") {
				if membersLimit < 0 {
					return errors.New("--members-limit must not be negative")
				}
				limit = membersLimit
			}

			records, err := query.New(cfg.DBPath).QueryType(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			return output.Write(cmd.OutOrStdout(), outputFormat(cfg), records)
		},
	}

	cmd.Flags().IntVarP(&membersLimit, "members-limit", "m", query.DefaultMembersLimit, "Maximum member declarations per type (0 disables)")
	return cmd
}

func newMethodCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "method NAME",
		Short:   "Look up methods by exact name",
		Example: "symquery method 'bar()'",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if err := requireIndex(cfg.DBPath); err != nil {
				return err
			}

			records, err := query.New(cfg.DBPath).QueryMethod(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return output.Write(cmd.OutOrStdout(), outputFormat(cfg), records)
		},
	}
}

func newStatusCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show what the index holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if err := requireIndex(cfg.DBPath); err != nil {
				return err
			}

			store, err := storage.NewSQLiteStorage(cfg.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			status, err := store.GetStatus(cmd.Context())
			if err != nil {
				return err
			}
			return output.WriteStatus(cmd.OutOrStdout(), outputFormat(cfg), output.NewStatus(cfg.DBPath, status))
		},
	}
}

func newServeCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}

			server, err := mcp.NewServer(cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to create MCP server: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("MCP server ready, listening on stdio", "version", version, "db", cfg.DBPath,
				"mode", storage.BuildMode, "driver", storage.DriverName)

			in := cmd.InOrStdin()
			g, gctx := errgroup.WithContext(ctx)
			session, endSession := context.WithCancel(gctx)
			defer endSession()

			g.Go(func() error {
				defer endSession()
				err := server.Serve(session, in, cmd.OutOrStdout())
				if ctx.Err() != nil {
					// Shutdown closes the input, so read errors are expected
					return nil
				}
				return err
			})
			g.Go(func() error {
				<-session.Done()
				if ctx.Err() == nil {
					return nil
				}
				logger.Info("shutting down", "cause", context.Cause(ctx))
				// A blocked read only returns once its input is closed
				if closer, ok := in.(io.Closer); ok {
					if err := closer.Close(); err != nil {
						logger.Debug("failed to close input", "err", err)
					}
				}
				return nil
			})

			if err := g.Wait(); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			logger.Info("server stopped")
			return nil
		},
	}
}

// removeIndex deletes the store file and its WAL companions
func removeIndex(dbPath string) error {
	if isMemory(dbPath) {
		return nil
	}
	for _, path := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}
	return nil
}

func absPath(workDir, path string) string {
	if filepath.IsAbs(path) || workDir == "" {
		return path
	}
	return filepath.Join(workDir, path)
}
