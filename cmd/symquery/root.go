package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dshills/symquery/internal/config"
	"github.com/dshills/symquery/internal/output"
	"github.com/dshills/symquery/internal/storage"
)

// globalOptions are the persistent flags shared by every subcommand
type globalOptions struct {
	root    string
	dbPath  string
	format  string
	verbose bool
	quiet   bool

	env     map[string]string
	workDir string
}

func newRootCommand(env map[string]string, workDir string) *cobra.Command {
	opts := &globalOptions{env: env, workDir: workDir}

	root := &cobra.Command{
		Use:   "symquery",
		Short: "Exact-name lookups over exported symbol graphs",
		Long: `symquery ingests exported symbol graph documents into a local SQLite index
and answers exact-name queries for types and methods.`,
		Version: version,
	}
	root.SetVersionTemplate(fmt.Sprintf(
		"symquery {{.Version}}\nBuild Time: %s\nBuild Mode: %s\nSQLite Driver: %s\n",
		buildTime, storage.BuildMode, storage.DriverName))

	flags := root.PersistentFlags()
	flags.StringVar(&opts.root, "root", "", "Project root (default: $"+config.EnvProjectRoot+" or the working directory)")
	flags.StringVarP(&opts.dbPath, "db", "d", "", "Path to the index (default: <root>/"+config.DefaultDBPath+")")
	flags.StringVarP(&opts.format, "format", "f", "", "Output format: json or text")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "Only log errors")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	root.AddCommand(newIndexCommand(opts))
	root.AddCommand(newTypeCommand(opts))
	root.AddCommand(newMethodCommand(opts))
	root.AddCommand(newStatusCommand(opts))
	root.AddCommand(newServeCommand(opts))
	root.SilenceUsage = true
	root.SilenceErrors = true
	return root
}

// load resolves the configuration; flags override every other layer
func (o *globalOptions) load() (config.Config, error) {
	cfg, err := config.Load(config.Sources{
		Root:    o.root,
		WorkDir: o.workDir,
		Env:     o.env,
	})
	if err != nil {
		return config.Config{}, err
	}

	if o.dbPath != "" {
		cfg.DBPath = o.dbPath
		if !isMemory(cfg.DBPath) {
			cfg.DBPath = absPath(o.workDir, o.dbPath)
		}
	}
	if o.format != "" {
		cfg.Format = o.format
	}
	switch {
	case o.verbose:
		cfg.LogLevel = log.DebugLevel.String()
	case o.quiet:
		cfg.LogLevel = log.ErrorLevel.String()
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLogger writes to stderr so stdout stays reserved for results and the
// MCP protocol
func newLogger(cmd *cobra.Command, cfg config.Config) (*log.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Level:  level,
		Prefix: "symquery",
	}), nil
}

func outputFormat(cfg config.Config) output.Format {
	format, err := cfg.OutputFormat()
	if err != nil {
		return output.FormatJSON
	}
	return format
}

// requireIndex reports a missing store with a hint instead of the driver's
// open error
func requireIndex(dbPath string) error {
	if isMemory(dbPath) {
		return nil
	}
	if _, err := os.Stat(dbPath); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("no index at %s: run `symquery index` first or pass --db", dbPath)
	}
	return nil
}

func isMemory(dbPath string) bool {
	return dbPath == storage.MemoryPath
}
