// Package config assembles the runtime configuration from defaults, an
// optional TOML file, an optional .env file and the process environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/dshills/symquery/internal/output"
	"github.com/dshills/symquery/internal/query"
)

// Environment variables read by Load
const (
	EnvProjectRoot    = "AIQ_PROJECT_ROOT"
	EnvDBPath         = "AIQ_DB_PATH"
	EnvSymbolGraphDir = "AIQ_SYMBOL_GRAPH_DIR"
	EnvMembersLimit   = "AIQ_MEMBERS_LIMIT"
	EnvLogLevel       = "AIQ_LOG_LEVEL"
	EnvFormat         = "AIQ_FORMAT"
)

// Paths relative to the project root
const (
	DefaultDBPath         = ".aiq/index.sqlite"
	DefaultSymbolGraphDir = ".build/aiq-symbol-graphs"
	ConfigFile            = ".aiq/config.toml"
	EnvFile               = ".env"
)

// Config represents the application configuration.
type Config struct {
	ProjectRoot    string `toml:"-"`
	DBPath         string `toml:"db_path"`
	SymbolGraphDir string `toml:"symbol_graph_dir"`
	MembersLimit   int    `toml:"members_limit"`
	LogLevel       string `toml:"log_level"`
	Format         string `toml:"format"`
}

// Sources holds the inputs Load reads besides files under the project root.
type Sources struct {
	Root    string            // explicit project root, e.g. from --root
	WorkDir string            // fallback root and base for relative roots
	Env     map[string]string // process environment
}

// EnvMap converts os.Environ-style entries to a map
func EnvMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if key, value, ok := strings.Cut(kv, "="); ok {
			env[key] = value
		}
	}
	return env
}

// Default returns the configuration used when nothing overrides it.
func Default(root string) Config {
	return Config{
		ProjectRoot:    root,
		DBPath:         filepath.Join(root, DefaultDBPath),
		SymbolGraphDir: filepath.Join(root, DefaultSymbolGraphDir),
		MembersLimit:   query.DefaultMembersLimit,
		LogLevel:       "info",
		Format:         string(output.FormatJSON),
	}
}

// Load builds the configuration. Later layers override earlier ones:
// defaults, <root>/.aiq/config.toml, <root>/.env, then src.Env.
func Load(src Sources) (Config, error) {
	root, err := resolveRoot(src)
	if err != nil {
		return Config{}, err
	}

	cfg := Default(root)

	if err := cfg.loadFile(filepath.Join(root, ConfigFile)); err != nil {
		return Config{}, err
	}

	dotenv, err := readEnvFile(filepath.Join(root, EnvFile))
	if err != nil {
		return Config{}, err
	}
	if err := cfg.applyEnv(dotenv); err != nil {
		return Config{}, fmt.Errorf("%s: %w", EnvFile, err)
	}
	if err := cfg.applyEnv(src.Env); err != nil {
		return Config{}, err
	}

	cfg.DBPath = cfg.resolve(cfg.DBPath)
	cfg.SymbolGraphDir = cfg.resolve(cfg.SymbolGraphDir)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func resolveRoot(src Sources) (string, error) {
	root := src.Root
	if root == "" {
		root = src.Env[EnvProjectRoot]
	}
	if root == "" {
		root = src.WorkDir
	}
	if root == "" {
		return "", errors.New("no project root: set --root or " + EnvProjectRoot)
	}
	if !filepath.IsAbs(root) && src.WorkDir != "" {
		root = filepath.Join(src.WorkDir, root)
	}
	return filepath.Abs(root)
}

// loadFile overlays the TOML file at path if it exists
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// readEnvFile parses the .env file at path without touching the process
// environment. A missing file yields no values.
func readEnvFile(path string) (map[string]string, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return values, nil
}

func (c *Config) applyEnv(env map[string]string) error {
	if v := env[EnvDBPath]; v != "" {
		c.DBPath = v
	}
	if v := env[EnvSymbolGraphDir]; v != "" {
		c.SymbolGraphDir = v
	}
	if v := env[EnvMembersLimit]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvMembersLimit, v, err)
		}
		c.MembersLimit = n
	}
	if v := env[EnvLogLevel]; v != "" {
		c.LogLevel = v
	}
	if v := env[EnvFormat]; v != "" {
		c.Format = v
	}
	return nil
}

// resolve makes a relative path relative to the project root
func (c *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.ProjectRoot, path)
}

// Validate checks the values that have a fixed vocabulary
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := c.OutputFormat(); err != nil {
		return err
	}
	if c.DBPath == "" {
		return errors.New("db path must not be empty")
	}
	if c.MembersLimit < 0 {
		return fmt.Errorf("members limit must not be negative, got %d", c.MembersLimit)
	}
	return nil
}

// Level returns the configured log level
func (c *Config) Level() (log.Level, error) {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// OutputFormat returns the configured output format
func (c *Config) OutputFormat() (output.Format, error) {
	return output.ParseFormat(c.Format)
}
