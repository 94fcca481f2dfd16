package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/symquery/internal/output"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	root := t.TempDir()

	cfg, err := Load(Sources{WorkDir: root})
	require.NoError(t, err)

	assert.Equal(t, root, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(root, ".aiq", "index.sqlite"), cfg.DBPath)
	assert.Equal(t, filepath.Join(root, ".build", "aiq-symbol-graphs"), cfg.SymbolGraphDir)
	assert.Equal(t, 5, cfg.MembersLimit)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, log.InfoLevel, level)

	format, err := cfg.OutputFormat()
	require.NoError(t, err)
	assert.Equal(t, output.FormatJSON, format)
}

func TestLoad_RootPrecedence(t *testing.T) {
	work := t.TempDir()
	envRoot := t.TempDir()
	flagRoot := t.TempDir()

	cfg, err := Load(Sources{WorkDir: work, Env: map[string]string{EnvProjectRoot: envRoot}})
	require.NoError(t, err)
	assert.Equal(t, envRoot, cfg.ProjectRoot)

	cfg, err = Load(Sources{Root: flagRoot, WorkDir: work, Env: map[string]string{EnvProjectRoot: envRoot}})
	require.NoError(t, err)
	assert.Equal(t, flagRoot, cfg.ProjectRoot)

	require.NoError(t, os.Mkdir(filepath.Join(work, "pkg"), 0755))
	cfg, err = Load(Sources{Root: "pkg", WorkDir: work})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(work, "pkg"), cfg.ProjectRoot)
}

func TestLoad_NoRoot(t *testing.T) {
	_, err := Load(Sources{})
	assert.Error(t, err)
}

func TestLoad_ConfigFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".aiq", "config.toml"), `
db_path = "var/symbols.sqlite"
symbol_graph_dir = "/abs/graphs"
members_limit = 3
log_level = "debug"
format = "text"
`)

	cfg, err := Load(Sources{WorkDir: root})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "var", "symbols.sqlite"), cfg.DBPath)
	assert.Equal(t, "/abs/graphs", cfg.SymbolGraphDir)
	assert.Equal(t, 3, cfg.MembersLimit)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.Format)
}

func TestLoad_MalformedConfigFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".aiq", "config.toml"), `members_limit = "many`)

	_, err := Load(Sources{WorkDir: root})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config.toml")
}

func TestLoad_EnvFileAndEnvironment(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".aiq", "config.toml"), `members_limit = 3`)
	writeFile(t, filepath.Join(root, ".env"), "AIQ_MEMBERS_LIMIT=7\nAIQ_DB_PATH=from-dotenv.sqlite\n")

	cfg, err := Load(Sources{WorkDir: root})
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MembersLimit)
	assert.Equal(t, filepath.Join(root, "from-dotenv.sqlite"), cfg.DBPath)

	cfg, err = Load(Sources{WorkDir: root, Env: map[string]string{
		EnvMembersLimit: "0",
		EnvDBPath:       "/tmp/env.sqlite",
	}})
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.MembersLimit)
	assert.Equal(t, "/tmp/env.sqlite", cfg.DBPath)

	// .env values never leak into the process environment
	_, set := os.LookupEnv(EnvMembersLimit)
	assert.False(t, set)
}

func TestLoad_InvalidValues(t *testing.T) {
	root := t.TempDir()

	tests := map[string]map[string]string{
		"members limit":          {EnvMembersLimit: "five"},
		"negative members limit": {EnvMembersLimit: "-1"},
		"log level":              {EnvLogLevel: "loud"},
		"format":                 {EnvFormat: "xml"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(Sources{WorkDir: root, Env: env})
			assert.Error(t, err)
		})
	}
}

func TestLoad_NegativeMembersLimitInConfigFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".aiq", "config.toml"), `members_limit = -3`)

	_, err := Load(Sources{WorkDir: root})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "members limit")
}

func TestValidate_ZeroMembersLimit(t *testing.T) {
	cfg := Default(t.TempDir())
	cfg.MembersLimit = 0
	assert.NoError(t, cfg.Validate())
}

func TestEnvMap(t *testing.T) {
	env := EnvMap([]string{"A=1", "B=x=y", "EMPTY=", "NOEQUALS"})
	assert.Equal(t, map[string]string{"A": "1", "B": "x=y", "EMPTY": ""}, env)
}
