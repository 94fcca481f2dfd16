package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dshills/symquery/internal/config"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	root := newRootCommand(config.EnvMap(os.Environ()), workDir)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
