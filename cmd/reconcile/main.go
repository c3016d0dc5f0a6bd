package main

import (
	"fmt"
	"os"

	"github.com/ledgerlens/reconcile-backend/internal/cli"
	"github.com/ledgerlens/reconcile-backend/internal/infrastructure/config"
)

func main() {
	flags := cli.ParseReconcileFlags()
	cfg := config.LoadOrEnvWithPath(flags.ConfigPath)

	if err := cli.RunReconcile(cfg, flags); err != nil {
		fmt.Fprintf(os.Stderr, "reconcile: %v\n", err)
		os.Exit(1)
	}
}
