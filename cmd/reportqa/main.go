// Command reportqa answers questions about medical lab reports.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/reportqa/internal/adapters/driven/ai"
	"github.com/custodia-labs/reportqa/internal/adapters/driven/config/file"
	"github.com/custodia-labs/reportqa/internal/adapters/driving/cli"
	"github.com/custodia-labs/reportqa/internal/core/services"
)

// version is set by -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// A missing .env is normal
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dir, err := file.DefaultDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	store, err := file.NewConfigStore(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return 1
	}
	settings := services.NewSettingsService(store, ai.NewConfigValidator())

	cli.SetVersion(version)
	cli.SetSettingsService(settings)
	cli.SetBootstrap(newBootstrap(settings))
	cli.SetDoctorChecks(doctorChecks(settings)...)
	defer func() {
		if err := cli.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: shutdown: %v\n", err)
		}
	}()

	if err := cli.Execute(ctx); err != nil {
		return 1
	}
	return 0
}
