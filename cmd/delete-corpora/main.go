// Command delete-corpora force-deletes every corpus owned by the
// configured service account.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/pdfqa-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/pdfqa-cli/internal/app"
	"github.com/custodia-labs/pdfqa-cli/internal/core/ports/driving"
)

func main() {
	os.Exit(run())
}

// run reports deletion failures on stdout and still exits 0; only a
// missing or unusable client is a failure.
func run() int {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx, app.Options{})
	if err != nil {
		fmt.Fprintln(os.Stderr, driving.FormatError(err))
		return 1
	}
	defer a.Close() //nolint:errcheck // process is exiting

	if err := a.RemoteErr(); err != nil {
		fmt.Fprintln(os.Stderr, driving.FormatError(err))
		return 1
	}

	_ = cli.RunDeleteAll(ctx, os.Stdout, a.Maintenance)
	return 0
}
