// Command pdfqa answers questions about a PDF using the Generative Language
// semantic retriever.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/pdfqa-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/pdfqa-cli/internal/app"
	"github.com/custodia-labs/pdfqa-cli/internal/logger"
)

func main() {
	// A .env file is optional.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var built *app.App
	cli.SetBootstrap(func(ctx context.Context, opts cli.GlobalOptions) (*cli.Services, error) {
		a, err := app.Build(ctx, app.Options{
			ConfigDir:       opts.ConfigDir,
			CredentialsFile: opts.CredentialsFile,
		})
		if err != nil {
			return nil, err
		}
		built = a
		return &cli.Services{
			Settings:    a.Settings,
			Preview:     a.Preview,
			Maintenance: a.Maintenance,
			NewSession:  a.NewSession,
			RemoteErr:   a.RemoteErr(),
		}, nil
	})

	err := cli.Execute(ctx)
	if built != nil {
		if cerr := built.Close(); cerr != nil {
			logger.Warn("close clients: %v", cerr)
		}
	}
	if err != nil {
		stop()
		os.Exit(1)
	}
}
