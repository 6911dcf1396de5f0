// Package app wires adapters and services into the driving ports used by
// the command-line entry points.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/pdfqa-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/pdfqa-cli/internal/adapters/driven/genai"
	"github.com/custodia-labs/pdfqa-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pdfqa-cli/internal/connectors/filesystem"
	"github.com/custodia-labs/pdfqa-cli/internal/connectors/google"
	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
	"github.com/custodia-labs/pdfqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pdfqa-cli/internal/core/ports/driving"
	"github.com/custodia-labs/pdfqa-cli/internal/core/services"
	"github.com/custodia-labs/pdfqa-cli/internal/logger"
	"github.com/custodia-labs/pdfqa-cli/internal/normalisers/pdf"
	"github.com/custodia-labs/pdfqa-cli/internal/postprocessors"
)

// Environment variables consulted for the credentials file, in order.
const (
	EnvCredentialsFile = "PDFQA_CREDENTIALS_FILE"
	EnvGoogleCreds     = "GOOGLE_APPLICATION_CREDENTIALS"
)

// Options are the process-level inputs to Build.
type Options struct {
	// ConfigDir holds config.toml. Empty means ~/.pdfqa.
	ConfigDir string

	// CredentialsFile is the --credentials flag value, if given.
	CredentialsFile string
}

// App holds the services wired for one process. The remote clients are
// created once in Build and released by Close.
type App struct {
	Settings    *services.SettingsService
	Preview     *services.PreviewService
	Maintenance *services.MaintenanceService

	settings  *domain.AppSettings
	loader    *services.DocumentLoader
	retriever driven.RetrieverService
	generator driven.AnswerGenerator
	clients   *google.Clients
	remoteErr error
}

// Build loads settings and connects to the remote service. A credentials
// or client failure does not fail Build: offline commands keep working and
// RemoteErr reports why remote ones cannot run.
func Build(ctx context.Context, opts Options) (*App, error) {
	store := openConfigStore(opts.ConfigDir)

	settingsService := services.NewSettingsService(store)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if settings.Log.Verbose {
		logger.SetVerbose(true)
	}

	loader := services.NewDocumentLoader(filesystem.NewReader(filesystem.DefaultMaxFileSize), pdf.New())

	a := &App{
		Settings: settingsService,
		Preview:  services.NewPreviewService(loader, postprocessors.ChunkingPipelineFactory, settings.Chunking.MaxLength),
		settings: settings,
		loader:   loader,
	}

	credentials := ResolveCredentialsFile(opts.CredentialsFile, settings)
	if err := a.connect(ctx, credentials, settings.RateLimit); err != nil {
		logger.Warn("remote service unavailable: %v", err)
		a.remoteErr = err
	}
	a.Maintenance = services.NewMaintenanceService(a.retriever)

	return a, nil
}

// openConfigStore opens config.toml in dir. When the directory or file is
// unusable the defaults are served from memory so commands still run;
// settings changes are then lost at exit.
func openConfigStore(dir string) driven.ConfigStore {
	store, err := file.NewConfigStore(dir)
	if err != nil {
		logger.Warn("config unavailable, using defaults for this run: %v", err)
		return memory.NewConfigStore()
	}
	return store
}

// connect loads the service account and creates the shared clients.
func (a *App) connect(ctx context.Context, credentialsFile string, limits domain.RateLimitSettings) error {
	logger.Section("Remote Service")
	logger.Debug("credentials: %s", credentialsFile)

	creds, err := google.LoadServiceAccount(ctx, credentialsFile)
	if err != nil {
		return err
	}

	clients, err := google.NewClients(ctx, google.NewTokenSource(creds.TokenSource))
	if err != nil {
		return err
	}
	a.clients = clients

	retrieverLimiter := google.NewRateLimiterWithConfig(google.RateLimitConfig{
		RequestsPerSecond: limits.RequestsPerSecond,
		BurstSize:         limits.Burst,
	})
	a.retriever = genai.NewRetriever(clients.Retriever, retrieverLimiter)
	a.generator = genai.NewGenerator(clients.Generative, google.NewRateLimiter(google.ServiceGenerative))

	logger.Debug("rate limit: %.2f req/s, burst %d", limits.RequestsPerSecond, limits.Burst)
	return nil
}

// RemoteErr returns why the remote service is unavailable, or nil.
func (a *App) RemoteErr() error {
	if a.remoteErr == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", domain.ErrServiceUnavailable, a.remoteErr)
}

// AppSettings returns the settings read at startup.
func (a *App) AppSettings() domain.AppSettings {
	return *a.settings
}

// NewSession creates an empty query session. Zero option values keep the
// configured settings. Offline sessions use an in-process retriever and
// never contact the remote service.
func (a *App) NewSession(opts driving.SessionOptions) (driving.QuerySession, error) {
	cfg := services.SessionConfigFrom(a.settings)
	if opts.Style != "" {
		if !opts.Style.IsValid() {
			return nil, fmt.Errorf("%w: answer style %q", domain.ErrInvalidInput, opts.Style)
		}
		cfg.Answer.Style = opts.Style
	}
	if opts.Model != "" {
		cfg.Answer.Model = opts.Model
	}
	if opts.MaxLength < 0 {
		return nil, fmt.Errorf("%w: max length must be positive", domain.ErrInvalidInput)
	}
	if opts.MaxLength > 0 {
		cfg.MaxChunkLength = opts.MaxLength
	}

	retriever, generator := a.retriever, a.generator
	if opts.Offline {
		local := memory.NewRetriever()
		retriever, generator = local, local
	} else if err := a.RemoteErr(); err != nil {
		return nil, err
	}

	return services.NewSession(
		a.loader,
		services.NewCorpusBuilder(retriever),
		services.NewQueryRunner(generator, cfg.Answer),
		postprocessors.ChunkingPipelineFactory,
		cfg,
	), nil
}

// Close releases the remote clients.
func (a *App) Close() error {
	return a.clients.Close()
}

// ResolveCredentialsFile picks the service-account key file: the flag,
// then PDFQA_CREDENTIALS_FILE, then GOOGLE_APPLICATION_CREDENTIALS, then
// the remote.credentials_file setting, then the default file name.
func ResolveCredentialsFile(flag string, settings *domain.AppSettings) string {
	if flag != "" {
		return flag
	}
	for _, env := range []string{EnvCredentialsFile, EnvGoogleCreds} {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	if settings != nil && settings.Remote.CredentialsFile != "" {
		return settings.Remote.CredentialsFile
	}
	return domain.DefaultCredentialsFile
}
