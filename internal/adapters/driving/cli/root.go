// Package cli implements the pdfqa command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfqa-cli/internal/core/ports/driving"
	"github.com/custodia-labs/pdfqa-cli/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

// GlobalOptions are the persistent flags shared by every command.
type GlobalOptions struct {
	Verbose         bool
	CredentialsFile string
	ConfigDir       string
}

// Services are the driving ports the commands call.
type Services struct {
	Settings    driving.SettingsService
	Preview     driving.ChunkPreview
	Maintenance driving.CorpusMaintenance
	NewSession  driving.SessionFactory

	// RemoteErr explains why remote commands cannot run, if set.
	RemoteErr error
}

// Bootstrap builds the services once flags are parsed.
type Bootstrap func(ctx context.Context, opts GlobalOptions) (*Services, error)

var (
	globalOpts GlobalOptions
	bootstrap  Bootstrap

	settingsService    driving.SettingsService
	previewService     driving.ChunkPreview
	maintenanceService driving.CorpusMaintenance
	sessionFactory     driving.SessionFactory
	remoteErr          error
)

var rootCmd = &cobra.Command{
	Use:   "pdfqa",
	Short: "Ask questions about a PDF",
	Long: `pdfqa answers questions about a PDF document.

The PDF text is split into chunks and indexed in a corpus of the
Generative Language semantic retriever; questions are answered by a
grounded answer model that only quotes from that corpus.

Run without a command to open the interactive terminal UI.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initServices,
	RunE:              runTUI,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&globalOpts.Verbose, "verbose", "v", false, "print debug logs to stderr")
	flags.StringVar(&globalOpts.CredentialsFile, "credentials", "", "service-account key file")
	flags.StringVar(&globalOpts.ConfigDir, "config-dir", "", "configuration directory (default ~/.pdfqa)")
}

// initServices enables logging and runs the bootstrap, if one is set.
// Tests inject services directly and leave bootstrap nil.
func initServices(cmd *cobra.Command, _ []string) error {
	if globalOpts.Verbose {
		logger.SetVerbose(true)
	}
	if bootstrap == nil {
		return nil
	}

	services, err := bootstrap(cmd.Context(), globalOpts)
	if err != nil {
		return err
	}
	SetServices(services)
	return nil
}

// SetBootstrap sets the function that builds services after flag parsing.
func SetBootstrap(fn Bootstrap) {
	bootstrap = fn
}

// SetServices sets the services used by the commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	settingsService = s.Settings
	previewService = s.Preview
	maintenanceService = s.Maintenance
	sessionFactory = s.NewSession
	remoteErr = s.RemoteErr
}

// ErrFailed is returned by commands that already printed their errors.
var ErrFailed = errors.New("command failed")

// Execute runs the root command with ctx and prints any error not
// already reported by the command.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, ErrFailed) {
		fmt.Fprintln(rootCmd.ErrOrStderr(), driving.FormatError(err))
	}
	return err
}

// requireMaintenance returns the maintenance service, or the reason
// remote commands cannot run.
func requireMaintenance() (driving.CorpusMaintenance, error) {
	if remoteErr != nil {
		return nil, remoteErr
	}
	if maintenanceService == nil {
		return nil, errors.New("corpus maintenance not configured")
	}
	return maintenanceService, nil
}
