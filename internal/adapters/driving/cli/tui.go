package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfqa-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/pdfqa-cli/internal/core/ports/driving"
)

var (
	tuiOffline  bool
	tuiStartDir string
)

// errNoTerminal is returned when the TUI is started without a terminal.
var errNoTerminal = errors.New("the interactive UI needs a terminal; use 'pdfqa ask' for scripted runs")

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

Type or browse to a PDF, press enter to load it, then ask questions in
the query field. Answers and status lines appear in the log below.

Controls:
  enter    - Load the PDF / ask the question
  tab      - Switch between the PDF and query fields
  ctrl+o   - Browse for a PDF
  pgup/dn  - Scroll the log
  ctrl+l   - Clear the log
  ctrl+c   - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, tuiCmd} {
		c.Flags().BoolVar(&tuiOffline, "offline", false, "answer from an in-process index instead of the remote service")
		c.Flags().StringVar(&tuiStartDir, "dir", "", "directory the file browser opens in")
	}
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if !stdinIsTerminal() {
		return errNoTerminal
	}
	if sessionFactory == nil {
		return errors.New("query session not configured")
	}

	session, err := sessionFactory(driving.SessionOptions{Offline: tuiOffline})
	if err != nil {
		return err
	}

	ports := tui.NewPorts(session)
	ports.StartDir = tuiStartDir

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	if ctx := cmd.Context(); ctx != nil {
		app.WithContext(ctx)
	}

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
