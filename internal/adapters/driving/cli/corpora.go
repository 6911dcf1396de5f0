package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
	"github.com/custodia-labs/pdfqa-cli/internal/core/ports/driving"
)

var (
	corporaJSON bool
	corporaYes  bool
)

// stdinIsTerminal reports whether confirmation prompts can be answered.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var corporaCmd = &cobra.Command{
	Use:   "corpora",
	Short: "Manage remote corpora",
	Long: `List or delete the corpora owned by the service account.

Every question session creates a corpus that stays on the service until
it is deleted. Use delete-all to clean them up.`,
}

var corporaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List corpora",
	Args:  cobra.NoArgs,
	RunE:  runCorporaList,
}

var corporaDeleteAllCmd = &cobra.Command{
	Use:   "delete-all",
	Short: "Delete every corpus",
	Long: `Force-deletes every corpus, including its documents and chunks.

Asks for confirmation unless --yes is given. Non-interactive runs must
pass --yes.`,
	Args: cobra.NoArgs,
	RunE: runCorporaDeleteAll,
}

func init() {
	corporaListCmd.Flags().BoolVar(&corporaJSON, "json", false, "output corpora as JSON")
	corporaDeleteAllCmd.Flags().BoolVarP(&corporaYes, "yes", "y", false, "skip the confirmation prompt")
	corporaCmd.AddCommand(corporaListCmd)
	corporaCmd.AddCommand(corporaDeleteAllCmd)
	rootCmd.AddCommand(corporaCmd)
}

func runCorporaList(cmd *cobra.Command, _ []string) error {
	svc, err := requireMaintenance()
	if err != nil {
		return err
	}

	corpora, err := svc.ListCorpora(cmd.Context())
	if err != nil {
		return fmt.Errorf("list corpora: %w", err)
	}

	if corporaJSON {
		return writeJSON(cmd.OutOrStdout(), corpora)
	}

	out := cmd.OutOrStdout()
	if len(corpora) == 0 {
		fmt.Fprintln(out, "No corpora found.")
		return nil
	}
	for i := range corpora {
		created := "-"
		if !corpora[i].CreateTime.IsZero() {
			created = corpora[i].CreateTime.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(out, "%-40s  %-24s  %s\n", corpora[i].Name, corpora[i].DisplayName, created)
	}
	return nil
}

func runCorporaDeleteAll(cmd *cobra.Command, _ []string) error {
	svc, err := requireMaintenance()
	if err != nil {
		return err
	}

	if !corporaYes {
		if !stdinIsTerminal() {
			return errors.New("refusing to delete corpora without --yes in a non-interactive session")
		}
		fmt.Fprint(cmd.ErrOrStderr(), "Delete ALL corpora and their documents? [y/N]: ")
		answer := readLine(bufio.NewReader(cmd.InOrStdin()))
		if !isYes(answer) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	if err := RunDeleteAll(cmd.Context(), cmd.OutOrStdout(), svc); err != nil {
		return fmt.Errorf("%w: %w", ErrFailed, err)
	}
	return nil
}

// RunDeleteAll deletes every corpus and prints progress to out. It
// returns the deletion error after printing it.
func RunDeleteAll(ctx context.Context, out io.Writer, svc driving.CorpusMaintenance) error {
	done := color.New(color.FgGreen)
	failed := color.New(color.FgRed)

	report, err := svc.DeleteAllCorpora(ctx, func(event domain.DeletionEvent) {
		switch event.Kind {
		case domain.DeletionStarted:
			fmt.Fprintf(out, "Deleting corpus: %s\n", event.Corpus.Name)
		case domain.DeletionCompleted:
			done.Fprintf(out, "Deleted corpus: %s\n", event.Corpus.Name)
		}
	})
	if err != nil {
		failed.Fprintf(out, "Error while deleting corpora: %v\n", err)
		return err
	}

	if report.Listed == 0 {
		fmt.Fprintln(out, "No corpora to delete.")
		return nil
	}
	done.Fprintln(out, "All corpora deleted successfully!")
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func isYes(s string) bool {
	switch strings.ToLower(s) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
