package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
	"github.com/custodia-labs/pdfqa-cli/internal/core/ports/driving"
)

var (
	askFile      string
	askStyle     string
	askModel     string
	askMaxLength int
	askJSON      bool
	askOffline   bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question...]",
	Short: "Answer questions about a PDF",
	Long: `Loads a PDF and answers each question against it.

The first question indexes the PDF text in a new corpus; later questions
reuse that corpus. Questions are read from the arguments, or one per line
from stdin when no arguments are given.

Answer styles: ABSTRACTIVE (default), EXTRACTIVE, VERBOSE.`,
	Example: `  pdfqa ask -f report.pdf "What was the revenue in 2023?"
  pdfqa ask -f report.pdf --style extractive "Who signed it?" "When?"
  cat questions.txt | pdfqa ask -f report.pdf --json`,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askFile, "file", "f", "", "PDF file to load")
	askCmd.Flags().StringVar(&askStyle, "style", "", "answer style (default from settings)")
	askCmd.Flags().StringVar(&askModel, "model", "", "answer model (default from settings)")
	askCmd.Flags().IntVar(&askMaxLength, "max-length", 0, "maximum chunk length in bytes (default from settings)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output answers as JSON")
	askCmd.Flags().BoolVar(&askOffline, "offline", false, "answer from an in-process index instead of the remote service")
	rootCmd.AddCommand(askCmd)
}

// askResult is one question in --json output.
type askResult struct {
	Query  string         `json:"query"`
	Answer *domain.Answer `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

func runAsk(cmd *cobra.Command, args []string) error {
	if sessionFactory == nil {
		return errors.New("query session not configured")
	}

	opts := driving.SessionOptions{
		Model:     askModel,
		MaxLength: askMaxLength,
		Offline:   askOffline,
	}
	if askStyle != "" {
		style, ok := domain.ParseAnswerStyle(askStyle)
		if !ok {
			return fmt.Errorf("%w: answer style %q", domain.ErrInvalidInput, askStyle)
		}
		opts.Style = style
	}

	session, err := sessionFactory(opts)
	if err != nil {
		return err
	}

	// Progress goes to stderr when stdout carries JSON.
	status := cmd.OutOrStdout()
	if askJSON {
		status = cmd.ErrOrStderr()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if askFile != "" {
		if err := loadPDF(ctx, session, status, askFile); err != nil {
			return fmt.Errorf("%w: %w", ErrFailed, err)
		}
	}

	var results []askResult
	failed, asked := 0, 0
	err = eachQuestion(cmd.InOrStdin(), args, func(query string) bool {
		asked++
		answer, err := askOne(ctx, session, status, query)
		result := askResult{Query: query, Answer: answer}
		if err != nil {
			failed++
			result.Error = err.Error()
		} else if !askJSON {
			fmt.Fprintln(cmd.OutOrStdout(), driving.FormatAnswer(query, answer.Text))
		}
		results = append(results, result)
		return ctx.Err() == nil
	})
	if err != nil {
		return err
	}

	if askJSON {
		if err := writeJSON(cmd.OutOrStdout(), results); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d questions failed", ErrFailed, failed, asked)
	}
	return nil
}

// loadPDF loads path into session and reports the outcome.
func loadPDF(ctx context.Context, session driving.QuerySession, status io.Writer, path string) error {
	result, err := session.Load(ctx, path)
	if err != nil {
		fmt.Fprintln(status, driving.FormatError(err))
		return err
	}
	fmt.Fprintln(status, driving.MsgUploaded)
	if result.StaleHandles {
		fmt.Fprintln(status, driving.StaleWarning(result.Document, result.Handles))
	}
	return nil
}

// askOne runs one question through session, printing the same status
// lines as the interactive UI.
func askOne(ctx context.Context, session driving.QuerySession, status io.Writer, query string) (*domain.Answer, error) {
	if err := session.Validate(query); err != nil {
		fmt.Fprintln(status, driving.MsgMissingInput)
		return nil, err
	}

	if session.NeedsIngestion() {
		fmt.Fprintln(status, driving.MsgProcessing)
		if err := session.Ingest(ctx); err != nil {
			fmt.Fprintln(status, driving.FormatError(err))
			return nil, err
		}
	}

	fmt.Fprintln(status, driving.MsgGenerating)
	answer, err := session.Ask(ctx, query)
	if err != nil {
		fmt.Fprintln(status, driving.FormatError(err))
		return nil, err
	}
	return answer, nil
}

// eachQuestion calls fn for every argument, or for every line of in when
// there are no arguments. Blank stdin lines are skipped. fn returns false
// to stop early.
func eachQuestion(in io.Reader, args []string, fn func(string) bool) error {
	if len(args) > 0 {
		for _, q := range args {
			if !fn(q) {
				return nil
			}
		}
		return nil
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !fn(line) {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read questions: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
