package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfqa-cli/internal/core/domain"
)

var (
	chunkFile      string
	chunkMaxLength int
	chunkJSON      bool
)

var chunkCmd = &cobra.Command{
	Use:   "chunk",
	Short: "Preview how a PDF is split into chunks",
	Long: `Extracts the text of a PDF and prints the chunks that would be indexed.

Nothing is sent to the remote service. Use it to tune --max-length
before asking questions.`,
	Args: cobra.NoArgs,
	RunE: runChunk,
}

func init() {
	chunkCmd.Flags().StringVarP(&chunkFile, "file", "f", "", "PDF file to chunk")
	chunkCmd.Flags().IntVar(&chunkMaxLength, "max-length", 0, "maximum chunk length in bytes (default from settings)")
	chunkCmd.Flags().BoolVar(&chunkJSON, "json", false, "output chunks as JSON")
	_ = chunkCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(chunkCmd)
}

// chunkPreview is the --json output of the chunk command.
type chunkPreview struct {
	Title      string       `json:"title"`
	Pages      int          `json:"pages"`
	Characters int          `json:"characters"`
	Chunks     []chunkEntry `json:"chunks"`
}

type chunkEntry struct {
	Position int    `json:"position"`
	Length   int    `json:"length"`
	Content  string `json:"content"`
}

func runChunk(cmd *cobra.Command, _ []string) error {
	if previewService == nil {
		return errors.New("preview service not configured")
	}
	if chunkMaxLength < 0 {
		return fmt.Errorf("%w: max length must be positive", domain.ErrInvalidInput)
	}

	doc, chunks, err := previewService.Preview(cmd.Context(), chunkFile, chunkMaxLength)
	if err != nil {
		return err
	}

	preview := chunkPreview{
		Title:      doc.Title,
		Pages:      doc.PageCount,
		Characters: len(doc.Content),
		Chunks:     make([]chunkEntry, len(chunks)),
	}
	for i := range chunks {
		preview.Chunks[i] = chunkEntry{
			Position: chunks[i].Position,
			Length:   len(chunks[i].Content),
			Content:  chunks[i].Content,
		}
	}

	if chunkJSON {
		return writeJSON(cmd.OutOrStdout(), preview)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d pages, %d characters, %d chunks\n",
		preview.Title, preview.Pages, preview.Characters, len(preview.Chunks))
	for _, c := range preview.Chunks {
		fmt.Fprintf(out, "\n[%d] %d bytes\n%s\n", c.Position+1, c.Length, c.Content)
	}
	return nil
}
