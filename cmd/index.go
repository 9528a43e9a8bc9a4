package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/code-sleuth/vektara-go/internal/ingest"
	"github.com/code-sleuth/vektara-go/pkg/util"
	"github.com/code-sleuth/vektara-go/pkg/vektara"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	indexCorpusID  int
	indexDocID     string
	indexMaxTokens int
)

var indexCmd = &cobra.Command{
	Use:   "index [file]",
	Short: "Index a file as pre-chunked parts",
	Long: `Index a local file as one document with caller-controlled chunking.
The file is split into fixed token windows locally and each window becomes
one retrievable part; the platform performs no further splitting. HTML files
are converted to Markdown first.

Examples:
  # Index a text file in 256-token chunks
  vektara index --corpus 7 --tokens 256 notes.txt

  # Index an HTML page
  vektara index --corpus 7 page.html`,
	Args: cobra.ExactArgs(1),
	Run:  runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)

	indexCmd.Flags().IntVarP(&indexCorpusID, "corpus", "c", 0, "Corpus ID to index into (required)")
	indexCmd.Flags().StringVarP(&indexDocID, "doc-id", "d", "", "Document ID (defaults to the file's base name)")
	indexCmd.Flags().IntVarP(&indexMaxTokens, "tokens", "t", 256, "Maximum tokens per chunk")
	if err := indexCmd.MarkFlagRequired("corpus"); err != nil {
		return
	}
}

func runIndex(_ *cobra.Command, args []string) {
	logger := util.NewLogger(zerolog.ErrorLevel)
	ctx := context.Background()

	path := args[0]
	content, err := readIndexable(path)
	if err != nil {
		logger.Fatal().Err(err).Str("path", path).Msg("Failed to read file")
	}

	chunker, err := ingest.NewTokenChunker()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create chunker")
	}
	chunks, err := chunker.Chunk(content, indexMaxTokens)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to chunk content")
	}

	docID := indexDocID
	if docID == "" {
		docID = filepath.Base(path)
	}

	client := newClient(ctx)
	docID, err = client.CreateDocumentFromChunks(ctx, indexCorpusID, chunks, &vektara.ChunkDocumentOptions{
		DocID:       docID,
		DocMetadata: map[string]any{"source_path": path},
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to index document")
	}

	fmt.Printf("Indexed %q as document %s in corpus %d (%d chunks).\n", path, docID, indexCorpusID, len(chunks))
}

// readIndexable loads the file, converting HTML to Markdown.
func readIndexable(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return ingest.NewHTMLConverter().ConvertFile(path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
