package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/code-sleuth/vektara-go/internal/ledger"
	"github.com/code-sleuth/vektara-go/pkg/db"
	"github.com/code-sleuth/vektara-go/pkg/util"
	"github.com/code-sleuth/vektara-go/pkg/vektara"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	uploadCorpusID int
	uploadDocID    string
	uploadLedger   bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload [paths...]",
	Short: "Upload files to a corpus",
	Long: `Upload files to a corpus. Accepts a single file, multiple files, or one
folder (non-recursive). Each file becomes one document whose ID defaults to
the file's base name.

Examples:
  # Upload one file
  vektara upload --corpus 7 constitution.txt

  # Upload several files
  vektara upload --corpus 7 a.txt b.txt c.txt

  # Upload a folder, recording outcomes in the ledger database
  vektara upload --corpus 7 --ledger ./test_data`,
	Args: cobra.MinimumNArgs(1),
	Run:  runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)

	uploadCmd.Flags().IntVarP(&uploadCorpusID, "corpus", "c", 0, "Corpus ID to upload to (required)")
	uploadCmd.Flags().StringVarP(&uploadDocID, "doc-id", "d", "", "Document ID (single file only)")
	uploadCmd.Flags().BoolVar(&uploadLedger, "ledger", false, "Record per-file outcomes in the ledger database")
	if err := uploadCmd.MarkFlagRequired("corpus"); err != nil {
		return
	}
}

func runUpload(_ *cobra.Command, args []string) {
	logger := util.NewLogger(zerolog.ErrorLevel)
	ctx := context.Background()

	cfg := vektara.Config{}
	if uploadLedger {
		database, err := db.NewConnection()
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to ledger database")
		}
		defer database.Close()

		uploads := ledger.New(database)
		if err := uploads.Migrate(ctx); err != nil {
			logger.Fatal().Err(err).Msg("Failed to migrate ledger database")
		}
		cfg.Recorder = uploads
	}

	client, err := vektara.NewClient(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create client")
	}

	source := classifySource(args)
	opts := &vektara.UploadOptions{}
	if uploadDocID != "" {
		if len(args) > 1 {
			logger.Fatal().Msg("--doc-id only applies to a single file upload")
		}
		opts.DocIDs = []string{uploadDocID}
	}

	results, err := client.Upload(ctx, uploadCorpusID, source, opts)
	if err != nil {
		logger.Fatal().Err(err).Msg("Upload failed")
	}

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
			fmt.Printf("FAILED  %s (%s): %v\n", result.Path, result.DocID, result.Err)
			continue
		}
		fmt.Printf("ok      %s (%s)\n", result.Path, result.DocID)
	}
	if failed > 0 {
		logger.Fatal().Int("failed", failed).Int("total", len(results)).Msg("Some uploads failed")
	}
	fmt.Printf("Uploaded %d file(s) to corpus %d.\n", len(results), uploadCorpusID)
}

// classifySource maps the CLI arguments onto an upload source variant: one
// directory argument is a folder, one file argument is a single file, and
// anything else is a file list.
func classifySource(args []string) vektara.UploadSource {
	if len(args) == 1 {
		if info, err := os.Stat(args[0]); err == nil && info.IsDir() {
			return vektara.Folder{Path: args[0]}
		}
		return vektara.SingleFile{Path: args[0]}
	}
	return vektara.FileList{Paths: args}
}
