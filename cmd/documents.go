package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/code-sleuth/vektara-go/pkg/util"
	"github.com/code-sleuth/vektara-go/pkg/vektara"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	documentsCorpusID int
	documentsPageSize int
)

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "List documents in a corpus",
	Run: func(_ *cobra.Command, _ []string) {
		logger := util.NewLogger(zerolog.ErrorLevel)
		ctx := context.Background()

		client := newClient(ctx)

		var all []vektara.DocumentInfo
		pageKey := ""
		for {
			docs, nextKey, err := client.ListDocuments(ctx, documentsCorpusID, documentsPageSize, pageKey)
			if err != nil {
				logger.Fatal().Err(err).Msg("Failed to list documents")
			}
			all = append(all, docs...)
			if nextKey == "" {
				break
			}
			pageKey = nextKey
		}

		out, err := json.MarshalIndent(all, "", "  ")
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to marshal documents")
		}
		fmt.Println(string(out))
	},
}

func init() {
	rootCmd.AddCommand(documentsCmd)

	documentsCmd.Flags().IntVarP(&documentsCorpusID, "corpus", "c", 0, "Corpus ID (required)")
	documentsCmd.Flags().IntVarP(&documentsPageSize, "page-size", "p", 100, "Documents per listing page")
	if err := documentsCmd.MarkFlagRequired("corpus"); err != nil {
		return
	}
}
