package cmd

import (
	"context"
	"fmt"

	"github.com/code-sleuth/vektara-go/pkg/util"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	corpusName        string
	corpusDescription string
	corpusID          int
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Manage corpora",
	Long:  `Manage corpora on the platform - create and reset.`,
}

var corpusCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new corpus",
	Run: func(_ *cobra.Command, _ []string) {
		logger := util.NewLogger(zerolog.ErrorLevel)
		ctx := context.Background()

		client := newClient(ctx)
		id, err := client.CreateCorpus(ctx, corpusName, corpusDescription)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to create corpus")
		}

		fmt.Printf("Corpus created with ID %d. You will need this ID to upload to and query the corpus.\n", id)
	},
}

var corpusResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all documents in a corpus",
	Run: func(_ *cobra.Command, _ []string) {
		logger := util.NewLogger(zerolog.ErrorLevel)
		ctx := context.Background()

		client := newClient(ctx)
		if err := client.ResetCorpus(ctx, corpusID); err != nil {
			logger.Fatal().Err(err).Msg("Failed to reset corpus")
		}

		fmt.Printf("Corpus %d reset.\n", corpusID)
	},
}

func init() {
	rootCmd.AddCommand(corpusCmd)
	corpusCmd.AddCommand(corpusCreateCmd)
	corpusCmd.AddCommand(corpusResetCmd)

	corpusCreateCmd.Flags().StringVarP(&corpusName, "name", "n", "", "Corpus name (required)")
	corpusCreateCmd.Flags().StringVarP(&corpusDescription, "description", "d", "", "Corpus description")
	if err := corpusCreateCmd.MarkFlagRequired("name"); err != nil {
		return
	}

	corpusResetCmd.Flags().IntVarP(&corpusID, "corpus", "c", 0, "Corpus ID (required)")
	if err := corpusResetCmd.MarkFlagRequired("corpus"); err != nil {
		return
	}
}
