package cmd

import (
	"context"

	"github.com/code-sleuth/vektara-go/pkg/util"
	"github.com/code-sleuth/vektara-go/pkg/vektara"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vektara",
	Short: "A CLI for Vectara's RAG platform",
	Long: `vektara is a CLI for Vectara's retrieval and generation platform:
create corpora, upload documents, register filter attributes, and query.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger := util.NewLogger(zerolog.ErrorLevel)
		logger.Fatal().Err(err).Msg("Command failed")
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	logger := util.NewLogger(zerolog.ErrorLevel)
	if err := godotenv.Load(); err != nil {
		logger.Debug().Err(err).Msg("No .env file found; using process environment")
	}
}

// newClient builds a client from the process environment. Credential
// problems are fatal here: a CLI invocation cannot recover from them.
func newClient(ctx context.Context) *vektara.Client {
	logger := util.NewLogger(zerolog.ErrorLevel)
	client, err := vektara.NewClient(ctx, vektara.Config{})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create client")
	}
	return client
}
