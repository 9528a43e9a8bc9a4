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
	queryCorpusID    int
	queryTopK        int
	queryLang        string
	queryFilter      string
	queryNoSummary   bool
	queryConsistency bool
	queryFormat      string
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Query a corpus",
	Long: `Submit a natural-language query against a corpus and print the ranked
passages plus an optional generated summary.

Examples:
  # Ask a question, summarized, as markdown
  vektara query --corpus 7 "What if the government infringes your rights?"

  # Retrieval only, filtered by document metadata, as JSON
  vektara query --corpus 7 --no-summary --filter "doc.id = 'we the people'" --format json "free speech"`,
	Args: cobra.ExactArgs(1),
	Run:  runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().IntVarP(&queryCorpusID, "corpus", "c", 0, "Corpus ID to query (required)")
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 5, "Number of results to return")
	queryCmd.Flags().StringVarP(&queryLang, "lang", "l", "auto", "Summary language")
	queryCmd.Flags().StringVarP(&queryFilter, "filter", "f", "", "Metadata filter expression (passed through verbatim)")
	queryCmd.Flags().BoolVar(&queryNoSummary, "no-summary", false, "Skip summary generation")
	queryCmd.Flags().BoolVar(&queryConsistency, "consistency", false, "Request a factual consistency score for the summary")
	queryCmd.Flags().StringVar(&queryFormat, "format", "markdown", "Output format (markdown, json)")
	if err := queryCmd.MarkFlagRequired("corpus"); err != nil {
		return
	}
}

func runQuery(_ *cobra.Command, args []string) {
	logger := util.NewLogger(zerolog.ErrorLevel)
	ctx := context.Background()

	opts := &vektara.QueryOptions{
		TopK:           queryTopK,
		MetadataFilter: queryFilter,
	}
	if !queryNoSummary {
		opts.Summary = &vektara.SummaryConfig{
			Lang:               queryLang,
			FactualConsistency: queryConsistency,
		}
	}

	client := newClient(ctx)
	result, err := client.Query(ctx, queryCorpusID, args[0], opts)
	if err != nil {
		logger.Fatal().Err(err).Msg("Query failed")
	}

	switch queryFormat {
	case "json":
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to marshal result")
		}
		fmt.Println(string(out))
	default:
		fmt.Println(result.Markdown())
	}
}
