package vektara

import (
	"context"
)

const defaultTopK = 5

// ContextConfig controls how much surrounding text the platform returns
// around each match. Zero-valued fields are omitted from the wire payload.
type ContextConfig struct {
	SentencesBefore int    `json:"sentencesBefore,omitempty"`
	SentencesAfter  int    `json:"sentencesAfter,omitempty"`
	CharsBefore     int    `json:"charsBefore,omitempty"`
	CharsAfter      int    `json:"charsAfter,omitempty"`
	StartTag        string `json:"startTag,omitempty"`
	EndTag          string `json:"endTag,omitempty"`
}

// SummaryConfig requests a generated summary over the top matches. The zero
// value asks for a default summary: the platform's default prompt, auto
// language, and TopK summarized results.
type SummaryConfig struct {
	// PromptName selects a prompt/LLM combination registered on the
	// platform; empty means the platform default.
	PromptName string

	// PromptText is a custom prompt template in the platform's template
	// grammar, passed through opaquely.
	PromptText string

	// MaxResults is how many retrieval results feed generation; defaults to
	// the query's TopK.
	MaxResults int

	// Lang is the summary language code; defaults to "auto".
	Lang string

	// FactualConsistency requests a faithfulness score for the summary.
	FactualConsistency bool
}

// QueryOptions carries the optional arguments of a query. A nil options
// value queries with TopK 5 and a default summary, matching the platform's
// own tooling.
type QueryOptions struct {
	// TopK is the number of ranked matches to return; defaults to 5.
	TopK int

	// Offset skips the first Offset matches, for pagination.
	Offset int

	// MetadataFilter is an expression in the platform's filter grammar,
	// passed through opaquely; this layer neither parses nor validates it.
	MetadataFilter string

	// Context, when set, is forwarded as the context window configuration.
	Context *ContextConfig

	// Summary, when set, requests generation. Leave nil for retrieval-only
	// queries.
	Summary *SummaryConfig
}

// Query submits a natural-language query against the corpus and returns the
// normalized result. Optional payload fields are omitted rather than sent
// empty, since the platform treats presence as an opt-in signal.
func (c *Client) Query(ctx context.Context, corpusID int, query string, opts *QueryOptions) (*QueryResult, error) {
	if query == "" {
		return nil, &ValidationError{Reason: "query text is empty", Err: ErrContentEmpty}
	}
	if opts == nil {
		opts = &QueryOptions{Summary: &SummaryConfig{}}
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = defaultTopK
	}

	spec := querySpec{
		Query:         query,
		Start:         opts.Offset,
		NumResults:    topK,
		ContextConfig: opts.Context,
		CorpusKey: []corpusKey{{
			CorpusID:       corpusID,
			MetadataFilter: opts.MetadataFilter,
		}},
	}

	if opts.Summary != nil {
		maxResults := opts.Summary.MaxResults
		if maxResults <= 0 {
			maxResults = topK
		}
		lang := opts.Summary.Lang
		if lang == "" {
			lang = "auto"
		}
		spec.Summary = []summarySpec{{
			SummarizerPromptName:    opts.Summary.PromptName,
			PromptText:              opts.Summary.PromptText,
			MaxSummarizedResults:    maxResults,
			ResponseLang:            lang,
			FactualConsistencyScore: opts.Summary.FactualConsistency,
		}}
	}

	var resp queryResponse
	if err := c.postJSON(ctx, "/v1/query", queryRequest{Query: []querySpec{spec}}, &resp); err != nil {
		return nil, err
	}

	result, err := normalizeQueryResponse(&resp)
	if err != nil {
		return nil, err
	}

	c.logger.Info().Int("corpus_id", corpusID).Int("matches", len(result.References)).Msg("query completed")
	return result, nil
}
