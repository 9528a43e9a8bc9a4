package ingest

import (
	"errors"

	"github.com/code-sleuth/vektara-go/pkg/util"

	"github.com/rs/zerolog"
	"github.com/tiktoken-go/tokenizer"
)

var (
	ErrContentEmpty     = errors.New("content cannot be empty")
	ErrInvalidMaxTokens = errors.New("maxTokens must be positive")
)

// TokenChunker splits text into fixed token windows. Its output feeds
// chunk-level ingestion, where the platform performs no further splitting.
type TokenChunker struct {
	encoding tokenizer.Codec
	logger   zerolog.Logger
}

// NewTokenChunker creates a chunker using the cl100k_base encoding.
func NewTokenChunker() (*TokenChunker, error) {
	logger := util.NewLogger(zerolog.ErrorLevel)

	encoding, err := tokenizer.Get(tokenizer.Cl100kBase)
	if err != nil {
		logger.Err(err).Msg("failed to get tokenizer")
		return nil, err
	}

	return &TokenChunker{
		encoding: encoding,
		logger:   logger,
	}, nil
}

// Chunk splits content into pieces of at most maxTokens tokens each.
func (t *TokenChunker) Chunk(content string, maxTokens int) ([]string, error) {
	if content == "" {
		t.logger.Warn().Msg("content is empty")
		return nil, ErrContentEmpty
	}
	if maxTokens <= 0 {
		t.logger.Warn().Msg("maxTokens must be positive")
		return nil, ErrInvalidMaxTokens
	}

	tokens, _, err := t.encoding.Encode(content)
	if err != nil {
		t.logger.Err(err).Msg("failed to tokenize content")
		return nil, err
	}

	if len(tokens) <= maxTokens {
		return []string{content}, nil
	}

	var chunks []string
	for i := 0; i < len(tokens); i += maxTokens {
		end := i + maxTokens
		if end > len(tokens) {
			end = len(tokens)
		}
		text, err := t.encoding.Decode(tokens[i:end])
		if err != nil {
			t.logger.Err(err).Msg("failed to decode chunk tokens")
			return nil, err
		}
		chunks = append(chunks, text)
	}
	return chunks, nil
}
