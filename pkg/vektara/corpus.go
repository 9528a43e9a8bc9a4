package vektara

import "context"

// CreateCorpus creates a new corpus and returns its platform-assigned
// integer identifier. The identifier is opaque to this layer; callers pass
// it to every ingestion, filter, and query call.
func (c *Client) CreateCorpus(ctx context.Context, name, description string) (int, error) {
	req := createCorpusRequest{Corpus: corpusSpec{Name: name, Description: description}}

	var resp createCorpusResponse
	if err := c.postJSON(ctx, "/v1/create-corpus", req, &resp); err != nil {
		return 0, err
	}
	if resp.CorpusID == nil {
		return 0, &MalformedResponseError{Reason: "create-corpus response missing corpusId"}
	}

	c.logger.Info().Int("corpus_id", *resp.CorpusID).Str("name", name).Msg("corpus created")
	return *resp.CorpusID, nil
}

// ResetCorpus deletes every document in the corpus while keeping the corpus
// itself, its filter attributes, and its identifier.
func (c *Client) ResetCorpus(ctx context.Context, corpusID int) error {
	if err := c.postJSON(ctx, "/v1/reset-corpus", resetCorpusRequest{CorpusID: corpusID}, nil); err != nil {
		return err
	}
	c.logger.Info().Int("corpus_id", corpusID).Msg("corpus reset")
	return nil
}
