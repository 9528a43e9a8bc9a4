package vektara

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// ChunkDocumentOptions carries the optional arguments for chunk ingestion.
type ChunkDocumentOptions struct {
	// DocID identifies the document; a UUID is generated when empty.
	DocID string

	// ChunkMetadata, when set, must have exactly one entry per chunk.
	ChunkMetadata []map[string]any

	// DocMetadata is attached at the document level.
	DocMetadata map[string]any
}

// CreateDocumentFromChunks ingests one document whose retrievable parts are
// exactly the given chunk strings. The platform performs no further
// splitting, so the caller controls chunk boundaries entirely.
func (c *Client) CreateDocumentFromChunks(ctx context.Context, corpusID int, chunks []string, opts *ChunkDocumentOptions) (string, error) {
	if opts == nil {
		opts = &ChunkDocumentOptions{}
	}
	if len(chunks) == 0 {
		return "", &ValidationError{Reason: "no chunks supplied", Err: ErrContentEmpty}
	}
	if len(opts.ChunkMetadata) > 0 && len(opts.ChunkMetadata) != len(chunks) {
		return "", &ValidationError{
			Reason: fmt.Sprintf("%d chunk metadata entries for %d chunks", len(opts.ChunkMetadata), len(chunks)),
			Err:    ErrLengthMismatch,
		}
	}

	docID := opts.DocID
	if docID == "" {
		docID = uuid.New().String()
	}

	parts := make([]indexDocumentPart, 0, len(chunks))
	for i, chunk := range chunks {
		part := indexDocumentPart{Text: chunk}
		if len(opts.ChunkMetadata) > 0 && opts.ChunkMetadata[i] != nil {
			metadataJSON, err := json.Marshal(opts.ChunkMetadata[i])
			if err != nil {
				return "", fmt.Errorf("failed to marshal chunk metadata: %w", err)
			}
			part.MetadataJSON = string(metadataJSON)
		}
		parts = append(parts, part)
	}

	doc := indexDocument{DocumentID: docID, Parts: parts}
	if opts.DocMetadata != nil {
		metadataJSON, err := json.Marshal(opts.DocMetadata)
		if err != nil {
			return "", fmt.Errorf("failed to marshal document metadata: %w", err)
		}
		doc.MetadataJSON = string(metadataJSON)
	}

	req := indexRequest{CustomerID: c.customerID, CorpusID: corpusID, Document: doc}
	var resp indexResponse
	if err := c.postJSON(ctx, "/v1/core/index", req, &resp); err != nil {
		return "", err
	}

	c.logger.Info().Str("doc_id", docID).Int("parts", len(parts)).Int("corpus_id", corpusID).Msg("chunk document indexed")
	return docID, nil
}

// SectionDocumentOptions carries the optional arguments for section
// ingestion.
type SectionDocumentOptions struct {
	// DocID identifies the document; a UUID is generated when empty.
	DocID string

	// SectionIDs, when set, must have exactly one entry per section. A
	// section ID of zero is accepted by the platform but comes back
	// indistinguishable from an absent ID in returned metadata; that is a
	// platform quirk this layer cannot fix.
	SectionIDs []int

	// SectionMetadata, when set, must have exactly one entry per section.
	SectionMetadata []map[string]any

	// DocMetadata is attached at the document level.
	DocMetadata map[string]any
}

// CreateDocumentFromSections ingests one document with a single level of
// hierarchy: each section carries its own text, and the platform chunks
// within sections.
func (c *Client) CreateDocumentFromSections(ctx context.Context, corpusID int, sections []string, opts *SectionDocumentOptions) (string, error) {
	if opts == nil {
		opts = &SectionDocumentOptions{}
	}
	if len(sections) == 0 {
		return "", &ValidationError{Reason: "no sections supplied", Err: ErrContentEmpty}
	}
	if len(opts.SectionIDs) > 0 && len(opts.SectionIDs) != len(sections) {
		return "", &ValidationError{
			Reason: fmt.Sprintf("%d section IDs for %d sections", len(opts.SectionIDs), len(sections)),
			Err:    ErrLengthMismatch,
		}
	}
	if len(opts.SectionMetadata) > 0 && len(opts.SectionMetadata) != len(sections) {
		return "", &ValidationError{
			Reason: fmt.Sprintf("%d section metadata entries for %d sections", len(opts.SectionMetadata), len(sections)),
			Err:    ErrLengthMismatch,
		}
	}

	docID := opts.DocID
	if docID == "" {
		docID = uuid.New().String()
	}

	wireSections := make([]indexDocumentSection, 0, len(sections))
	for i, text := range sections {
		section := indexDocumentSection{Text: text}
		if len(opts.SectionIDs) > 0 {
			section.ID = opts.SectionIDs[i]
		}
		if len(opts.SectionMetadata) > 0 && opts.SectionMetadata[i] != nil {
			metadataJSON, err := json.Marshal(opts.SectionMetadata[i])
			if err != nil {
				return "", fmt.Errorf("failed to marshal section metadata: %w", err)
			}
			section.MetadataJSON = string(metadataJSON)
		}
		wireSections = append(wireSections, section)
	}

	doc := indexDocument{DocumentID: docID, Sections: wireSections}
	if opts.DocMetadata != nil {
		metadataJSON, err := json.Marshal(opts.DocMetadata)
		if err != nil {
			return "", fmt.Errorf("failed to marshal document metadata: %w", err)
		}
		doc.MetadataJSON = string(metadataJSON)
	}

	req := indexRequest{CustomerID: c.customerID, CorpusID: corpusID, Document: doc}
	var resp indexResponse
	if err := c.postJSON(ctx, "/v1/index", req, &resp); err != nil {
		return "", err
	}

	c.logger.Info().Str("doc_id", docID).Int("sections", len(wireSections)).Int("corpus_id", corpusID).Msg("section document indexed")
	return docID, nil
}

// ListDocuments pages through the documents of a corpus. It returns the
// documents of one page plus the key for the next page; an empty key means
// the listing is exhausted.
func (c *Client) ListDocuments(ctx context.Context, corpusID, numResults int, pageKey string) ([]DocumentInfo, string, error) {
	req := listDocumentsRequest{CorpusID: corpusID, NumResults: numResults, PageKey: pageKey}

	var resp listDocumentsResponse
	if err := c.postJSON(ctx, "/v1/list-documents", req, &resp); err != nil {
		return nil, "", err
	}

	docs := make([]DocumentInfo, 0, len(resp.Document))
	for _, doc := range resp.Document {
		info := DocumentInfo{ID: doc.ID, Metadata: make(map[string]string, len(doc.Metadata))}
		for _, attr := range doc.Metadata {
			info.Metadata[attr.Name] = attr.Value
		}
		docs = append(docs, info)
	}
	return docs, resp.NextPageKey, nil
}

// DocumentInfo is one entry from a document listing.
type DocumentInfo struct {
	ID       string
	Metadata map[string]string
}
