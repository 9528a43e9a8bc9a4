package vektara

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestCreateDocumentFromChunks(t *testing.T) {
	platform := newTestPlatform(t)
	platform.respond("/v1/core/index", `{"status":{"code":"OK"}}`)
	client := apiKeyClient(t, platform)

	docID, err := client.CreateDocumentFromChunks(context.Background(), 12,
		[]string{"first chunk", "second chunk"},
		&ChunkDocumentOptions{
			DocID:         "Constitution",
			ChunkMetadata: []map[string]any{{"note": "preamble"}, {"note": "1st amendment"}},
			DocMetadata:   map[string]any{"country": "United States"},
		})
	if err != nil {
		t.Fatalf("chunk ingestion failed: %v", err)
	}
	if docID != "Constitution" {
		t.Errorf("expected doc ID to be preserved, got %q", docID)
	}

	var req indexRequest
	if err := json.Unmarshal(platform.last("/v1/core/index").Body, &req); err != nil {
		t.Fatalf("failed to decode request: %v", err)
	}
	if req.CorpusID != 12 || req.CustomerID != "123" {
		t.Errorf("unexpected corpus/customer: %d/%s", req.CorpusID, req.CustomerID)
	}
	if len(req.Document.Parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(req.Document.Parts))
	}
	if req.Document.Parts[0].Text != "first chunk" {
		t.Errorf("unexpected part text: %q", req.Document.Parts[0].Text)
	}
	if req.Document.Parts[0].MetadataJSON != `{"note":"preamble"}` {
		t.Errorf("unexpected part metadata: %q", req.Document.Parts[0].MetadataJSON)
	}
	if req.Document.MetadataJSON != `{"country":"United States"}` {
		t.Errorf("unexpected document metadata: %q", req.Document.MetadataJSON)
	}
	if len(req.Document.Sections) != 0 {
		t.Errorf("chunk ingestion must not emit sections, got %d", len(req.Document.Sections))
	}
}

func TestCreateDocumentFromChunksGeneratesDocID(t *testing.T) {
	platform := newTestPlatform(t)
	platform.respond("/v1/core/index", `{"status":{"code":"OK"}}`)
	client := apiKeyClient(t, platform)

	docID, err := client.CreateDocumentFromChunks(context.Background(), 12, []string{"text"}, nil)
	if err != nil {
		t.Fatalf("chunk ingestion failed: %v", err)
	}
	if docID == "" {
		t.Error("expected a generated doc ID")
	}
}

func TestCreateDocumentFromChunksValidation(t *testing.T) {
	tests := []struct {
		name    string
		chunks  []string
		opts    *ChunkDocumentOptions
		wantErr error
	}{
		{
			name:    "no chunks",
			chunks:  nil,
			wantErr: ErrContentEmpty,
		},
		{
			name:    "chunk metadata mismatch",
			chunks:  []string{"a", "b", "c"},
			opts:    &ChunkDocumentOptions{ChunkMetadata: []map[string]any{{"k": "v"}}},
			wantErr: ErrLengthMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			platform := newTestPlatform(t)
			client := apiKeyClient(t, platform)

			_, err := client.CreateDocumentFromChunks(context.Background(), 12, tt.chunks, tt.opts)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if got := platform.total(); got != 0 {
				t.Errorf("expected zero HTTP requests, got %d", got)
			}
		})
	}
}

func TestCreateDocumentFromSections(t *testing.T) {
	platform := newTestPlatform(t)
	platform.respond("/v1/index", `{"status":{"code":"OK"}}`)
	client := apiKeyClient(t, platform)

	_, err := client.CreateDocumentFromSections(context.Background(), 6,
		[]string{"I am having beer", "I am watching TV"},
		&SectionDocumentOptions{
			DocID:      "source",
			SectionIDs: []int{1, 2},
		})
	if err != nil {
		t.Fatalf("section ingestion failed: %v", err)
	}

	var req indexRequest
	if err := json.Unmarshal(platform.last("/v1/index").Body, &req); err != nil {
		t.Fatalf("failed to decode request: %v", err)
	}
	if len(req.Document.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(req.Document.Sections))
	}
	if req.Document.Sections[0].ID != 1 || req.Document.Sections[1].ID != 2 {
		t.Errorf("unexpected section IDs: %d, %d", req.Document.Sections[0].ID, req.Document.Sections[1].ID)
	}
	if len(req.Document.Parts) != 0 {
		t.Errorf("section ingestion must not emit parts, got %d", len(req.Document.Parts))
	}
}

func TestCreateDocumentFromSectionsIDMismatch(t *testing.T) {
	platform := newTestPlatform(t)
	client := apiKeyClient(t, platform)

	_, err := client.CreateDocumentFromSections(context.Background(), 6,
		[]string{"one", "two"},
		&SectionDocumentOptions{SectionIDs: []int{1}})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
	if got := platform.total(); got != 0 {
		t.Errorf("expected zero HTTP requests, got %d", got)
	}
}

func TestCreateCorpus(t *testing.T) {
	platform := newTestPlatform(t)
	platform.respond("/v1/create-corpus", `{"corpusId":42}`)
	client := apiKeyClient(t, platform)

	id, err := client.CreateCorpus(context.Background(), "America, the Beautiful", "test corpus")
	if err != nil {
		t.Fatalf("create corpus failed: %v", err)
	}
	if id != 42 {
		t.Errorf("expected corpus ID 42, got %d", id)
	}

	var req createCorpusRequest
	if err := json.Unmarshal(platform.last("/v1/create-corpus").Body, &req); err != nil {
		t.Fatalf("failed to decode request: %v", err)
	}
	if req.Corpus.Name != "America, the Beautiful" {
		t.Errorf("unexpected corpus name: %q", req.Corpus.Name)
	}
}

func TestCreateCorpusMissingID(t *testing.T) {
	platform := newTestPlatform(t)
	platform.respond("/v1/create-corpus", `{}`)
	client := apiKeyClient(t, platform)

	_, err := client.CreateCorpus(context.Background(), "broken", "")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestListDocumentsPaging(t *testing.T) {
	platform := newTestPlatform(t)
	platform.respond("/v1/list-documents",
		`{"document":[{"id":"doc-A","metadata":[{"name":"Author","value":"Lincoln"}]}],"nextPageKey":""}`)
	client := apiKeyClient(t, platform)

	docs, nextKey, err := client.ListDocuments(context.Background(), 7, 10, "")
	if err != nil {
		t.Fatalf("list documents failed: %v", err)
	}
	if nextKey != "" {
		t.Errorf("expected empty next page key, got %q", nextKey)
	}
	if len(docs) != 1 || docs[0].ID != "doc-A" {
		t.Fatalf("unexpected documents: %+v", docs)
	}
	if docs[0].Metadata["Author"] != "Lincoln" {
		t.Errorf("expected metadata map, got %+v", docs[0].Metadata)
	}
}
