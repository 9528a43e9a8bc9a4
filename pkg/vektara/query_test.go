package vektara

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

const queryResponseFixture = `{
	"responseSet": [{
		"response": [
			{"text": "We the People...", "score": 0.95, "documentIndex": 0}
		],
		"document": [{"id": "doc-A", "metadata": []}],
		"summary": [{"text": "A founding document.", "factualConsistency": {"score": 0.88}}]
	}]
}`

func decodeQueryPayload(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("failed to decode query payload: %v", err)
	}
	queries, ok := payload["query"].([]any)
	if !ok || len(queries) != 1 {
		t.Fatalf("expected one query in payload, got %v", payload["query"])
	}
	return queries[0].(map[string]any)
}

func TestQueryPayloadShape(t *testing.T) {
	platform := newTestPlatform(t)
	platform.respond("/v1/query", queryResponseFixture)
	client := apiKeyClient(t, platform)

	_, err := client.Query(context.Background(), 12, "what is this?", &QueryOptions{
		TopK:           3,
		MetadataFilter: "doc.id = 'we the people'",
		Summary: &SummaryConfig{
			Lang:               "eng",
			FactualConsistency: true,
		},
	})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}

	spec := decodeQueryPayload(t, platform.last("/v1/query").Body)
	if spec["query"] != "what is this?" {
		t.Errorf("unexpected query text: %v", spec["query"])
	}
	if spec["numResults"] != float64(3) {
		t.Errorf("expected numResults 3, got %v", spec["numResults"])
	}

	corpusKeys := spec["corpusKey"].([]any)
	key := corpusKeys[0].(map[string]any)
	if key["corpusId"] != float64(12) {
		t.Errorf("expected corpusId 12, got %v", key["corpusId"])
	}
	if key["metadataFilter"] != "doc.id = 'we the people'" {
		t.Errorf("expected filter passed through verbatim, got %v", key["metadataFilter"])
	}

	summaries := spec["summary"].([]any)
	summary := summaries[0].(map[string]any)
	if summary["maxSummarizedResults"] != float64(3) {
		t.Errorf("expected maxSummarizedResults to default to topK, got %v", summary["maxSummarizedResults"])
	}
	if summary["responseLang"] != "eng" {
		t.Errorf("expected responseLang eng, got %v", summary["responseLang"])
	}
	if summary["factualConsistencyScore"] != true {
		t.Errorf("expected factualConsistencyScore flag, got %v", summary["factualConsistencyScore"])
	}
}

func TestQueryOmitsAbsentOptionals(t *testing.T) {
	platform := newTestPlatform(t)
	platform.respond("/v1/query", queryResponseFixture)
	client := apiKeyClient(t, platform)

	_, err := client.Query(context.Background(), 12, "bare query", &QueryOptions{TopK: 2})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}

	spec := decodeQueryPayload(t, platform.last("/v1/query").Body)
	for _, absent := range []string{"summary", "contextConfig", "start"} {
		if _, present := spec[absent]; present {
			t.Errorf("expected %q to be omitted, found %v", absent, spec[absent])
		}
	}

	key := spec["corpusKey"].([]any)[0].(map[string]any)
	if _, present := key["metadataFilter"]; present {
		t.Error("expected empty metadataFilter to be omitted")
	}
}

func TestQueryDefaultsRequestSummary(t *testing.T) {
	platform := newTestPlatform(t)
	platform.respond("/v1/query", queryResponseFixture)
	client := apiKeyClient(t, platform)

	result, err := client.Query(context.Background(), 12, "defaults", nil)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}

	spec := decodeQueryPayload(t, platform.last("/v1/query").Body)
	if spec["numResults"] != float64(defaultTopK) {
		t.Errorf("expected default numResults %d, got %v", defaultTopK, spec["numResults"])
	}
	summary := spec["summary"].([]any)[0].(map[string]any)
	if summary["responseLang"] != "auto" {
		t.Errorf("expected default responseLang auto, got %v", summary["responseLang"])
	}

	if result.Summary.Text != "A founding document." {
		t.Errorf("unexpected normalized summary: %q", result.Summary.Text)
	}
	if result.References[0].DocID != "doc-A" {
		t.Errorf("unexpected normalized doc ID: %q", result.References[0].DocID)
	}
	if result.Summary.FactualConsistencyScore != "0.88" {
		t.Errorf("unexpected consistency score: %q", result.Summary.FactualConsistencyScore)
	}
}

func TestQueryEmptyTextRejected(t *testing.T) {
	platform := newTestPlatform(t)
	client := apiKeyClient(t, platform)

	_, err := client.Query(context.Background(), 12, "", nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if got := platform.total(); got != 0 {
		t.Errorf("expected zero HTTP requests, got %d", got)
	}
}

func TestQueryRemoteErrorSurfacesBody(t *testing.T) {
	platform := newTestPlatform(t)
	platform.fail("/v1/query", 400, `{"message":"corpus does not exist"}`)
	client := apiKeyClient(t, platform)

	_, err := client.Query(context.Background(), 999, "anything", nil)
	if !errors.Is(err, ErrRemote) {
		t.Fatalf("expected ErrRemote, got %v", err)
	}

	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected *RemoteError, got %T", err)
	}
	if remoteErr.StatusCode != 400 {
		t.Errorf("expected status 400, got %d", remoteErr.StatusCode)
	}
	if !strings.Contains(remoteErr.Body, "corpus does not exist") {
		t.Errorf("expected raw body surfaced, got %q", remoteErr.Body)
	}
}
