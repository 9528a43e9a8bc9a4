package vektara

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalizeQueryResponseSummarySentinels(t *testing.T) {
	resp := &queryResponse{ResponseSet: []rawResponseSet{{
		Response: []rawMatch{{Text: "a match", Score: 0.9, DocumentIndex: 0}},
		Document: []rawDocument{{ID: "doc-A"}},
		Summary:  []rawSummary{},
	}}}

	result, err := normalizeQueryResponse(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Summary.Text != NoSummaryText {
		t.Errorf("expected sentinel summary text %q, got %q", NoSummaryText, result.Summary.Text)
	}
	if result.Summary.FactualConsistencyScore != ConsistencyUnavailable {
		t.Errorf("expected sentinel consistency score %q, got %q",
			ConsistencyUnavailable, result.Summary.FactualConsistencyScore)
	}
}

func TestNormalizeQueryResponseResolvesDocIDs(t *testing.T) {
	resp := &queryResponse{ResponseSet: []rawResponseSet{{
		Response: []rawMatch{
			{Text: "first", Score: 0.92, DocumentIndex: 1},
			{Text: "second", Score: 0.85, DocumentIndex: 0},
		},
		Document: []rawDocument{{ID: "doc-A"}, {ID: "doc-B"}},
		Summary: []rawSummary{{
			Text:               "the answer",
			FactualConsistency: &struct{ Score float64 `json:"score"` }{Score: 0.73},
		}},
	}}}

	result, err := normalizeQueryResponse(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Summary.Text != "the answer" {
		t.Errorf("expected summary text, got %q", result.Summary.Text)
	}
	if result.Summary.FactualConsistencyScore != "0.73" {
		t.Errorf("expected consistency score 0.73, got %q", result.Summary.FactualConsistencyScore)
	}

	if len(result.References) != 2 {
		t.Fatalf("expected 2 references, got %d", len(result.References))
	}
	if result.References[0].DocID != "doc-B" || result.References[0].DocIndex != 1 {
		t.Errorf("expected first reference resolved to doc-B, got %+v", result.References[0])
	}
	if result.References[1].DocID != "doc-A" {
		t.Errorf("expected second reference resolved to doc-A, got %+v", result.References[1])
	}
	if result.References[0].Matchness != 0.92 {
		t.Errorf("expected matchness 0.92, got %g", result.References[0].Matchness)
	}
}

func TestNormalizeQueryResponseOutOfRangeIndex(t *testing.T) {
	resp := &queryResponse{ResponseSet: []rawResponseSet{{
		Response: []rawMatch{{Text: "orphan", DocumentIndex: 3}},
		Document: []rawDocument{{ID: "doc-A"}},
	}}}

	_, err := normalizeQueryResponse(resp)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestNormalizeQueryResponseMissingResponseSet(t *testing.T) {
	_, err := normalizeQueryResponse(&queryResponse{})
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestQueryResultMarkdown(t *testing.T) {
	result := &QueryResult{
		Summary: Summary{Text: "the answer", FactualConsistencyScore: ConsistencyUnavailable},
		References: []Reference{
			{DocID: "doc-A", Text: "first passage", Matchness: 0.9},
			{DocID: "doc-B", Text: "second passage", Matchness: 0.8},
		},
	}

	md := result.Markdown()
	for _, want := range []string{
		"### Here is the answer",
		"the answer",
		"### References:",
		"1. From document **doc-A** (matchness=0.9)",
		"2. From document **doc-B** (matchness=0.8)",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}
