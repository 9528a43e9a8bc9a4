package vektara

import (
	"fmt"
	"strconv"
	"strings"
)

// Sentinel values used when no summary was requested or returned. Callers
// should test against these rather than expecting absent fields.
const (
	NoSummaryText          = "No summary available."
	ConsistencyUnavailable = "N/A"
)

// Summary is the generated answer attached to a query result.
type Summary struct {
	Text string

	// FactualConsistencyScore is the platform's faithfulness score for the
	// summary, formatted as a decimal string, or "N/A" when not computed.
	FactualConsistencyScore string
}

// Reference is one ranked match from a query.
type Reference struct {
	DocIndex  int
	DocID     string
	Text      string
	Matchness float64
}

// QueryResult is the normalized, presentation-independent shape of a query
// response.
type QueryResult struct {
	Summary    Summary
	References []Reference
}

// normalizeQueryResponse flattens the platform's nested response. Each
// match's document index is resolved against the response's document list;
// an out-of-range index means the response violates the platform contract.
func normalizeQueryResponse(resp *queryResponse) (*QueryResult, error) {
	if len(resp.ResponseSet) == 0 {
		return nil, &MalformedResponseError{Reason: "query response missing responseSet"}
	}

	// One query per request means one entry in the response set.
	set := resp.ResponseSet[0]

	result := &QueryResult{
		Summary: Summary{
			Text:                    NoSummaryText,
			FactualConsistencyScore: ConsistencyUnavailable,
		},
	}

	if len(set.Summary) > 0 && set.Summary[0].Text != "" {
		result.Summary.Text = set.Summary[0].Text
		if fc := set.Summary[0].FactualConsistency; fc != nil {
			result.Summary.FactualConsistencyScore = strconv.FormatFloat(fc.Score, 'f', -1, 64)
		}
	}

	for _, match := range set.Response {
		if match.DocumentIndex < 0 || match.DocumentIndex >= len(set.Document) {
			return nil, &MalformedResponseError{
				Reason: fmt.Sprintf("documentIndex %d out of range for %d documents", match.DocumentIndex, len(set.Document)),
			}
		}
		result.References = append(result.References, Reference{
			DocIndex:  match.DocumentIndex,
			DocID:     set.Document[match.DocumentIndex].ID,
			Text:      match.Text,
			Matchness: match.Score,
		})
	}

	return result, nil
}

// Markdown renders the result as a narrative document: the summary followed
// by a numbered reference list. It is a derived view over the same
// normalized data.
func (r *QueryResult) Markdown() string {
	var b strings.Builder

	b.WriteString("### Here is the answer\n")
	b.WriteString(r.Summary.Text)
	b.WriteString("\n\n")
	if r.Summary.FactualConsistencyScore != ConsistencyUnavailable {
		fmt.Fprintf(&b, "Factual consistency score: %s\n\n", r.Summary.FactualConsistencyScore)
	}
	b.WriteString("### References:\n")

	for i, ref := range r.References {
		fmt.Fprintf(&b, "\n%d. From document **%s** (matchness=%g):\n  _...%s..._\n",
			i+1, ref.DocID, ref.Matchness, strings.TrimSpace(ref.Text))
	}
	return b.String()
}
