package vektara

// Wire types for the platform's v1 JSON API. Optional fields carry
// omitempty so that absence, which the platform treats as an opt-out,
// is preserved on the wire.

type corpusSpec struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type createCorpusRequest struct {
	Corpus corpusSpec `json:"corpus"`
}

type createCorpusResponse struct {
	CorpusID *int `json:"corpusId"`
}

type resetCorpusRequest struct {
	CorpusID int `json:"corpusId"`
}

type indexDocumentPart struct {
	Text         string `json:"text"`
	MetadataJSON string `json:"metadataJson,omitempty"`
}

type indexDocumentSection struct {
	ID           int    `json:"id,omitempty"`
	Text         string `json:"text"`
	MetadataJSON string `json:"metadataJson,omitempty"`
}

type indexDocument struct {
	DocumentID   string                 `json:"document_id"`
	Parts        []indexDocumentPart    `json:"parts,omitempty"`
	Sections     []indexDocumentSection `json:"section,omitempty"`
	MetadataJSON string                 `json:"metadataJson,omitempty"`
}

type indexRequest struct {
	CustomerID string        `json:"customer_id"`
	CorpusID   int           `json:"corpus_id"`
	Document   indexDocument `json:"document"`
}

type indexResponse struct {
	Status *struct {
		Code         string `json:"code"`
		StatusDetail string `json:"statusDetail"`
	} `json:"status"`
}

type corpusKey struct {
	CorpusID       int    `json:"corpusId"`
	MetadataFilter string `json:"metadataFilter,omitempty"`
}

type summarySpec struct {
	SummarizerPromptName    string `json:"summarizerPromptName,omitempty"`
	PromptText              string `json:"promptText,omitempty"`
	MaxSummarizedResults    int    `json:"maxSummarizedResults"`
	ResponseLang            string `json:"responseLang"`
	FactualConsistencyScore bool   `json:"factualConsistencyScore,omitempty"`
}

type querySpec struct {
	Query         string         `json:"query"`
	Start         int            `json:"start,omitempty"`
	NumResults    int            `json:"numResults"`
	ContextConfig *ContextConfig `json:"contextConfig,omitempty"`
	CorpusKey     []corpusKey    `json:"corpusKey"`
	Summary       []summarySpec  `json:"summary,omitempty"`
}

type queryRequest struct {
	Query []querySpec `json:"query"`
}

type rawAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type rawDocument struct {
	ID       string         `json:"id"`
	Metadata []rawAttribute `json:"metadata"`
}

type rawMatch struct {
	Text          string  `json:"text"`
	Score         float64 `json:"score"`
	DocumentIndex int     `json:"documentIndex"`
}

type rawSummary struct {
	Text               string `json:"text"`
	FactualConsistency *struct {
		Score float64 `json:"score"`
	} `json:"factualConsistency"`
}

type rawResponseSet struct {
	Response []rawMatch    `json:"response"`
	Document []rawDocument `json:"document"`
	Summary  []rawSummary  `json:"summary"`
}

type queryResponse struct {
	ResponseSet []rawResponseSet `json:"responseSet"`
}

type wireFilterAttribute struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Indexed     bool   `json:"indexed"`
	Type        string `json:"type"`
	Level       string `json:"level"`
}

type replaceFilterAttrsRequest struct {
	CorpusID         int                   `json:"corpusId"`
	FilterAttributes []wireFilterAttribute `json:"filterAttributes"`
}

type replaceFilterAttrsResponse struct {
	JobID string `json:"jobId"`
}

type listJobsRequest struct {
	JobID   []string `json:"jobId,omitempty"`
	PageKey string   `json:"pageKey,omitempty"`
}

type wireJob struct {
	ID    string `json:"id"`
	State string `json:"state"`
}

type listJobsResponse struct {
	Job     []wireJob `json:"job"`
	PageKey string    `json:"pageKey"`
}

type listDocumentsRequest struct {
	CorpusID   int    `json:"corpusId"`
	NumResults int    `json:"numResults"`
	PageKey    string `json:"pageKey,omitempty"`
}

type listDocumentsResponse struct {
	Document    []rawDocument `json:"document"`
	NextPageKey string        `json:"nextPageKey"`
}
