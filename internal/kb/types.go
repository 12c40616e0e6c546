// Package kb normalizes user questions into knowledge-base queries and
// dispatches them to the external answer-retrieval service.
package kb

// Query is the payload POSTed to the knowledge-base service, one per
// submitted question.
type Query struct {
	KBID            string       `json:"kb_id"`
	Persona         QueryPersona `json:"persona"`
	Intent          string       `json:"intent"`
	Question        string       `json:"question"`
	Countries       []string     `json:"countries"`
	AssetClassAny   []string     `json:"asset_class_any"`
	SourceTypeAny   []string     `json:"source_type_any"`
	TrustRankLTE    int          `json:"trust_rank_lte"`
	Limit           int          `json:"limit"`
	Output          string       `json:"output"`
	StrictCitations bool         `json:"strict_citations"`
}

// QueryPersona is the defaulted persona sent with every query. Unlike the
// stored persona, its fields are never empty.
type QueryPersona struct {
	Citizenship  string `json:"citizenship"`
	Residency    string `json:"residency"`
	InvestorType string `json:"investor_type"`
}

// AnswerSection is one titled bullet list within an answer.
type AnswerSection struct {
	Title   string   `json:"title"`
	Bullets []string `json:"bullets"`
}

// Answer is the structured answer returned by the knowledge base.
type Answer struct {
	Summary     string          `json:"summary"`
	Sections    []AnswerSection `json:"sections"`
	Limitations string          `json:"limitations"`
	Citations   []string        `json:"citations"`
}

// EvidenceMeta describes the source a chunk of evidence was retrieved from.
type EvidenceMeta struct {
	URL        string   `json:"url"`
	Title      string   `json:"title"`
	SourceType string   `json:"source_type"`
	AssetClass []string `json:"asset_class"`
	TrustRank  int      `json:"trust_rank"`
	Country    string   `json:"country"`
}

// Evidence is one retrieved chunk backing the answer's citations.
type Evidence struct {
	ChunkID string       `json:"chunk_id"`
	Score   float64      `json:"score"`
	Text    string       `json:"text"`
	Meta    EvidenceMeta `json:"meta"`
}

// AnswerResult is the full response to one question: the answer plus the
// citation evidence behind it.
type AnswerResult struct {
	Answer   Answer     `json:"answer"`
	Evidence []Evidence `json:"evidence"`
}
