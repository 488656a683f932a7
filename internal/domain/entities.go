package domain

// Mode identifies which retrieval backend is active for the process.
type Mode string

const (
	ModeVector  Mode = "vector"
	ModeLexical Mode = "lexical"
)

// Document is a raw text source produced by ingestion. Documents are
// transient: once chunked they are not retained.
type Document struct {
	SourceID string
	Text     string
}

// Chunk is a bounded contiguous slice of a document's text, the unit of
// retrieval. SourceID carries provenance back to the originating document.
type Chunk struct {
	SourceID string
	Text     string
}

// ScoredChunk pairs a chunk with a backend relevance score. Scored is false
// when the backend does not expose a numeric score.
type ScoredChunk struct {
	Chunk  Chunk
	Score  float64
	Scored bool
}

// RetrievedHit is the per-query view of a retrieved chunk. Snippet is the
// chunk text truncated to the configured snippet length. Score is nil unless
// the caller asked for tracing and the backend produced one.
type RetrievedHit struct {
	Source  string   `json:"source"`
	Snippet string   `json:"snippet"`
	Score   *float64 `json:"score,omitempty"`
}

// QueryResult is the uniform answer envelope returned for every query.
type QueryResult struct {
	Answer    string         `json:"answer"`
	Sources   []RetrievedHit `json:"sources"`
	LatencyMS int64          `json:"latency_ms"`
	Mode      Mode           `json:"mode"`
	RequestID string         `json:"request_id,omitempty"`
}

// Sentinel is the fixed no-answer phrase. The free-mode synthesizer emits it
// when no grounded sentence survives scoring, and the vector-mode generation
// prompt instructs the model to emit the same phrase, so callers can detect
// "no grounded answer" with one string comparison.
const Sentinel = "I cannot find this in the documents."
