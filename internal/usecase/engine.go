package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"docqa/config"
	"docqa/internal/adapter/index"
	"docqa/internal/domain"
	"docqa/internal/port"
)

const (
	minQueryLen = 3
	minTopK     = 1
	maxTopK     = 10
)

// systemPrompt constrains vector-mode generation to the supplied context.
// It names the same sentinel the free-mode synthesizer emits, so no-answer
// detection upstream is one string comparison in both modes.
var systemPrompt = "You are a concise assistant. Answer ONLY using the provided context. " +
	"If the answer is absent, say '" + domain.Sentinel + "'"

// Request carries one query through the engine. RequestID is an opaque
// passthrough returned unchanged in the result.
type Request struct {
	Query     string
	TopK      int
	Trace     bool
	RequestID string
}

// Engine is the single entry point the outer layers call. It lazily builds
// the index on first use, retrieves, composes or generates an answer, and
// returns a uniform result.
type Engine struct {
	cfg       *config.Config
	loader    port.Loader
	chunker   port.Chunker
	embedder  port.Embedder
	generator port.Generator
	cache     port.EmbeddingCache

	// Progress, when set before the first build, is invoked once per
	// document as it is chunked. Used by the CLI to drive a progress bar.
	Progress func(processed, total int, sourceID string)

	mu        sync.Mutex
	ready     bool
	retriever port.Retriever
	mode      domain.Mode
}

// NewEngine wires an engine. embedder and generator may be nil, which pins
// the engine to lexical mode; when both are present the engine starts in
// vector mode and may still degrade to lexical if the corpus embedding fails
// at build time.
func NewEngine(cfg *config.Config, loader port.Loader, chunker port.Chunker, embedder port.Embedder, generator port.Generator, cache port.EmbeddingCache) *Engine {
	mode := domain.ModeLexical
	if embedder != nil && generator != nil {
		mode = domain.ModeVector
	}
	return &Engine{
		cfg:       cfg,
		loader:    loader,
		chunker:   chunker,
		embedder:  embedder,
		generator: generator,
		cache:     cache,
		mode:      mode,
	}
}

// Init builds the index. It is idempotent and safe to call concurrently:
// first callers serialize on one build, later calls return immediately.
// Callers may omit it and rely on lazy init inside AnswerQuery.
func (e *Engine) Init(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ready {
		return nil
	}

	docs, err := e.loader.Load(e.cfg.Corpus.Dir, e.cfg.Corpus.Globs)
	if err != nil {
		return fmt.Errorf("loading corpus: %w", err)
	}

	var chunks []domain.Chunk
	for i, doc := range docs {
		chunks = append(chunks, e.chunker.Split(doc)...)
		if e.Progress != nil {
			e.Progress(i+1, len(docs), doc.SourceID)
		}
	}

	if e.mode == domain.ModeVector {
		vix, err := index.BuildVectorIndex(ctx, chunks, e.embedder, e.cache)
		if err != nil {
			// Construction-time degradation: the vector capability was
			// requested but failed to initialize. Never a per-query error.
			log.Printf("engine: vector index build failed, degrading to lexical mode: %v", err)
			e.mode = domain.ModeLexical
			e.retriever = index.NewLexicalIndex(chunks)
		} else {
			e.retriever = vix
		}
	} else {
		e.retriever = index.NewLexicalIndex(chunks)
	}

	e.ready = true
	return nil
}

// Mode returns the active retrieval mode. Before the index is built it
// reports the requested mode; after Init it reports the resolved one.
func (e *Engine) Mode() domain.Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// AnswerQuery runs one query end to end: validate, ensure the index, borrow
// the top-k chunks, compose or generate an answer, and shape the result.
func (e *Engine) AnswerQuery(ctx context.Context, req Request) (domain.QueryResult, error) {
	start := time.Now()

	query := strings.TrimSpace(req.Query)
	if utf8.RuneCountInString(query) < minQueryLen {
		return domain.QueryResult{}, domain.ErrQueryTooShort
	}

	if err := e.Init(ctx); err != nil {
		return domain.QueryResult{}, e.opaque(err)
	}

	e.mu.Lock()
	retriever, mode := e.retriever, e.mode
	e.mu.Unlock()

	k := clampTopK(req.TopK)
	scored, err := retriever.Retrieve(ctx, query, k)
	if err != nil {
		return domain.QueryResult{}, e.classify(err)
	}

	hits := e.shapeHits(scored)

	var answer string
	if mode == domain.ModeVector && len(hits) > 0 {
		answer, err = e.generate(ctx, query, hits)
		if err != nil {
			return domain.QueryResult{}, err
		}
	} else if len(hits) == 0 {
		answer = domain.Sentinel
	} else {
		answer = Compose(query, hits, answerBudget(query), DefaultMaxChars)
	}

	if !req.Trace {
		for i := range hits {
			hits[i].Score = nil
		}
	}

	return domain.QueryResult{
		Answer:    answer,
		Sources:   hits,
		LatencyMS: time.Since(start).Milliseconds(),
		Mode:      mode,
		RequestID: req.RequestID,
	}, nil
}

// shapeHits converts scored chunks into presentation hits: snippet truncated
// to the configured length, score rounded and attached only when the backend
// produced one.
func (e *Engine) shapeHits(scored []domain.ScoredChunk) []domain.RetrievedHit {
	hits := make([]domain.RetrievedHit, 0, len(scored))
	for _, sc := range scored {
		hit := domain.RetrievedHit{
			Source:  sc.Chunk.SourceID,
			Snippet: truncate(sc.Chunk.Text, e.cfg.Retrieve.SnippetChars),
		}
		if sc.Scored {
			rounded := math.Round(sc.Score*10000) / 10000
			hit.Score = &rounded
		}
		hits = append(hits, hit)
	}
	return hits
}

// generate delegates answer wording to the external generation call over a
// numbered context block assembled from the snippets.
func (e *Engine) generate(ctx context.Context, query string, hits []domain.RetrievedHit) (string, error) {
	var ctxBlock strings.Builder
	for i, h := range hits {
		if i > 0 {
			ctxBlock.WriteString("\n\n")
		}
		fmt.Fprintf(&ctxBlock, "[%d] %s", i+1, h.Snippet)
	}

	userPrompt := fmt.Sprintf("Context:\n%s\n\nQuestion: %s\n", ctxBlock.String(), query)

	answer, err := e.generator.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", e.classify(err)
	}
	if answer == "" {
		answer = domain.Sentinel
	}
	return answer, nil
}

// classify maps a retrieval/generation failure onto the error taxonomy:
// caller-enforced deadlines become the distinguishable timeout fault,
// everything else is opaque.
func (e *Engine) classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", domain.ErrUpstreamTimeout, err)
	}
	return e.opaque(err)
}

// opaque wraps an unexpected failure so only a correlation ID reaches the
// caller; the cause is logged server-side.
func (e *Engine) opaque(err error) error {
	id := uuid.NewString()
	log.Printf("engine: failure correlation_id=%s: %v", id, err)
	return &domain.InternalError{CorrelationID: id, Err: err}
}

func clampTopK(k int) int {
	if k < minTopK {
		return minTopK
	}
	if k > maxTopK {
		return maxTopK
	}
	return k
}

// truncate cuts s to at most max runes. It never fails even when the cut
// splits a word.
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
