package vectorstore

import (
	"errors"
	"math"
	"sort"
	"sync"

	"docqa/internal/domain"
)

// Memory is an in-memory vector store using brute-force cosine similarity.
// Writes happen once at index build; searches are read-only and safe to run
// concurrently.
type Memory struct {
	mu      sync.RWMutex
	chunks  []domain.Chunk
	vectors [][]float64
}

func NewMemory() *Memory {
	return &Memory{}
}

// Add appends chunks with their embedding vectors.
func (m *Memory) Add(chunks []domain.Chunk, vectors [][]float64) error {
	if len(chunks) != len(vectors) {
		return errors.New("chunks and vectors length mismatch")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chunks = append(m.chunks, chunks...)
	m.vectors = append(m.vectors, vectors...)
	return nil
}

// Search returns the k chunks nearest to the query vector by cosine
// similarity, best first, ties kept in insertion order.
func (m *Memory) Search(query []float64, k int) []domain.ScoredChunk {
	m.mu.RLock()
	defer m.mu.RUnlock()

	scored := make([]domain.ScoredChunk, len(m.chunks))
	for i := range m.chunks {
		scored[i] = domain.ScoredChunk{
			Chunk:  m.chunks[i],
			Score:  cosine(query, m.vectors[i]),
			Scored: true,
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k]
}

// Len returns the number of stored vectors.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.chunks)
}

func cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
