package vectorstore

import (
	"testing"

	"docqa/internal/domain"
)

func TestSearchOrdering(t *testing.T) {
	store := NewMemory()
	chunks := []domain.Chunk{
		{SourceID: "a", Text: "east"},
		{SourceID: "b", Text: "north"},
		{SourceID: "c", Text: "northeast"},
	}
	vectors := [][]float64{
		{1, 0},
		{0, 1},
		{1, 1},
	}
	if err := store.Add(chunks, vectors); err != nil {
		t.Fatal(err)
	}

	results := store.Search([]float64{1, 0}, 3)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Chunk.SourceID != "a" {
		t.Errorf("expected exact match first, got %s", results[0].Chunk.SourceID)
	}
	if results[1].Chunk.SourceID != "c" {
		t.Errorf("expected diagonal second, got %s", results[1].Chunk.SourceID)
	}
	if results[2].Chunk.SourceID != "b" {
		t.Errorf("expected orthogonal last, got %s", results[2].Chunk.SourceID)
	}
}

func TestSearchKBounded(t *testing.T) {
	store := NewMemory()
	store.Add([]domain.Chunk{{SourceID: "a"}}, [][]float64{{1}})

	if got := len(store.Search([]float64{1}, 5)); got != 1 {
		t.Errorf("expected 1 result, got %d", got)
	}
}

func TestAddLengthMismatch(t *testing.T) {
	store := NewMemory()
	err := store.Add([]domain.Chunk{{SourceID: "a"}}, nil)
	if err == nil {
		t.Error("expected error for mismatched lengths")
	}
}

func TestCosineZeroVector(t *testing.T) {
	if got := cosine([]float64{0, 0}, []float64{1, 1}); got != 0 {
		t.Errorf("expected 0 for zero vector, got %f", got)
	}
}
