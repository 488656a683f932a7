package index

import (
	"context"
	"errors"
	"testing"

	"docqa/internal/domain"
)

// stubEmbedder embeds by counting a few marker letters, deterministic and
// dependency-free.
type stubEmbedder struct {
	calls int
	fail  bool
}

func (s *stubEmbedder) Embed(_ context.Context, texts []string) ([][]float64, error) {
	s.calls++
	if s.fail {
		return nil, errors.New("embedding backend down")
	}
	out := make([][]float64, len(texts))
	for i, t := range texts {
		vec := make([]float64, 3)
		for _, r := range t {
			switch r {
			case 'a':
				vec[0]++
			case 'b':
				vec[1]++
			case 'c':
				vec[2]++
			}
		}
		out[i] = vec
	}
	return out, nil
}

func (s *stubEmbedder) ModelName() string { return "stub" }

// mapCache is an in-memory EmbeddingCache for tests.
type mapCache struct {
	entries map[string][]float64
}

func newMapCache() *mapCache { return &mapCache{entries: make(map[string][]float64)} }

func (c *mapCache) Get(model, text string) ([]float64, bool) {
	v, ok := c.entries[model+"\x00"+text]
	return v, ok
}

func (c *mapCache) Put(model, text string, vector []float64) error {
	c.entries[model+"\x00"+text] = vector
	return nil
}

func (c *mapCache) Close() error { return nil }

func TestVectorIndexRetrieve(t *testing.T) {
	chunks := []domain.Chunk{
		{SourceID: "a.txt", Text: "aaaa"},
		{SourceID: "b.txt", Text: "bbbb"},
		{SourceID: "c.txt", Text: "cccc"},
	}

	ix, err := BuildVectorIndex(context.Background(), chunks, &stubEmbedder{}, nil)
	if err != nil {
		t.Fatal(err)
	}

	results, err := ix.Retrieve(context.Background(), "aa", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Chunk.SourceID != "a.txt" {
		t.Errorf("expected a.txt first, got %s", results[0].Chunk.SourceID)
	}
	if !results[0].Scored {
		t.Error("expected vector hits to carry scores")
	}
}

func TestVectorIndexBuildFailure(t *testing.T) {
	chunks := []domain.Chunk{{SourceID: "a.txt", Text: "aaaa"}}

	_, err := BuildVectorIndex(context.Background(), chunks, &stubEmbedder{fail: true}, nil)
	if err == nil {
		t.Fatal("expected build error when embedding fails")
	}
}

func TestVectorIndexUsesCache(t *testing.T) {
	chunks := []domain.Chunk{
		{SourceID: "a.txt", Text: "aaaa"},
		{SourceID: "b.txt", Text: "bbbb"},
	}
	cache := newMapCache()

	first := &stubEmbedder{}
	if _, err := BuildVectorIndex(context.Background(), chunks, first, cache); err != nil {
		t.Fatal(err)
	}
	if first.calls == 0 {
		t.Fatal("expected the first build to call the embedder")
	}

	second := &stubEmbedder{}
	if _, err := BuildVectorIndex(context.Background(), chunks, second, cache); err != nil {
		t.Fatal(err)
	}
	if second.calls != 0 {
		t.Errorf("expected cached vectors to avoid embedding calls, got %d", second.calls)
	}
}
