package embedcache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
)

var bucketVectors = []byte("vectors")

// BoltCache memoizes chunk embeddings on disk so unchanged chunk text is not
// re-embedded on every process start. Entries are keyed by a hash of
// model + text, so switching models never serves stale vectors.
type BoltCache struct {
	db *bbolt.DB
}

// Open opens (or creates) the cache database under dir.
func Open(dir string) (*BoltCache, error) {
	cacheDir := filepath.Join(dir, ".docqa")
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}

	db, err := bbolt.Open(filepath.Join(cacheDir, "embeddings.db"), 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedding cache: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketVectors)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltCache{db: db}, nil
}

func cacheKey(model, text string) []byte {
	sum := sha256.Sum256([]byte(model + "\x00" + text))
	return sum[:]
}

// Get returns the cached vector for model + text, if any.
func (c *BoltCache) Get(model, text string) ([]float64, bool) {
	var vector []float64
	found := false

	c.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketVectors).Get(cacheKey(model, text))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &vector); err != nil {
			return nil // treat undecodable entries as misses
		}
		found = true
		return nil
	})

	return vector, found
}

// Put stores the vector for model + text.
func (c *BoltCache) Put(model, text string, vector []float64) error {
	data, err := json.Marshal(vector)
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketVectors).Put(cacheKey(model, text), data)
	})
}

func (c *BoltCache) Close() error {
	return c.db.Close()
}
