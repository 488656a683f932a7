package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the docqa engine.
type Config struct {
	Corpus    CorpusConfig    `yaml:"corpus"`
	Chunk     ChunkConfig     `yaml:"chunk"`
	Retrieve  RetrieveConfig  `yaml:"retrieve"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Embedding EmbeddingConfig `yaml:"embedding"`
}

// CorpusConfig locates the document corpus.
type CorpusConfig struct {
	Dir   string `yaml:"dir"`
	Globs string `yaml:"globs"` // comma-separated glob patterns
}

// ChunkConfig controls document splitting.
type ChunkConfig struct {
	Size    int `yaml:"size"`    // target chunk size in characters
	Overlap int `yaml:"overlap"` // overlap between consecutive chunks
}

// RetrieveConfig controls retrieval defaults.
type RetrieveConfig struct {
	TopK         int `yaml:"top_k"`
	SnippetChars int `yaml:"snippet_chars"`
}

// OpenAIConfig configures the optional embedding/generation capability.
type OpenAIConfig struct {
	APIKeyEnv  string `yaml:"api_key_env"` // environment variable holding the key
	EmbedModel string `yaml:"embed_model"`
	ChatModel  string `yaml:"chat_model"`
}

// EmbeddingConfig holds vector-mode build options.
type EmbeddingConfig struct {
	Cache bool `yaml:"cache"` // persist chunk embeddings under the corpus dir
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Corpus: CorpusConfig{
			Dir:   "data",
			Globs: "*.txt,*.md",
		},
		Chunk: ChunkConfig{
			Size:    800,
			Overlap: 120,
		},
		Retrieve: RetrieveConfig{
			TopK:         4,
			SnippetChars: 300,
		},
		OpenAI: OpenAIConfig{
			APIKeyEnv:  "OPENAI_API_KEY",
			EmbedModel: "text-embedding-3-small",
			ChatModel:  "gpt-4o-mini",
		},
		Embedding: EmbeddingConfig{
			Cache: false,
		},
	}
}

// Load loads configuration from a YAML file, returning defaults if the file
// does not exist. Environment overrides are applied after the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// VectorEnabled reports whether the external embedding/generation capability
// is provisioned. Resolved once at startup; the active mode never flips
// mid-process.
func (c *Config) VectorEnabled() bool {
	return os.Getenv(c.OpenAI.APIKeyEnv) != ""
}

// APIKey returns the provisioned key, or "" when vector mode is off.
func (c *Config) APIKey() string {
	return os.Getenv(c.OpenAI.APIKeyEnv)
}

// applyEnv overlays environment-style settings on top of the file values.
func (c *Config) applyEnv() {
	if v := os.Getenv("DOCS_DIR"); v != "" {
		c.Corpus.Dir = v
	}
	if v := os.Getenv("DOCS_GLOB"); v != "" {
		c.Corpus.Globs = v
	}
	if v := os.Getenv("CHUNK_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Chunk.Size = n
		}
	}
	if v := os.Getenv("CHUNK_OVERLAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Chunk.Overlap = n
		}
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		c.OpenAI.ChatModel = v
	}
}
