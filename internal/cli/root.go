package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"docqa/config"
	"docqa/internal/adapter/chunker"
	"docqa/internal/adapter/corpus"
	"docqa/internal/adapter/embedcache"
	"docqa/internal/adapter/embedding"
	"docqa/internal/adapter/llm"
	"docqa/internal/port"
	"docqa/internal/usecase"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "docqa",
	Short: "Answer questions over a local document corpus",
	Long: `docqa ingests text documents from a directory and answers
natural-language questions over them. With an OpenAI key provisioned it
retrieves by embedding similarity and delegates answer wording to the model;
without one it runs fully locally with deterministic lexical retrieval and
extractive answers.

Example usage:
  docqa build                          # Build the index eagerly
  docqa ask -q "What do polar bears eat?"
  docqa ask -q "Compare the options" --top-k 8 --trace --json`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; absence is not an error.
		_ = godotenv.Load()

		var err error
		path := cfgFile
		if path == "" {
			path = "docqa.yaml"
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./docqa.yaml)")
}

// newEngine resolves the active mode once and wires the engine. The returned
// cleanup func closes the embedding cache, if one was opened.
func newEngine() (*usecase.Engine, func()) {
	var (
		embedder  port.Embedder
		generator port.Generator
		cache     port.EmbeddingCache
	)

	if cfg.VectorEnabled() {
		var err error
		embedder, err = embedding.NewOpenAIEmbedder(cfg.APIKey(), cfg.OpenAI.EmbedModel)
		if err == nil {
			generator, err = llm.NewOpenAIGenerator(cfg.APIKey(), cfg.OpenAI.ChatModel)
		}
		if err != nil {
			log.Printf("vector capability unavailable, using lexical mode: %v", err)
			embedder, generator = nil, nil
		}
	}

	if embedder != nil && cfg.Embedding.Cache {
		c, err := embedcache.Open(cfg.Corpus.Dir)
		if err != nil {
			log.Printf("embedding cache unavailable, continuing without it: %v", err)
		} else {
			cache = c
		}
	}

	engine := usecase.NewEngine(cfg, corpus.NewLoader(), chunker.NewTextChunker(cfg.Chunk.Size, cfg.Chunk.Overlap), embedder, generator, cache)

	cleanup := func() {
		if cache != nil {
			cache.Close()
		}
	}
	return engine, cleanup
}
