package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the retrieval index eagerly",
	Long: `Build the in-memory index now instead of lazily on the first
question. Useful to warm up vector-mode embeddings (and the optional
embedding cache) ahead of serving queries.`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	engine, cleanup := newEngine()
	defer cleanup()

	var bar *progressbar.ProgressBar
	var barMu sync.Mutex

	engine.Progress = func(processed, total int, sourceID string) {
		barMu.Lock()
		defer barMu.Unlock()
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("Chunking"),
			)
		}
		bar.Describe(fmt.Sprintf("Chunking %s", filepath.Base(sourceID)))
		bar.Set(processed)
	}

	if err := engine.Init(context.Background()); err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}

	if bar != nil {
		bar.Finish()
		fmt.Println()
	}
	fmt.Printf("Index ready (mode=%s, dir=%s)\n", engine.Mode(), cfg.Corpus.Dir)
	return nil
}
