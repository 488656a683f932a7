package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"docqa/internal/domain"
	"docqa/internal/usecase"
)

var (
	askQuery     string
	askTopK      int
	askTrace     bool
	askJSON      bool
	askRequestID string
	askTimeout   time.Duration
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Answer a question over the corpus",
	Long: `Retrieve the most relevant chunks for the question and compose a
grounded answer. The exact phrase "` + domain.Sentinel + `" means no grounded
answer was found.

Examples:
  docqa ask -q "What do polar bears eat?"
  docqa ask -q "List the findings" --top-k 8 --trace --json`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askQuery, "query", "q", "", "question to answer (required)")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of chunks to retrieve (default from config, clamped to 1..10)")
	askCmd.Flags().BoolVar(&askTrace, "trace", false, "include retrieval scores in the sources")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output as JSON")
	askCmd.Flags().StringVar(&askRequestID, "request-id", "", "request identifier (generated when omitted)")
	askCmd.Flags().DurationVar(&askTimeout, "timeout", 0, "time budget for external calls (0 = none)")
	askCmd.MarkFlagRequired("query")
}

func runAsk(cmd *cobra.Command, args []string) error {
	engine, cleanup := newEngine()
	defer cleanup()

	topK := cfg.Retrieve.TopK
	if askTopK > 0 {
		topK = askTopK
	}

	requestID := askRequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	ctx := context.Background()
	if askTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, askTimeout)
		defer cancel()
	}

	result, err := engine.AnswerQuery(ctx, usecase.Request{
		Query:     askQuery,
		TopK:      topK,
		Trace:     askTrace,
		RequestID: requestID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUpstreamTimeout) {
			return fmt.Errorf("upstream timeout: %w", err)
		}
		return err
	}

	if askJSON {
		output, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Println(result.Answer)
	fmt.Printf("\nmode=%s latency=%dms request_id=%s\n", result.Mode, result.LatencyMS, result.RequestID)
	for i, h := range result.Sources {
		if h.Score != nil {
			fmt.Printf("  [%d] %s (score: %.4f)\n", i+1, h.Source, *h.Score)
		} else {
			fmt.Printf("  [%d] %s\n", i+1, h.Source)
		}
	}
	return nil
}
