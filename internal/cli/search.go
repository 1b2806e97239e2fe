package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"vidseg/internal/adapter/retriever"
	"vidseg/internal/usecase"
)

var (
	searchRecording string
	searchQuery     string
	searchTopK      int
	searchJSON      bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search a recording's segments by text similarity",
	Long: `Embed the query text and rank the recording's segments by cosine
similarity, best first.

Examples:
  vidseg search -r vid1 -q "refractive index"
  vidseg search -r vid1 -q "optical density" --top-k 3 --json`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVarP(&searchRecording, "recording", "r", "", "recording ID (required)")
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "search query (required)")
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 0, "number of results (default from config)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output as JSON")
	searchCmd.MarkFlagRequired("recording")
	searchCmd.MarkFlagRequired("query")
}

type searchResult struct {
	ID        string  `json:"id"`
	Topic     string  `json:"topic"`
	StartTime string  `json:"start_time,omitempty"`
	Duration  string  `json:"duration,omitempty"`
	Score     float64 `json:"score"`
	Text      string  `json:"text"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	st, err := openStore(cfg, GetDataDir())
	if err != nil {
		return err
	}
	defer st.Close()

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	retrieveUC := usecase.NewRetrieveUseCase(
		st,
		embedder,
		retriever.NewCosineRanker(),
		retriever.NewTimelineResolver(),
		newQueryCache(cfg),
	)

	topK := cfg.Retrieve.TopK
	if searchTopK > 0 {
		topK = searchTopK
	}

	scored, err := retrieveUC.SearchByText(searchRecording, searchQuery, topK)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	results := make([]searchResult, 0, len(scored))
	for _, s := range scored {
		if cfg.Retrieve.MinScoreThreshold > 0 && s.Score < cfg.Retrieve.MinScoreThreshold {
			continue
		}
		results = append(results, searchResult{
			ID:        s.Segment.ID,
			Topic:     s.Segment.Topic,
			StartTime: s.Segment.StartTime,
			Duration:  s.Segment.Duration,
			Score:     s.Score,
			Text:      s.Segment.Transcript,
		})
	}

	if searchJSON {
		output, _ := json.MarshalIndent(results, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}
	fmt.Printf("Found %d results for: %s\n\n", len(results), searchQuery)
	for i, r := range results {
		fmt.Printf("--- [%d] %s @ %s (score: %.2f) ---\n", i+1, r.Topic, r.StartTime, r.Score)
		text := r.Text
		if len(text) > 500 {
			text = text[:500] + "..."
		}
		fmt.Println(text)
		fmt.Println()
	}

	return nil
}
