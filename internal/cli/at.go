package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"vidseg/internal/adapter/retriever"
	"vidseg/internal/usecase"
)

var (
	atRecording string
	atTimestamp string
	atJSON      bool
)

var atCmd = &cobra.Command{
	Use:   "at",
	Short: "Find the segment covering a playback instant",
	Long: `Look up which topic segment covers a moment in the recording.
The timestamp uses the minute.second encoding ("5.17" = 5m17s).

Examples:
  vidseg at -r vid1 -t 5.17
  vidseg at -r vid1 -t 0.35 --json`,
	RunE: runAt,
}

func init() {
	rootCmd.AddCommand(atCmd)
	atCmd.Flags().StringVarP(&atRecording, "recording", "r", "", "recording ID (required)")
	atCmd.Flags().StringVarP(&atTimestamp, "time", "t", "", "timestamp, mm.ss (required)")
	atCmd.Flags().BoolVar(&atJSON, "json", false, "output as JSON")
	atCmd.MarkFlagRequired("recording")
	atCmd.MarkFlagRequired("time")
}

func runAt(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	st, err := openStore(cfg, GetDataDir())
	if err != nil {
		return err
	}
	defer st.Close()

	retrieveUC := usecase.NewRetrieveUseCase(
		st,
		nil, // timestamp lookup never embeds
		retriever.NewCosineRanker(),
		retriever.NewTimelineResolver(),
		nil,
	)

	seg, ok, err := retrieveUC.ResolveAtTime(atRecording, atTimestamp)
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	if !ok {
		if atJSON {
			fmt.Println("null")
		} else {
			fmt.Printf("No segment covers %s in recording %s.\n", atTimestamp, atRecording)
		}
		return nil
	}

	if atJSON {
		seg.Embedding = nil // not useful on the wire
		output, _ := json.MarshalIndent(seg, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("[%s +%s] %s\n\n%s\n", seg.StartTime, seg.Duration, seg.Topic, seg.Transcript)
	return nil
}
