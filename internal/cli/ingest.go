package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"vidseg/internal/domain"
	"vidseg/internal/usecase"
)

var ingestRecording string

var ingestCmd = &cobra.Command{
	Use:   "ingest [files or globs...]",
	Short: "Embed and store topic segments from segmentation output",
	Long: `Ingest topic-segmented transcript files (JSON arrays of
{topic, transcript, start_time, duration} records, as produced by the
upstream segmentation pipeline), embedding each segment and writing it to
the segment store.

When --recording is omitted, each file's base name (without extension) is
used as its recording ID.

Examples:
  vidseg ingest -r vid1 segments.json
  vidseg ingest "transcripts/**/*.json"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().StringVarP(&ingestRecording, "recording", "r", "", "recording ID (default: file base name)")
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	files, err := expandPatterns(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files match the given patterns")
	}
	if ingestRecording != "" && len(files) > 1 {
		return fmt.Errorf("--recording can only be used with a single file (got %d)", len(files))
	}

	st, err := openStore(cfg, GetDataDir())
	if err != nil {
		return err
	}
	defer st.Close()

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	ingestUC := usecase.NewIngestUseCase(st, embedder, nil)

	var stored, failed int
	for _, file := range files {
		raws, err := readRawSegments(file)
		if err != nil {
			return err
		}

		recordingID := ingestRecording
		if recordingID == "" {
			recordingID = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		}

		bar := progressbar.NewOptions(len(raws),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetDescription(fmt.Sprintf("[cyan]Embedding[reset] %s", recordingID)),
			progressbar.OptionOnCompletion(func() {
				fmt.Println()
			}),
		)

		outcomes := ingestUC.Ingest(recordingID, raws, func(processed, total int) {
			bar.Set(processed)
		})

		for _, o := range outcomes {
			if o.Err != nil {
				failed++
				fmt.Fprintf(os.Stderr, "  skipped segment %q: %v\n", o.Raw.Topic, o.Err)
			} else {
				stored++
			}
		}
	}

	fmt.Printf("\nIngestion complete: %d segments stored, %d failed\n", stored, failed)
	if failed > 0 {
		return fmt.Errorf("%d segments failed to ingest", failed)
	}
	return nil
}

// expandPatterns resolves each argument as a doublestar glob, falling
// back to a literal path when the pattern matches nothing but the file
// exists.
func expandPatterns(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			}
			continue
		}
		files = append(files, matches...)
	}
	return files, nil
}

func readRawSegments(path string) ([]domain.RawSegment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var raws []domain.RawSegment
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return raws, nil
}
