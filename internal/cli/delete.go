package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <recording-id>",
	Short: "Delete all segments of a recording",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	st, err := openStore(cfg, GetDataDir())
	if err != nil {
		return err
	}
	defer st.Close()

	recordingID := args[0]
	if err := st.DeleteRecording(recordingID); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}

	fmt.Printf("Deleted recording %s.\n", recordingID)
	return nil
}
