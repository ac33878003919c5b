package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded clean and join runs",
	RunE:  runRunsList,
}

func init() {
	rootCmd.AddCommand(runsCmd)
}

func runRunsList(cmd *cobra.Command, _ []string) error {
	store, err := openSettingsStore()
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	for _, r := range runs {
		cmd.Printf("%s  %-5s  %s  kept=%d dropped=%d  %s\n",
			r.ID, r.Kind, r.StartedAt.Local().Format(time.DateTime), r.Kept, r.Dropped, r.Output)
	}
	return nil
}
