package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/word"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show collection statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		counts, err := st.Words().CountByStatus(cmd.Context())
		if err != nil {
			return err
		}
		now := time.Now()
		due, err := st.Words().Due(cmd.Context(), now, 1000)
		if err != nil {
			return err
		}
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		reviewed, err := st.Words().CountReviewedSince(cmd.Context(), midnight)
		if err != nil {
			return err
		}

		order := []word.Status{
			word.StatusNew, word.StatusLearning, word.StatusRelearning,
			word.StatusReview, word.StatusKnown,
		}
		total := 0
		for _, status := range order {
			fmt.Printf("%-11s %d\n", status, counts[status])
			total += counts[status]
		}
		fmt.Printf("%-11s %d\n", "total", total)
		fmt.Printf("%-11s %d\n", "due now", len(due))
		fmt.Printf("%-11s %d\n", "done today", reviewed)
		return nil
	},
}
