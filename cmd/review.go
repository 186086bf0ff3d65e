package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/app"
	"github.com/abhisek/lexiz/internal/config"
	"github.com/abhisek/lexiz/internal/fsrs"
	"github.com/abhisek/lexiz/internal/word"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Run a learning session",
	Long:  "Builds today's queue from due and new words and walks through it, one rating per word.",
	RunE:  runReview,
}

func runReview(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	svc := app.NewService(st, config.Load(), log)
	sess, err := svc.StartSession(cmd.Context(), time.Now())
	if err != nil {
		return err
	}
	if sess.Len() == 0 {
		fmt.Println("Nothing due and no new words. Come back later!")
		return nil
	}

	fmt.Printf("Session of %d words. Rate each: 1=again 2=hard 3=good 4=easy, k=known, u=undo, q=quit.\n\n", sess.Len())

	in := bufio.NewScanner(os.Stdin)
	var lastWordID int64

	for !sess.IsComplete() {
		rec, ok := sess.Current()
		if !ok {
			break
		}
		printWord(rec, sess.Progress())

		if !in.Scan() {
			break
		}
		input := strings.TrimSpace(strings.ToLower(in.Text()))

		switch input {
		case "q":
			fmt.Println("Session abandoned.")
			return nil
		case "k":
			if _, err := svc.MarkCurrentKnown(cmd.Context(), time.Now()); err != nil {
				return err
			}
			fmt.Println("Marked as known.")
			continue
		case "u":
			if _, ok, err := svc.UndoLast(cmd.Context(), lastWordID); err != nil {
				return err
			} else if !ok {
				fmt.Println("Nothing to undo.")
			} else {
				fmt.Println("Last review undone.")
			}
			continue
		}

		rating, ok := parseRating(input)
		if !ok {
			fmt.Println("Enter 1-4, k, u or q.")
			continue
		}

		out, err := svc.ReviewCurrent(cmd.Context(), rating, time.Now())
		if err != nil {
			return err
		}
		lastWordID = out.Record.ID
		fmt.Printf("  -> %s, next review in %s\n\n", out.Record.Status, formatInterval(out.ScheduledDays))
	}

	fmt.Printf("Done! Reviewed %d words (%d new).\n", sess.ReviewedCount, sess.NewLearnedCount)
	return nil
}

func printWord(rec word.Record, progress int) {
	fmt.Printf("[%3d%%] %s", progress, rec.Word)
	if rec.Definition.Phonetic != "" {
		fmt.Printf("  /%s/", rec.Definition.Phonetic)
	}
	if rec.IsLeech() {
		fmt.Print("  (leech)")
	}
	fmt.Print("\n> ")
}

func parseRating(input string) (fsrs.Rating, bool) {
	switch input {
	case "1":
		return fsrs.Again, true
	case "2":
		return fsrs.Hard, true
	case "3":
		return fsrs.Good, true
	case "4":
		return fsrs.Easy, true
	}
	return 0, false
}

// formatInterval renders a scheduled interval in days as a human
// readable duration.
func formatInterval(days float64) string {
	if days < 1 {
		minutes := int(days*24*60 + 0.5)
		if minutes < 60 {
			return fmt.Sprintf("%dm", minutes)
		}
		return fmt.Sprintf("%.1fh", days*24)
	}
	return fmt.Sprintf("%.0fd", days)
}
