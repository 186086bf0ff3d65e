package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/app"
	"github.com/abhisek/lexiz/internal/config"
)

var addCmd = &cobra.Command{
	Use:   "add <word>...",
	Short: "Add words to the collection",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		bookID, _ := cmd.Flags().GetString("book")
		svc := app.NewService(st, config.Load(), log)

		for _, text := range args {
			rec, err := svc.AddWord(cmd.Context(), text, bookID, time.Now())
			if err != nil {
				return err
			}
			fmt.Printf("added %q (id %d)\n", rec.Word, rec.ID)
		}
		return nil
	},
}

func init() {
	addCmd.Flags().String("book", "", "Book ID to file the words under")
}
