package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ytget/ytfetch/internal/config"
	"github.com/ytget/ytfetch/internal/history"
)

// FlagLimit is the number of history entries listed
const FlagLimit = "limit"

func newHistoryCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"h"},
		Short:   "List recent downloads",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.Open(config.HistoryDir())
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			printHistory(a.out, entries)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, FlagLimit, "n", history.DefaultLimit, "Number of entries to show")
	return cmd
}

func printHistory(out io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(out, HelpStyle.Render("No downloads yet."))
		return
	}

	for _, e := range entries {
		mark := SuccessStyle.Render(DoneMark)
		if e.Succeeded == 0 {
			mark = ErrorStyle.Render(FailMark)
		}

		title := e.URL
		if e.Collection != "" {
			title = e.Collection + " " + URLStyle.Render(e.URL)
		}

		fmt.Fprintf(out, "%s %s %s %s\n   %s\n",
			mark,
			TitleStyle.Render(e.Format.String()),
			title,
			HelpStyle.Render(humanize.Time(e.FinishedAt)),
			LabelStyle.Render(e.Outcome()),
		)
	}
}
