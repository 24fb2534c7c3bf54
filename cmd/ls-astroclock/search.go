package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-astroclock/internal/event"
	"github.com/litescript/ls-astroclock/internal/search"
)

func searchCmd(a *app) *cobra.Command {
	var from string
	var backward bool
	var count int
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find successive occurrences of a planetary event",
		Long: `Find when a query holds, starting from a moment (default now).

Queries combine conditions with and, or, not and parentheses:
  venus square moon and not mars rx
  (sun in aries or sun in leo) and moon at 15 cancer 30`,
		Example: `  ls-astroclock search "mercury rx" --count 3
  ls-astroclock search "jupiter conjunct saturn" --from 2000-01-01 --backward`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("count must be at least 1")
			}
			ev, err := parseQuery(cmd.ErrOrStderr(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			start, err := a.resolveTime(from, 0, false)
			if err != nil {
				return err
			}
			view, err := a.view(cmd.Context())
			if err != nil {
				return err
			}

			forward := !backward
			searcher := search.New(a.searchOptions(timeout))
			cond := event.Bind(ev, view)
			w := cmd.OutOrStdout()
			styled := isTerminal(w)

			a.log.Debug("search", "query", ev.String(), "from", start, "forward", forward)
			for i := 0; i < count; i++ {
				res, err := searcher.Search(cmd.Context(), start, cond, forward)
				if err != nil {
					if errors.Is(err, search.ErrTimeout) && i > 0 {
						fmt.Fprintln(w, render(styled, dimStyle, "no further occurrence found"))
						return nil
					}
					return fmt.Errorf("search %q: %w", ev, err)
				}
				fmt.Fprintf(w, "%s  to  %s  %s\n",
					render(styled, timeStyle, formatTime(res.Start)),
					render(styled, timeStyle, formatTime(res.End)),
					render(styled, dimStyle, "peak "+formatTime(res.Peak)))
				start = res.Resume(forward)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start time (default now)")
	cmd.Flags().BoolVar(&backward, "backward", false, "search into the past")
	cmd.Flags().IntVar(&count, "count", 1, "number of occurrences")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "time budget per occurrence (default from config)")
	return cmd
}
