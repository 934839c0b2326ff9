package root

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"treehouse/internal/app/replay"
	"treehouse/internal/ui"
)

func newEventsCmd() *cobra.Command {
	var (
		limit int
		types []string
		since time.Duration
	)
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show the action journal, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			req := replay.Request{Limit: limit, Types: types}
			if since > 0 {
				req.OccurredFrom = time.Now().Add(-since).Unix()
			}
			resp, err := sess.Events(ctx, req)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, ui.Heading(ui.IconScroll, "Journal"))
			if len(resp.Events) == 0 {
				fmt.Fprintln(w, ui.Muted.Render("(no events)"))
				return nil
			}
			for _, rec := range resp.Events {
				payload, _ := json.Marshal(rec.Event.Payload)
				fmt.Fprintf(w, "%s %s %s %s\n",
					ui.Muted.Render(humanize.Time(rec.Event.OccurredAt)),
					ui.Muted.Render(fmt.Sprintf("v%d", rec.Version)),
					ui.Key.Render(rec.Event.Type),
					ui.Muted.Render(string(payload)),
				)
			}
			if resp.LatestNeeds != nil {
				fmt.Fprintln(w, "")
				fmt.Fprintln(w, ui.LabelValue("Latest needs", needsLine(*resp.LatestNeeds)))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", replay.DefaultLimit, "maximum number of events")
	cmd.Flags().StringSliceVarP(&types, "type", "t", nil, "only these event types (repeatable or comma-separated)")
	cmd.Flags().DurationVar(&since, "since", 0, "only events newer than this, e.g. 1h")
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		for i := range types {
			types[i] = strings.TrimSpace(types[i])
		}
		return nil
	}
	return cmd
}
