package root

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"treehouse/internal/app/action"
	"treehouse/internal/app/status"
	"treehouse/internal/domain/buddy"
	"treehouse/internal/ui"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show needs, mood, progress and unlocks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			resp, err := sess.Status(ctx)
			if err != nil {
				return err
			}
			renderStatus(cmd.OutOrStdout(), resp)
			return nil
		},
	}
}

func renderStatus(w io.Writer, resp status.Response) {
	s := resp.State
	fmt.Fprintln(w, ui.Heading(ui.IconBuddy, "Buddy"))
	fmt.Fprintln(w, ui.LabelValue("Mood", ui.MoodText(string(s.Mood))))
	fmt.Fprintln(w, ui.LabelValue("Level", s.Level))
	fmt.Fprintln(w, ui.LabelValue("Stars", fmt.Sprintf("%d %s", s.TotalStars, ui.Muted.Render(fmt.Sprintf("(%d to next level)", resp.StarsToNextLevel)))))
	fmt.Fprintln(w, ui.LabelValue("Experience", s.Experience))
	fmt.Fprintln(w, ui.LabelValue("Streak", s.CurrentStreak))
	fmt.Fprintln(w, ui.LabelValue("Outfit", s.CurrentOutfit))
	fmt.Fprintln(w, "")

	needs := strings.Join([]string{
		ui.LabelValue("Hunger   ", ui.NeedBar(s.Needs.Hunger)),
		ui.LabelValue("Energy   ", ui.NeedBar(s.Needs.Energy)),
		ui.LabelValue("Happiness", ui.NeedBar(s.Needs.Happiness)),
	}, "\n")
	fmt.Fprintln(w, ui.Panel.Render(needs))
	for _, f := range resp.Forecast {
		if line := forecastLine(f); line != "" {
			fmt.Fprintln(w, line)
		}
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, ui.H2.Render("🎯 Activities"))
	for _, a := range resp.Activities {
		note := ""
		if !a.Selectable && a.UnlockLevel > 0 {
			note = " " + ui.Muted.Render(fmt.Sprintf("(level %d)", a.UnlockLevel))
		}
		fmt.Fprintf(w, "- %s %s%s\n", a.Name, ui.EnabledText(a.Selectable), note)
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, ui.H2.Render("👕 Outfits"))
	for _, o := range resp.Outfits {
		mark := ""
		if o.Worn {
			mark = " " + ui.Good.Render("(wearing)")
		}
		fmt.Fprintf(w, "- %s%s\n", o.Name, mark)
	}

	if len(s.FoodItems) > 0 {
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, ui.H2.Render(ui.IconFood+" Pantry"))
		for _, name := range sortedKeys(s.FoodItems) {
			fmt.Fprintf(w, "- %s x%d\n", name, s.FoodItems[name])
		}
	}
	if len(s.Badges) > 0 {
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, ui.H2.Render(ui.IconBadge+" Badges"))
		for _, b := range s.Badges {
			fmt.Fprintf(w, "- %s\n", ui.Gold.Render(b))
		}
	}
}

func renderOutcome(w io.Writer, label string, out action.Response) {
	if !out.Applied {
		fmt.Fprintln(w, ui.Warn.Render(label+": nothing changed"))
	} else {
		fmt.Fprintln(w, ui.Good.Render(ui.IconSparkle+" "+label))
	}
	for _, ev := range out.Events {
		switch ev.Type {
		case "level_up":
			fmt.Fprintf(w, "  %s %v\n", ui.BadgeLevelUp, ev.Payload["to"])
		case "content_unlocked":
			fmt.Fprintf(w, "  %s %v %v\n", ui.IconUnlock, ev.Payload["kind"], ev.Payload["name"])
		case "badge_awarded":
			fmt.Fprintf(w, "  %s %v\n", ui.IconBadge, ev.Payload["badge"])
		}
	}
	if out.Applied && !out.Persisted {
		fmt.Fprintln(w, ui.Bad.Render(ui.IconError+" change kept in memory only; the store rejected it"))
	}
	fmt.Fprintf(w, "%s  %s\n", ui.MoodText(string(out.View.Mood)), needsLine(out.View.Needs))
}

func forecastLine(f status.NeedForecast) string {
	switch {
	case f.Ticks == 0:
		return ui.Warn.Render(fmt.Sprintf("%s is low now", f.Need))
	case f.Ticks < 0:
		return ""
	case f.Seconds > 0:
		now := time.Now()
		when := humanize.RelTime(now, now.Add(time.Duration(f.Seconds)*time.Second), "from now", "ago")
		return ui.Muted.Render(fmt.Sprintf("%s: %s %s", f.Need, f.Mood, when))
	default:
		return ui.Muted.Render(fmt.Sprintf("%s: %s in %d ticks", f.Need, f.Mood, f.Ticks))
	}
}

func needsLine(n buddy.Needs) string {
	return ui.Muted.Render(fmt.Sprintf("hunger %.1f  energy %.1f  happiness %.1f", n.Hunger, n.Energy, n.Happiness))
}
