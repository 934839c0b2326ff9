package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"treehouse/internal/app/action"
	"treehouse/internal/ui"
)

const Version = "0.1.0"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "buddyctl",
		Short:         "Buddy's Treehouse: care for your buddy from the terminal",
		Long:          "buddyctl reads and mutates the locally stored buddy. While a treehouse server owns the store, commands go through its API instead.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	cmd.AddCommand(
		newStatusCmd(),
		newFeedCmd(),
		newSimpleCmd("pet", "Pet your buddy", action.TypePet),
		newSimpleCmd("play", "Play with your buddy", action.TypePlay),
		newSimpleCmd("sleep", "Put your buddy to bed", action.TypeSleep),
		newSimpleCmd("tick", "Advance one decay step", action.TypeTick),
		newStarsCmd(),
		newXPCmd(),
		newCompleteCmd(),
		newUnlockCmd(),
		newBadgeCmd(),
		newWearCmd(),
		newNeedsCmd(),
		newEventsCmd(),
	)
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
