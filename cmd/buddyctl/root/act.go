package root

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"treehouse/internal/app/action"
	"treehouse/internal/domain/buddy"
)

func runAction(cmd *cobra.Command, label string, req action.Request) error {
	ctx := cmd.Context()
	sess, cleanup, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	out, err := sess.Act(ctx, req)
	if err != nil {
		return err
	}
	renderOutcome(cmd.OutOrStdout(), label, out)
	return nil
}

func newSimpleCmd(use, short string, typ action.Type) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, use, action.Request{Type: typ})
		},
	}
}

func newFeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "feed <food>",
		Short: "Feed your buddy a food item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, "fed "+args[0], action.Request{Type: action.TypeFeed, FoodID: args[0]})
		},
	}
}

func amountArg(args []string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("amount must be an integer")
	}
	return n, nil
}

func newStarsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stars <amount>",
		Short: "Award stars",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := amountArg(args)
			if err != nil {
				return err
			}
			return runAction(cmd, fmt.Sprintf("+%d stars", n), action.Request{Type: action.TypeAddStars, Amount: n})
		},
	}
}

func newXPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "xp <amount>",
		Short: "Award experience points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := amountArg(args)
			if err != nil {
				return err
			}
			return runAction(cmd, fmt.Sprintf("+%d xp", n), action.Request{Type: action.TypeAddExperience, Amount: n})
		},
	}
}

func newCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <activity>",
		Short: "Record a finished activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, "completed "+args[0], action.Request{Type: action.TypeCompleteActivity, Activity: args[0]})
		},
	}
}

func newUnlockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlock <outfit|activity|item> <name>",
		Short: "Unlock content directly",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, "unlock "+args[1], action.Request{
				Type: action.TypeUnlock,
				Kind: buddy.UnlockKind(args[0]),
				Name: args[1],
			})
		},
	}
}

func newBadgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "badge <name>",
		Short: "Award a badge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, "badge "+args[0], action.Request{Type: action.TypeAwardBadge, Name: args[0]})
		},
	}
}

func newWearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wear <outfit>",
		Short: "Change into an unlocked outfit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, "wearing "+args[0], action.Request{Type: action.TypeWearOutfit, Name: args[0]})
		},
	}
}

func newNeedsCmd() *cobra.Command {
	var hunger, energy, happiness float64
	cmd := &cobra.Command{
		Use:   "needs",
		Short: "Set one or more needs directly",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch buddy.NeedsPatch
			if cmd.Flags().Changed("hunger") {
				patch.Hunger = &hunger
			}
			if cmd.Flags().Changed("energy") {
				patch.Energy = &energy
			}
			if cmd.Flags().Changed("happiness") {
				patch.Happiness = &happiness
			}
			if patch.Empty() {
				return fmt.Errorf("set at least one of --hunger, --energy, --happiness")
			}
			return runAction(cmd, "needs updated", action.Request{Type: action.TypeUpdateNeeds, Needs: patch})
		},
	}
	cmd.Flags().Float64Var(&hunger, "hunger", 0, "hunger gauge (0-100)")
	cmd.Flags().Float64Var(&energy, "energy", 0, "energy gauge (0-100)")
	cmd.Flags().Float64Var(&happiness, "happiness", 0, "happiness gauge (0-100)")
	return cmd
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
