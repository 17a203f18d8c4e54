package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-combat/internal/orchestrators/battle"
)

var turnOrderCmd = &cobra.Command{
	Use:   "turn-order <combatant_id>...",
	Short: "Roll one round of turn-order keys",
	Long: `Roll a jittered turn-order key for every listed combatant from the seeded
stream (COMBAT_SEED) and print them highest first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBattle(cmd, func(ctx context.Context, svc battle.Service) error {
			out, err := svc.RollTurnOrder(ctx, &battle.RollTurnOrderInput{CombatantIDs: args})
			if err != nil {
				return err
			}
			printRound(cmd.OutOrStdout(), out.Entries, nil)
			return nil
		})
	},
}

// printRound writes entries ordered by key, then speed, then request order.
// names maps IDs to display names and may be nil.
func printRound(w io.Writer, entries []battle.TurnOrderEntry, names map[string]string) {
	ordered := make([]battle.TurnOrderEntry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Key != ordered[j].Key {
			return ordered[i].Key > ordered[j].Key
		}
		return ordered[i].Speed > ordered[j].Speed
	})

	for i, e := range ordered {
		label := e.CombatantID
		if name, ok := names[e.CombatantID]; ok {
			label = name
		}
		fmt.Fprintf(w, "%2d. %-12s speed %3d key %3d\n", i+1, label, e.Speed, e.Key)
	}
}
