package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-combat/internal/element"
)

var (
	defenderElement string
	attackElement   string
)

var advantageCmd = &cobra.Command{
	Use:   "advantage",
	Short: "Show the damage multiplier of an attack element against a defender",
	Long: `Show the elemental damage multiplier. Without --attack every attack
element is listed against the defender.`,
	RunE: runAdvantage,
}

func init() {
	advantageCmd.Flags().StringVar(&defenderElement, "defender", "normal", "defender element")
	advantageCmd.Flags().StringVar(&attackElement, "attack", "", "attack element (all when empty)")
}

func runAdvantage(cmd *cobra.Command, _ []string) error {
	defender, err := parseElement(defenderElement)
	if err != nil {
		return err
	}

	attacks := element.All()
	if attackElement != "" {
		attack, err := parseElement(attackElement)
		if err != nil {
			return err
		}
		attacks = []element.Element{attack}
	}

	w := cmd.OutOrStdout()
	for _, attack := range attacks {
		m, err := element.Multiplier(defender, attack)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%-8s -> %-8s x%.1f\n", attack, defender, m)
	}
	return nil
}
