// Package main is the entry point for the rpg-combat command line tool
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	seedFlag   int64
	tuningFlag string
)

var rootCmd = &cobra.Command{
	Use:   "rpg-combat",
	Short: "RPG combat math",
	Long: `rpg-combat exposes the combat core: elemental multipliers, level tables,
stored combatants and seeded turn order.

Combatants live in Redis when REDIS_ENDPOINT is set and in memory otherwise.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&seedFlag, "seed", 1, "turn-order seed (overrides COMBAT_SEED)")
	rootCmd.PersistentFlags().StringVar(&tuningFlag, "tuning", "", "tuning YAML file (overrides COMBAT_TUNING_FILE)")

	rootCmd.AddCommand(advantageCmd)
	rootCmd.AddCommand(levelCmd)
	rootCmd.AddCommand(combatantCmd)
	rootCmd.AddCommand(turnOrderCmd)
	rootCmd.AddCommand(simulateCmd)
}
