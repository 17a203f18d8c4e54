package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-combat/internal/entities"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
	"github.com/KirkDiggler/rpg-combat/internal/orchestrators/battle"
)

var combatantCmd = &cobra.Command{
	Use:   "combatant",
	Short: "Manage stored combatants",
	Long: `Create, inspect and change stored combatants. Without REDIS_ENDPOINT the
store lives only for the duration of one command.`,
}

var (
	createName    string
	createElement string
	createHP      int
	createMP      int
	createAttack  int
	createDefense int
	createSpeed   int
	createExp     uint64
	createSkills  []string

	grantAmount uint64

	statName   string
	statAction string
	statAmount int

	gaugeName  string
	gaugeDelta int
	gaugeFull  bool

	multSkill   string
	multElement string

	checkRemove bool
)

var createCombatantCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a combatant",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		el, err := parseElement(createElement)
		if err != nil {
			return err
		}
		skills, err := parseSkills(createSkills)
		if err != nil {
			return err
		}

		return withBattle(cmd, func(ctx context.Context, svc battle.Service) error {
			out, err := svc.CreateCombatant(ctx, &battle.CreateCombatantInput{
				Name:    createName,
				Element: el,
				MaxHP:   createHP,
				MaxMP:   createMP,
				Attack:  createAttack,
				Defense: createDefense,
				Speed:   createSpeed,
				Exp:     createExp,
				Skills:  skills,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out.Combatant.ToData())
		})
	},
}

var getCombatantCmd = &cobra.Command{
	Use:   "get <combatant_id>",
	Short: "Show a combatant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBattle(cmd, func(ctx context.Context, svc battle.Service) error {
			out, err := svc.GetCombatant(ctx, &battle.GetCombatantInput{CombatantID: args[0]})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out.Combatant.ToData())
		})
	},
}

var listCombatantsCmd = &cobra.Command{
	Use:   "list",
	Short: "List combatants",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withBattle(cmd, func(ctx context.Context, svc battle.Service) error {
			out, err := svc.ListCombatants(ctx, &battle.ListCombatantsInput{})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, c := range out.Combatants {
				fmt.Fprintf(w, "%s\t%s\tlv %d\t%s\tHP %d/%d\tMP %d/%d\n",
					c.ID, c.Name, c.Level.Level(), c.Element,
					c.HP.Value(), c.HP.Max(), c.MP.Value(), c.MP.Max())
			}
			return nil
		})
	},
}

var grantExpCmd = &cobra.Command{
	Use:   "exp <combatant_id>",
	Short: "Grant experience to a combatant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBattle(cmd, func(ctx context.Context, svc battle.Service) error {
			out, err := svc.GrantExperience(ctx, &battle.GrantExperienceInput{
				CombatantID: args[0],
				Exp:         grantAmount,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "level %d (+%d)\n", out.Combatant.Level.Level(), out.LevelsGained)
			if out.AtMaxLevel {
				fmt.Fprintln(w, "max level reached")
			} else {
				fmt.Fprintf(w, "%d exp to next level\n", out.ExpToNextLevel)
			}
			return nil
		})
	},
}

var modifyStatCmd = &cobra.Command{
	Use:   "stat <combatant_id>",
	Short: "Buff, debuff or reset attack, defense or speed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBattle(cmd, func(ctx context.Context, svc battle.Service) error {
			out, err := svc.ModifyStat(ctx, &battle.ModifyStatInput{
				CombatantID: args[0],
				Stat:        battle.Stat(strings.ToLower(statName)),
				Action:      battle.StatAction(strings.ToLower(statAction)),
				Amount:      statAmount,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d (moved %d)\n", statName, out.Value, out.Applied)
			return nil
		})
	},
}

var adjustGaugeCmd = &cobra.Command{
	Use:   "gauge <combatant_id>",
	Short: "Change HP or MP",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBattle(cmd, func(ctx context.Context, svc battle.Service) error {
			out, err := svc.AdjustGauge(ctx, &battle.AdjustGaugeInput{
				CombatantID: args[0],
				Gauge:       battle.GaugeKind(strings.ToLower(gaugeName)),
				Delta:       gaugeDelta,
				FullCharge:  gaugeFull,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d/%d (%.2f%%)\n", gaugeName, out.Value, out.Max, out.Percent)
			return nil
		})
	},
}

var multiplierCmd = &cobra.Command{
	Use:   "multiplier <defender_id> [attacker_id]",
	Short: "Show the elemental multiplier of an attack against a stored combatant",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := &battle.ElementalMultiplierInput{DefenderID: args[0], SkillName: multSkill}
		if len(args) == 2 {
			input.AttackerID = args[1]
		}
		if multElement != "" {
			el, err := parseElement(multElement)
			if err != nil {
				return err
			}
			input.AttackElement = el
		}

		return withBattle(cmd, func(ctx context.Context, svc battle.Service) error {
			out, err := svc.ElementalMultiplier(ctx, input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s x%.1f\n", out.AttackElement, out.DefenderElement, out.Multiplier)
			return nil
		})
	},
}

var checkCombatantsCmd = &cobra.Command{
	Use:   "check",
	Short: "Find stored combatants that no longer load",
	Long: `Scan every stored combatant and report records that cannot be decoded or
whose stats break their bounds. With --remove the bad records are deleted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withBattle(cmd, func(ctx context.Context, svc battle.Service) error {
			out, err := svc.AuditCombatants(ctx, &battle.AuditCombatantsInput{Remove: checkRemove})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, bad := range out.Invalid {
				fmt.Fprintf(w, "invalid %s: %s\n", bad.CombatantID, bad.Reason)
			}
			fmt.Fprintf(w, "checked %d, invalid %d, removed %d\n", out.Checked, len(out.Invalid), out.Removed)
			return nil
		})
	},
}

func init() {
	createCombatantCmd.Flags().StringVar(&createName, "name", "", "combatant name")
	createCombatantCmd.Flags().StringVar(&createElement, "element", "normal", "combatant element")
	createCombatantCmd.Flags().IntVar(&createHP, "hp", 0, "max HP (tuning default when 0)")
	createCombatantCmd.Flags().IntVar(&createMP, "mp", 0, "max MP (tuning default when 0)")
	createCombatantCmd.Flags().IntVar(&createAttack, "attack", 0, "attack (tuning default when 0)")
	createCombatantCmd.Flags().IntVar(&createDefense, "defense", 0, "defense (tuning default when 0)")
	createCombatantCmd.Flags().IntVar(&createSpeed, "speed", 0, "speed (tuning default when 0)")
	createCombatantCmd.Flags().Uint64Var(&createExp, "exp", 0, "starting experience")
	createCombatantCmd.Flags().StringArrayVar(&createSkills, "skill", nil, "skill as name:element:mp_cost:base_power, repeatable")
	_ = createCombatantCmd.MarkFlagRequired("name")

	grantExpCmd.Flags().Uint64Var(&grantAmount, "amount", 0, "experience to grant")

	modifyStatCmd.Flags().StringVar(&statName, "stat", "attack", "attack, defense or speed")
	modifyStatCmd.Flags().StringVar(&statAction, "action", "up", "up, down or reset")
	modifyStatCmd.Flags().IntVar(&statAmount, "amount", 0, "buff or debuff amount")

	adjustGaugeCmd.Flags().StringVar(&gaugeName, "gauge", "hp", "hp or mp")
	adjustGaugeCmd.Flags().IntVar(&gaugeDelta, "delta", 0, "amount to add, negative to drain")
	adjustGaugeCmd.Flags().BoolVar(&gaugeFull, "full", false, "refill the gauge to its max")

	multiplierCmd.Flags().StringVar(&multSkill, "skill", "", "attacker skill supplying the attack element")
	multiplierCmd.Flags().StringVar(&multElement, "element", "", "attack element when no skill is given")

	combatantCmd.AddCommand(createCombatantCmd)
	combatantCmd.AddCommand(getCombatantCmd)
	combatantCmd.AddCommand(listCombatantsCmd)
	combatantCmd.AddCommand(grantExpCmd)
	combatantCmd.AddCommand(modifyStatCmd)
	combatantCmd.AddCommand(adjustGaugeCmd)
	combatantCmd.AddCommand(multiplierCmd)

	checkCombatantsCmd.Flags().BoolVar(&checkRemove, "remove", false, "delete invalid combatants")
	combatantCmd.AddCommand(checkCombatantsCmd)
}

// withBattle runs fn against a freshly wired battle service.
func withBattle(cmd *cobra.Command, fn func(context.Context, battle.Service) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a.battle)
}

// parseSkills reads name:element:mp_cost:base_power specs.
func parseSkills(specs []string) ([]entities.Skill, error) {
	skills := make([]entities.Skill, 0, len(specs))
	for _, raw := range specs {
		parts := strings.Split(raw, ":")
		if len(parts) != 4 {
			return nil, errors.InvalidArgumentf("skill %q must be name:element:mp_cost:base_power", raw)
		}

		el, err := parseElement(parts[1])
		if err != nil {
			return nil, err
		}
		cost, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, errors.InvalidArgumentf("skill %q has a bad mp cost", raw)
		}
		power, err := strconv.Atoi(parts[3])
		if err != nil {
			return nil, errors.InvalidArgumentf("skill %q has a bad base power", raw)
		}

		skills = append(skills, entities.Skill{
			Name:      parts[0],
			Element:   el,
			MPCost:    cost,
			BasePower: power,
		})
	}
	return skills, nil
}
