package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-combat/internal/errors"
)

// Tuning holds the game-balance numbers the battle service reads.
type Tuning struct {
	LevelThresholds []uint64     `yaml:"level_thresholds"`
	Growth          Growth       `yaml:"growth"`
	Jitter          Jitter       `yaml:"turn_order_jitter"`
	Defaults        StatDefaults `yaml:"defaults"`
}

// Growth is the max HP/MP added for every level gained.
type Growth struct {
	HP int `yaml:"hp"`
	MP int `yaml:"mp"`
}

// Jitter is the closed range a turn-order sample is drawn from.
type Jitter struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// StatDefaults are used when a new combatant leaves a stat unset.
type StatDefaults struct {
	HP      int `yaml:"hp"`
	MP      int `yaml:"mp"`
	Attack  int `yaml:"attack"`
	Defense int `yaml:"defense"`
	Speed   int `yaml:"speed"`
	// StatCap is the upper bound for attack, defense and speed.
	StatCap int `yaml:"stat_cap"`
}

// DefaultTuning returns the built-in tuning.
func DefaultTuning() *Tuning {
	return &Tuning{
		LevelThresholds: []uint64{100, 250, 500, 900, 1400, 2100, 3000, 4200, 5700},
		Growth:          Growth{HP: 8, MP: 3},
		Jitter:          Jitter{Min: -5, Max: 5},
		Defaults: StatDefaults{
			HP:      40,
			MP:      10,
			Attack:  12,
			Defense: 8,
			Speed:   10,
			StatCap: 255,
		},
	}
}

// LoadTuning reads a YAML tuning file over the defaults. Keys missing from
// the file keep their default. An empty path returns the defaults.
func LoadTuning(path string) (*Tuning, error) {
	if path == "" {
		return DefaultTuning(), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "failed to read tuning file %s", path)
	}
	return ParseTuning(b)
}

// ParseTuning decodes YAML tuning over the defaults and validates it.
func ParseTuning(b []byte) (*Tuning, error) {
	t := DefaultTuning()
	if err := yaml.Unmarshal(b, t); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode tuning")
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the tuning values
func (t *Tuning) Validate() error {
	vb := errors.NewValidationBuilder()

	if len(t.LevelThresholds) == 0 {
		vb.RequiredField("level_thresholds")
	}
	for i := 1; i < len(t.LevelThresholds); i++ {
		if t.LevelThresholds[i] <= t.LevelThresholds[i-1] {
			vb.InvalidField("level_thresholds", "must be strictly ascending")
			break
		}
	}

	if t.Growth.HP < 0 {
		vb.Field("growth.hp", "must not be negative")
	}
	if t.Growth.MP < 0 {
		vb.Field("growth.mp", "must not be negative")
	}
	if t.Jitter.Min > t.Jitter.Max {
		vb.Fieldf("turn_order_jitter", "min %d must not exceed max %d", t.Jitter.Min, t.Jitter.Max)
	}

	d := t.Defaults
	if d.StatCap < 1 {
		vb.Field("defaults.stat_cap", "must be positive")
	}
	errors.ValidateRange("defaults.hp", d.HP, 1, maxInt, vb)
	errors.ValidateRange("defaults.mp", d.MP, 0, maxInt, vb)
	errors.ValidateRange("defaults.attack", d.Attack, 1, d.StatCap, vb)
	errors.ValidateRange("defaults.defense", d.Defense, 1, d.StatCap, vb)
	errors.ValidateRange("defaults.speed", d.Speed, 1, d.StatCap, vb)

	return vb.Build()
}

const maxInt = int(^uint(0) >> 1)
