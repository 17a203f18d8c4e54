// Package level tracks experience and the level it earns against a fixed
// table of cumulative thresholds.
//
// A table [100, 250, 500] means level 2 at 100 exp, level 3 at 250 and level 4
// at 500. Level 4 is terminal and exp stops accumulating at 500.
package level

import (
	"github.com/KirkDiggler/rpg-combat/internal/errors"
	"github.com/KirkDiggler/rpg-combat/internal/stats/bounded"
)

// Manager holds a combatant's experience and derived level.
type Manager struct {
	thresholds []uint64
	exp        bounded.Value[uint64]
	level      bounded.Value[int]
}

// Data is the persisted form of a Manager. The level is not stored; it is
// derived again on load.
type Data struct {
	Thresholds []uint64 `json:"thresholds" yaml:"thresholds"`
	Exp        uint64   `json:"exp" yaml:"exp"`
}

// New creates a manager from cumulative thresholds for levels 2..N+1. The
// starting level is derived from currentExp.
// Returns errors.InvalidArgument when thresholds are empty or not strictly
// ascending.
func New(thresholds []uint64, currentExp uint64) (*Manager, error) {
	if len(thresholds) == 0 {
		return nil, errors.InvalidArgument("at least one level threshold is required")
	}
	for i := 1; i < len(thresholds); i++ {
		if thresholds[i] <= thresholds[i-1] {
			return nil, errors.InvalidArgumentf("level thresholds must be strictly ascending, %d follows %d at index %d",
				thresholds[i], thresholds[i-1], i)
		}
	}

	table := make([]uint64, len(thresholds))
	copy(table, thresholds)

	exp, err := bounded.New(currentExp, table[len(table)-1], 0)
	if err != nil {
		return nil, err
	}
	lvl, err := bounded.New(1, len(table)+1, 1)
	if err != nil {
		return nil, err
	}

	m := &Manager{thresholds: table, exp: exp, level: lvl}
	m.advance()
	return m, nil
}

// FromData rebuilds a manager from its persisted form.
func FromData(d Data) (*Manager, error) {
	return New(d.Thresholds, d.Exp)
}

// Data returns the persisted form of the manager.
func (m *Manager) Data() Data {
	return Data{Thresholds: m.Thresholds(), Exp: m.exp.Value()}
}

// Level returns the current level, starting at 1
func (m *Manager) Level() int { return m.level.Value() }

// Exp returns the accumulated experience
func (m *Manager) Exp() uint64 { return m.exp.Value() }

// MaxLevel returns the terminal level, one more than the number of thresholds
func (m *Manager) MaxLevel() int { return m.level.Max() }

// IsMaxLevel reports whether the terminal level has been reached
func (m *Manager) IsMaxLevel() bool { return m.level.IsMax() }

// Thresholds returns a copy of the threshold table
func (m *Manager) Thresholds() []uint64 {
	out := make([]uint64, len(m.thresholds))
	copy(out, m.thresholds)
	return out
}

// AddExp adds experience, capped at the last threshold, and advances through
// every level the new total clears. It returns the number of levels gained.
func (m *Manager) AddExp(delta uint64) int {
	before := m.level.Value()
	m.exp.Add(delta)
	m.advance()
	return m.level.Value() - before
}

// ExpNeededForNextLevel returns the experience still missing for the next
// level. Returns errors.AtMaxLevel at the terminal level.
func (m *Manager) ExpNeededForNextLevel() (uint64, error) {
	if m.level.IsMax() {
		return 0, errors.AtMaxLevelf("level %d is the maximum level", m.level.Value())
	}
	return m.thresholds[m.level.Value()-1] - m.exp.Value(), nil
}

// advance raises the level while the next threshold is cleared.
func (m *Manager) advance() {
	for !m.level.IsMax() && m.exp.Value() >= m.thresholds[m.level.Value()-1] {
		m.level.Inc()
	}
}
