// Package stacking folds the magnitudes of simultaneously active boosts
// into one numeric modifier. The rule set is closed, so rules are a fixed
// function table rather than an open strategy interface.
package stacking

import (
	"perk-boost-system/models"
)

// Input is one active boost's snapshot, reduced to what folding needs.
type Input struct {
	Rule      models.StackingRule
	Magnitude float64
}

// apply performs one rule step on a running value. HIGHEST_ONLY applies as
// a multiplicative step once its winner has been selected.
var apply = map[models.StackingRule]func(value, magnitude float64) float64{
	models.StackingAdditive:       func(v, m float64) float64 { return v + m },
	models.StackingMultiplicative: func(v, m float64) float64 { return v * m },
	models.StackingHighestOnly:    func(v, m float64) float64 { return v * m },
}

// Apply runs one rule step. Unknown rules leave the value unchanged.
func Apply(rule models.StackingRule, value, magnitude float64) float64 {
	fn, ok := apply[rule]
	if !ok {
		return value
	}
	return fn(value, magnitude)
}

// Fold combines all boosts into one value starting from base: every ADDITIVE
// magnitude is added first, then every MULTIPLICATIVE magnitude multiplies
// the running value, then the single HIGHEST_ONLY candidate with the
// greatest magnitude multiplies once. Ties in the HIGHEST_ONLY group break
// toward the earliest input — a deliberate, deterministic choice, since the
// caller fetches boosts in stable activation order.
//
// The returned indices identify the inputs that contributed to the result:
// all additive and multiplicative boosts plus the winning HIGHEST_ONLY
// candidate. Losing candidates are not considered used.
func Fold(base float64, boosts []Input) (float64, []int) {
	value := base
	used := make([]int, 0, len(boosts))

	for i, b := range boosts {
		if b.Rule == models.StackingAdditive {
			value = Apply(b.Rule, value, b.Magnitude)
			used = append(used, i)
		}
	}
	for i, b := range boosts {
		if b.Rule == models.StackingMultiplicative {
			value = Apply(b.Rule, value, b.Magnitude)
			used = append(used, i)
		}
	}

	best := -1
	for i, b := range boosts {
		if b.Rule != models.StackingHighestOnly {
			continue
		}
		if best == -1 || b.Magnitude > boosts[best].Magnitude {
			best = i
		}
	}
	if best >= 0 {
		value = Apply(models.StackingHighestOnly, value, boosts[best].Magnitude)
		used = append(used, best)
	}

	return value, used
}
