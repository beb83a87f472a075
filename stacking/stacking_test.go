package stacking

import (
	"math"
	"reflect"
	"testing"

	"perk-boost-system/models"
)

func additive(m float64) Input {
	return Input{Rule: models.StackingAdditive, Magnitude: m}
}

func multiplicative(m float64) Input {
	return Input{Rule: models.StackingMultiplicative, Magnitude: m}
}

func highestOnly(m float64) Input {
	return Input{Rule: models.StackingHighestOnly, Magnitude: m}
}

func TestFoldAdditiveOrderIndependent(t *testing.T) {
	orders := [][]Input{
		{additive(5), additive(3), additive(2)},
		{additive(2), additive(5), additive(3)},
		{additive(3), additive(2), additive(5)},
	}

	for _, boosts := range orders {
		got, used := Fold(10, boosts)
		if got != 20 {
			t.Fatalf("expected 20 for additive [5,3,2] over base 10, got %v", got)
		}
		if len(used) != 3 {
			t.Fatalf("expected all 3 additive boosts used, got %v", used)
		}
	}
}

func TestFoldMultiplicative(t *testing.T) {
	got, _ := Fold(10, []Input{multiplicative(2), multiplicative(1.5)})
	if got != 30 {
		t.Fatalf("expected 30 for multiplicative [2,1.5] over base 10, got %v", got)
	}
}

func TestFoldAdditiveBeforeMultiplicative(t *testing.T) {
	// (10 + 5) * 2, not 10*2 + 5 — additive bucket applies first even when
	// the multiplicative boost comes first in fetch order.
	got, _ := Fold(10, []Input{multiplicative(2), additive(5)})
	if got != 30 {
		t.Fatalf("expected 30, got %v", got)
	}
}

func TestFoldHighestOnlySelectsSingleWinner(t *testing.T) {
	got, used := Fold(10, []Input{highestOnly(1.2), highestOnly(1.5), highestOnly(1.1)})
	if math.Abs(got-15) > 1e-9 {
		t.Fatalf("expected 15 (only the 1.5 multiplier applied once), got %v", got)
	}
	if !reflect.DeepEqual(used, []int{1}) {
		t.Fatalf("expected only the winning candidate marked used, got %v", used)
	}
}

func TestFoldHighestOnlyTieBreaksToFirst(t *testing.T) {
	_, used := Fold(10, []Input{highestOnly(1.5), highestOnly(1.5)})
	if !reflect.DeepEqual(used, []int{0}) {
		t.Fatalf("expected first candidate to win the tie, got %v", used)
	}
}

func TestFoldMixedRules(t *testing.T) {
	boosts := []Input{
		additive(5),
		multiplicative(2),
		highestOnly(1.5),
		highestOnly(1.2),
	}
	got, used := Fold(10, boosts)
	if math.Abs(got-45) > 1e-9 { // (10+5)*2*1.5
		t.Fatalf("expected 45, got %v", got)
	}
	if !reflect.DeepEqual(used, []int{0, 1, 2}) {
		t.Fatalf("expected contributors [0 1 2], got %v", used)
	}
}

func TestFoldEmpty(t *testing.T) {
	got, used := Fold(7, nil)
	if got != 7 {
		t.Fatalf("expected base value back with no boosts, got %v", got)
	}
	if len(used) != 0 {
		t.Fatalf("expected no contributors, got %v", used)
	}
}

func TestFoldPenaltyMultiplierBelowOne(t *testing.T) {
	got, _ := Fold(100, []Input{multiplicative(0.5)})
	if got != 50 {
		t.Fatalf("expected 50 for a 0.5 penalty multiplier, got %v", got)
	}
}

func TestApplyUnknownRuleIsNoop(t *testing.T) {
	if got := Apply(models.StackingRule("bogus"), 10, 99); got != 10 {
		t.Fatalf("expected unknown rule to leave value unchanged, got %v", got)
	}
}
