package services

import (
	"testing"
	"time"

	"perk-boost-system/models"
)

func TestNewActiveBoostSnapshotsPerkConfig(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	perk := &models.Perk{
		ID:           "perk-1",
		Duration:     models.PerkDurationPermanent,
		EffectType:   models.EffectDiceRoll,
		StackingRule: models.StackingAdditive,
		Magnitude:    2.5,
		Stackable:    true,
	}

	boost := newActiveBoost(perk, "player-1", "game-1", now)

	if boost.PlayerID != "player-1" || boost.GameID != "game-1" || boost.PerkID != "perk-1" {
		t.Fatalf("unexpected identity fields: %+v", boost)
	}
	if boost.EffectType != models.EffectDiceRoll || boost.StackingRule != models.StackingAdditive {
		t.Fatalf("effect config not snapshotted: %+v", boost)
	}
	if boost.Magnitude != 2.5 || !boost.Stackable {
		t.Fatalf("magnitude/stackable not snapshotted: %+v", boost)
	}
	if !boost.ActivatedAt.Equal(now) || !boost.IsActive {
		t.Fatalf("expected active boost stamped at %v, got %+v", now, boost)
	}
}

func TestNewActiveBoostDurationPolicy(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		perk          models.Perk
		wantExpiresAt *time.Time
		wantUses      *int
	}{
		{
			name: "permanent has neither bound",
			perk: models.Perk{Duration: models.PerkDurationPermanent},
		},
		{
			name:          "temporary gets expiry from configured minutes",
			perk:          models.Perk{Duration: models.PerkDurationTemporary, DurationMinutes: 10},
			wantExpiresAt: timePtr(now.Add(10 * time.Minute)),
		},
		{
			name:     "consumable gets configured use budget",
			perk:     models.Perk{Duration: models.PerkDurationConsumable, UseCount: 3},
			wantUses: intPtr(3),
		},
		{
			name:     "consumable defaults to one use",
			perk:     models.Perk{Duration: models.PerkDurationConsumable},
			wantUses: intPtr(1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			boost := newActiveBoost(&tt.perk, "p", "g", now)

			if (boost.ExpiresAt == nil) != (tt.wantExpiresAt == nil) {
				t.Fatalf("expires_at presence mismatch: got %v, want %v", boost.ExpiresAt, tt.wantExpiresAt)
			}
			if tt.wantExpiresAt != nil && !boost.ExpiresAt.Equal(*tt.wantExpiresAt) {
				t.Fatalf("expires_at = %v, want %v", boost.ExpiresAt, tt.wantExpiresAt)
			}

			if (boost.RemainingUses == nil) != (tt.wantUses == nil) {
				t.Fatalf("remaining_uses presence mismatch: got %v, want %v", boost.RemainingUses, tt.wantUses)
			}
			if tt.wantUses != nil && *boost.RemainingUses != *tt.wantUses {
				t.Fatalf("remaining_uses = %d, want %d", *boost.RemainingUses, *tt.wantUses)
			}
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }
func intPtr(n int) *int              { return &n }
