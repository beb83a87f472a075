package models

import (
	"testing"
	"time"
)

func intPtr(n int) *int { return &n }

func TestActiveBoostIsLive(t *testing.T) {
	activated := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tenMin := activated.Add(10 * time.Minute)

	tests := []struct {
		name  string
		boost ActiveBoost
		at    time.Time
		want  bool
	}{
		{
			name:  "permanent boost stays live",
			boost: ActiveBoost{IsActive: true},
			at:    activated.Add(1000 * time.Hour),
			want:  true,
		},
		{
			name:  "temporary boost live before expiry",
			boost: ActiveBoost{IsActive: true, ExpiresAt: &tenMin},
			at:    activated.Add(9 * time.Minute),
			want:  true,
		},
		{
			name:  "temporary boost dead after expiry even before a sweep",
			boost: ActiveBoost{IsActive: true, ExpiresAt: &tenMin},
			at:    activated.Add(11 * time.Minute),
			want:  false,
		},
		{
			name:  "expiry instant itself is dead",
			boost: ActiveBoost{IsActive: true, ExpiresAt: &tenMin},
			at:    tenMin,
			want:  false,
		},
		{
			name:  "consumable with uses left is live",
			boost: ActiveBoost{IsActive: true, RemainingUses: intPtr(1)},
			at:    activated,
			want:  true,
		},
		{
			name:  "consumable with zero uses is dead regardless of flag staleness",
			boost: ActiveBoost{IsActive: true, RemainingUses: intPtr(0)},
			at:    activated,
			want:  false,
		},
		{
			name:  "retired boost is dead",
			boost: ActiveBoost{IsActive: false},
			at:    activated,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.boost.IsLive(tt.at); got != tt.want {
				t.Fatalf("IsLive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPerkEffectiveUseCount(t *testing.T) {
	if got := (&Perk{UseCount: 0}).EffectiveUseCount(); got != 1 {
		t.Fatalf("expected default use count 1, got %d", got)
	}
	if got := (&Perk{UseCount: 3}).EffectiveUseCount(); got != 3 {
		t.Fatalf("expected configured use count 3, got %d", got)
	}
}
