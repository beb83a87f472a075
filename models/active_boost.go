package models

import (
	"time"

	"gorm.io/gorm"
)

// ActiveBoost is one live instantiation of a perk's effect for one player in
// one game. Effect parameters are snapshotted from the perk at activation
// time. Rows are never deleted; retirement flips IsActive to false.
//
// Lifecycle: created ACTIVE, then exactly one terminal transition —
// expired (sweeper or explicit expire) or exhausted (last use consumed
// during resolution). Terminal states are never reversed.
type ActiveBoost struct {
	ID       string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	PlayerID string `gorm:"type:uuid;not null;index:idx_boost_player_game" json:"player_id"`
	GameID   string `gorm:"type:uuid;not null;index:idx_boost_player_game" json:"game_id"`
	PerkID   string `gorm:"type:uuid;not null;index" json:"perk_id"`

	// Snapshot of the perk's effect config at activation time
	EffectType   EffectType   `gorm:"type:varchar(32);not null;index" json:"effect_type"`
	StackingRule StackingRule `gorm:"type:varchar(16);not null" json:"stacking_rule"`
	Magnitude    float64      `gorm:"not null" json:"magnitude"`
	Stackable    bool         `gorm:"not null" json:"stackable"`

	ActivatedAt   time.Time  `gorm:"not null" json:"activated_at"`
	ExpiresAt     *time.Time `gorm:"index" json:"expires_at,omitempty"` // TEMPORARY only
	RemainingUses *int       `json:"remaining_uses,omitempty"`          // CONSUMABLE only
	IsActive      bool       `gorm:"default:true;index" json:"is_active"`

	Perk *Perk `gorm:"foreignKey:PerkID" json:"perk,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ActiveBoost) TableName() string {
	return "active_boosts"
}

// IsLive reports whether the boost should still contribute to resolution at
// the given instant. Resolution re-checks this at read time, so correctness
// never depends on how recently the sweeper ran.
func (b *ActiveBoost) IsLive(now time.Time) bool {
	if !b.IsActive {
		return false
	}
	if b.ExpiresAt != nil && !b.ExpiresAt.After(now) {
		return false
	}
	if b.RemainingUses != nil && *b.RemainingUses <= 0 {
		return false
	}
	return true
}
