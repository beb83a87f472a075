package models

import (
	"time"

	"gorm.io/gorm"
)

// PerkDurationClass controls how an activated perk is bounded
type PerkDurationClass string

const (
	PerkDurationPermanent  PerkDurationClass = "permanent"
	PerkDurationTemporary  PerkDurationClass = "temporary"
	PerkDurationConsumable PerkDurationClass = "consumable"
)

// StackingRule defines how simultaneously active boosts of the same
// effect type combine into one modifier
type StackingRule string

const (
	StackingAdditive       StackingRule = "additive"
	StackingMultiplicative StackingRule = "multiplicative"
	StackingHighestOnly    StackingRule = "highest_only"
)

// EffectType is the category of game value a boost modifies
type EffectType string

const (
	EffectDiceRoll     EffectType = "dice_roll"
	EffectRentDiscount EffectType = "rent_discount"
	EffectCashGain     EffectType = "cash_gain"
	EffectSpeed        EffectType = "speed"
)

// Perk is a catalog definition of an effect a player can own.
// Read-only to the engine; only catalog admin endpoints mutate it.
type Perk struct {
	ID       string            `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Code     string            `gorm:"uniqueIndex;not null" json:"code"` // slug of Name, e.g. "speed-boost"
	Name     string            `gorm:"not null" json:"name"`
	Excerpt  string            `gorm:"type:text" json:"excerpt"`
	IconURL  string            `gorm:"type:text" json:"icon_url"`
	Duration PerkDurationClass `gorm:"type:varchar(16);not null" json:"duration_class"`
	IsActive bool              `gorm:"default:true;index" json:"is_active"`

	// Effect configuration (copied onto ActiveBoost on activation so later
	// catalog edits never retroactively change live boosts)
	EffectType      EffectType   `gorm:"type:varchar(32);not null;index" json:"effect_type"`
	StackingRule    StackingRule `gorm:"type:varchar(16);not null" json:"stacking_rule"`
	Magnitude       float64      `gorm:"not null" json:"magnitude"`
	DurationMinutes int          `gorm:"default:0" json:"duration_minutes"` // TEMPORARY only
	UseCount        int          `gorm:"default:0" json:"use_count"`        // CONSUMABLE only; 0 means default of 1
	Stackable       bool         `gorm:"default:true" json:"stackable"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// EffectiveUseCount returns the use budget a CONSUMABLE activation starts with.
func (p *Perk) EffectiveUseCount() int {
	if p.UseCount <= 0 {
		return 1
	}
	return p.UseCount
}
