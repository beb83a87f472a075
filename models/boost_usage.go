package models

import "time"

// BoostUsageRecord is an append-only log row written every time an
// ActiveBoost contributes to a resolved value. Never mutated.
type BoostUsageRecord struct {
	ID            string     `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ActiveBoostID string     `gorm:"type:uuid;not null;index" json:"active_boost_id"`
	PlayerID      string     `gorm:"type:uuid;not null;index" json:"player_id"`
	GameID        string     `gorm:"type:uuid;not null;index" json:"game_id"`
	EffectType    EffectType `gorm:"type:varchar(32);not null" json:"effect_type"`
	Magnitude     float64    `gorm:"not null" json:"magnitude"`
	BaseValue     float64    `gorm:"not null" json:"base_value"`
	ResolvedValue float64    `gorm:"not null" json:"resolved_value"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (BoostUsageRecord) TableName() string {
	return "boost_usage_records"
}
