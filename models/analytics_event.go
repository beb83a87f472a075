package models

import "time"

// AnalyticsEvent mirrors engine events into a queryable table for the
// reporting collaborator. Writes are best-effort: a failed insert is logged
// and swallowed, never propagated to the operation that produced it.
type AnalyticsEvent struct {
	ID        string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	EventType string    `gorm:"type:varchar(32);not null;index" json:"event_type"` // e.g. "boost_activated"
	PlayerID  string    `gorm:"type:uuid;not null;index" json:"player_id"`
	GameID    string    `gorm:"type:uuid;index" json:"game_id"`
	BoostID   string    `gorm:"type:uuid;index" json:"boost_id"`
	PerkID    string    `gorm:"type:uuid;index" json:"perk_id"`
	Payload   string    `gorm:"type:jsonb" json:"payload"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AnalyticsEvent) TableName() string {
	return "analytics_events"
}
