package models

import (
	"time"

	"gorm.io/gorm"
)

// PlayerPerkOwnership tracks how many units of a perk a player owns and
// whether it is equipped. One row per (player, perk); rows are never
// hard-deleted — quantity may reach zero and stay there for history.
type PlayerPerkOwnership struct {
	ID       string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	PlayerID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_player_perk" json:"player_id"`
	PerkID   string `gorm:"type:uuid;not null;index;uniqueIndex:idx_player_perk" json:"perk_id"`
	Quantity int    `gorm:"not null;default:0;check:quantity >= 0" json:"quantity"`
	Equipped bool   `gorm:"default:false" json:"equipped"`

	Perk *Perk `gorm:"foreignKey:PerkID" json:"perk,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PlayerPerkOwnership) TableName() string {
	return "player_perk_ownerships"
}

// PerkGrant is one line of a grant request from the shop/reward collaborator.
type PerkGrant struct {
	PerkID   string `json:"perk_id" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}
