package services

import (
	"errors"
	"fmt"
	"log"

	"perk-boost-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventoryService is the ownership ledger: it tracks how many units of each
// perk a player owns and gates consumption. The (player, perk) ownership row
// is the single serialization point for concurrent grant/consume calls.
type InventoryService struct {
	DB *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{DB: db}
}

// GetInventory returns all ownership rows for a player with perk detail.
// Read-only; rows with quantity zero are kept for history and still returned.
func (s *InventoryService) GetInventory(playerID string) ([]models.PlayerPerkOwnership, error) {
	var rows []models.PlayerPerkOwnership
	err := s.DB.Where("player_id = ?", playerID).
		Preload("Perk").
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

// GrantPerks adds quantities to the player's ownership rows, creating rows
// on first acquisition. The whole batch runs in one transaction so a partial
// failure grants nothing.
func (s *InventoryService) GrantPerks(playerID string, grants []models.PerkGrant) error {
	if len(grants) == 0 {
		return nil
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		for _, g := range grants {
			if g.Quantity <= 0 {
				return fmt.Errorf("invalid grant quantity %d for perk %s", g.Quantity, g.PerkID)
			}

			var perk models.Perk
			if err := tx.First(&perk, "id = ?", g.PerkID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("grant for unknown perk %s: %w", g.PerkID, ErrPerkNotFound)
				}
				return err
			}

			// Upsert in one statement: insert the row, or add to the existing
			// quantity under the unique (player, perk) constraint.
			row := models.PlayerPerkOwnership{
				ID:       uuid.NewString(),
				PlayerID: playerID,
				PerkID:   g.PerkID,
				Quantity: g.Quantity,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "player_id"}, {Name: "perk_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"quantity": gorm.Expr("player_perk_ownerships.quantity + EXCLUDED.quantity"),
				}),
			}).Create(&row).Error; err != nil {
				return fmt.Errorf("failed to grant perk %s: %w", g.PerkID, err)
			}
		}

		log.Printf("🎁 Granted %d perk line(s) to player %s", len(grants), playerID)
		return nil
	})
}

// ValidateOwnership loads the ownership row and fails with ErrNotOwned when
// the row is missing or quantity is zero. Pass the surrounding transaction
// handle so activation validates against the state it will commit with.
func (s *InventoryService) ValidateOwnership(db *gorm.DB, playerID, perkID string) (*models.PlayerPerkOwnership, error) {
	var row models.PlayerPerkOwnership
	err := db.Where("player_id = ? AND perk_id = ?", playerID, perkID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotOwned
	}
	if err != nil {
		return nil, err
	}
	if row.Quantity <= 0 {
		return nil, ErrNotOwned
	}
	return &row, nil
}

// Consume decrements one unit of a CONSUMABLE perk. It must be called from
// inside the same transaction as the ActiveBoost insert it gates: the
// exclusive row lock serializes concurrent activations of the last unit, and
// the re-validation under the lock rejects the loser instead of clamping.
func (s *InventoryService) Consume(tx *gorm.DB, playerID, perkID string) error {
	var row models.PlayerPerkOwnership
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("player_id = ? AND perk_id = ?", playerID, perkID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotOwned
	}
	if err != nil {
		return err
	}
	if row.Quantity <= 0 {
		return ErrNotOwned
	}

	row.Quantity--
	return tx.Save(&row).Error
}

// SetEquipped toggles the equipped flag after re-validating ownership.
// Quantity is untouched.
func (s *InventoryService) SetEquipped(playerID, perkID string, equipped bool) (*models.PlayerPerkOwnership, error) {
	row, err := s.ValidateOwnership(s.DB, playerID, perkID)
	if err != nil {
		return nil, err
	}

	row.Equipped = equipped
	if err := s.DB.Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}
