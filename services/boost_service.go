package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"perk-boost-system/events"
	"perk-boost-system/models"
	"perk-boost-system/stacking"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BoostService owns the activation state machine and the stacking resolver.
// Events are published only after the surrounding transaction commits, so
// subscribers never observe a half-committed boost.
type BoostService struct {
	DB        *gorm.DB
	Bus       *events.Bus
	Inventory *InventoryService
	Analytics *AnalyticsService
}

func NewBoostService(db *gorm.DB, bus *events.Bus, inventory *InventoryService, analytics *AnalyticsService) *BoostService {
	return &BoostService{DB: db, Bus: bus, Inventory: inventory, Analytics: analytics}
}

// ResolveContext carries the inputs of one modified-value resolution.
type ResolveContext struct {
	PlayerID  string  `json:"player_id"`
	GameID    string  `json:"game_id"`
	BaseValue float64 `json:"base_value"`
}

// newActiveBoost snapshots a perk's effect configuration onto a fresh boost
// record. Expiry applies only to TEMPORARY perks, a use budget only to
// CONSUMABLE ones; PERMANENT boosts carry neither bound.
func newActiveBoost(perk *models.Perk, playerID, gameID string, now time.Time) *models.ActiveBoost {
	boost := &models.ActiveBoost{
		ID:           uuid.NewString(),
		PlayerID:     playerID,
		GameID:       gameID,
		PerkID:       perk.ID,
		EffectType:   perk.EffectType,
		StackingRule: perk.StackingRule,
		Magnitude:    perk.Magnitude,
		Stackable:    perk.Stackable,
		ActivatedAt:  now,
		IsActive:     true,
	}

	switch perk.Duration {
	case models.PerkDurationTemporary:
		expires := now.Add(time.Duration(perk.DurationMinutes) * time.Minute)
		boost.ExpiresAt = &expires
	case models.PerkDurationConsumable:
		uses := perk.EffectiveUseCount()
		boost.RemainingUses = &uses
	}

	return boost
}

// ActivatePerk turns an owned perk into a live boost. Ownership validation,
// consumption (CONSUMABLE only) and the boost insert share one transaction,
// so a crash can never consume a unit without activating, or vice versa.
func (s *BoostService) ActivatePerk(playerID, gameID, perkID string) (*models.ActiveBoost, error) {
	var boost *models.ActiveBoost

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var perk models.Perk
		if err := tx.First(&perk, "id = ?", perkID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPerkNotFound
			}
			return err
		}
		if !perk.IsActive {
			return ErrPerkInactive
		}

		if _, err := s.Inventory.ValidateOwnership(tx, playerID, perkID); err != nil {
			return err
		}

		if perk.Duration == models.PerkDurationConsumable {
			if err := s.Inventory.Consume(tx, playerID, perkID); err != nil {
				return err
			}
		}

		boost = newActiveBoost(&perk, playerID, gameID, time.Now())
		if err := tx.Create(boost).Error; err != nil {
			return fmt.Errorf("failed to create active boost: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	payload := events.ActivatedPayload{
		PlayerID: playerID,
		GameID:   gameID,
		BoostID:  boost.ID,
		PerkID:   perkID,
	}
	s.Bus.Publish(events.BoostActivated, payload)
	s.Analytics.Record("boost_activated", playerID, gameID, boost.ID, perkID, payload)

	log.Printf("⚡ Boost activated: player=%s game=%s perk=%s boost=%s", playerID, gameID, perkID, boost.ID)
	return boost, nil
}

// DeactivateBoost is the explicit cancel path for game rules: it flips
// is-active without touching inventory. It mirrors the sweeper's EXPIRED
// event so downstream listeners see every retirement the same way.
func (s *BoostService) DeactivateBoost(boostID string) error {
	var boost models.ActiveBoost
	if err := s.DB.Preload("Perk").First(&boost, "id = ?", boostID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBoostNotFound
		}
		return err
	}
	if !boost.IsActive {
		return nil // already retired, nothing to announce
	}

	res := s.DB.Model(&models.ActiveBoost{}).
		Where("id = ? AND is_active = ?", boostID, true).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nil // lost the race to another retirement path
	}

	perkName := ""
	if boost.Perk != nil {
		perkName = boost.Perk.Name
	}
	payload := events.ExpiredPayload{
		PlayerID: boost.PlayerID,
		GameID:   boost.GameID,
		BoostID:  boost.ID,
		PerkID:   boost.PerkID,
		PerkName: perkName,
	}
	s.Bus.Publish(events.BoostExpired, payload)
	s.Analytics.Record("boost_deactivated", boost.PlayerID, boost.GameID, boost.ID, boost.PerkID, payload)
	return nil
}

// GetActiveBoosts returns the boosts that may contribute to resolution right
// now, optionally filtered by effect type. Liveness is re-checked at read
// time — an expired boost is excluded here even if the sweeper has not yet
// flipped its flag. Fetch order is stable (activation order) because the
// HIGHEST_ONLY tie-break depends on it.
func (s *BoostService) GetActiveBoosts(playerID, gameID string, effectType *models.EffectType) ([]models.ActiveBoost, error) {
	return s.fetchActive(s.DB, playerID, gameID, effectType, false)
}

func (s *BoostService) fetchActive(db *gorm.DB, playerID, gameID string, effectType *models.EffectType, lock bool) ([]models.ActiveBoost, error) {
	now := time.Now()
	q := db.Where("player_id = ? AND game_id = ?", playerID, gameID).
		Where("is_active = ?", true).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Where("remaining_uses IS NULL OR remaining_uses > 0")
	if effectType != nil {
		q = q.Where("effect_type = ?", *effectType)
	}
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var boosts []models.ActiveBoost
	err := q.Preload("Perk").
		Order("activated_at ASC, id ASC").
		Find(&boosts).Error
	return boosts, err
}

// CalculateModifiedValue folds every live boost of the effect type into the
// base value. Contributing boosts get a usage record; finite use counters are
// decremented in the same transaction, and a counter hitting zero retires the
// boost immediately rather than waiting for the sweeper. The rows are locked
// for the duration so two concurrent resolutions cannot double-spend a last
// use. The caller owns any rounding; full precision is returned.
func (s *BoostService) CalculateModifiedValue(ctx ResolveContext, effectType models.EffectType) (float64, error) {
	var value float64

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		boosts, err := s.fetchActive(tx, ctx.PlayerID, ctx.GameID, &effectType, true)
		if err != nil {
			return err
		}

		inputs := make([]stacking.Input, len(boosts))
		for i, b := range boosts {
			inputs[i] = stacking.Input{Rule: b.StackingRule, Magnitude: b.Magnitude}
		}

		var used []int
		value, used = stacking.Fold(ctx.BaseValue, inputs)

		for _, i := range used {
			b := &boosts[i]

			record := models.BoostUsageRecord{
				ID:            uuid.NewString(),
				ActiveBoostID: b.ID,
				PlayerID:      ctx.PlayerID,
				GameID:        ctx.GameID,
				EffectType:    effectType,
				Magnitude:     b.Magnitude,
				BaseValue:     ctx.BaseValue,
				ResolvedValue: value,
			}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("failed to write usage record for boost %s: %w", b.ID, err)
			}

			if b.RemainingUses == nil {
				continue
			}
			remaining := *b.RemainingUses - 1
			updates := map[string]interface{}{"remaining_uses": remaining}
			if remaining <= 0 {
				// Exhausted: terminal, flipped in the same transaction as
				// the decrement that caused it.
				updates["is_active"] = false
			}
			if err := tx.Model(b).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to decrement uses for boost %s: %w", b.ID, err)
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return value, nil
}
