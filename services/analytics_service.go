package services

import (
	"encoding/json"
	"log"

	"perk-boost-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnalyticsService mirrors engine events into the analytics_events table for
// the reporting collaborator. Writes are advisory: a failure is logged and
// swallowed so it can never fail or roll back the operation that produced it.
type AnalyticsService struct {
	DB *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{DB: db}
}

// Record appends one analytics row, best-effort.
func (s *AnalyticsService) Record(eventType, playerID, gameID, boostID, perkID string, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("⚠️ [ANALYTICS] failed to marshal %s payload: %v", eventType, err)
		body = []byte("{}")
	}

	row := models.AnalyticsEvent{
		ID:        uuid.NewString(),
		EventType: eventType,
		PlayerID:  playerID,
		GameID:    gameID,
		BoostID:   boostID,
		PerkID:    perkID,
		Payload:   string(body),
	}
	if err := s.DB.Create(&row).Error; err != nil {
		log.Printf("⚠️ [ANALYTICS] failed to record %s for boost %s: %v", eventType, boostID, err)
	}
}
