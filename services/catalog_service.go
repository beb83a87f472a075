package services

import (
	"errors"
	"log"
	"path/filepath"
	"strconv"

	"perk-boost-system/models"
	"perk-boost-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// CatalogService manages the perk catalog. The engine only ever reads these
// rows; admin endpoints here are the single write path.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

func validDurationClass(d models.PerkDurationClass) bool {
	switch d {
	case models.PerkDurationPermanent, models.PerkDurationTemporary, models.PerkDurationConsumable:
		return true
	}
	return false
}

func validStackingRule(r models.StackingRule) bool {
	switch r {
	case models.StackingAdditive, models.StackingMultiplicative, models.StackingHighestOnly:
		return true
	}
	return false
}

// ListPerks returns active catalog perks. Admins can pass ?include_disabled=true.
func (s *CatalogService) ListPerks(c *fiber.Ctx) error {
	includeDisabled, _ := strconv.ParseBool(c.Query("include_disabled", "false"))

	q := s.DB.Order("created_at ASC")
	if !includeDisabled {
		q = q.Where("is_active = ?", true)
	}

	var perks []models.Perk
	if err := q.Find(&perks).Error; err != nil {
		log.Printf("DB Error fetching perks: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch perks"})
	}
	return c.JSON(perks)
}

// GetPerk returns one perk by id.
func (s *CatalogService) GetPerk(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid perk ID"})
	}

	var perk models.Perk
	if err := s.DB.First(&perk, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Perk not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(&perk)
}

// CreatePerk creates a catalog perk (Admin only). Accepts multipart form so
// an icon can be uploaded alongside the effect configuration; icons are
// small public assets and go straight to R2.
func (s *CatalogService) CreatePerk(c *fiber.Ctx) error {
	name := c.FormValue("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	duration := models.PerkDurationClass(c.FormValue("duration_class"))
	if !validDurationClass(duration) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid duration_class"})
	}
	rule := models.StackingRule(c.FormValue("stacking_rule"))
	if !validStackingRule(rule) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid stacking_rule"})
	}

	magnitude, err := strconv.ParseFloat(c.FormValue("magnitude"), 64)
	if err != nil || magnitude < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "magnitude must be a non-negative number"})
	}

	durationMinutes, _ := strconv.Atoi(c.FormValue("duration_minutes", "0"))
	if duration == models.PerkDurationTemporary && durationMinutes <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "duration_minutes is required for temporary perks"})
	}
	useCount, _ := strconv.Atoi(c.FormValue("use_count", "0"))
	stackable, _ := strconv.ParseBool(c.FormValue("stackable", "true"))

	perk := &models.Perk{
		ID:              uuid.NewString(),
		Code:            slug.Make(name),
		Name:            name,
		Excerpt:         c.FormValue("excerpt"),
		Duration:        duration,
		IsActive:        true,
		EffectType:      models.EffectType(c.FormValue("effect_type")),
		StackingRule:    rule,
		Magnitude:       magnitude,
		DurationMinutes: durationMinutes,
		UseCount:        useCount,
		Stackable:       stackable,
	}
	if perk.EffectType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "effect_type is required"})
	}

	if iconFile, err := c.FormFile("icon"); err == nil && iconFile.Size > 0 {
		ext := filepath.Ext(iconFile.Filename)
		if ext == "" {
			ext = ".png"
		}
		iconKey := "perk-icons/" + uuid.NewString() + ext
		iconURL, err := utils.UploadFileToR2(iconFile, iconKey)
		if err != nil {
			log.Printf("❌ Failed to upload perk icon: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to upload icon"})
		}
		perk.IconURL = iconURL
	}

	if err := s.DB.Create(perk).Error; err != nil {
		log.Printf("DB Error creating perk: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create perk"})
	}
	return c.Status(fiber.StatusCreated).JSON(perk)
}

// UpdatePerk applies partial updates to a perk (Admin only). Effect edits
// never touch boosts that are already live — activation snapshots the config.
func (s *CatalogService) UpdatePerk(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid perk ID"})
	}

	var perk models.Perk
	if err := s.DB.First(&perk, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Perk not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	var req struct {
		Name            *string                   `json:"name"`
		Excerpt         *string                   `json:"excerpt"`
		Duration        *models.PerkDurationClass `json:"duration_class"`
		EffectType      *models.EffectType        `json:"effect_type"`
		StackingRule    *models.StackingRule      `json:"stacking_rule"`
		Magnitude       *float64                  `json:"magnitude"`
		DurationMinutes *int                      `json:"duration_minutes"`
		UseCount        *int                      `json:"use_count"`
		Stackable       *bool                     `json:"stackable"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Name != nil {
		perk.Name = *req.Name
		perk.Code = slug.Make(*req.Name)
	}
	if req.Excerpt != nil {
		perk.Excerpt = *req.Excerpt
	}
	if req.Duration != nil {
		if !validDurationClass(*req.Duration) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid duration_class"})
		}
		perk.Duration = *req.Duration
	}
	if req.EffectType != nil {
		perk.EffectType = *req.EffectType
	}
	if req.StackingRule != nil {
		if !validStackingRule(*req.StackingRule) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid stacking_rule"})
		}
		perk.StackingRule = *req.StackingRule
	}
	if req.Magnitude != nil {
		if *req.Magnitude < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "magnitude must be non-negative"})
		}
		perk.Magnitude = *req.Magnitude
	}
	if req.DurationMinutes != nil {
		perk.DurationMinutes = *req.DurationMinutes
	}
	if req.UseCount != nil {
		perk.UseCount = *req.UseCount
	}
	if req.Stackable != nil {
		perk.Stackable = *req.Stackable
	}

	if err := s.DB.Save(&perk).Error; err != nil {
		log.Printf("DB Error updating perk: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update perk"})
	}
	return c.JSON(&perk)
}

// UpdatePerkStatus enables or disables a perk (Admin only). Disabling blocks
// new activations; boosts already live keep running until they expire.
func (s *CatalogService) UpdatePerkStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid perk ID"})
	}

	var req struct {
		IsActive *bool `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil || req.IsActive == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "is_active is required"})
	}

	res := s.DB.Model(&models.Perk{}).Where("id = ?", id).Update("is_active", *req.IsActive)
	if res.Error != nil {
		log.Printf("DB Error updating perk status: %v", res.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update perk status"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Perk not found"})
	}
	return c.JSON(fiber.Map{"message": "Perk status updated", "perk_id": id, "is_active": *req.IsActive})
}
