package handlers

import (
	"errors"

	"perk-boost-system/middleware"
	"perk-boost-system/models"
	"perk-boost-system/services"
	"perk-boost-system/workers"

	"github.com/gofiber/fiber/v2"
)

func SetupBoostRoutes(app *fiber.App, boostService *services.BoostService, sweeper *workers.BoostSweeper) {
	secured := app.Group("/s", middleware.UserContextMiddleware())

	secured.Post("/boosts/activate", func(c *fiber.Ctx) error {
		playerID := c.Locals("user_id").(string)

		var req struct {
			GameID string `json:"game_id" validate:"required,uuid"`
			PerkID string `json:"perk_id" validate:"required,uuid"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		if req.GameID == "" || req.PerkID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "game_id and perk_id are required"})
		}

		boost, err := boostService.ActivatePerk(playerID, req.GameID, req.PerkID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrNotOwned):
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "perk not owned or out of stock"})
			case errors.Is(err, services.ErrPerkInactive):
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "perk is disabled"})
			case errors.Is(err, services.ErrPerkNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "perk not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "activation failed",
				"cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(boost)
	})

	secured.Get("/boosts/active", func(c *fiber.Ctx) error {
		playerID := c.Locals("user_id").(string)
		gameID := c.Query("game_id")
		if gameID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "game_id query param is required"})
		}

		var effectType *models.EffectType
		if raw := c.Query("effect_type"); raw != "" {
			et := models.EffectType(raw)
			effectType = &et
		}

		boosts, err := boostService.GetActiveBoosts(playerID, gameID, effectType)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch active boosts",
				"cause": err.Error(),
			})
		}
		return c.JSON(boosts)
	})

	secured.Post("/boosts/resolve", func(c *fiber.Ctx) error {
		playerID := c.Locals("user_id").(string)

		var req struct {
			GameID     string            `json:"game_id" validate:"required,uuid"`
			EffectType models.EffectType `json:"effect_type" validate:"required"`
			BaseValue  float64           `json:"base_value"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		if req.GameID == "" || req.EffectType == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "game_id and effect_type are required"})
		}

		value, err := boostService.CalculateModifiedValue(services.ResolveContext{
			PlayerID:  playerID,
			GameID:    req.GameID,
			BaseValue: req.BaseValue,
		}, req.EffectType)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "resolution failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"base_value":     req.BaseValue,
			"resolved_value": value,
			"effect_type":    req.EffectType,
		})
	})

	secured.Post("/boosts/:id/deactivate", func(c *fiber.Ctx) error {
		if err := boostService.DeactivateBoost(c.Params("id")); err != nil {
			if errors.Is(err, services.ErrBoostNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "boost not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "deactivation failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"message": "boost deactivated"})
	})

	// Admin: force-expire one boost outside the periodic cadence
	admin := app.Group("/s/admin", middleware.UserContextMiddleware())
	admin.Post("/boosts/:id/expire", func(c *fiber.Ctx) error {
		if err := sweeper.ExpireBoost(c.Params("id")); err != nil {
			if errors.Is(err, services.ErrBoostNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "boost not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "expire failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"message": "boost expired"})
	})
}
