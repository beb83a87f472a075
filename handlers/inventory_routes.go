package handlers

import (
	"errors"

	"perk-boost-system/middleware"
	"perk-boost-system/models"
	"perk-boost-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupInventoryRoutes(app *fiber.App, inventoryService *services.InventoryService) {
	secured := app.Group("/s", middleware.UserContextMiddleware())

	secured.Get("/inventory", func(c *fiber.Ctx) error {
		playerID := c.Locals("user_id").(string)

		rows, err := inventoryService.GetInventory(playerID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch inventory",
				"cause": err.Error(),
			})
		}
		return c.JSON(rows)
	})

	// Invoked by the shop/reward collaborator after a completed purchase.
	// The grant is all-or-nothing.
	secured.Post("/inventory/grant", func(c *fiber.Ctx) error {
		var req struct {
			PlayerID string             `json:"player_id" validate:"required,uuid"`
			Grants   []models.PerkGrant `json:"grants" validate:"required,min=1"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		if req.PlayerID == "" || len(req.Grants) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "player_id and grants are required"})
		}

		if err := inventoryService.GrantPerks(req.PlayerID, req.Grants); err != nil {
			if errors.Is(err, services.ErrPerkNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "grant failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"message": "perks granted", "player_id": req.PlayerID, "lines": len(req.Grants)})
	})

	secured.Post("/inventory/:perkId/equip", equipHandler(inventoryService, true))
	secured.Post("/inventory/:perkId/unequip", equipHandler(inventoryService, false))
}

func equipHandler(inventoryService *services.InventoryService, equipped bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		playerID := c.Locals("user_id").(string)
		perkID := c.Params("perkId")

		row, err := inventoryService.SetEquipped(playerID, perkID, equipped)
		if err != nil {
			if errors.Is(err, services.ErrNotOwned) {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "perk not owned"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to update equip state",
				"cause": err.Error(),
			})
		}
		return c.JSON(row)
	}
}
