package handlers

import (
	"perk-boost-system/middleware"
	"perk-boost-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupPerkRoutes(app *fiber.App, catalogService *services.CatalogService) {
	// 🔓 Public catalog reads — no user context, but still behind Gateway auth
	app.Get("/perks", catalogService.ListPerks)
	app.Get("/perks/:id", catalogService.GetPerk)

	// 🔐 Admin catalog writes
	admin := app.Group("/s/admin", middleware.UserContextMiddleware())
	admin.Post("/perks", catalogService.CreatePerk)
	admin.Put("/perks/:id", catalogService.UpdatePerk)
	admin.Patch("/perks/:id/status", catalogService.UpdatePerkStatus)
}
