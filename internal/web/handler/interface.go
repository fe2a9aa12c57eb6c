// Package handler provides shared types and helpers for web handlers.
package handler

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/linkdeck/linkdeck/internal/config"
)

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error
}

// Error writes a JSON error body with the given status code.
// All error bodies have the shape {"error": string}.
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// Success writes the JSON body {"success": true}.
func Success(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true})
}
