package web

import "github.com/gofiber/fiber/v3"

// RegisterRoutes mounts the API under /api.
func RegisterRoutes(app *fiber.App, handlers *APIHandlers) {
	api := app.Group("/api")

	api.Post("/generate-workflow", handlers.GenerateWorkflow)
	api.Post("/validate-workflow", handlers.ValidateWorkflow)

	api.Get("/templates", handlers.GetTemplates)
	api.Get("/templates/:id", handlers.GetTemplate)

	api.Get("/workflows/recent", handlers.GetRecentWorkflows)
	api.Get("/workflows/:id", handlers.GetWorkflow)

	api.Get("/conversations/:id", handlers.GetConversation)

	api.Get("/nodes", handlers.GetNodes)
	api.Get("/nodes/:type", handlers.GetNode)
}
