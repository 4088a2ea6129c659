package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/plant-catalog/internal/handler"
)

// RegisterRoutes registers routes that do not belong to a resource.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPlants mounts the plant collection resource (/plants) and the
// item resource (/plants/:id).
func RegisterPlants(e *echo.Echo, p *handler.PlantHandler) {
	// ---- Collection ----
	e.GET("/plants", p.ListPlants)
	e.POST("/plants", p.CreatePlant)

	// ---- Item ----
	e.GET("/plants/:id", p.GetPlant)
	e.PUT("/plants/:id", p.UpdatePlant)
	e.DELETE("/plants/:id", p.DeletePlant)
}
