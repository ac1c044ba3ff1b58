package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, categoryHandler *CategoryHandler, goalHandler *GoalHandler, saleHandler *SaleHandler, reportHandler *ReportHandler, collaboratorHandler *CollaboratorHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Category routes
	categories := api.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)
	categories.GET("/:id/can-delete", categoryHandler.CanDeleteCategory)

	// Monthly goal routes
	goals := api.Group("/monthly-goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/:id", goalHandler.GetGoal)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)
	goals.POST("/:id/daily-allocations", goalHandler.CreateAllocation)

	// Daily allocation routes
	allocations := api.Group("/daily-allocations")
	allocations.PUT("/:id", goalHandler.UpdateAllocation)
	allocations.DELETE("/:id", goalHandler.DeleteAllocation)

	// Sale routes
	sales := api.Group("/sales")
	sales.POST("", saleHandler.RecordSale)
	sales.GET("", saleHandler.GetSales)
	sales.GET("/:id", saleHandler.GetSale)
	sales.PUT("/:id", saleHandler.UpdateSale)
	sales.DELETE("/:id", saleHandler.DeleteSale)

	// Report routes
	reports := api.Group("/reports")
	reports.GET("/gap", reportHandler.GetGap)
	reports.POST("/gap", reportHandler.PostGap)
	reports.GET("/summary", reportHandler.GetSummary)
	reports.GET("/overview", reportHandler.GetOverview)
	reports.GET("/sales", reportHandler.GetSalesByCategory)

	// Collaborator routes
	collaborators := api.Group("/collaborators")
	collaborators.POST("", collaboratorHandler.CreateCollaborator)
	collaborators.GET("", collaboratorHandler.ListCollaborators)
	collaborators.GET("/:id", collaboratorHandler.GetCollaborator)
	collaborators.PUT("/:id", collaboratorHandler.UpdateCollaborator)
	collaborators.DELETE("/:id", collaboratorHandler.DeleteCollaborator)
}
