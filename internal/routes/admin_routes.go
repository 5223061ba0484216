package routes

import (
	"buildersite/internal/models"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(r *gin.Engine, deps Dependencies) {
	admin := r.Group("/admin")
	admin.Use(deps.JWT.RequireAuthWithRole(models.RoleAdmin))
	{
		admin.GET("/service-areas", deps.ServiceAreas.List)
		admin.POST("/service-areas", deps.ServiceAreas.Create)
		admin.GET("/service-areas/:id", deps.ServiceAreas.Get)
		admin.PUT("/service-areas/:id/coordinates", deps.ServiceAreas.ReplaceCoordinates)
		admin.PATCH("/service-areas/:id", deps.ServiceAreas.Update)
		admin.DELETE("/service-areas/:id", deps.ServiceAreas.Delete)

		admin.GET("/quotes", deps.Quotes.List)
		admin.PATCH("/quotes/:id/status", deps.Quotes.UpdateStatus)
	}
}
