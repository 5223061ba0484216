package routes

import (
	"github.com/gin-gonic/gin"
)

func PublicRoutes(r *gin.Engine, deps Dependencies) {
	r.GET("/service-areas", deps.ServiceAreas.ListActive)
	r.POST("/coverage/check", deps.Coverage.Check)
	r.POST("/polygons/validate", deps.Coverage.ValidatePolygon)
	r.GET("/geocode", deps.Coverage.Geocode)

	quotes := r.Group("/quotes")
	{
		quotes.POST("", deps.Quotes.Submit)
		quotes.GET("/:id", deps.Quotes.Get)
	}
}
