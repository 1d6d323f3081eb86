package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/sdma/internal/access"
	"github.com/stwalsh4118/sdma/internal/middleware"
)

// Handlers bundles the handlers served under /api/v1.
type Handlers struct {
	Auth       *AuthHandler
	Users      *UserHandler
	Reference  *ReferenceHandler
	Reports    *ReportHandler
	Incidents  *IncidentHandler
	Categories *CategoryHandler
}

// RegisterRoutes mounts the API on v1. Everything except login requires a
// bearer token, and each area is gated by the role matrix.
func RegisterRoutes(v1 *gin.RouterGroup, h Handlers, authn middleware.Authenticator) {
	v1.POST("/auth/login", h.Auth.Login)

	api := v1.Group("", middleware.Auth(authn))

	me := api.Group("/me")
	{
		me.GET("", middleware.RequireFeature(access.FeatureProfile), h.Users.Me)
		me.PUT("", middleware.RequireFeature(access.FeatureProfile), h.Users.UpdateMe)
		me.POST("/password", middleware.RequireFeature(access.FeatureChangePassword), h.Auth.ChangePassword)
	}

	reference := api.Group("/reference", middleware.RequireFeature(access.FeatureDashboard))
	{
		reference.GET("/districts", h.Reference.Districts)
		reference.GET("/districts/:code/tehsils", h.Reference.Tehsils)
		reference.GET("/taxonomy", h.Reference.Taxonomy)
	}

	api.GET("/dashboard", middleware.RequireFeature(access.FeatureDashboard), h.Reports.Dashboard)
	api.POST("/incidents", middleware.RequireFeature(access.FeatureIncidentEntry), h.Incidents.Create)

	reports := api.Group("/reports")
	{
		tehsil := reports.Group("/tehsil", middleware.RequireFeature(access.FeatureTehsilReport))
		tehsil.GET("", h.Reports.TehsilReport)
		tehsil.GET("/export", h.Reports.TehsilExport)

		monitoring := reports.Group("/monitoring", middleware.RequireFeature(access.FeatureMonitoringReport))
		monitoring.GET("", h.Reports.MonitoringReport)
		monitoring.GET("/export", h.Reports.MonitoringExport)
	}

	api.GET("/charts/districts", middleware.RequireFeature(access.FeatureDistrictChart), h.Reports.DistrictChart)

	categories := api.Group("/categories", middleware.RequireFeature(access.FeatureIncidentCategories))
	{
		categories.GET("/:kind", h.Categories.List)
		categories.POST("/:kind", h.Categories.Create)
		categories.PUT("/:kind/:id", h.Categories.Update)
		categories.GET("/:kind/:id/subtypes", h.Categories.Subtypes)
		categories.POST("/:kind/:id/subtypes", h.Categories.CreateSubtype)
		categories.PUT("/:kind/subtypes/:id", h.Categories.UpdateSubtype)
	}

	users := api.Group("/users", middleware.RequireFeature(access.FeatureUserManagement))
	{
		users.GET("", h.Users.List)
		users.PUT("/:userId", h.Users.Update)
	}
}
