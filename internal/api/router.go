// Package api exposes the rule engine and record ingestion over HTTP.
package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with every route registered
func NewRouter(h *Handler, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = h.maxUpload
	r.Use(RequestID(), AccessLog(logger), Recovery(logger))

	RegisterRoutes(r, h)
	return r
}

// RegisterRoutes mounts the handler under /api/v1
func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/healthz", h.Health)

	api := r.Group("/api/v1")
	{
		api.POST("/dates/parse", h.ParseDate)
		api.POST("/norms/normalize", h.NormalizeNorm)
		api.GET("/rules", h.Rules)

		trainings := api.Group("/trainings")
		{
			trainings.POST("/expiration", h.TrainingExpiration)
			trainings.POST("/hours", h.TrainingHours)
		}

		api.POST("/company-documents/classify", h.ClassifyCompanyDocument)
		api.POST("/ingest/:kind", h.Ingest)
		api.GET("/compliance", h.Compliance)
	}
}
