package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookcopy-server/internal/service"
)

// Handler обслуживает HTTP API сервера.
type Handler struct {
	authService       *service.AuthService
	manuscriptService *service.ManuscriptService
	generationService *service.GenerationService
	maxUploadSize     int64
	logger            *zap.Logger
}

// NewHandler создает новый Handler.
func NewHandler(
	authService *service.AuthService,
	manuscriptService *service.ManuscriptService,
	generationService *service.GenerationService,
	maxUploadSize int64,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		authService:       authService,
		manuscriptService: manuscriptService,
		generationService: generationService,
		maxUploadSize:     maxUploadSize,
		logger:            logger.Named("Handler"),
	}
}

// RegisterRoutes регистрирует все маршруты API под basePath.
func (h *Handler) RegisterRoutes(router *gin.Engine, basePath string) {
	api := router.Group(basePath)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
		authGroup.POST("/refresh", h.refresh)
		authGroup.POST("/logout", h.AuthMiddleware(), h.logout)
		authGroup.GET("/me", h.AuthMiddleware(), h.getMe)
	}

	protected := api.Group("")
	protected.Use(h.AuthMiddleware())
	{
		protected.GET("/actions", h.listActions)

		protected.POST("/manuscripts", h.uploadManuscript)
		protected.GET("/manuscripts", h.listManuscripts)
		protected.GET("/manuscripts/:manuscript_id", h.getManuscript)
		protected.DELETE("/manuscripts/:manuscript_id", h.deleteManuscript)

		protected.POST("/manuscripts/:manuscript_id/generate", h.createGeneration)
		protected.GET("/manuscripts/:manuscript_id/generations", h.listGenerations)
		protected.GET("/generations/:generation_id", h.getGeneration)
	}
}
