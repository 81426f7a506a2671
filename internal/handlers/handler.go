package handlers

import (
	"notes_api/internal/logger"
	"notes_api/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services       *service.Service
	log            *logger.Logger
	allowedOrigins []string
}

// NewHandler constructs a new HTTP handler with dependencies. CORS is enabled
// only when allowedOrigins is non-empty.
func NewHandler(services *service.Service, log *logger.Logger, allowedOrigins ...string) *Handler {
	return &Handler{services: services, log: log, allowedOrigins: allowedOrigins}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)
	if mw, ok := newCORS(h.allowedOrigins); ok {
		router.Use(mw)
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", h.root)
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerNoteRoutes(router)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/signup", h.signUp)
		auth.POST("/login", h.login)
	}
}

func (h *Handler) registerNoteRoutes(r *gin.Engine) {
	notes := r.Group("/notes", h.userIdentity)
	{
		notes.POST("", h.withUser(h.createNote))
		notes.GET("", h.withUser(h.listNotes))
		notes.GET("/:id", h.withUser(h.getNote))
		notes.PUT("/:id", h.withUser(h.updateNote))
		notes.DELETE("/:id", h.withUser(h.deleteNote))
	}
}
