package routes

import (
	"github.com/01moynul/binner-golang/internal/config"
	"github.com/01moynul/binner-golang/internal/handlers"
	"github.com/01moynul/binner-golang/internal/middleware"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter builds the engine with the middleware chain and every route.
// /ping and /auth are always public. The rest require a token only when
// cfg.Auth.Required is set.
func SetupRouter(h *handlers.Handlers, cfg *config.Config, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))

	// CORS must run before anything that can abort, so preflights get their headers.
	router.Use(middleware.CORS(cfg.Server.CORSOrigin))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// --- Public Routes ---
	public := router.Group("/")
	public.Use(middleware.AuthMiddleware(h.Tokens, false))
	{
		public.GET("/ping", h.Ping)
		public.POST("/auth/register", h.RegisterUser)
		public.POST("/auth/login", h.Login)
	}

	// --- Inventory Routes ---
	api := router.Group("/")
	api.Use(middleware.AuthMiddleware(h.Tokens, cfg.Auth.Required))
	{
		part := api.Group("/part")
		{
			part.GET("", h.GetPart)
			part.POST("", h.CreatePart)
			part.PUT("", h.UpdatePart)
			part.DELETE("", h.DeletePart)
			part.GET("/list", h.ListParts)
			part.GET("/search", h.SearchParts)
			part.GET("/lowStock", h.LowStockParts)
			part.GET("/count", h.CountParts)
			part.POST("/print", h.PrintPart)
			part.GET("/export", h.ExportParts)
			part.POST("/import", h.ImportParts)
		}

		project := api.Group("/project")
		{
			project.GET("", h.GetProject)
			project.POST("", h.CreateProject)
			project.PUT("", h.UpdateProject)
			project.DELETE("", h.DeleteProject)
			project.GET("/list", h.ListProjects)
		}

		partType := api.Group("/partType")
		{
			partType.POST("", h.CreatePartType)
			partType.GET("/list", h.ListPartTypes)
		}

		credential := api.Group("/authorization/credential")
		{
			credential.GET("", h.GetCredential)
			credential.PUT("", h.SaveCredential)
			credential.DELETE("", h.DeleteCredential)
		}
	}

	return router
}
