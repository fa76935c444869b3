package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"docuvault/middleware"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}
			defer a.log.Sync()

			router := setupRouter(a)

			a.log.Info("server starting", zap.String("port", a.cfg.Port))
			return http.ListenAndServe(":"+a.cfg.Port, router)
		},
	}
}

func setupRouter(a *app) *gin.Engine {
	if a.cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(a.log))
	router.Use(middleware.Metrics(a.metrics))

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/metrics", gin.WrapH(a.metrics.Handler()))

	// API routes
	v1 := router.Group("/api/v1")
	{
		documents := v1.Group("/documents")
		{
			documents.POST("", a.documentHandler.CreateDocument)
			documents.GET("", a.documentHandler.GetDocuments)
			documents.GET("/:id", a.documentHandler.GetDocument)
			documents.PUT("/:id", a.documentHandler.UpdateDocument)
			documents.DELETE("/:id", a.documentHandler.DeleteDocument)
			documents.POST("/:id/versions", a.documentHandler.CreateDocumentVersion)
			documents.GET("/:id/versions", a.documentHandler.GetDocumentVersions)
			documents.GET("/:id/download", a.documentHandler.DownloadDocument)
		}

		fields := v1.Group("/metadata-fields")
		{
			fields.POST("", a.fieldHandler.CreateField)
			fields.GET("", a.fieldHandler.GetFields)
			fields.GET("/:id", a.fieldHandler.GetField)
			fields.PUT("/:id", a.fieldHandler.UpdateField)
			fields.DELETE("/:id", a.fieldHandler.DeleteField)
		}

		types := v1.Group("/document-types")
		{
			types.POST("", a.typeHandler.CreateType)
			types.GET("", a.typeHandler.GetTypes)
			types.GET("/:id", a.typeHandler.GetType)
			types.PUT("/:id/fields", a.typeHandler.UpdateFieldAssociations)
			types.DELETE("/:id", a.typeHandler.DeleteType)
		}

		categories := v1.Group("/categories")
		{
			categories.POST("", a.categoryHandler.CreateCategory)
			categories.GET("", a.categoryHandler.GetCategories)
			categories.GET("/:id", a.categoryHandler.GetCategory)
			categories.POST("/:id/children/:child_id", a.categoryHandler.AddChild)
			categories.POST("/:id/document-types/:type_id", a.categoryHandler.AttachToType)
			categories.DELETE("/:id", a.categoryHandler.DeleteCategory)
		}
	}

	return router
}
