package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vialtyfake/vialty-blog/internal/auth"
	"github.com/vialtyfake/vialty-blog/internal/config"
	"github.com/vialtyfake/vialty-blog/internal/images"
	"github.com/vialtyfake/vialty-blog/internal/service"
	"github.com/vialtyfake/vialty-blog/internal/store"
	"github.com/vialtyfake/vialty-blog/internal/transport/http/handlers"
)

type Router = *gin.Engine

func NewRouter(cfg *config.Config, logger *zap.Logger, st store.DocumentStore, imgs *images.Service) Router {
	if mode := gin.Mode(); mode == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(RequestLogger(logger))
	r.Use(Recovery(logger))
	r.Use(CORS())
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	gate := auth.NewGate(st, logger)
	h := handlers.New(
		gate,
		service.NewPostService(st, logger),
		service.NewProjectService(st, logger),
		imgs,
		logger,
	)
	admin := RequireAdmin(gate, logger)

	api := r.Group("/api")

	api.GET("/posts", h.ListPosts)
	api.POST("/posts", admin, h.CreatePost)
	api.GET("/admin-posts", admin, h.ListAdminPosts)
	api.PUT("/admin-posts", admin, h.UpdatePost)
	api.DELETE("/admin-posts", admin, h.DeletePost)
	api.GET("/search", h.SearchPosts)

	api.GET("/views", h.GetViews)
	api.POST("/views", h.IncrementViews)

	api.GET("/projects", h.ListProjects)
	api.GET("/admin-projects", admin, h.ListProjects)
	api.POST("/admin-projects", admin, h.CreateProject)
	api.PUT("/admin-projects", admin, h.UpdateProject)
	api.DELETE("/admin-projects", admin, h.DeleteProject)

	api.GET("/admin-check", h.AdminCheck)
	api.GET("/admin-ips", admin, h.ListAdminIPs)
	api.POST("/admin-ips", admin, h.AddAdminIP)
	api.DELETE("/admin-ips", admin, h.RemoveAdminIP)

	api.GET("/admin-images", admin, h.ListImages)
	api.POST("/admin-images", admin, h.UploadImage)
	api.PUT("/admin-images", admin, h.RenameImage)
	api.DELETE("/admin-images", admin, h.DeleteImage)

	api.GET("/stats", admin, h.Stats)

	if cfg.ImageDir != "" {
		r.Static("/images", cfg.ImageDir)
	}

	return r
}
