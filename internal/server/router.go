package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogging(s.logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/assets/*name", s.serveAsset)

	api := r.Group("/api/v1")
	{
		api.GET("/settings", s.getSettings)
		api.GET("/skills", s.listSkills)
		api.GET("/projects", s.listProjects)
		api.GET("/blogs", s.listBlogs)
		api.GET("/blogs/:id", s.getBlog)

		api.POST("/auth/login", s.login)
		api.POST("/auth/logout", s.logout)
		api.GET("/auth/me", s.me)
	}

	admin := api.Group("/admin", RequireSession(s.store))
	{
		admin.PUT("/settings", s.updateSettings)

		admin.POST("/skills", s.addSkill)
		admin.DELETE("/skills/:id", s.deleteSkill)

		admin.POST("/projects", s.addProject)
		admin.PATCH("/projects/:id", s.updateProject)
		admin.DELETE("/projects/:id", s.deleteProject)
		admin.POST("/projects/:id/preview", s.syncPreview)

		admin.POST("/blogs", s.addBlog)
		admin.DELETE("/blogs/:id", s.deleteBlog)

		admin.POST("/uploads", s.upload)
		admin.GET("/logs", s.listLogs)
		admin.GET("/stats", s.stats)
	}

	return r
}
