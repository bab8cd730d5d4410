package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"renonx-go/internal/cms"
)

const dateFormat = "2006-01-02"

func (s *Server) updateSettings(c *gin.Context) {
	var settings cms.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.store.UpdateSettings(c.Request.Context(), settings); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (s *Server) addSkill(c *gin.Context) {
	var skill cms.Skill
	if err := c.ShouldBindJSON(&skill); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if skill.ID == "" {
		skill.ID = s.ids.New()
	}
	if err := s.store.AddSkill(c.Request.Context(), skill); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, skill)
}

func (s *Server) deleteSkill(c *gin.Context) {
	if err := s.store.DeleteSkill(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) addProject(c *gin.Context) {
	var project cms.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if project.ID == "" {
		project.ID = s.ids.New()
	}
	if project.Date == "" {
		project.Date = s.clock.Now().Format(dateFormat)
	}
	if err := s.store.AddProject(c.Request.Context(), project); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (s *Server) updateProject(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.store.UpdateProject(c.Request.Context(), c.Param("id"), fields); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) deleteProject(c *gin.Context) {
	if err := s.store.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) syncPreview(c *gin.Context) {
	url, err := s.store.SyncProjectPreview(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageUrl": url})
}

func (s *Server) addBlog(c *gin.Context) {
	var blog cms.Blog
	if err := c.ShouldBindJSON(&blog); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if blog.ID == "" {
		blog.ID = s.ids.New()
	}
	if blog.Date == "" {
		blog.Date = s.clock.Now().Format(dateFormat)
	}
	if blog.Tags == nil {
		blog.Tags = []string{}
	}
	if err := s.store.AddBlog(c.Request.Context(), blog); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, blog)
}

func (s *Server) deleteBlog(c *gin.Context) {
	if err := s.store.DeleteBlog(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field \"file\" is required"})
		return
	}
	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	url, err := s.store.UploadImage(c.Request.Context(), cms.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        f,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}

func (s *Server) listLogs(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.GetLogs())
}

func (s *Server) stats(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Stats(c.Request.Context()))
}
