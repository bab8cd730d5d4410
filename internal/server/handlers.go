package server

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"renonx-go/internal/cms"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.GetSettings(c.Request.Context()))
}

func (s *Server) listSkills(c *gin.Context) {
	skills := s.store.GetSkills(c.Request.Context())
	c.JSON(http.StatusOK, cms.FilterSkills(skills, c.Query("category")))
}

func (s *Server) listProjects(c *gin.Context) {
	projects := s.store.GetProjects(c.Request.Context())
	c.JSON(http.StatusOK, cms.FilterProjects(projects, c.Query("category")))
}

func (s *Server) listBlogs(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.GetBlogs(c.Request.Context()))
}

func (s *Server) getBlog(c *gin.Context) {
	blog, ok := s.store.GetBlog(c.Request.Context(), c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "blog not found"})
		return
	}
	c.JSON(http.StatusOK, blog)
}

func (s *Server) serveAsset(c *gin.Context) {
	name := strings.TrimPrefix(c.Param("name"), "/")
	if s.bucket == nil || name == "" || strings.Contains(name, "/") {
		c.JSON(http.StatusNotFound, gin.H{"error": "asset not found"})
		return
	}

	var buf bytes.Buffer
	contentType, err := s.bucket.Get(c.Request.Context(), name, &buf)
	if errors.Is(err, cms.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "asset not found"})
		return
	}
	if err != nil {
		s.logger.Error("reading asset", "name", name, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "asset storage unavailable"})
		return
	}
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := s.store.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) logout(c *gin.Context) {
	if err := s.store.Logout(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) me(c *gin.Context) {
	user := s.store.GetUser()
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// writeError maps store errors to HTTP statuses. Anything unrecognized is a
// backend or storage failure.
func writeError(c *gin.Context, err error) {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, cms.ErrInvalidRecord), errors.Is(err, cms.ErrNotAnImage):
		status = http.StatusBadRequest
	case errors.Is(err, cms.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, cms.ErrDuplicateID):
		status = http.StatusConflict
	case errors.Is(err, cms.ErrInvalidLink):
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
