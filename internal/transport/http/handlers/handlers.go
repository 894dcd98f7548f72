// Package handlers maps HTTP requests onto the services and translates
// domain errors into status codes.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vialtyfake/vialty-blog/internal/apperr"
	"github.com/vialtyfake/vialty-blog/internal/auth"
	"github.com/vialtyfake/vialty-blog/internal/images"
	"github.com/vialtyfake/vialty-blog/internal/service"
)

type Handler struct {
	gate     *auth.Gate
	posts    *service.PostService
	projects *service.ProjectService
	images   *images.Service
	log      *zap.Logger
}

func New(gate *auth.Gate, posts *service.PostService, projects *service.ProjectService, imgs *images.Service, log *zap.Logger) *Handler {
	return &Handler{gate: gate, posts: posts, projects: projects, images: imgs, log: log}
}

// fail writes the response for a service error: 400 for validation, 404 for
// missing ids, 500 with details otherwise.
func fail(c *gin.Context, err error) {
	var verr *apperr.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Msg})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"details": err.Error(),
		})
	}
}

// requireID pulls the id query parameter shared by the admin mutation
// endpoints.
func requireID(c *gin.Context) (string, bool) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return "", false
	}
	return id, true
}
