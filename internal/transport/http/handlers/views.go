package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func requirePostID(c *gin.Context) (string, bool) {
	postID := c.Query("postId")
	if postID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Post ID required"})
		return "", false
	}
	return postID, true
}

// GetViews reads a post's view counter.
func (h *Handler) GetViews(c *gin.Context) {
	postID, ok := requirePostID(c)
	if !ok {
		return
	}
	views, err := h.posts.Views(c.Request.Context(), postID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"views": views})
}

// IncrementViews bumps a post's view counter and returns the new value.
func (h *Handler) IncrementViews(c *gin.Context) {
	postID, ok := requirePostID(c)
	if !ok {
		return
	}
	views, err := h.posts.IncrementViews(c.Request.Context(), postID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"views": views})
}
