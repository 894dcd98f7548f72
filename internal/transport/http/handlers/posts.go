package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vialtyfake/vialty-blog/internal/auth"
	"github.com/vialtyfake/vialty-blog/internal/service"
)

type createPostReq struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
	IsPublished *bool    `json:"is_published"`
}

type updatePostReq struct {
	Title       *string   `json:"title"`
	Content     *string   `json:"content"`
	Tags        *[]string `json:"tags"`
	Images      *[]string `json:"images"`
	IsPublished *bool     `json:"is_published"`
}

// ListPosts serves the published posts.
func (h *Handler) ListPosts(c *gin.Context) {
	posts, err := h.posts.ListPublic(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// ListAdminPosts serves every post, drafts included.
func (h *Handler) ListAdminPosts(c *gin.Context) {
	posts, err := h.posts.ListAdmin(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *Handler) CreatePost(c *gin.Context) {
	var req createPostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	post, err := h.posts.Create(c.Request.Context(), service.CreatePostInput{
		Title:       req.Title,
		Content:     req.Content,
		Tags:        req.Tags,
		Images:      req.Images,
		IsPublished: req.IsPublished,
		AuthorIP:    auth.ClientIP(c.Request),
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *Handler) UpdatePost(c *gin.Context) {
	id, ok := requireID(c)
	if !ok {
		return
	}
	var req updatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	post, err := h.posts.Update(c.Request.Context(), id, service.UpdatePostInput{
		Title:       req.Title,
		Content:     req.Content,
		Tags:        req.Tags,
		Images:      req.Images,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *Handler) DeletePost(c *gin.Context) {
	id, ok := requireID(c)
	if !ok {
		return
	}
	if err := h.posts.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SearchPosts scans published posts for the q substring.
func (h *Handler) SearchPosts(c *gin.Context) {
	results, err := h.posts.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}
