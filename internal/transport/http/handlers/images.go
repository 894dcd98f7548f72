package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type uploadImageReq struct {
	Name string `json:"name"`
	Data string `json:"data"`
}

type renameImageReq struct {
	OldName string `json:"oldName"`
	NewName string `json:"newName"`
}

func (h *Handler) ListImages(c *gin.Context) {
	assets, err := h.images.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, assets)
}

func (h *Handler) UploadImage(c *gin.Context) {
	var req uploadImageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	asset, err := h.images.Upload(c.Request.Context(), req.Name, req.Data)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, asset)
}

func (h *Handler) RenameImage(c *gin.Context) {
	var req renameImageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.images.Rename(c.Request.Context(), req.OldName, req.NewName); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) DeleteImage(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}
	if err := h.images.Delete(c.Request.Context(), name); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
