package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vialtyfake/vialty-blog/internal/auth"
)

// AdminCheck reports whether the caller's address is on the allow-list.
// Public: the admin UI uses it to decide whether to show itself.
func (h *Handler) AdminCheck(c *gin.Context) {
	ip := auth.ClientIP(c.Request)
	isAdmin, err := h.gate.IsAuthorized(c.Request.Context(), ip)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"isAdmin": isAdmin, "ip": ip})
}

func (h *Handler) ListAdminIPs(c *gin.Context) {
	entries, err := h.gate.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

type addIPReq struct {
	IPAddress string `json:"ip_address"`
	Name      string `json:"name"`
}

func (h *Handler) AddAdminIP(c *gin.Context) {
	var req addIPReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	entry, err := h.gate.Add(c.Request.Context(), req.IPAddress, req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *Handler) RemoveAdminIP(c *gin.Context) {
	id, ok := requireID(c)
	if !ok {
		return
	}
	if err := h.gate.Remove(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Stats serves the admin dashboard summary.
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.posts.Stats(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
