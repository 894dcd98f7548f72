package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vialtyfake/vialty-blog/internal/service"
)

type createProjectReq struct {
	Title     string `json:"title"`
	Role      string `json:"role"`
	Stack     string `json:"stack"`
	Link      string `json:"link"`
	Image     string `json:"image"`
	Blurb     string `json:"blurb"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type updateProjectReq struct {
	Title     *string `json:"title"`
	Role      *string `json:"role"`
	Stack     *string `json:"stack"`
	Link      *string `json:"link"`
	Image     *string `json:"image"`
	Blurb     *string `json:"blurb"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
}

func (h *Handler) ListProjects(c *gin.Context) {
	projects, err := h.projects.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *Handler) CreateProject(c *gin.Context) {
	var req createProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	project, err := h.projects.Create(c.Request.Context(), service.CreateProjectInput{
		Title:     req.Title,
		Role:      req.Role,
		Stack:     req.Stack,
		Link:      req.Link,
		Image:     req.Image,
		Blurb:     req.Blurb,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *Handler) UpdateProject(c *gin.Context) {
	id, ok := requireID(c)
	if !ok {
		return
	}
	var req updateProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	project, err := h.projects.Update(c.Request.Context(), id, service.UpdateProjectInput{
		Title:     req.Title,
		Role:      req.Role,
		Stack:     req.Stack,
		Link:      req.Link,
		Image:     req.Image,
		Blurb:     req.Blurb,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *Handler) DeleteProject(c *gin.Context) {
	id, ok := requireID(c)
	if !ok {
		return
	}
	if err := h.projects.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
