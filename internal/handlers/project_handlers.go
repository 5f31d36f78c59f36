package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/01moynul/binner-golang/internal/models"
	"github.com/01moynul/binner-golang/internal/storage"
	"github.com/gin-gonic/gin"
)

// ProjectInput is the JSON body of POST and PUT /project.
type ProjectInput struct {
	ProjectID   int64  `json:"projectId"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// DeleteProjectInput is the JSON body of DELETE /project.
type DeleteProjectInput struct {
	ProjectID int64 `json:"projectId" binding:"required"`
}

// GetProject is the handler for GET /project?projectId= or GET /project?name=
func (h *Handlers) GetProject(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		project *models.Project
		err     error
	)
	switch {
	case c.Query("projectId") != "":
		id, convErr := strconv.ParseInt(c.Query("projectId"), 10, 64)
		if convErr != nil {
			badRequest(c, "projectId must be a number")
			return
		}
		project, err = h.Store.GetProject(ctx, id)
	case c.Query("name") != "":
		project, err = h.Store.GetProjectByName(ctx, c.Query("name"))
	default:
		badRequest(c, "projectId or name is required")
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// CreateProject is the handler for POST /project
func (h *Handlers) CreateProject(c *gin.Context) {
	var input ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	project, err := h.Store.AddProject(c.Request.Context(), &models.Project{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Location:    input.Location,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// UpdateProject is the handler for PUT /project
func (h *Handlers) UpdateProject(c *gin.Context) {
	var input ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	if input.ProjectID <= 0 {
		badRequest(c, "projectId is required")
		return
	}
	project, err := h.Store.UpdateProject(c.Request.Context(), &models.Project{
		ProjectID:   input.ProjectID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Location:    input.Location,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// DeleteProject is the handler for DELETE /project
func (h *Handlers) DeleteProject(c *gin.Context) {
	var input DeleteProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	deleted, err := h.Store.DeleteProject(c.Request.Context(), input.ProjectID)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !deleted {
		h.fail(c, storage.NotFound("Project", input.ProjectID))
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ListProjects is the handler for GET /project/list
func (h *Handlers) ListProjects(c *gin.Context) {
	var req models.PaginatedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	projects, err := h.Store.GetProjects(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(projects))
}
