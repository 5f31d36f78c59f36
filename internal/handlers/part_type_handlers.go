package handlers

import (
	"net/http"

	"github.com/01moynul/binner-golang/internal/models"
	"github.com/gin-gonic/gin"
)

// PartTypeInput is the JSON body of POST /partType.
type PartTypeInput struct {
	Name             string    `json:"name" binding:"required"`
	ParentPartTypeID FlexInt64 `json:"parentPartTypeId"`
}

// CreatePartType is the handler for POST /partType.
// An existing type with the same name is returned instead of a duplicate.
func (h *Handlers) CreatePartType(c *gin.Context) {
	var input PartTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	pt, err := h.Store.GetOrCreatePartType(c.Request.Context(), &models.PartType{
		Name:             input.Name,
		ParentPartTypeID: input.ParentPartTypeID.Ptr(),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, pt)
}

// ListPartTypes is the handler for GET /partType/list
func (h *Handlers) ListPartTypes(c *gin.Context) {
	types, err := h.Store.GetPartTypes(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(types))
}
