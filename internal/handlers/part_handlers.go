package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/01moynul/binner-golang/internal/models"
	"github.com/01moynul/binner-golang/internal/storage"
	"github.com/gin-gonic/gin"
)

// PartInput is the JSON body of POST and PUT /part.
// PartType, when given, names a part type to look up or create.
type PartInput struct {
	PartID                 int64       `json:"partId"`
	Quantity               int64       `json:"quantity"`
	LowStockThreshold      int64       `json:"lowStockThreshold"`
	PartNumber             string      `json:"partNumber" binding:"required"`
	ManufacturerPartNumber string      `json:"manufacturerPartNumber"`
	Manufacturer           string      `json:"manufacturer"`
	DigiKeyPartNumber      string      `json:"digiKeyPartNumber"`
	MouserPartNumber       string      `json:"mouserPartNumber"`
	Description            string      `json:"description"`
	PartTypeID             FlexInt64   `json:"partTypeId"`
	PartType               string      `json:"partType"`
	MountingTypeID         FlexInt64   `json:"mountingTypeId"`
	ProjectID              FlexInt64   `json:"projectId"`
	Keywords               FlexStrings `json:"keywords"`
	DatasheetURL           string      `json:"datasheetUrl"`
	Location               string      `json:"location"`
	BinNumber              string      `json:"binNumber"`
	BinNumber2             string      `json:"binNumber2"`
	Cost                   float64     `json:"cost"`
}

func (in PartInput) model() *models.Part {
	return &models.Part{
		PartID:                 in.PartID,
		Quantity:               in.Quantity,
		LowStockThreshold:      in.LowStockThreshold,
		PartNumber:             strings.TrimSpace(in.PartNumber),
		ManufacturerPartNumber: in.ManufacturerPartNumber,
		Manufacturer:           in.Manufacturer,
		DigiKeyPartNumber:      in.DigiKeyPartNumber,
		MouserPartNumber:       in.MouserPartNumber,
		Description:            in.Description,
		PartTypeID:             in.PartTypeID.Ptr(),
		MountingTypeID:         in.MountingTypeID.Int(),
		ProjectID:              in.ProjectID.Ptr(),
		Keywords:               []string(in.Keywords),
		DatasheetURL:           in.DatasheetURL,
		Location:               in.Location,
		BinNumber:              in.BinNumber,
		BinNumber2:             in.BinNumber2,
		Cost:                   in.Cost,
	}
}

// DeletePartInput is the JSON body of DELETE /part.
type DeletePartInput struct {
	PartID int64 `json:"partId" binding:"required"`
}

// PartListQuery is the query string of GET /part/list.
type PartListQuery struct {
	models.PaginatedRequest
	By    string `form:"by"`
	Value string `form:"value"`
}

// GetPart is the handler for GET /part?partNumber= or GET /part?partId=
func (h *Handlers) GetPart(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		part *models.Part
		err  error
	)
	switch {
	case c.Query("partId") != "":
		id, convErr := strconv.ParseInt(c.Query("partId"), 10, 64)
		if convErr != nil {
			badRequest(c, "partId must be a number")
			return
		}
		part, err = h.Store.GetPart(ctx, id)
	case c.Query("partNumber") != "":
		part, err = h.Store.GetPartByNumber(ctx, c.Query("partNumber"))
	default:
		badRequest(c, "partNumber or partId is required")
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, part)
}

// CreatePart is the handler for POST /part
func (h *Handlers) CreatePart(c *gin.Context) {
	var input PartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	part := input.model()
	if err := h.resolvePartType(c.Request.Context(), part, input.PartType); err != nil {
		h.fail(c, err)
		return
	}

	created, err := h.Store.AddPart(c.Request.Context(), part)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

// UpdatePart is the handler for PUT /part
func (h *Handlers) UpdatePart(c *gin.Context) {
	var input PartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	if input.PartID <= 0 {
		badRequest(c, "partId is required")
		return
	}
	part := input.model()
	if err := h.resolvePartType(c.Request.Context(), part, input.PartType); err != nil {
		h.fail(c, err)
		return
	}

	updated, err := h.Store.UpdatePart(c.Request.Context(), part)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeletePart is the handler for DELETE /part
func (h *Handlers) DeletePart(c *gin.Context) {
	var input DeletePartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	deleted, err := h.Store.DeletePart(c.Request.Context(), input.PartID)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !deleted {
		h.fail(c, storage.NotFound("Part", input.PartID))
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ListParts is the handler for GET /part/list
func (h *Handlers) ListParts(c *gin.Context) {
	var query PartListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err.Error())
		return
	}

	var (
		parts []*models.Part
		err   error
	)
	if query.By != "" {
		parts, err = h.Store.GetPartsByValue(c.Request.Context(), query.By, query.Value, query.PaginatedRequest)
	} else {
		parts, err = h.Store.GetParts(c.Request.Context(), query.PaginatedRequest)
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(parts))
}

// SearchParts is the handler for GET /part/search?keywords=
func (h *Handlers) SearchParts(c *gin.Context) {
	keywords := c.Query("keywords")
	if strings.TrimSpace(keywords) == "" {
		badRequest(c, "keywords is required")
		return
	}
	results, err := h.Store.FindParts(c.Request.Context(), keywords)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(results))
}

// LowStockParts is the handler for GET /part/lowStock
func (h *Handlers) LowStockParts(c *gin.Context) {
	var req models.PaginatedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	parts, err := h.Store.GetLowStockParts(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(parts))
}

// CountParts is the handler for GET /part/count
func (h *Handlers) CountParts(c *gin.Context) {
	n, err := h.Store.GetPartsCount(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

// PrintPart is the handler for POST /part/print?partNumber=
func (h *Handlers) PrintPart(c *gin.Context) {
	if h.Labels == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Label printing is not configured"})
		return
	}
	partNumber := c.Query("partNumber")
	if partNumber == "" {
		badRequest(c, "partNumber is required")
		return
	}
	part, err := h.Store.GetPartByNumber(c.Request.Context(), partNumber)
	if err != nil {
		h.fail(c, err)
		return
	}
	location, err := h.Labels.Print(c.Request.Context(), part)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"partNumber": part.PartNumber, "location": location})
}

// resolvePartType fills PartTypeID from a part type name, creating the type if needed.
func (h *Handlers) resolvePartType(ctx context.Context, part *models.Part, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	pt, err := h.Store.GetOrCreatePartType(ctx, &models.PartType{Name: name})
	if err != nil {
		return err
	}
	part.PartTypeID = &pt.PartTypeID
	return nil
}

// nonNil keeps empty listings serialized as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
