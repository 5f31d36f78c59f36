package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/01moynul/binner-golang/internal/export"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ExportParts is the handler for GET /part/export
func (h *Handlers) ExportParts(c *gin.Context) {
	parts, err := export.AllParts(c.Request.Context(), h.Store)
	if err != nil {
		h.fail(c, err)
		return
	}

	f, err := export.NewWorkbook(parts)
	if err != nil {
		h.fail(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", export.ContentType)
	c.Header("Content-Disposition", "attachment; filename=\"binner-parts.xlsx\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		h.Logger.Error("write export", zap.Error(err))
	}
}

// ImportParts is the handler for POST /part/import
func (h *Handlers) ImportParts(c *gin.Context) {
	// 1. --- Get the file from the request ---
	header, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "No file uploaded")
		return
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".xlsx") {
		badRequest(c, "Only .xlsx files can be imported")
		return
	}
	file, err := header.Open()
	if err != nil {
		badRequest(c, "Could not read uploaded file")
		return
	}
	defer file.Close()

	// 2. --- Parse ---
	sheet, err := export.ReadSheet(file)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	// 3. --- Upsert ---
	result, err := export.Import(c.Request.Context(), h.Store, sheet)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
