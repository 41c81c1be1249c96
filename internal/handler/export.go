package handler

import (
	"errors"
	"net/http"
	"time"

	"carsearch/internal/exporter"
	"carsearch/internal/model"
	"carsearch/internal/service"

	"github.com/gin-gonic/gin"
)

// ExportHandler handles report export requests
type ExportHandler struct {
	searchService *service.SearchService
}

// NewExportHandler creates a new export handler
func NewExportHandler(searchService *service.SearchService) *ExportHandler {
	return &ExportHandler{
		searchService: searchService,
	}
}

// Export handles POST /api/v1/export — runs a search and returns the results
// as a CSV attachment. An empty result set is not exportable.
func (h *ExportHandler) Export(c *gin.Context) {
	var req model.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	report, err := h.searchService.Export(c.Request.Context(), req.Query)
	if err != nil {
		if errors.Is(err, exporter.ErrNotExportable) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Nothing to export: search returned no records"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Export failed: " + err.Error()})
		return
	}

	filename := "listings-" + time.Now().Format("20060102-150405") + ".csv"
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", report)
}
