package handler

import (
	"net/http"
	"strconv"

	"carsearch/internal/service"

	"github.com/gin-gonic/gin"
)

// HistoryHandler serves the recent-searches endpoint
type HistoryHandler struct {
	searchService *service.SearchService
	defaultLimit  int
	maxLimit      int
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(searchService *service.SearchService, defaultLimit, maxLimit int) *HistoryHandler {
	return &HistoryHandler{
		searchService: searchService,
		defaultLimit:  defaultLimit,
		maxLimit:      maxLimit,
	}
}

// Recent handles GET /api/v1/searches/recent
func (h *HistoryHandler) Recent(c *gin.Context) {
	limit := h.defaultLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}
	if limit > h.maxLimit {
		limit = h.maxLimit
	}

	logs, err := h.searchService.RecentSearches(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recent searches: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"searches": logs, "count": len(logs)})
}
