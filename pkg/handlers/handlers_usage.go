package handlers

import (
	"net/http"

	"github.com/arnavshah/shift-roster-go/pkg/database"
	"github.com/gin-gonic/gin"
)

// usageDays is how much history the usage endpoints return
const usageDays = 30

// GetMyUsage returns usage stats for the authenticated API key
func (h *Handler) GetMyUsage(c *gin.Context) {
	apiKey, ok := currentKey(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API Key context missing"})
		return
	}

	usage, err := database.UsageHistory(h.DB, apiKey.ID, usageDays)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch usage details"})
		return
	}

	var totalRequests, totalHours, totalEmployees int64
	for _, u := range usage {
		totalRequests += int64(u.RequestCount)
		totalHours += int64(u.TotalHours)
		totalEmployees += int64(u.TotalEmployees)
	}

	c.JSON(http.StatusOK, gin.H{
		"key_name":      apiKey.Name,
		"rate_limit":    apiKey.RateLimit,
		"usage_history": usage,
		"totals": gin.H{
			"requests":  totalRequests,
			"hours":     totalHours,
			"employees": totalEmployees,
		},
	})
}

// GetUsage returns usage stats for a key
func (h *Handler) GetUsage(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	usage, err := database.UsageHistory(h.DB, uint(id), usageDays)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"usage": usage})
}
