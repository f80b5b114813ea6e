package handlers

import (
	"fmt"
	"net/http"

	"github.com/arnavshah/shift-roster-go/pkg/demand"
	"github.com/arnavshah/shift-roster-go/pkg/models"
	"github.com/gin-gonic/gin"
)

// ValidateInput handles the JSON-based validation request. It reports what
// the engine would do with the input without running it.
func (h *Handler) ValidateInput(c *gin.Context) {
	var input models.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	if len(input.Employees) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": "At least one employee is required",
		})
		return
	}

	ids := make(map[int]bool)
	for _, e := range input.Employees {
		if ids[e.ID] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": fmt.Sprintf("Duplicate employee ID: %d", e.ID)})
			return
		}
		ids[e.ID] = true
	}

	matrix := input.Demand
	if len(input.DemandRows) > 0 {
		var err error
		if matrix, err = demand.ToMatrix(input.DemandRows); err != nil {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
			return
		}
	}
	for hour, row := range matrix {
		for role, n := range row {
			if n < 0 {
				c.JSON(http.StatusOK, gin.H{"valid": false, "error": fmt.Sprintf("Negative demand at hour %d, column %d", hour, role)})
				return
			}
		}
	}

	// employees the engine would silently skip
	skipped := []int{}
	for _, e := range input.Employees {
		if _, ok := e.ToEmployee(); !ok {
			skipped = append(skipped, e.ID)
		}
	}

	demandTotal := 0
	for _, role := range models.Roles {
		for hour := range matrix {
			demandTotal += matrix.At(hour, role)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"employee_count": len(input.Employees),
			"skipped_ids":    skipped,
			"demand_hours":   len(matrix),
			"demand_total":   demandTotal,
		},
	})
}
