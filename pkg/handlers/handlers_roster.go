package handlers

import (
	"net/http"

	"github.com/arnavshah/shift-roster-go/pkg/models"
	"github.com/arnavshah/shift-roster-go/pkg/roster"
	"github.com/gin-gonic/gin"
)

// ListEmployees returns the roster in insertion order
func (h *Handler) ListEmployees(c *gin.Context) {
	c.JSON(http.StatusOK, h.Roster.List())
}

// GetEmployee returns one employee
func (h *Handler) GetEmployee(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	emp, err := h.Roster.Get(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, emp)
}

// CreateEmployee adds an employee to the roster
func (h *Handler) CreateEmployee(c *gin.Context) {
	var req roster.EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	emp, err := h.Roster.Create(req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, emp)
}

// UpdateEmployee replaces an employee
func (h *Handler) UpdateEmployee(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req roster.EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	emp, err := h.Roster.Update(id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, emp)
}

// DeleteEmployee removes an employee
func (h *Handler) DeleteEmployee(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	if err := h.Roster.Delete(id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListDemandDates returns every date with stored demand
func (h *Handler) ListDemandDates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"dates": h.Demand.Dates()})
}

// GetDemand returns the rows stored for a date
func (h *Handler) GetDemand(c *gin.Context) {
	date := c.Param("date")
	rows, err := h.Demand.Get(date)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "rows": rows})
}

// PutDemand replaces the rows for a date
func (h *Handler) PutDemand(c *gin.Context) {
	var req struct {
		Rows []models.DemandRow `json:"rows" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date := c.Param("date")
	if err := h.Demand.Put(date, req.Rows); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "rows": req.Rows})
}

// DeleteDemand removes the rows for a date
func (h *Handler) DeleteDemand(c *gin.Context) {
	if err := h.Demand.Delete(c.Param("date")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
