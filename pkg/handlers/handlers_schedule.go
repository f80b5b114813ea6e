package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/arnavshah/shift-roster-go/pkg/database"
	"github.com/arnavshah/shift-roster-go/pkg/demand"
	"github.com/arnavshah/shift-roster-go/pkg/models"
	"github.com/arnavshah/shift-roster-go/pkg/scheduler"
	"github.com/gin-gonic/gin"
)

// generate runs the engine and records the request against the caller's key
func (h *Handler) generate(c *gin.Context, inputs []models.EmployeeInput, matrix models.DemandMatrix, school bool) (*scheduler.Scheduler, *scheduler.Result) {
	s := scheduler.NewScheduler(scheduler.FromInputs(inputs), matrix, school, h.Options)
	res := s.Run()

	h.RecordUsage(c, res.TotalHours, len(s.Employees()))
	h.requestLog(c).WithFields(map[string]interface{}{
		"employees":        len(s.Employees()),
		"total_hours":      res.TotalHours,
		"uncovered_demand": res.Stats.UncoveredDemand,
		"repairs":          len(res.Repairs),
	}).Info("schedule generated")
	return s, res
}

// RecordUsage records API usage in the database using an efficient upsert
func (h *Handler) RecordUsage(c *gin.Context, hours, employees int) {
	apiKey, ok := currentKey(c)
	if !ok {
		return
	}

	today := time.Now().Format(demand.DateLayout)
	if err := database.RecordUsage(h.DB, apiKey.ID, today, hours, employees); err != nil {
		h.requestLog(c).WithError(err).Warn("could not record usage")
	}
}

// schoolFlag parses the school_in_session flag; an empty value means false
func schoolFlag(raw string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}

// ScheduleJSON handles the JSON-based scheduling request
func (h *Handler) ScheduleJSON(c *gin.Context) {
	var input models.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	matrix := input.Demand
	if len(input.DemandRows) > 0 {
		var err error
		if matrix, err = demand.ToMatrix(input.DemandRows); err != nil {
			h.respondError(c, err)
			return
		}
	}

	_, res := h.generate(c, input.Employees, matrix, input.SchoolInSession)
	c.JSON(http.StatusOK, res.Response())
}

// ScheduleForDate schedules the current roster against the demand stored
// for the date in the path
func (h *Handler) ScheduleForDate(c *gin.Context) {
	date := c.Param("date")
	school, err := schoolFlag(c.Query("school_in_session"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "school_in_session must be a boolean"})
		return
	}

	matrix, err := h.Demand.Matrix(date)
	if err != nil {
		h.respondError(c, err)
		return
	}

	_, res := h.generate(c, h.Roster.List(), matrix, school)

	resp := res.Response()
	c.JSON(http.StatusOK, gin.H{
		"date":     date,
		"schedule": resp,
	})
}

// ScheduleCSV handles CSV file uploads for scheduling
func (h *Handler) ScheduleCSV(c *gin.Context) {
	employeesFile, _ := c.FormFile("employees_file")
	demandFile, _ := c.FormFile("demand_file")

	if employeesFile == nil || demandFile == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employees_file and demand_file are required"})
		return
	}
	school, err := schoolFlag(c.PostForm("school_in_session"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "school_in_session must be a boolean"})
		return
	}

	eFile, err := employeesFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open employees file"})
		return
	}
	defer eFile.Close()
	inputs, err := readEmployeesCSV(eFile)
	if err != nil {
		h.respondError(c, err)
		return
	}

	dFile, err := demandFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open demand file"})
		return
	}
	defer dFile.Close()
	rows, err := readDemandCSV(dFile)
	if err != nil {
		h.respondError(c, err)
		return
	}
	matrix, err := demand.ToMatrix(rows)
	if err != nil {
		h.respondError(c, err)
		return
	}

	s, res := h.generate(c, inputs, matrix, school)

	var out strings.Builder
	if err := writeShiftsCSV(&out, s.Employees(), res); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"csv": out.String()})
}
