package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arnavshah/shift-roster-go/pkg/apperrors"
	"github.com/arnavshah/shift-roster-go/pkg/models"
	"github.com/arnavshah/shift-roster-go/pkg/scheduler"
)

// header maps lowercased column names to their index
func header(r *csv.Reader, required ...string) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, apperrors.NewValidationError("header", "failed to read CSV header")
	}
	cols := make(map[string]int, len(row))
	for i, name := range row {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, apperrors.NewValidationError("header", fmt.Sprintf("missing column %q", name))
		}
	}
	return cols, nil
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// readEmployeesCSV reads id,name,job,start,end[,age] rows. Unknown jobs and
// bad hours are kept so the engine can skip them like any other input.
func readEmployeesCSV(r io.Reader) ([]models.EmployeeInput, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	cols, err := header(reader, "id", "name", "job", "start", "end")
	if err != nil {
		return nil, err
	}

	var inputs []models.EmployeeInput
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("line %d", line), err.Error())
		}

		id, err := strconv.Atoi(field(record, cols, "id"))
		if err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("line %d", line), "id must be an integer")
		}
		emp := models.EmployeeInput{
			ID:    id,
			Name:  field(record, cols, "name"),
			Job:   field(record, cols, "job"),
			Start: field(record, cols, "start"),
			End:   field(record, cols, "end"),
		}
		if raw := field(record, cols, "age"); raw != "" {
			age, err := strconv.Atoi(raw)
			if err != nil {
				return nil, apperrors.NewValidationError(fmt.Sprintf("line %d", line), "age must be an integer")
			}
			emp.Age = models.NewAge(age)
		}
		inputs = append(inputs, emp)
	}
	return inputs, nil
}

// readDemandCSV reads hour,manager,server,driver rows; "insider" is accepted
// in place of the server column.
func readDemandCSV(r io.Reader) ([]models.DemandRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	cols, err := header(reader, "hour")
	if err != nil {
		return nil, err
	}
	if _, ok := cols["server"]; !ok {
		if i, ok := cols["insider"]; ok {
			cols["server"] = i
		}
	}

	count := func(record []string, name string, line int) (int, error) {
		raw := field(record, cols, name)
		if raw == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return 0, apperrors.NewValidationError(fmt.Sprintf("line %d", line), name+" must be a non-negative integer")
		}
		return n, nil
	}

	var rows []models.DemandRow
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("line %d", line), err.Error())
		}

		row := models.DemandRow{Hour: field(record, cols, "hour")}
		if row.Manager, err = count(record, "manager", line); err != nil {
			return nil, err
		}
		if row.Server, err = count(record, "server", line); err != nil {
			return nil, err
		}
		if row.Driver, err = count(record, "driver", line); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// writeShiftsCSV writes one row per shift interval, employees in input order.
// Intervals hold worked hours inclusively, so end is the clock time the last
// hour finishes. A block that runs through hour 23 ends at "24:00", the end
// of the day, so start, end and hours always agree.
func writeShiftsCSV(w io.Writer, employees []models.Employee, res *scheduler.Result) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"employee_id", "employee_name", "job", "start", "end", "hours"}); err != nil {
		return err
	}

	for _, e := range employees {
		for _, iv := range res.Shifts[e.ID] {
			err := writer.Write([]string{
				strconv.Itoa(e.ID),
				e.Name,
				e.Role.String(),
				models.FormatHour(iv.Start),
				models.FormatHour(iv.End + 1),
				strconv.Itoa(iv.Len()),
			})
			if err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}
