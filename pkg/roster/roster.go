package roster

import (
	"fmt"
	"slices"
	"sync"

	"github.com/arnavshah/shift-roster-go/pkg/apperrors"
	"github.com/arnavshah/shift-roster-go/pkg/models"
	"github.com/go-playground/validator/v10"
)

// EmployeeRequest is the body for creating or replacing an employee
type EmployeeRequest struct {
	Name  string      `json:"name" validate:"required,min=1,max=100"`
	Job   string      `json:"job" validate:"required"`
	Start string      `json:"start" validate:"required"`
	End   string      `json:"end" validate:"required"`
	Age   *models.Age `json:"age,omitempty"`
}

// Roster is an in-memory, insertion-ordered employee list
type Roster struct {
	mu        sync.RWMutex
	employees []models.EmployeeInput
	nextID    int
	validator *validator.Validate
}

// New creates an empty roster
func New(validate *validator.Validate) *Roster {
	return &Roster{nextID: 1, validator: validate}
}

// NewWithDemoData creates a roster holding the stock demo employees
func NewWithDemoData(validate *validator.Validate) *Roster {
	r := New(validate)
	for _, req := range DemoEmployees() {
		if _, err := r.Create(req); err != nil {
			panic(fmt.Sprintf("demo employee %q: %v", req.Name, err))
		}
	}
	return r
}

// DemoEmployees is the starter roster
func DemoEmployees() []EmployeeRequest {
	return []EmployeeRequest{
		{Name: "Alice Johnson", Age: models.NewAge(29), Job: "manager", Start: "08:00", End: "16:00"},
		{Name: "Ben Carter", Age: models.NewAge(22), Job: "server", Start: "10:00", End: "18:00"},
		{Name: "Clara Kim", Age: models.NewAge(27), Job: "driver", Start: "12:00", End: "20:00"},
		{Name: "David Lee", Age: models.NewAge(35), Job: "server", Start: "09:00", End: "17:00"},
	}
}

func (r *Roster) check(req *EmployeeRequest) error {
	if err := r.validator.Struct(req); err != nil {
		return apperrors.NewValidationError("", err.Error())
	}
	if _, ok := models.ParseRole(req.Job); !ok {
		return apperrors.NewValidationError("job", fmt.Sprintf("unknown job %q", req.Job))
	}
	start, err := models.ParseHour(req.Start)
	if err != nil {
		return apperrors.NewValidationError("start", err.Error())
	}
	end, err := models.ParseHour(req.End)
	if err != nil {
		return apperrors.NewValidationError("end", err.Error())
	}
	if start >= end {
		return apperrors.ErrInvalidTimeRange
	}
	if req.Age != nil && req.Age.Set && (req.Age.Value < 0 || req.Age.Value > 120) {
		return apperrors.NewValidationError("age", "must be between 0 and 120")
	}
	return nil
}

func (req *EmployeeRequest) toInput(id int) models.EmployeeInput {
	return models.EmployeeInput{
		ID:    id,
		Name:  req.Name,
		Job:   req.Job,
		Start: req.Start,
		End:   req.End,
		Age:   req.Age,
	}
}

// List returns a copy of every employee in insertion order
func (r *Roster) List() []models.EmployeeInput {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.employees)
}

// Get returns a single employee by id
func (r *Roster) Get(id int) (models.EmployeeInput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		return models.EmployeeInput{}, apperrors.ErrEmployeeNotFound
	}
	return r.employees[i], nil
}

// Create validates the request and appends a new employee with the next id
func (r *Roster) Create(req EmployeeRequest) (models.EmployeeInput, error) {
	if err := r.check(&req); err != nil {
		return models.EmployeeInput{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	emp := req.toInput(r.nextID)
	r.nextID++
	r.employees = append(r.employees, emp)
	return emp, nil
}

// Update replaces an employee, keeping their position and id
func (r *Roster) Update(id int, req EmployeeRequest) (models.EmployeeInput, error) {
	if err := r.check(&req); err != nil {
		return models.EmployeeInput{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return models.EmployeeInput{}, apperrors.ErrEmployeeNotFound
	}
	r.employees[i] = req.toInput(id)
	return r.employees[i], nil
}

// Delete removes an employee
func (r *Roster) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return apperrors.ErrEmployeeNotFound
	}
	r.employees = slices.Delete(r.employees, i, i+1)
	return nil
}

// Len is the number of employees on the roster
func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.employees)
}

func (r *Roster) indexOf(id int) int {
	return slices.IndexFunc(r.employees, func(e models.EmployeeInput) bool { return e.ID == id })
}
