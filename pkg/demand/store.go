package demand

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/arnavshah/shift-roster-go/pkg/apperrors"
	"github.com/arnavshah/shift-roster-go/pkg/models"
	"github.com/go-playground/validator/v10"
)

// DateLayout is the key format for stored demand
const DateLayout = "2006-01-02"

// Store keeps demand rows per calendar date
type Store struct {
	mu        sync.RWMutex
	byDate    map[string][]models.DemandRow
	validator *validator.Validate
}

// NewStore creates an empty store
func NewStore(validate *validator.Validate) *Store {
	return &Store{
		byDate:    make(map[string][]models.DemandRow),
		validator: validate,
	}
}

// ValidDate checks a YYYY-MM-DD key
func ValidDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return apperrors.ErrInvalidDate
	}
	return nil
}

// Get returns the rows stored for a date
func (s *Store) Get(date string) ([]models.DemandRow, error) {
	if err := ValidDate(date); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, ok := s.byDate[date]
	if !ok {
		return nil, apperrors.ErrDemandNotFound
	}
	return slices.Clone(rows), nil
}

// Put validates and replaces the rows for a date
func (s *Store) Put(date string, rows []models.DemandRow) error {
	if err := ValidDate(date); err != nil {
		return err
	}
	for i := range rows {
		if err := s.validator.Struct(&rows[i]); err != nil {
			return apperrors.NewValidationError(fmt.Sprintf("rows[%d]", i), err.Error())
		}
		if _, err := models.ParseHour(rows[i].Hour); err != nil {
			return apperrors.NewValidationError(fmt.Sprintf("rows[%d].hour", i), err.Error())
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byDate[date] = slices.Clone(rows)
	return nil
}

// Delete removes a date
func (s *Store) Delete(date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byDate[date]; !ok {
		return apperrors.ErrDemandNotFound
	}
	delete(s.byDate, date)
	return nil
}

// Dates lists stored dates in ascending order
func (s *Store) Dates() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dates := make([]string, 0, len(s.byDate))
	for d := range s.byDate {
		dates = append(dates, d)
	}
	slices.Sort(dates)
	return dates
}

// Matrix returns the stored demand for a date as a 24-hour matrix
func (s *Store) Matrix(date string) (models.DemandMatrix, error) {
	rows, err := s.Get(date)
	if err != nil {
		return nil, err
	}
	return ToMatrix(rows)
}

// ToMatrix lays rows out as a 24-hour matrix. Hours without a row have no
// demand; a repeated hour keeps the last row.
func ToMatrix(rows []models.DemandRow) (models.DemandMatrix, error) {
	m := make(models.DemandMatrix, 24)
	for h := range m {
		m[h] = make([]int, models.NumRoles)
	}
	for i, row := range rows {
		h, err := models.ParseHour(row.Hour)
		if err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("rows[%d].hour", i), err.Error())
		}
		m[h][models.RoleManager] = row.Manager
		m[h][models.RoleServer] = row.Server
		m[h][models.RoleDriver] = row.Driver
	}
	return m, nil
}

// Rows is the inverse of ToMatrix, skipping hours with no demand at all
func Rows(m models.DemandMatrix) []models.DemandRow {
	var rows []models.DemandRow
	for h := range m {
		row := models.DemandRow{
			Hour:    models.FormatHour(h),
			Manager: m.At(h, models.RoleManager),
			Server:  m.At(h, models.RoleServer),
			Driver:  m.At(h, models.RoleDriver),
		}
		if row.Manager == 0 && row.Server == 0 && row.Driver == 0 {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}
