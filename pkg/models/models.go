package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Role is the job an employee is hired for
type Role int

const (
	RoleManager Role = iota
	RoleServer
	RoleDriver
)

// NumRoles is the size of the closed role set
const NumRoles = 3

// Roles lists every role in grid column order
var Roles = [NumRoles]Role{RoleManager, RoleServer, RoleDriver}

var roleNames = [NumRoles]string{"manager", "server", "driver"}

func (r Role) String() string {
	if r < 0 || int(r) >= NumRoles {
		return "unknown"
	}
	return roleNames[r]
}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	return r >= 0 && int(r) < NumRoles
}

// ParseRole maps a case-insensitive job name to a Role.
// "insider" is the older name for the server role and is accepted too.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "manager":
		return RoleManager, true
	case "server", "insider":
		return RoleServer, true
	case "driver":
		return RoleDriver, true
	}
	return 0, false
}

// MarshalText lets Role key JSON maps by name
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid role %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText parses a role name
func (r *Role) UnmarshalText(text []byte) error {
	role, ok := ParseRole(string(text))
	if !ok {
		return fmt.Errorf("unknown role %q", string(text))
	}
	*r = role
	return nil
}

// DefaultAge is used when an employee record carries no age
const DefaultAge = 18

// Employee is the engine's view of a person on the roster
type Employee struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	StartHour int    `json:"start_hour"`
	EndHour   int    `json:"end_hour"`
	Age       int    `json:"age"`
}

// Available reports whether hour h falls inside the availability window
func (e Employee) Available(h int) bool {
	return e.StartHour <= h && h <= e.EndHour
}

// Age is an optional age that tolerates numbers, numeric strings, "" and null
type Age struct {
	Value int
	Set   bool
}

// NewAge returns a set Age
func NewAge(v int) *Age {
	return &Age{Value: v, Set: true}
}

// UnmarshalJSON accepts 29, "29", "" and null
func (a *Age) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*a = Age{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		s = strings.TrimSpace(str)
		if s == "" {
			*a = Age{}
			return nil
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid age %s", string(data))
	}
	*a = Age{Value: v, Set: true}
	return nil
}

// MarshalJSON writes the age as a number, or null when unset
func (a Age) MarshalJSON() ([]byte, error) {
	if !a.Set {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(a.Value)), nil
}

// UnmarshalYAML accepts the same forms as UnmarshalJSON
func (a *Age) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*a = Age{}
	case int:
		*a = Age{Value: v, Set: true}
	case string:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		return a.UnmarshalJSON(b)
	default:
		return fmt.Errorf("invalid age %v", raw)
	}
	return nil
}

// EmployeeInput is an employee record as clients send it
type EmployeeInput struct {
	ID    int    `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Job   string `json:"job" yaml:"job"`
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
	Age   *Age   `json:"age,omitempty" yaml:"age"`
}

// AgeOrDefault returns the age, or DefaultAge when absent or blank
func (in EmployeeInput) AgeOrDefault() int {
	if in.Age == nil || !in.Age.Set {
		return DefaultAge
	}
	return in.Age.Value
}

// ToEmployee converts a wire record. ok is false when the job is unknown
// or a time cannot be read; such records are skipped, not rejected.
func (in EmployeeInput) ToEmployee() (Employee, bool) {
	role, ok := ParseRole(in.Job)
	if !ok {
		return Employee{}, false
	}
	start, err := ParseHour(in.Start)
	if err != nil {
		return Employee{}, false
	}
	end, err := ParseHour(in.End)
	if err != nil {
		return Employee{}, false
	}
	return Employee{
		ID:        in.ID,
		Name:      in.Name,
		Role:      role,
		StartHour: start,
		EndHour:   end,
		Age:       in.AgeOrDefault(),
	}, true
}

// ParseHour reads the hour part of "HH:MM" (or a bare "HH")
func ParseHour(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty time")
	}
	hourPart, _, _ := strings.Cut(s, ":")
	h, err := strconv.Atoi(hourPart)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	if h < 0 || h > 23 {
		return 0, fmt.Errorf("hour out of range in %q", s)
	}
	return h, nil
}

// FormatHour renders an hour as "HH:00"
func FormatHour(h int) string {
	return fmt.Sprintf("%02d:00", h)
}

// DemandMatrix holds required headcount, indexed [hour][role]
type DemandMatrix [][]int

// At returns demand for the hour and role, or 0 for any index outside the table
func (d DemandMatrix) At(hour int, role Role) int {
	if hour < 0 || hour >= len(d) {
		return 0
	}
	row := d[hour]
	if int(role) < 0 || int(role) >= len(row) {
		return 0
	}
	return row[role]
}

// Clone deep-copies the matrix, padding every row to NumRoles columns
func (d DemandMatrix) Clone() DemandMatrix {
	out := make(DemandMatrix, len(d))
	for h, row := range d {
		cp := make([]int, NumRoles)
		copy(cp, row)
		out[h] = cp
	}
	return out
}

// RoleMax is the largest demand for the role over the whole day
func (d DemandMatrix) RoleMax(role Role) int {
	max := 0
	for h := range d {
		if v := d.At(h, role); h == 0 || v > max {
			max = v
		}
	}
	return max
}

// Interval is a closed range of whole hours, encoded as [start, end]
type Interval struct {
	Start int
	End   int
}

// Len is the number of hours covered
func (iv Interval) Len() int {
	return iv.End - iv.Start + 1
}

// Contains reports whether h lies in the interval
func (iv Interval) Contains(h int) bool {
	return iv.Start <= h && h <= iv.End
}

func (iv Interval) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{iv.Start, iv.End})
}

func (iv *Interval) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	iv.Start, iv.End = pair[0], pair[1]
	return nil
}

// DemandRow is one hour of demand as the planning UI edits it
type DemandRow struct {
	Hour    string `json:"hour" yaml:"hour" validate:"required"`
	Manager int    `json:"manager" yaml:"manager" validate:"min=0"`
	Server  int    `json:"server" yaml:"server" validate:"min=0"`
	Driver  int    `json:"driver" yaml:"driver" validate:"min=0"`
}

// ScheduleInput is the data structure for the scheduling endpoint
type ScheduleInput struct {
	Employees       []EmployeeInput `json:"employees" yaml:"employees" binding:"required"`
	Demand          DemandMatrix    `json:"demand" yaml:"demand"`
	DemandRows      []DemandRow     `json:"demand_rows,omitempty" yaml:"demand_rows"`
	SchoolInSession bool            `json:"school_in_session" yaml:"school_in_session"`
}

// RepairAction records what the repair pass did with a one-hour placement
type RepairAction struct {
	EmployeeID    int    `json:"employee_id"`
	Hour          int    `json:"hour"`
	Action        string `json:"action"` // "extend", "split" or "drop"
	ReplacementID int    `json:"replacement_id,omitempty"`
}

// ScheduleStats are figures derived from a finished run
type ScheduleStats struct {
	FairnessScore   float64 `json:"fairness_score"`
	UncoveredDemand int     `json:"uncovered_demand"`
	HiddenHours     int     `json:"hidden_hours"`
	ScheduledCount  int     `json:"scheduled_count"`
}

// ScheduleResponse is the data structure for the scheduling result
type ScheduleResponse struct {
	Schedule        map[int]map[Role][]int `json:"schedule"`
	Shifts          map[int][]Interval     `json:"shifts"`
	HoursPerPerson  map[int]int            `json:"hours_per_person"`
	TotalHours      int                    `json:"total_hours"`
	RemainingDemand DemandMatrix           `json:"remaining_demand"`
	EmployeeNames   map[int]string         `json:"employee_names"`
	Repairs         []RepairAction         `json:"repairs,omitempty"`
	Stats           ScheduleStats          `json:"stats"`
}
