package scheduler

import (
	"slices"

	"github.com/arnavshah/shift-roster-go/pkg/models"
)

// Grid hours are [OpenHour, CloseHour)
const (
	OpenHour  = 7
	CloseHour = 23
)

// Options tunes the greedy engine
type Options struct {
	// HourCap bounds total hours across all employees
	HourCap int
	// MaxAnchors bounds how many employees are seeded before expansion
	MaxAnchors int
	// WorkloadPenalty is subtracted from an extension's gain per hour
	// the employee already holds
	WorkloadPenalty float64
}

// DefaultOptions returns the production settings
func DefaultOptions() Options {
	return Options{
		HourCap:         60,
		MaxAnchors:      10,
		WorkloadPenalty: 0.1,
	}
}

// Scheduler holds the working state of one scheduling run.
// It is not safe for concurrent use; build one per request.
type Scheduler struct {
	opts            Options
	schoolInSession bool

	// employees is the canonical iteration order for every stage
	employees []models.Employee
	byID      map[int]int

	demand    models.DemandMatrix
	remaining models.DemandMatrix

	shifts    map[int][]models.Interval
	hours     map[int]int
	splitUsed map[int]bool
	hoursUsed int

	repairs []models.RepairAction
}

// NewScheduler creates a new scheduler instance. Employees keep the order
// they were supplied in; a repeated id replaces the earlier record in place.
func NewScheduler(employees []models.Employee, demand models.DemandMatrix, schoolInSession bool, opts Options) *Scheduler {
	if len(demand) == 0 {
		demand = models.DemandMatrix{make([]int, models.NumRoles)}
	}

	s := &Scheduler{
		opts:            opts,
		schoolInSession: schoolInSession,
		byID:            make(map[int]int, len(employees)),
		demand:          demand.Clone(),
		remaining:       demand.Clone(),
		shifts:          make(map[int][]models.Interval),
		hours:           make(map[int]int),
		splitUsed:       make(map[int]bool),
	}

	for _, e := range employees {
		if !e.Role.Valid() {
			continue
		}
		if idx, ok := s.byID[e.ID]; ok {
			s.employees[idx] = e
			continue
		}
		s.byID[e.ID] = len(s.employees)
		s.employees = append(s.employees, e)
	}
	return s
}

// FromInputs converts wire records, dropping unusable ones
func FromInputs(inputs []models.EmployeeInput) []models.Employee {
	employees := make([]models.Employee, 0, len(inputs))
	for _, in := range inputs {
		if e, ok := in.ToEmployee(); ok {
			employees = append(employees, e)
		}
	}
	return employees
}

// Generate runs every stage on fresh state and returns the result
func Generate(employees []models.Employee, demand models.DemandMatrix, schoolInSession bool, opts Options) *Result {
	return NewScheduler(employees, demand, schoolInSession, opts).Run()
}

// Run executes the stages in order. A Scheduler must only be run once.
func (s *Scheduler) Run() *Result {
	s.placeAnchors()
	s.expand()
	s.fillGaps()
	s.repairSingles()
	return s.buildResult()
}

// Employees returns the employees taking part, in canonical order
func (s *Scheduler) Employees() []models.Employee {
	return slices.Clone(s.employees)
}

func (s *Scheduler) legal(e models.Employee, h int) bool {
	return LegalHour(h, e.Age, s.schoolInSession)
}

func (s *Scheduler) underDailyCap(e models.Employee) bool {
	return s.hours[e.ID] < DailyCap(e.Age)
}

// workedHours lists every hour the employee currently holds
func (s *Scheduler) workedHours(id int) []int {
	var hrs []int
	for _, iv := range s.shifts[id] {
		for h := iv.Start; h <= iv.End; h++ {
			hrs = append(hrs, h)
		}
	}
	return hrs
}

func (s *Scheduler) works(id, h int) bool {
	for _, iv := range s.shifts[id] {
		if iv.Contains(h) {
			return true
		}
	}
	return false
}

// farFromShift reports whether h is at least two hours from every held hour
func (s *Scheduler) farFromShift(id, h int) bool {
	for _, wh := range s.workedHours(id) {
		if abs(h-wh) <= 1 {
			return false
		}
	}
	return true
}

// consume books hour h for employee e
func (s *Scheduler) consume(e models.Employee, h int) {
	if h >= 0 && h < len(s.remaining) {
		s.remaining[h][e.Role]--
	}
	s.hours[e.ID]++
	s.hoursUsed++
}

// release gives hour h back to the demand table
func (s *Scheduler) release(e models.Employee, h int) {
	if h >= 0 && h < len(s.remaining) {
		s.remaining[h][e.Role]++
	}
}

// demandAt is the remaining demand the engine sees at hour h. Hours outside
// the grid are never scheduled against, so they read as zero.
func (s *Scheduler) demandAt(h int, role models.Role) int {
	if h < OpenHour || h >= CloseHour {
		return 0
	}
	return s.remaining.At(h, role)
}

// hoursByDemand returns the hours sorted by remaining demand, highest first.
// Equal demand keeps the earlier hour first.
func (s *Scheduler) hoursByDemand(hrs []int, role models.Role) []int {
	slices.SortStableFunc(hrs, func(a, b int) int {
		return s.demandAt(b, role) - s.demandAt(a, role)
	})
	return hrs
}

// withInterval returns a normalized copy of ivs with ivs[idx] replaced by iv,
// or with iv appended when idx is negative
func withInterval(ivs []models.Interval, idx int, iv models.Interval) []models.Interval {
	out := slices.Clone(ivs)
	if idx < 0 {
		out = append(out, iv)
	} else {
		out[idx] = iv
	}
	return normalize(out)
}

// normalize sorts intervals and merges those that touch or overlap
func normalize(ivs []models.Interval) []models.Interval {
	if len(ivs) < 2 {
		return ivs
	}
	slices.SortFunc(ivs, func(a, b models.Interval) int { return a.Start - b.Start })
	merged := ivs[:1]
	for _, iv := range ivs[1:] {
		last := &merged[len(merged)-1]
		if iv.Start <= last.End+1 {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
