package scheduler

import (
	"math"
	"slices"

	"github.com/arnavshah/shift-roster-go/pkg/models"
)

// Grid maps hour -> role -> employee ids on duty
type Grid map[int]map[models.Role][]int

// Result is everything a run produces
type Result struct {
	Schedule        Grid
	Shifts          map[int][]models.Interval
	HoursPerPerson  map[int]int
	TotalHours      int
	RemainingDemand models.DemandMatrix
	EmployeeNames   map[int]string
	Repairs         []models.RepairAction
	Stats           models.ScheduleStats
}

// roleCaps is the per-hour headcount cap for each role: its peak demand
func (s *Scheduler) roleCaps() [models.NumRoles]int {
	var caps [models.NumRoles]int
	for _, r := range models.Roles {
		caps[r] = s.demand.RoleMax(r)
	}
	return caps
}

// buildGrid projects committed shifts onto the hour x role grid, then puts
// one eligible employee into any cell left empty. It returns the grid and
// the number of scheduled hours the caps kept off it.
func (s *Scheduler) buildGrid() (Grid, int) {
	caps := s.roleCaps()
	grid := make(Grid, CloseHour-OpenHour)
	for h := OpenHour; h < CloseHour; h++ {
		grid[h] = make(map[models.Role][]int, models.NumRoles)
		for _, r := range models.Roles {
			grid[h][r] = []int{}
		}
	}

	hidden := 0
	for _, e := range s.employees {
		for _, iv := range s.shifts[e.ID] {
			for h := iv.Start; h <= iv.End; h++ {
				cell, ok := grid[h]
				if !ok || len(cell[e.Role]) >= caps[e.Role] {
					hidden++
					continue
				}
				cell[e.Role] = append(cell[e.Role], e.ID)
			}
		}
	}

	// a role with no demand all day gets no baseline coverage
	for h := OpenHour; h < CloseHour; h++ {
		for _, r := range models.Roles {
			if len(grid[h][r]) > 0 || caps[r] == 0 {
				continue
			}
			for _, e := range s.employees {
				if e.Role == r && e.Available(h) && s.legal(e, h) {
					grid[h][r] = append(grid[h][r], e.ID)
					break
				}
			}
		}
	}
	return grid, hidden
}

func (s *Scheduler) buildResult() *Result {
	grid, hidden := s.buildGrid()

	res := &Result{
		Schedule:        grid,
		Shifts:          make(map[int][]models.Interval, len(s.shifts)),
		HoursPerPerson:  make(map[int]int, len(s.hours)),
		TotalHours:      s.hoursUsed,
		RemainingDemand: s.remaining.Clone(),
		EmployeeNames:   make(map[int]string, len(s.employees)),
		Repairs:         s.repairs,
	}
	for _, e := range s.employees {
		res.EmployeeNames[e.ID] = e.Name
		if ivs, ok := s.shifts[e.ID]; ok {
			res.Shifts[e.ID] = slices.Clone(ivs)
			res.HoursPerPerson[e.ID] = s.hours[e.ID]
		}
	}

	res.Stats = models.ScheduleStats{
		FairnessScore:   s.CalculateFairnessScore(),
		UncoveredDemand: s.uncoveredDemand(),
		HiddenHours:     hidden,
		ScheduledCount:  len(res.Shifts),
	}
	return res
}

func (s *Scheduler) uncoveredDemand() int {
	total := 0
	for h := OpenHour; h < CloseHour; h++ {
		for _, r := range models.Roles {
			if v := s.remaining.At(h, r); v > 0 {
				total += v
			}
		}
	}
	return total
}

// CalculateFairnessScore returns a percentage (0-100) representing how evenly
// hours are spread over the roster. 100% is perfectly fair (Standard Deviation = 0).
func (s *Scheduler) CalculateFairnessScore() float64 {
	if len(s.employees) == 0 {
		return 100.0
	}

	var sum float64
	for _, e := range s.employees {
		sum += float64(s.hours[e.ID])
	}

	if sum == 0 {
		return 100.0 // Everyone having 0 hours is perfectly fair
	}

	mean := sum / float64(len(s.employees))

	var varianceSum float64
	for _, e := range s.employees {
		diff := float64(s.hours[e.ID]) - mean
		varianceSum += diff * diff
	}
	stdDev := math.Sqrt(varianceSum / float64(len(s.employees)))

	// 100% means SD is 0. 0% means SD is >= mean.
	score := (1.0 - (stdDev / mean)) * 100.0
	if score < 0 {
		return 0.0
	}
	return score
}

// Response converts the result to its wire form
func (r *Result) Response() models.ScheduleResponse {
	return models.ScheduleResponse{
		Schedule:        r.Schedule,
		Shifts:          r.Shifts,
		HoursPerPerson:  r.HoursPerPerson,
		TotalHours:      r.TotalHours,
		RemainingDemand: r.RemainingDemand,
		EmployeeNames:   r.EmployeeNames,
		Repairs:         r.Repairs,
		Stats:           r.Stats,
	}
}
