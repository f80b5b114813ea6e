package scheduler

import "github.com/arnavshah/shift-roster-go/pkg/models"

// Repair actions
const (
	RepairExtend = "extend"
	RepairSplit  = "split"
	RepairDrop   = "drop"
)

// fillGaps gives every employee still without hours one chance at a
// single hour with positive remaining demand
func (s *Scheduler) fillGaps() {
	for _, e := range s.employees {
		if _, ok := s.shifts[e.ID]; ok {
			continue
		}
		if s.hoursUsed >= s.opts.HourCap {
			return
		}
		if !s.underDailyCap(e) {
			continue
		}

		var candidates []int
		for h := e.StartHour; h <= e.EndHour; h++ {
			if s.legal(e, h) {
				candidates = append(candidates, h)
			}
		}
		for _, h := range s.hoursByDemand(candidates, e.Role) {
			if s.demandAt(h, e.Role) <= 0 {
				continue
			}
			s.shifts[e.ID] = []models.Interval{{Start: h, End: h}}
			s.splitUsed[e.ID] = false
			s.consume(e, h)
			break
		}
	}
}

// repairSingles removes every employee holding exactly one hour, handing
// that hour to a colleague in the same role where one can take it.
// A replacement leaves the total unchanged and a drop gives the hour back
// to remaining demand, so TotalHours always equals the sum of hours per
// employee and uncovered demand counts dropped hours.
func (s *Scheduler) repairSingles() {
	var singles []models.Employee
	for _, e := range s.employees {
		if _, ok := s.shifts[e.ID]; ok && s.hours[e.ID] == 1 {
			singles = append(singles, e)
		}
	}

	for _, single := range singles {
		// an earlier repair may have handed this employee a second hour
		if s.hours[single.ID] != 1 {
			continue
		}
		hour := s.shifts[single.ID][0].Start
		action := models.RepairAction{EmployeeID: single.ID, Hour: hour, Action: RepairDrop}

		if other, idx, ok := s.adjacentReplacement(single, hour); ok {
			iv := s.shifts[other.ID][idx]
			if hour < iv.Start {
				iv.Start = hour
			} else {
				iv.End = hour
			}
			s.shifts[other.ID] = withInterval(s.shifts[other.ID], idx, iv)
			s.hours[other.ID]++
			s.hoursUsed++
			action.Action, action.ReplacementID = RepairExtend, other.ID
		} else if other, ok := s.splitReplacement(single, hour); ok {
			s.shifts[other.ID] = withInterval(s.shifts[other.ID], -1, models.Interval{Start: hour, End: hour})
			s.splitUsed[other.ID] = true
			s.hours[other.ID]++
			s.hoursUsed++
			action.Action, action.ReplacementID = RepairSplit, other.ID
		} else {
			s.release(single, hour)
		}

		s.hoursUsed -= s.hours[single.ID]
		delete(s.shifts, single.ID)
		delete(s.hours, single.ID)
		delete(s.splitUsed, single.ID)
		s.repairs = append(s.repairs, action)
	}
}

// canCover reports whether other could take hour h from single at all
func (s *Scheduler) canCover(other, single models.Employee, h int) bool {
	if other.ID == single.ID || other.Role != single.Role {
		return false
	}
	if _, ok := s.shifts[other.ID]; !ok {
		return false
	}
	return other.Available(h) && s.legal(other, h) && s.underDailyCap(other)
}

func (s *Scheduler) adjacentReplacement(single models.Employee, h int) (models.Employee, int, bool) {
	for _, other := range s.employees {
		if !s.canCover(other, single, h) || s.works(other.ID, h) {
			continue
		}
		intervals := s.shifts[other.ID]
		for idx, iv := range intervals {
			var grown models.Interval
			switch h {
			case iv.Start - 1:
				grown = models.Interval{Start: h, End: iv.End}
			case iv.End + 1:
				grown = models.Interval{Start: iv.Start, End: h}
			default:
				continue
			}
			if RespectsContinuousLimit(withInterval(intervals, idx, grown), other.Age) {
				return other, idx, true
			}
		}
	}
	return models.Employee{}, 0, false
}

func (s *Scheduler) splitReplacement(single models.Employee, h int) (models.Employee, bool) {
	for _, other := range s.employees {
		if !s.canCover(other, single, h) || s.splitUsed[other.ID] {
			continue
		}
		if s.farFromShift(other.ID, h) {
			return other, true
		}
	}
	return models.Employee{}, false
}
