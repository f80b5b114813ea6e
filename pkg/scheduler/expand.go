package scheduler

import "github.com/arnavshah/shift-roster-go/pkg/models"

type moveKind int

const (
	moveLeft moveKind = iota
	moveRight
	moveSplit
)

// move is a single-hour change to one employee's shift
type move struct {
	kind  moveKind
	emp   models.Employee
	idx   int // interval being extended; unused for splits
	hour  int
	score float64
}

// expand grows the schedule one hour per round until the hour cap is hit
// or no candidate move has a positive score
func (s *Scheduler) expand() {
	for s.hoursUsed < s.opts.HourCap {
		best, ok := s.bestExtension()
		if !ok || best.score <= 0 {
			best, ok = s.bestSplit()
		}
		if !ok || best.score <= 0 {
			return
		}
		s.apply(best)
	}
}

// bestExtension scans employees in canonical order, their intervals in
// order, left before right, and keeps the first highest-scoring extension
func (s *Scheduler) bestExtension() (move, bool) {
	var best move
	found := false

	for _, e := range s.employees {
		intervals, ok := s.shifts[e.ID]
		if !ok || !s.underDailyCap(e) {
			continue
		}
		penalty := float64(s.hours[e.ID]) * s.opts.WorkloadPenalty

		for idx, iv := range intervals {
			if iv.Start > e.StartHour {
				if m, ok := s.extension(e, intervals, idx, iv.Start-1, models.Interval{Start: iv.Start - 1, End: iv.End}, moveLeft, penalty); ok {
					if !found || m.score > best.score {
						best, found = m, true
					}
				}
			}
			if iv.End < e.EndHour {
				if m, ok := s.extension(e, intervals, idx, iv.End+1, models.Interval{Start: iv.Start, End: iv.End + 1}, moveRight, penalty); ok {
					if !found || m.score > best.score {
						best, found = m, true
					}
				}
			}
		}
	}
	return best, found
}

func (s *Scheduler) extension(e models.Employee, intervals []models.Interval, idx, hour int, grown models.Interval, kind moveKind, penalty float64) (move, bool) {
	if !s.legal(e, hour) || s.works(e.ID, hour) {
		return move{}, false
	}
	if !RespectsContinuousLimit(withInterval(intervals, idx, grown), e.Age) {
		return move{}, false
	}
	gain := float64(s.demandAt(hour, e.Role))
	return move{kind: kind, emp: e, idx: idx, hour: hour, score: gain - penalty}, true
}

// bestSplit offers the first employee, in canonical order, who can still
// open a second block. Their best such hour becomes the move.
func (s *Scheduler) bestSplit() (move, bool) {
	for _, e := range s.employees {
		if s.splitUsed[e.ID] || !s.underDailyCap(e) {
			continue
		}
		if h, ok := s.bestSplitHour(e); ok {
			return move{kind: moveSplit, emp: e, hour: h, score: float64(s.demandAt(h, e.Role))}, true
		}
	}
	return move{}, false
}

func (s *Scheduler) bestSplitHour(e models.Employee) (int, bool) {
	var candidates []int
	for h := e.StartHour; h <= e.EndHour; h++ {
		if s.legal(e, h) && s.farFromShift(e.ID, h) {
			candidates = append(candidates, h)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}
	return s.hoursByDemand(candidates, e.Role)[0], true
}

func (s *Scheduler) apply(m move) {
	id := m.emp.ID
	switch m.kind {
	case moveSplit:
		s.shifts[id] = withInterval(s.shifts[id], -1, models.Interval{Start: m.hour, End: m.hour})
		s.splitUsed[id] = true
	case moveLeft:
		iv := s.shifts[id][m.idx]
		s.shifts[id] = withInterval(s.shifts[id], m.idx, models.Interval{Start: m.hour, End: iv.End})
	case moveRight:
		iv := s.shifts[id][m.idx]
		s.shifts[id] = withInterval(s.shifts[id], m.idx, models.Interval{Start: iv.Start, End: m.hour})
	}
	s.consume(m.emp, m.hour)
}
