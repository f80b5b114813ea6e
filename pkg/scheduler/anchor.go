package scheduler

import (
	"cmp"
	"slices"

	"github.com/arnavshah/shift-roster-go/pkg/models"
)

type anchor struct {
	score int
	id    int
	hour  int
}

// findBestHour returns the hour in the employee's window with the most
// remaining demand for their role. Ties go to the later hour.
func (s *Scheduler) findBestHour(e models.Employee) (hour, score int, ok bool) {
	for h := e.StartHour; h <= e.EndHour; h++ {
		v := s.demandAt(h, e.Role)
		if !ok || v >= score {
			hour, score, ok = h, v, true
		}
	}
	return hour, score, ok
}

// anchorCandidates collects one legal anchor per employee, ordered by
// descending score, then descending id, then descending hour
func (s *Scheduler) anchorCandidates() []anchor {
	var anchors []anchor
	for _, e := range s.employees {
		h, score, ok := s.findBestHour(e)
		if !ok || !s.legal(e, h) {
			continue
		}
		anchors = append(anchors, anchor{score: score, id: e.ID, hour: h})
	}

	slices.SortFunc(anchors, func(a, b anchor) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		if c := cmp.Compare(b.id, a.id); c != 0 {
			return c
		}
		return cmp.Compare(b.hour, a.hour)
	})
	return anchors
}

// placeAnchors seeds one-hour shifts at each employee's best hour
func (s *Scheduler) placeAnchors() {
	maxAnchors := min(s.opts.MaxAnchors, len(s.employees))
	used := 0

	for _, a := range s.anchorCandidates() {
		if s.hoursUsed >= s.opts.HourCap || used >= maxAnchors {
			break
		}
		if a.score <= 0 {
			continue
		}
		e := s.employees[s.byID[a.id]]
		if !s.legal(e, a.hour) {
			continue
		}

		s.shifts[e.ID] = []models.Interval{{Start: a.hour, End: a.hour}}
		s.splitUsed[e.ID] = false
		s.consume(e, a.hour)
		used++
	}
}
