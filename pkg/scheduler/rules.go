package scheduler

import "github.com/arnavshah/shift-roster-go/pkg/models"

// MaxMinorBlock is the longest contiguous block a minor may work
const MaxMinorBlock = 4

// DailyCap returns the most hours an employee of the given age may work in a day
func DailyCap(age int) int {
	switch {
	case age <= 15:
		return 3
	case age <= 17:
		return 8
	default:
		return 24
	}
}

// LegalHour reports whether someone of the given age may work hour h.
//
// 15 and under: 07:00 to 21:00. 16 and 17: not past 23:00, and not before
// 07:00 on school days. Adults are unrestricted.
func LegalHour(h, age int, schoolInSession bool) bool {
	switch {
	case age <= 15:
		return h >= 7 && h < 21
	case age <= 17:
		if schoolInSession && h < 7 {
			return false
		}
		return h < 23
	default:
		return true
	}
}

// RespectsContinuousLimit reports whether every interval is short enough
// for the age. Only minors are limited.
func RespectsContinuousLimit(intervals []models.Interval, age int) bool {
	if age > 17 {
		return true
	}
	for _, iv := range intervals {
		if iv.Len() > MaxMinorBlock {
			return false
		}
	}
	return true
}
