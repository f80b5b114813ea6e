package scheduler

import (
	"testing"

	"github.com/arnavshah/shift-roster-go/pkg/models"
)

func TestDailyCap(t *testing.T) {
	cases := map[int]int{14: 3, 15: 3, 16: 8, 17: 8, 18: 24, 45: 24}
	for age, want := range cases {
		if got := DailyCap(age); got != want {
			t.Errorf("DailyCap(%d) = %d, want %d", age, got, want)
		}
	}
}

func TestLegalHour(t *testing.T) {
	tests := []struct {
		hour   int
		age    int
		school bool
		want   bool
	}{
		{6, 15, false, false},
		{7, 15, true, true},
		{20, 15, false, true},
		{21, 15, false, false},
		{6, 16, true, false},
		{6, 16, false, true},
		{22, 17, true, true},
		{23, 17, false, false},
		{0, 18, true, true},
		{23, 30, true, true},
	}

	for _, tt := range tests {
		if got := LegalHour(tt.hour, tt.age, tt.school); got != tt.want {
			t.Errorf("LegalHour(%d, %d, %v) = %v, want %v", tt.hour, tt.age, tt.school, got, tt.want)
		}
	}
}

func TestRespectsContinuousLimit(t *testing.T) {
	four := []models.Interval{{Start: 9, End: 12}, {Start: 15, End: 15}}
	five := []models.Interval{{Start: 9, End: 13}}

	if !RespectsContinuousLimit(four, 16) {
		t.Errorf("Expected a 4-hour block to be allowed for a minor")
	}
	if RespectsContinuousLimit(five, 17) {
		t.Errorf("Expected a 5-hour block to be rejected for a minor")
	}
	if !RespectsContinuousLimit(five, 18) {
		t.Errorf("Expected adults to have no block limit")
	}
}
