package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"manager": RoleManager,
		"Manager": RoleManager,
		"SERVER":  RoleServer,
		"insider": RoleServer,
		" driver": RoleDriver,
	}
	for in, want := range cases {
		got, ok := ParseRole(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseRole("chef")
	assert.False(t, ok)
}

func TestParseHour(t *testing.T) {
	h, err := ParseHour("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9, h)

	h, err = ParseHour("17")
	require.NoError(t, err)
	assert.Equal(t, 17, h)

	for _, bad := range []string{"", "noon", "24:00", "-1:00"} {
		_, err := ParseHour(bad)
		assert.Error(t, err, bad)
	}
}

func TestEmployeeInput_AgeForms(t *testing.T) {
	payload := `[
		{"id": 1, "name": "A", "job": "manager", "start": "08:00", "end": "16:00", "age": 29},
		{"id": 2, "name": "B", "job": "server", "start": "08:00", "end": "16:00", "age": "16"},
		{"id": 3, "name": "C", "job": "driver", "start": "08:00", "end": "16:00", "age": ""},
		{"id": 4, "name": "D", "job": "driver", "start": "08:00", "end": "16:00", "age": null},
		{"id": 5, "name": "E", "job": "driver", "start": "08:00", "end": "16:00"}
	]`

	var inputs []EmployeeInput
	require.NoError(t, json.Unmarshal([]byte(payload), &inputs))

	ages := make([]int, len(inputs))
	for i, in := range inputs {
		ages[i] = in.AgeOrDefault()
	}
	assert.Equal(t, []int{29, 16, 18, 18, 18}, ages)
}

func TestEmployeeInput_BadAgeRejected(t *testing.T) {
	var in EmployeeInput
	err := json.Unmarshal([]byte(`{"id": 1, "age": "old"}`), &in)
	assert.Error(t, err)
}

func TestDemandMatrix_At(t *testing.T) {
	d := DemandMatrix{{1, 2}, {3, 4, 5}}

	assert.Equal(t, 2, d.At(0, RoleServer))
	assert.Equal(t, 0, d.At(0, RoleDriver), "short rows read as zero")
	assert.Equal(t, 0, d.At(5, RoleManager))
	assert.Equal(t, 0, d.At(-1, RoleManager))
	assert.Equal(t, 3, d.RoleMax(RoleManager))

	c := d.Clone()
	c[1][0] = 99
	assert.Equal(t, 3, d[1][0])
	assert.Len(t, c[0], NumRoles)
}

func TestScheduleResponse_JSONShape(t *testing.T) {
	resp := ScheduleResponse{
		Schedule: map[int]map[Role][]int{9: {RoleDriver: {3}}},
		Shifts:   map[int][]Interval{3: {{Start: 9, End: 12}}},
	}

	b, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"schedule":{"9":{"driver":[3]}}`)
	assert.Contains(t, string(b), `"shifts":{"3":[[9,12]]}`)

	var back ScheduleResponse
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, []int{3}, back.Schedule[9][RoleDriver])
	assert.Equal(t, Interval{Start: 9, End: 12}, back.Shifts[3][0])
}
