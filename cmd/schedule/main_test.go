package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arnavshah/shift-roster-go/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlRoster = `
school_in_session: false
employees:
  - {id: 1, name: Alice, job: manager, start: "09:00", end: "17:00", age: 30}
  - {id: 2, name: Zed, job: chef, start: "09:00", end: "17:00"}
demand_rows:
  - {hour: "09:00", manager: 1}
  - {hour: "10:00", manager: 1}
  - {hour: "11:00", manager: 1}
  - {hour: "12:00", manager: 1}
  - {hour: "13:00", manager: 1}
  - {hour: "14:00", manager: 1}
  - {hour: "15:00", manager: 1}
  - {hour: "16:00", manager: 1}
  - {hour: "17:00", manager: 1}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRun_TableFromYAML(t *testing.T) {
	path := writeFile(t, "roster.yaml", yamlRoster)

	out, err := execute(t, "run", "--input", path)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	assert.Regexp(t, `^HOUR\s+MANAGER\s+SERVER\s+DRIVER$`, lines[0])
	assert.Regexp(t, `^07:00\s+-\s+-\s+-$`, lines[1])
	assert.Regexp(t, `^09:00\s+Alice\s+-\s+-$`, lines[3])
	assert.Contains(t, out, "total hours: 9")
}

func TestRun_JSONFromJSON(t *testing.T) {
	in := map[string]interface{}{
		"employees": []map[string]interface{}{
			{"id": 1, "name": "Alice", "job": "manager", "start": "09:00", "end": "17:00", "age": "30"},
		},
		"demand_rows": []models.DemandRow{{Hour: "12:00", Manager: 1}, {Hour: "13:00", Manager: 1}},
	}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	path := writeFile(t, "roster.json", string(data))

	out, err := execute(t, "run", "--input", path, "--format", "json")
	require.NoError(t, err)

	var resp models.ScheduleResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, []models.Interval{{Start: 12, End: 13}}, resp.Shifts[1])
	assert.Equal(t, 2, resp.TotalHours)
}

func TestRun_Errors(t *testing.T) {
	_, err := execute(t, "run")
	assert.Error(t, err, "input flag is required")

	_, err = execute(t, "run", "--input", writeFile(t, "roster.txt", "x"))
	assert.ErrorContains(t, err, "unsupported input type")

	_, err = execute(t, "run", "--input", writeFile(t, "roster.yaml", yamlRoster), "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestRules(t *testing.T) {
	out, err := execute(t, "rules", "--age", "15")
	require.NoError(t, err)
	assert.Contains(t, out, "daily cap: 3 hours")
	assert.Contains(t, out, "continuous limit: 4 hours")
	assert.Contains(t, out, "legal hours: 07 08 09 10 11 12 13 14 15 16 17 18 19 20\n")

	out, err = execute(t, "rules", "--age", "17", "--school")
	require.NoError(t, err)
	assert.Contains(t, out, "daily cap: 8 hours")
	assert.Contains(t, out, "legal hours: 07 08 09 10 11 12 13 14 15 16 17 18 19 20 21 22\n")

	out, err = execute(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "continuous limit: none")
}
