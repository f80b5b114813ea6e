package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/arnavshah/shift-roster-go/pkg/demand"
	"github.com/arnavshah/shift-roster-go/pkg/models"
	"github.com/arnavshah/shift-roster-go/pkg/scheduler"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type runOptions struct {
	input  string
	school bool
	format string
	opts   scheduler.Options
}

func newRunCmd() *cobra.Command {
	o := runOptions{opts: scheduler.DefaultOptions()}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Schedule the employees and demand in a YAML or JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchedule(cmd.OutOrStdout(), o)
		},
	}
	cmd.Flags().StringVarP(&o.input, "input", "i", "", "roster file (.yaml, .yml or .json)")
	cmd.Flags().BoolVar(&o.school, "school", false, "school is in session")
	cmd.Flags().StringVarP(&o.format, "format", "f", "table", "output format: table or json")
	cmd.Flags().IntVar(&o.opts.HourCap, "hour-cap", o.opts.HourCap, "total hours the engine may assign")
	cmd.Flags().IntVar(&o.opts.MaxAnchors, "max-anchors", o.opts.MaxAnchors, "employees seeded with an anchor hour")
	cmd.Flags().Float64Var(&o.opts.WorkloadPenalty, "penalty", o.opts.WorkloadPenalty, "per-hour workload penalty during expansion")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

// loadInput reads a roster file. JSON goes through encoding/json so ages
// given as strings or null decode the same way the API accepts them.
func loadInput(path string) (models.ScheduleInput, error) {
	var in models.ScheduleInput
	data, err := os.ReadFile(path)
	if err != nil {
		return in, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &in)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &in)
	default:
		return in, fmt.Errorf("unsupported input type %q", filepath.Ext(path))
	}
	if err != nil {
		return in, fmt.Errorf("parse %s: %w", path, err)
	}

	if len(in.DemandRows) > 0 {
		if in.Demand, err = demand.ToMatrix(in.DemandRows); err != nil {
			return in, err
		}
	}
	return in, nil
}

func runSchedule(w io.Writer, o runOptions) error {
	if o.format != "table" && o.format != "json" {
		return fmt.Errorf("unknown format %q", o.format)
	}

	in, err := loadInput(o.input)
	if err != nil {
		return err
	}
	school := o.school || in.SchoolInSession

	res := scheduler.Generate(scheduler.FromInputs(in.Employees), in.Demand, school, o.opts)

	if o.format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Response())
	}
	return writeTable(w, res)
}

func writeTable(w io.Writer, res *scheduler.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	header := []string{"HOUR"}
	for _, r := range models.Roles {
		header = append(header, strings.ToUpper(r.String()))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for h := scheduler.OpenHour; h < scheduler.CloseHour; h++ {
		cells := []string{models.FormatHour(h)}
		for _, r := range models.Roles {
			var names []string
			for _, id := range res.Schedule[h][r] {
				names = append(names, res.EmployeeNames[id])
			}
			cell := strings.Join(names, ", ")
			if cell == "" {
				cell = "-"
			}
			cells = append(cells, cell)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\ntotal hours: %d  fairness: %.1f  uncovered demand: %d  hidden hours: %d  repairs: %d\n",
		res.TotalHours, res.Stats.FairnessScore, res.Stats.UncoveredDemand, res.Stats.HiddenHours, len(res.Repairs))
	return err
}
