package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/arnavshah/shift-roster-go/pkg/models"
	"github.com/arnavshah/shift-roster-go/pkg/scheduler"
	"github.com/spf13/cobra"
)

func newRulesCmd() *cobra.Command {
	var (
		age    int
		school bool
	)
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the labour rules that apply to an age",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if age < 0 {
				return fmt.Errorf("age must not be negative")
			}
			return printRules(cmd.OutOrStdout(), age, school)
		},
	}
	cmd.Flags().IntVar(&age, "age", models.DefaultAge, "employee age")
	cmd.Flags().BoolVar(&school, "school", false, "school is in session")
	return cmd
}

func printRules(w io.Writer, age int, school bool) error {
	var legal []string
	for h := 0; h < 24; h++ {
		if scheduler.LegalHour(h, age, school) {
			legal = append(legal, fmt.Sprintf("%02d", h))
		}
	}

	block := "none"
	if age <= 17 {
		block = fmt.Sprintf("%d hours", scheduler.MaxMinorBlock)
	}

	_, err := fmt.Fprintf(w, "age %d (school in session: %t)\ndaily cap: %d hours\ncontinuous limit: %s\nlegal hours: %s\n",
		age, school, scheduler.DailyCap(age), block, strings.Join(legal, " "))
	return err
}
