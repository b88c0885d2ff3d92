package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/noah-isme/itinerary-planner-api/internal/catalog"
	"github.com/noah-isme/itinerary-planner-api/internal/scheduler"
)

const noScheduleLine = "No valid schedule found for given constraints"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dayStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	foodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

func renderResult(title string, result *scheduler.Result) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	if !result.Found() {
		b.WriteString(errorStyle.Render(noScheduleLine))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(statsLine(result)))
		b.WriteString("\n")
		return b.String()
	}

	for _, day := range result.Schedule.Days {
		header := fmt.Sprintf("%s  %s", day.Label, day.Date.Format("Mon 02 Jan 2006"))
		b.WriteString(dayStyle.Render(header))
		b.WriteString("\n")
		for i, activity := range day.Activities {
			line := fmt.Sprintf("  %d. %s (%s)", i+1, activity.Name(), activity.Category())
			if activity.IsFood() {
				line = foodStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	b.WriteString(mutedStyle.Render(statsLine(result)))
	b.WriteString("\n")
	return b.String()
}

func statsLine(result *scheduler.Result) string {
	return fmt.Sprintf("%s: %d nodes, %d backtracks in %s", result.Reason, result.Stats.Nodes, result.Stats.Backtracks, result.Stats.Elapsed.Round(time.Microsecond))
}

func renderCatalogs(summaries []catalog.Summary) string {
	if len(summaries) == 0 {
		return mutedStyle.Render("no catalogs found") + "\n"
	}
	var b strings.Builder
	for _, s := range summaries {
		b.WriteString(titleStyle.Render(s.ID))
		b.WriteString(fmt.Sprintf("  %s  %s\n", s.Name, mutedStyle.Render(fmt.Sprintf("%d activities", s.ActivityCount))))
		if s.Description != "" {
			b.WriteString("  ")
			b.WriteString(mutedStyle.Render(s.Description))
			b.WriteString("\n")
		}
	}
	return b.String()
}
