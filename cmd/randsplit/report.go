package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/splitrand/internal/bench"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	passStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Padding(0, 1)

	failStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9")).
			Padding(0, 1)

	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...)
}

func renderBench(results []bench.Result) string {
	t := newTable("GENERATOR", "WORKLOAD", "OPS", "ELAPSED", "THROUGHPUT", "NS/OP").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, r := range results {
		t.Row(r.Name, r.Kind, fmt.Sprint(r.Ops), r.Elapsed.String(), throughput(r), fmt.Sprintf("%.2f", r.NanosPerOp()))
	}
	return t.Render()
}

func throughput(r bench.Result) string {
	switch r.Kind {
	case "fill":
		return fmt.Sprintf("%.1f MB/s", r.OpsPerSecond()/1e6)
	default:
		return fmt.Sprintf("%.2f M/s", r.OpsPerSecond()/1e6)
	}
}

func renderChecks(results []checkResult) string {
	t := newTable("GENERATOR", "CHECK", "STATISTIC", "RESULT").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 3 {
				if results[row].Pass {
					return passStyle
				}
				return failStyle
			}
			return cellStyle
		})
	for _, r := range results {
		verdict := "pass"
		if !r.Pass {
			verdict = "FAIL"
		}
		t.Row(r.Generator, r.Name, r.Detail, verdict)
	}
	return t.Render()
}
