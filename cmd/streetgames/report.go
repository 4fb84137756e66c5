package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/streetgames/internal/ledger"
	"github.com/lox/streetgames/internal/simulator"
)

var styles = newReportStyles()

type reportStyles struct {
	Header lipgloss.Style
	Column lipgloss.Style
	Gain   lipgloss.Style
	Loss   lipgloss.Style
	Muted  lipgloss.Style
}

func newReportStyles() reportStyles {
	return reportStyles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 2).
			Bold(true),
		Column: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Gain:  lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")),
		Loss:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
	}
}

func cell(width int, s string) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}

func row(widths []int, cols ...string) string {
	cells := make([]string, len(cols))
	for i, c := range cols {
		cells[i] = cell(widths[i], c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func signed(v float64) string {
	s := fmt.Sprintf("%+.3f", v)
	if v < 0 {
		return styles.Loss.Render(s)
	}
	return styles.Gain.Render(s)
}

func renderReport(results []simulator.Result, seed int64) string {
	widths := []int{16, 9, 10, 20, 9, 8, 8}
	var b strings.Builder
	b.WriteString(styles.Header.Render("Simulation results"))
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render(fmt.Sprintf("seed %d", seed)))
	b.WriteString("\n\n")
	b.WriteString(styles.Column.Render(row(widths, "Game", "Rounds", "Mean", "95% CI", "Win rate", "RTP", "Rebuys")))
	b.WriteString("\n")

	for _, res := range results {
		s := res.Stats
		lo, hi := s.ConfidenceInterval95()
		b.WriteString(row(widths,
			res.Game,
			fmt.Sprintf("%d", s.Rounds),
			signed(s.Mean()),
			fmt.Sprintf("[%.2f, %.2f]", lo, hi),
			fmt.Sprintf("%.1f%%", s.WinRate()*100),
			fmt.Sprintf("%.3f", s.ReturnToPlayer()),
			fmt.Sprintf("%d", res.Rebuys),
		))
		b.WriteString("\n")
	}
	return b.String()
}

func renderLimits(l *ledger.Ledger, marks []int) string {
	widths := []int{12, 10, 10}
	var b strings.Builder
	b.WriteString(styles.Header.Render("Bet limits"))
	b.WriteString("\n\n")
	b.WriteString(styles.Column.Render(row(widths, "High water", "Min bet", "Max bet")))
	b.WriteString("\n")
	for _, hw := range marks {
		lim := l.LimitsFor(hw)
		b.WriteString(row(widths, fmt.Sprintf("%d", hw), fmt.Sprintf("%d", lim.Min), fmt.Sprintf("%d", lim.Max)))
		b.WriteString("\n")
	}
	return b.String()
}
