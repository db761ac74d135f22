package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/td0m/tasktracker/pkg/task"
)

// Neutral colors follow the terminal's light or dark background
var (
	Background = lipgloss.AdaptiveColor{Light: "#fff", Dark: "#000"}

	Primary   = lipgloss.AdaptiveColor{Light: "#111", Dark: "#fff"}
	Secondary = lipgloss.AdaptiveColor{Light: "#666", Dark: "#888"}
	Faded     = lipgloss.AdaptiveColor{Light: "#ccc", Dark: "#555"}
)

const (
	Blue   = lipgloss.Color("#4db7ff")
	Green  = lipgloss.Color("#00a352")
	Red    = lipgloss.Color("#c42912")
	Yellow = lipgloss.Color("#c4b810")
	Orange = lipgloss.Color("#c27510")
	Purple = lipgloss.Color("#8e6bd6")
)

// PriorityColor is red for high, yellow for medium and green for low
func PriorityColor(p task.Priority) lipgloss.Color {
	switch p.Normalize() {
	case task.High:
		return Red
	case task.Low:
		return Green
	}
	return Yellow
}
