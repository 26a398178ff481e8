package main

import (
	"github.com/Cortexa-LLC/mcp/src/timesheet/apperr"
	"github.com/charmbracelet/lipgloss"
)

var (
	styleOK   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8ec07c")).Bold(true)
	styleWarn = lipgloss.NewStyle().Foreground(lipgloss.Color("#fabd2f"))
	styleErr  = lipgloss.NewStyle().Foreground(lipgloss.Color("#fb4934")).Bold(true)
	styleDim  = lipgloss.NewStyle().Foreground(lipgloss.Color("#928374"))
)

// renderError formats err for the terminal: the user message in red, then
// suggestions, then the code and context dimmed.
func renderError(err error) string {
	e, ok := apperr.As(err)
	if !ok {
		return styleErr.Render("Error: " + err.Error())
	}
	out := styleErr.Render(e.Message)
	for _, s := range e.Suggestions {
		out += "\n  " + styleWarn.Render("- "+s)
	}
	detail := e.Code
	if ctx := e.ContextString(); ctx != "" {
		detail += " " + ctx
	}
	if e.Cause != nil {
		detail += ": " + e.Cause.Error()
	}
	return out + "\n" + styleDim.Render(detail)
}
