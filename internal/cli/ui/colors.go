// Package ui provides styling and output helpers for the vlistctl CLI.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	// ErrorStyle is the style for error messages
	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))

	// SuccessStyle is the style for success messages
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))

	// InfoStyle is the style for informational messages
	InfoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0099FF"))

	// DimStyle is the style for secondary columns
	DimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	// BoldStyle is the style for the first table column
	BoldStyle = lipgloss.NewStyle().Bold(true)

	// HeaderStyle is the style for section headers
	HeaderStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)
