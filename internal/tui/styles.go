package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	statsStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	healthStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true) // Red
	goldStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true) // Yellow
	xpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)  // Blue
	buttonStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	focusedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("82")) // Green
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	streakStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	messageStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	deleteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
)
