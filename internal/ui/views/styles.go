package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Prompt        lipgloss.Style
	Button        lipgloss.Style
	Dim           lipgloss.Style
	Help          lipgloss.Style
	HelpBox       lipgloss.Style
	Main          lipgloss.Style
	Suggestion    lipgloss.Style
	ActiveRow     lipgloss.Style
	Mark          lipgloss.Style
	ActiveMark    lipgloss.Style
	ResultsHeader lipgloss.Style
	ResultTitle   lipgloss.Style
	ResultLink    lipgloss.Style
	PageButton    lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		Button: lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Dim:    lipgloss.NewStyle().Faint(true),
		Help:   lipgloss.NewStyle().Faint(true),
		HelpBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1).
			BorderForeground(lipgloss.Color("241")),
		Main: lipgloss.NewStyle().
			Padding(mainPadTop, mainPadLeft),
		Suggestion:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ActiveRow:     lipgloss.NewStyle().Background(lipgloss.Color("238")).Foreground(lipgloss.Color("255")),
		Mark:          lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		ActiveMark:    lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Background(lipgloss.Color("238")).Bold(true),
		ResultsHeader: lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		ResultTitle:   lipgloss.NewStyle().Bold(true),
		ResultLink:    lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Underline(true),
		PageButton:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true), // yellow
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),            // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),            // gray
	}
}
