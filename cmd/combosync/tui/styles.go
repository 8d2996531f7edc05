package tui

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Catppuccin Mocha palette.
var flavor = catppuccin.Mocha

var (
	colorBase     = lipgloss.Color(flavor.Base().Hex)
	colorSurface0 = lipgloss.Color(flavor.Surface0().Hex)
	colorSurface1 = lipgloss.Color(flavor.Surface1().Hex)
	colorText     = lipgloss.Color(flavor.Text().Hex)
	colorSubtext0 = lipgloss.Color(flavor.Subtext0().Hex)
	colorBlue     = lipgloss.Color(flavor.Blue().Hex)
	colorGreen    = lipgloss.Color(flavor.Green().Hex)
	colorRed      = lipgloss.Color(flavor.Red().Hex)
	colorYellow   = lipgloss.Color(flavor.Yellow().Hex)
	colorPeach    = lipgloss.Color(flavor.Peach().Hex)
	colorMauve    = lipgloss.Color(flavor.Mauve().Hex)
	colorOverlay0 = lipgloss.Color(flavor.Overlay0().Hex)
)

// Field styles.
var (
	// LabelStyle is used for the field label above the input.
	LabelStyle = lipgloss.NewStyle().
			Foreground(colorMauve).
			Bold(true)

	// InputStyle frames the text input.
	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(0, 1)

	// InputOpenStyle frames the text input while the list is shown.
	InputOpenStyle = InputStyle.
			BorderForeground(colorBlue)

	// TagStyle renders one selected value in multi-select.
	TagStyle = lipgloss.NewStyle().
			Foreground(colorBase).
			Background(colorBlue).
			Padding(0, 1)

	// DetachedTagStyle renders a selected value with no matching item.
	DetachedTagStyle = lipgloss.NewStyle().
				Foreground(colorBase).
				Background(colorPeach).
				Padding(0, 1)

	// ErrorStyle is used for the validation message.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorRed)
)

// List styles.
var (
	// SelectedStyle is used for checked items and the current value.
	SelectedStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	// UnselectedStyle is used for unchecked items.
	UnselectedStyle = lipgloss.NewStyle().
			Foreground(colorText)

	// DimStyle is used for disabled checkboxes and scroll hints.
	DimStyle = lipgloss.NewStyle().
			Foreground(colorOverlay0)

	// CursorStyle is used for the highlighted row.
	CursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Background(colorSurface0)

	// ArrowStyle is used for the tree expand/collapse marker.
	ArrowStyle = lipgloss.NewStyle().
			Foreground(colorBlue)

	// MatchStyle marks the part of a label matching the search.
	MatchStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Underline(true)

	// ListStyle wraps the option list.
	ListStyle = lipgloss.NewStyle().
			PaddingLeft(1).
			PaddingRight(1)
)

// Status bar styles.
var (
	// StatusBarStyle is the base style for the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorSurface0).
			Padding(0, 1)

	// StatusBarKeyStyle highlights keyboard shortcuts in the status bar.
	StatusBarKeyStyle = lipgloss.NewStyle().
				Foreground(colorYellow).
				Background(colorSurface0).
				Bold(true)
)
