package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// RenderCheckbox returns a styled [x] or [ ] checkbox. Rows that cannot be
// checked get blank padding of the same width.
func RenderCheckbox(checkable, checked bool) string {
	if !checkable {
		return "   "
	}
	if checked {
		return SelectedStyle.Render("[x]")
	}
	return UnselectedStyle.Render("[ ]")
}

// RenderArrow returns the tree marker for a row: ▾ for an expanded node,
// ▸ for a collapsed one and a blank for leaves.
func RenderArrow(hasChildren, expanded bool) string {
	switch {
	case !hasChildren:
		return " "
	case expanded:
		return ArrowStyle.Render("▾")
	default:
		return ArrowStyle.Render("▸")
	}
}

// RenderIndent returns the leading space for a row at level.
func RenderIndent(level int) string {
	return strings.Repeat("  ", level)
}

// RenderItemText returns styled display text for a row. Labels are already
// highlighted by the caller; current rows are bolded on top of that.
func RenderItemText(text string, isCurrent, isSelected bool) string {
	switch {
	case isCurrent:
		return lipgloss.NewStyle().Bold(true).Foreground(colorText).Render(text)
	case isSelected:
		return SelectedStyle.Render(text)
	default:
		return text
	}
}

// RenderTags renders the multi-select value chips, truncating the row to
// width.
func RenderTags(labels []string, detached []bool, width int) string {
	if len(labels) == 0 {
		return ""
	}
	parts := make([]string, len(labels))
	for i, l := range labels {
		if detached[i] {
			parts[i] = DetachedTagStyle.Render(l + " ×")
		} else {
			parts[i] = TagStyle.Render(l + " ×")
		}
	}
	return Truncate(strings.Join(parts, " "), width)
}

// Mark styles the matching part of a label.
func Mark(s string) string {
	return MatchStyle.Render(s)
}

// Truncate cuts s to width terminal cells, ending in an ellipsis. A
// non-positive width leaves s untouched.
func Truncate(s string, width int) string {
	if width <= 0 || ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
