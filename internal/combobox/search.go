package combobox

import "github.com/ruminaider/combosync/internal/filter"

// searchState tracks whether text edits are a live search or a committed
// value. active is only true while the surface is open and the user types.
type searchState struct {
	open   bool
	active bool
	text   string
}

// Opened reports whether the selection surface is open.
func (c *Combobox) Opened() bool { return c.search.open }

// Searching reports whether typed text is currently a live filter.
func (c *Combobox) Searching() bool { return c.search.active }

// SearchText returns the current filter string.
func (c *Combobox) SearchText() string { return c.search.text }

// Open shows the selection surface with the full list.
func (c *Combobox) Open() {
	if c.search.open {
		return
	}
	c.search.open = true
	c.search.active = false
	c.setSearch("")
}

// Close hides the surface, drops the search and runs a final value pass so
// the text shows a valid selection, or nothing.
func (c *Combobox) Close() {
	if !c.search.open {
		return
	}
	c.search.open = false
	c.search.active = false
	c.setSearch("")
	if !c.opts.MultiSelect {
		c.single.Refresh()
	}
}

// SetOpen opens or closes the surface.
func (c *Combobox) SetOpen(open bool) {
	if open {
		c.Open()
	} else {
		c.Close()
	}
}

// SetText routes a text edit. While the surface is open the text is a live
// search: it drives the filter and, when custom values are allowed, becomes
// the provisional value. Otherwise it is a committed edit reconciled against
// the item labels. Multi-select has no scalar text, so edits on a closed
// surface are ignored there.
func (c *Combobox) SetText(t string) bool {
	if c.search.open {
		c.search.active = true
		c.setSearch(t)
		if c.opts.MultiSelect {
			return true
		}
		return c.single.Draft(t)
	}
	if c.opts.MultiSelect {
		return false
	}
	return c.single.SetText(t)
}

// SetSearchText drives the filter directly without touching the selection.
func (c *Combobox) SetSearchText(s string) {
	c.setSearch(s)
}

// Highlight wraps the first match of the current search in text with mark.
func (c *Combobox) Highlight(text string, mark func(string) string) string {
	if c.search.text == "" {
		return text
	}
	return filter.Highlight(text, c.search.text, mark)
}

func (c *Combobox) setSearch(s string) {
	c.search.text = s
	c.refilter()
}
