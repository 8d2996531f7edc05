// Package combobox assembles the item store, filter engine and selection
// reconcilers into the state core of a combobox or listbox widget. It owns
// no rendering: hosts read Display, Selected and SelectedList and feed user
// actions back through the methods below.
package combobox

import (
	"github.com/ruminaider/combosync/internal/filter"
	"github.com/ruminaider/combosync/internal/item"
	"github.com/ruminaider/combosync/internal/logger"
	"github.com/ruminaider/combosync/internal/selection"
)

// Options configures a Combobox.
type Options struct {
	Fields           item.Fields
	Tree             bool
	MultiSelect      bool
	SelectOnlyLeaf   bool
	AllowCustomValue bool
	Required         bool

	// Flatten orders the filtered items for display in tree mode. A nil
	// Flatten displays the filtered items flat.
	Flatten filter.Flattener
}

// Event is the select notification, emitted once per accepted row click.
type Event struct {
	Item *item.Item
	// Selected is false when a multi-select toggle removed the item.
	Selected bool
}

// Hooks observe selection writes. Writes back into the Combobox from a hook
// are dropped while the pass that fired it is running.
type Hooks struct {
	Value  func(v any)
	Text   func(t string)
	Values func(values []any)
}

// Combobox is the selection-state core of one widget instance. It is not
// safe for concurrent use.
type Combobox struct {
	opts   Options
	acc    item.Accessors
	store  *item.Store
	engine *filter.Engine
	single *selection.Single
	multi  *selection.Multi

	search   searchState
	filtered []*item.Item
	onSelect func(Event)
}

// New creates an empty Combobox.
func New(opts Options) *Combobox {
	acc := item.NewAccessors(opts.Fields)
	store := item.NewStore(acc)
	return &Combobox{
		opts:   opts,
		acc:    acc,
		store:  store,
		engine: filter.New(acc, opts.Tree),
		single: selection.NewSingle(store, opts.AllowCustomValue),
		multi:  selection.NewMulti(store),
	}
}

// Options returns the configuration the Combobox was built with.
func (c *Combobox) Options() Options { return c.opts }

// Accessors returns the resolved field accessors.
func (c *Combobox) Accessors() item.Accessors { return c.acc }

// OnSelect registers the select notification handler.
func (c *Combobox) OnSelect(fn func(Event)) {
	c.onSelect = fn
}

// Watch registers hooks for value, text and value-list writes.
func (c *Combobox) Watch(h Hooks) {
	c.single.SetHooks(selection.SingleHooks{Value: h.Value, Text: h.Text})
	c.multi.SetHooks(selection.MultiHooks{Values: h.Values})
}

// SetData replaces the backing collection, re-runs the filter and resolves
// the selection against the new items.
func (c *Combobox) SetData(raw []any) {
	c.store.Set(raw)
	c.refilter()
	if c.opts.MultiSelect {
		c.multi.Resync()
	} else {
		c.single.Resolve()
	}
	logger.L.Debug("data replaced", "items", c.store.Len(), "filtered", len(c.filtered))
}

// Data returns the normalized items in data order.
func (c *Combobox) Data() []*item.Item { return c.store.Items() }

// Filtered returns the items matching the current search.
func (c *Combobox) Filtered() []*item.Item { return c.filtered }

// Display returns the ordered rows to render.
func (c *Combobox) Display() []filter.Row {
	if c.opts.Tree && c.opts.Flatten != nil {
		return c.opts.Flatten(c.filtered, c.acc)
	}
	return filter.Flat(c.filtered, c.acc)
}

// Value returns the single-select value; nil means none.
func (c *Combobox) Value() any { return c.single.Value() }

// Text returns the single-select display text.
func (c *Combobox) Text() string { return c.single.Text() }

// Selected returns the single-select item, or nil.
func (c *Combobox) Selected() *item.Item { return c.single.Selected() }

// Pending returns the parked value waiting for data, if any.
func (c *Combobox) Pending() (any, bool) { return c.single.Pending() }

// SetValue writes the single-select value.
func (c *Combobox) SetValue(v any) bool { return c.single.SetValue(v) }

// ValueList returns a copy of the multi-select values.
func (c *Combobox) ValueList() []any { return c.multi.Values() }

// SelectedList returns a copy of the multi-select items.
func (c *Combobox) SelectedList() []*item.Item { return c.multi.Selected() }

// SetValueList replaces the multi-select values.
func (c *Combobox) SetValueList(values []any) bool {
	return c.multi.Apply(values, selection.Replace)
}

// AddValues appends values not yet selected.
func (c *Combobox) AddValues(values ...any) bool {
	return c.multi.Apply(values, selection.Add)
}

// RemoveValues drops the given values from the selection.
func (c *Combobox) RemoveValues(values ...any) bool {
	return c.multi.Apply(values, selection.Remove)
}

// SetSelectedList replaces the multi-select items directly.
func (c *Combobox) SetSelectedList(items []*item.Item) bool {
	return c.multi.ApplySelected(items, selection.Replace)
}

// RemoveSelected drops items from the selection, as removing a tag does.
func (c *Combobox) RemoveSelected(items ...*item.Item) bool {
	return c.multi.ApplySelected(items, selection.Remove)
}

// IsChecked reports whether it is part of the multi-select selection.
func (c *Combobox) IsChecked(it *item.Item) bool {
	return c.opts.MultiSelect && c.multi.Contains(c.acc.Value(it))
}

// IsLeaf reports whether no item names it as parent.
func (c *Combobox) IsLeaf(it *item.Item) bool {
	return !c.store.HasChildren(it)
}

// Checkable reports whether a checkbox is shown for it: always in
// multi-select, and only on leaves when select-only-leaf is set.
func (c *Combobox) Checkable(it *item.Item) bool {
	if !c.opts.MultiSelect {
		return false
	}
	return !c.opts.SelectOnlyLeaf || c.IsLeaf(it)
}

// ToggleSelection applies a row click. Single-select commits it and closes
// the surface; multi-select adds or removes it. In tree mode with
// select-only-leaf, clicks on nodes with children are rejected without any
// change or event.
func (c *Combobox) ToggleSelection(it *item.Item) bool {
	if it == nil {
		return false
	}
	if c.opts.Tree && c.opts.SelectOnlyLeaf && !c.IsLeaf(it) {
		logger.L.Debug("selection of non-leaf rejected", "value", c.acc.Value(it))
		return false
	}

	if c.opts.MultiSelect {
		added, ok := c.multi.Toggle(it)
		if !ok {
			return false
		}
		c.emit(Event{Item: it, Selected: added})
		return true
	}

	if !c.single.Commit(it) {
		return false
	}
	c.Close()
	c.emit(Event{Item: it, Selected: true})
	return true
}

// ToggleNode expands or collapses a tree node. Leaves are left alone.
func (c *Combobox) ToggleNode(it *item.Item) bool {
	if it == nil || !it.HasChildren {
		return false
	}
	it.Expanded = !it.Expanded
	return true
}

// ExpandAll expands every item that has children.
func (c *Combobox) ExpandAll() {
	for _, it := range c.store.Items() {
		if c.store.HasChildren(it) {
			it.HasChildren = true
			it.Expanded = true
		}
	}
}

// Clear empties the selection, as the clear button does.
func (c *Combobox) Clear() bool {
	if c.opts.MultiSelect {
		return c.multi.Apply(nil, selection.Replace)
	}
	return c.single.Clear()
}

// Validate returns the validation message for the current state, or "".
func (c *Combobox) Validate() string {
	if c.opts.MultiSelect {
		return selection.ValidateMulti(c.multi.Values(), c.opts.Required)
	}
	return selection.ValidateSingle(c.single.Value(), c.single.Text(), c.opts.Required)
}

// Passes returns the number of reconciliation passes run by the active
// reconciler.
func (c *Combobox) Passes() int {
	if c.opts.MultiSelect {
		return c.multi.Passes()
	}
	return c.single.Passes()
}

func (c *Combobox) emit(e Event) {
	if c.onSelect != nil {
		c.onSelect(e)
	}
}

func (c *Combobox) refilter() {
	c.filtered = c.engine.Apply(c.store.Items(), c.search.text)
}
