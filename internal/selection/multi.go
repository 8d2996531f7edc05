package selection

import (
	"slices"

	"github.com/ruminaider/combosync/internal/item"
	"github.com/ruminaider/combosync/internal/logger"
)

// ChangeKind is the shape of a list mutation.
type ChangeKind int

const (
	Replace ChangeKind = iota // the argument is the whole new list
	Add                       // the argument lists entries to append
	Remove                    // the argument lists entries to drop
)

// String returns the display name for a change kind.
func (k ChangeKind) String() string {
	switch k {
	case Replace:
		return "replace"
	case Add:
		return "add"
	case Remove:
		return "remove"
	default:
		return "unknown"
	}
}

// MultiHooks are notified once per settled pass with copies of both lists.
type MultiHooks struct {
	Values   func(values []any)
	Selected func(items []*item.Item)
}

// Multi keeps values and selected items in lockstep: after every pass
// len(values) == len(selected) and values[i] equals the value of
// selected[i]. Values without a backing record are held by detached
// placeholder items until SetData supplies one.
type Multi struct {
	store *item.Store
	guard Guard
	hooks MultiHooks

	values   []any
	selected []*item.Item
}

// NewMulti creates an empty multi-select reconciler over store.
func NewMulti(store *item.Store) *Multi {
	return &Multi{store: store}
}

// SetHooks replaces the change hooks.
func (m *Multi) SetHooks(h MultiHooks) {
	m.hooks = h
}

// Values returns a copy of the value list.
func (m *Multi) Values() []any { return slices.Clone(m.values) }

// Selected returns a copy of the selected item list.
func (m *Multi) Selected() []*item.Item { return slices.Clone(m.selected) }

// Len returns the number of selected entries.
func (m *Multi) Len() int { return len(m.values) }

// Busy reports whether a pass is in flight.
func (m *Multi) Busy() bool { return m.guard.Busy() }

// Passes returns the number of reconciliation passes run so far.
func (m *Multi) Passes() int { return m.guard.Passes() }

// Contains reports whether v is selected.
func (m *Multi) Contains(v any) bool {
	return m.index(v) >= 0
}

// Apply reconciles the selection with a change to the value list. For
// Replace, values is the full new list: entries missing from it are removed,
// new ones are added, and the result follows its order. Duplicates are
// ignored.
func (m *Multi) Apply(values []any, kind ChangeKind) bool {
	return m.guard.Do(func() {
		switch kind {
		case Replace:
			m.replace(values, nil)
		case Add:
			for _, v := range values {
				m.add(v, nil)
			}
		case Remove:
			for _, v := range values {
				m.remove(v)
			}
		}
		m.notify()
	})
}

// ApplySelected is the mirror of Apply for hosts that edit the selected item
// list directly, such as removing a tag. Both reach the same state for the
// same logical set.
func (m *Multi) ApplySelected(items []*item.Item, kind ChangeKind) bool {
	acc := m.store.Accessors()
	return m.guard.Do(func() {
		switch kind {
		case Replace:
			values := make([]any, 0, len(items))
			for _, it := range items {
				values = append(values, acc.Value(it))
			}
			m.replace(values, items)
		case Add:
			for _, it := range items {
				m.add(acc.Value(it), it)
			}
		case Remove:
			for _, it := range items {
				m.remove(acc.Value(it))
			}
		}
		m.notify()
	})
}

// Toggle removes it when its value is selected and appends it otherwise.
// added reports the resulting membership; ok is false when the call was
// dropped by a running pass.
func (m *Multi) Toggle(it *item.Item) (added, ok bool) {
	v := m.store.Accessors().Value(it)
	ok = m.guard.Do(func() {
		if m.index(v) >= 0 {
			m.remove(v)
		} else {
			m.add(v, it)
			added = true
		}
		m.notify()
	})
	return added, ok
}

// Resync re-derives the selected items from the value list after the store
// is replaced, swapping placeholders for real items and back.
func (m *Multi) Resync() bool {
	return m.guard.Do(func() {
		for i, v := range m.values {
			if it := m.store.ByValue(v); it != nil {
				m.selected[i] = it
			} else {
				m.selected[i] = m.store.Accessors().Placeholder(v)
			}
		}
		m.notify()
	})
}

func (m *Multi) replace(values []any, given []*item.Item) {
	var (
		nextValues []any
		nextItems  []*item.Item
		added      int
	)
	for i, v := range values {
		if indexOf(nextValues, v) >= 0 {
			continue
		}
		var hint *item.Item
		if given != nil {
			hint = given[i]
		}
		if m.index(v) < 0 {
			added++
		}
		nextValues = append(nextValues, v)
		nextItems = append(nextItems, m.resolve(v, hint))
	}
	removed := len(m.values) - (len(nextValues) - added)
	m.values, m.selected = nextValues, nextItems
	logger.L.Debug("selection replaced", "added", added, "removed", removed, "size", len(m.values))
}

func (m *Multi) add(v any, hint *item.Item) {
	if m.index(v) >= 0 {
		return
	}
	it := m.resolve(v, hint)
	m.values = append(m.values, v)
	m.selected = append(m.selected, it)
}

func (m *Multi) remove(v any) {
	i := m.index(v)
	if i < 0 {
		return
	}
	m.values = slices.Delete(m.values, i, i+1)
	m.selected = slices.Delete(m.selected, i, i+1)
}

// resolve picks the item that will represent v: the store's item, then the
// caller's, then the one already selected, then a placeholder.
func (m *Multi) resolve(v any, hint *item.Item) *item.Item {
	if it := m.store.ByValue(v); it != nil {
		return it
	}
	if hint != nil {
		return hint
	}
	if i := m.index(v); i >= 0 {
		return m.selected[i]
	}
	return m.store.Accessors().Placeholder(v)
}

func (m *Multi) index(v any) int {
	return indexOf(m.values, v)
}

func (m *Multi) notify() {
	if m.hooks.Values != nil {
		m.hooks.Values(m.Values())
	}
	if m.hooks.Selected != nil {
		m.hooks.Selected(m.Selected())
	}
}

func indexOf(values []any, v any) int {
	for i, x := range values {
		if item.Equal(x, v) {
			return i
		}
	}
	return -1
}
