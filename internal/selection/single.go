package selection

import (
	"github.com/spf13/cast"

	"github.com/ruminaider/combosync/internal/item"
	"github.com/ruminaider/combosync/internal/logger"
)

// SingleHooks are notified when a pass writes a field with a new value.
// Writes made back into the Single from a hook are dropped.
type SingleHooks struct {
	Value    func(v any)
	Text     func(t string)
	Selected func(it *item.Item)
}

// Single reconciles value, text and selected for single-select mode.
//
// Whenever value matches an item, text is that item's label and selected is
// that item. A value with no match is either shown as free text (custom
// values allowed, or nil) or parked as pending until SetData brings a match.
type Single struct {
	store       *item.Store
	allowCustom bool
	guard       Guard
	hooks       SingleHooks

	value    any
	text     string
	selected *item.Item

	pending    any
	hasPending bool
}

// NewSingle creates an empty single-select reconciler over store.
func NewSingle(store *item.Store, allowCustom bool) *Single {
	return &Single{store: store, allowCustom: allowCustom}
}

// SetHooks replaces the change hooks.
func (s *Single) SetHooks(h SingleHooks) {
	s.hooks = h
}

func (s *Single) Value() any { return s.value }
func (s *Single) Text() string { return s.text }
func (s *Single) Selected() *item.Item { return s.selected }
func (s *Single) Pending() (any, bool) { return s.pending, s.hasPending }
func (s *Single) AllowCustomValue() bool { return s.allowCustom }

// Busy reports whether a pass is in flight.
func (s *Single) Busy() bool { return s.guard.Busy() }

// Passes returns the number of reconciliation passes run so far.
func (s *Single) Passes() int { return s.guard.Passes() }

// SetValue writes v as the value and brings text and selected in line. It
// reports false when called from inside a running pass.
func (s *Single) SetValue(v any) bool {
	return s.guard.Do(func() {
		s.writeValue(v)
		s.reconcileValue(v)
	})
}

// SetText writes a committed text edit. An exact label match commits that
// item's value. Without a match the edit is rolled back, or taken as a custom
// value when those are allowed.
func (s *Single) SetText(t string) bool {
	return s.guard.Do(func() {
		s.reconcileText(t)
	})
}

// Draft writes search text typed while the selection surface is open. Only
// with custom values allowed does it also become the provisional value.
func (s *Single) Draft(t string) bool {
	return s.guard.Do(func() {
		s.writeText(t)
		if s.allowCustom {
			s.writeValue(customValue(t))
			s.writeSelected(nil)
		}
	})
}

// Commit selects it outright, as a row click does.
func (s *Single) Commit(it *item.Item) bool {
	if it == nil {
		return false
	}
	acc := s.store.Accessors()
	return s.guard.Do(func() {
		s.writeValue(acc.Value(it))
		s.writeSelected(it)
		s.writeText(acc.Label(it))
		s.clearPending()
	})
}

// Refresh re-runs value reconciliation with the current value, restoring
// text after stray search input.
func (s *Single) Refresh() bool {
	return s.guard.Do(func() {
		s.reconcileValue(s.value)
	})
}

// Resolve is run after the store is replaced. A pending value takes
// precedence over the current one; both go through value reconciliation
// again and park once more if still unmatched.
func (s *Single) Resolve() bool {
	return s.guard.Do(func() {
		v := s.value
		if s.hasPending {
			v = s.pending
		}
		s.clearPending()
		s.writeValue(v)
		s.reconcileValue(v)
	})
}

// Clear resets the selection to null.
func (s *Single) Clear() bool {
	return s.guard.Do(func() {
		s.writeValue(nil)
		s.writeSelected(nil)
		s.writeText("")
		s.clearPending()
	})
}

func (s *Single) reconcileValue(v any) {
	acc := s.store.Accessors()
	if it := s.store.ByValue(v); it != nil {
		s.writeSelected(it)
		s.writeText(acc.Label(it))
		s.clearPending()
		return
	}
	if s.allowCustom || v == nil {
		s.writeSelected(nil)
		s.writeText(textOf(v))
		s.clearPending()
		return
	}
	s.pending, s.hasPending = v, true
	s.writeSelected(nil)
	s.writeText("")
	logger.L.Debug("value parked as pending", "value", v, "items", s.store.Len())
}

func (s *Single) reconcileText(t string) {
	acc := s.store.Accessors()
	if it := s.store.ByText(t); it != nil {
		s.writeText(t)
		s.writeValue(acc.Value(it))
		s.writeSelected(it)
		s.clearPending()
		return
	}
	if !s.allowCustom {
		logger.L.Debug("text rolled back", "rejected", t, "kept", s.text)
		return
	}
	s.writeText(t)
	s.writeValue(customValue(t))
	s.writeSelected(nil)
	s.clearPending()
}

func (s *Single) writeValue(v any) {
	changed := !item.Equal(s.value, v)
	s.value = v
	if changed && s.hooks.Value != nil {
		s.hooks.Value(v)
	}
}

func (s *Single) writeText(t string) {
	changed := s.text != t
	s.text = t
	if changed && s.hooks.Text != nil {
		s.hooks.Text(t)
	}
}

func (s *Single) writeSelected(it *item.Item) {
	changed := s.selected != it
	s.selected = it
	if changed && s.hooks.Selected != nil {
		s.hooks.Selected(it)
	}
}

func (s *Single) clearPending() {
	s.pending, s.hasPending = nil, false
}

func customValue(t string) any {
	if t == "" {
		return nil
	}
	return t
}

func textOf(v any) string {
	if v == nil {
		return ""
	}
	return cast.ToString(v)
}
