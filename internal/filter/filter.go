// Package filter derives the display subset of a selectable collection from
// a search string, expanding ancestor chains in tree mode so matched
// descendants stay reachable.
package filter

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/ruminaider/combosync/internal/item"
)

// Row is one entry of the display sequence handed to rendering.
type Row struct {
	Item  *item.Item
	Level int
}

// Flattener orders a (filtered) item set for display. In tree mode the host
// injects a hierarchical implementation; Flat is used otherwise.
type Flattener func(items []*item.Item, acc item.Accessors) []Row

// Flat is the identity Flattener: every item at level 0, in order.
func Flat(items []*item.Item, _ item.Accessors) []Row {
	rows := make([]Row, len(items))
	for i, it := range items {
		rows[i] = Row{Item: it}
	}
	return rows
}

// Engine filters items by case-insensitive substring match on their text.
type Engine struct {
	acc  item.Accessors
	tree bool
	fold cases.Caser
}

// New creates an Engine. With tree set, ancestors of matches are included.
func New(acc item.Accessors, tree bool) *Engine {
	return &Engine{acc: acc, tree: tree, fold: cases.Fold()}
}

// Matches reports whether the text of it contains search, ignoring case.
func (e *Engine) Matches(it *item.Item, search string) bool {
	if search == "" {
		return true
	}
	text, ok := e.acc.Text(it)
	if !ok {
		return false
	}
	return strings.Contains(e.fold.String(text), e.fold.String(search))
}

// Apply returns the stable subsequence of data matching search. data is
// never reordered; the only writes are the HasChildren/Expanded annotations
// on ancestors pulled in by tree mode.
func (e *Engine) Apply(data []*item.Item, search string) []*item.Item {
	if search == "" {
		out := make([]*item.Item, len(data))
		copy(out, data)
		return out
	}

	include := make(map[*item.Item]bool)
	for _, it := range data {
		if e.Matches(it, search) {
			include[it] = true
		}
	}
	if e.tree && len(include) > 0 {
		e.expandAncestors(data, include)
	}

	out := make([]*item.Item, 0, len(include))
	for _, it := range data {
		if include[it] {
			out = append(out, it)
		}
	}
	return out
}

// expandAncestors walks parent links to a fixpoint. Each item is queued at
// most once, so cycles and dangling parents terminate. Canonical keys only
// bucket candidates; a parent must also be Equal to the child's parent key.
func (e *Engine) expandAncestors(data []*item.Item, include map[*item.Item]bool) {
	byKey := make(map[string][]*item.Item)
	for _, it := range data {
		if k, ok := item.Canonical(e.acc.Key(it)); ok {
			byKey[k] = append(byKey[k], it)
		}
	}

	queued := make(map[*item.Item]bool)
	var queue []*item.Item
	enqueue := func(it *item.Item) {
		if !queued[it] {
			queued[it] = true
			queue = append(queue, it)
		}
	}

	for _, it := range data {
		if include[it] {
			enqueue(it)
		}
	}
	for len(queue) > 0 {
		child := queue[0]
		queue = queue[1:]
		pk := e.acc.ParentKey(child)
		k, ok := item.Canonical(pk)
		if !ok {
			continue
		}
		for _, parent := range byKey[k] {
			if !item.Equal(e.acc.Key(parent), pk) {
				continue
			}
			parent.HasChildren = true
			parent.Expanded = true
			include[parent] = true
			enqueue(parent)
		}
	}
}
