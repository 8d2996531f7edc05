// Package tree provides the hierarchical display flattener injected into
// tree-mode comboboxes.
package tree

import (
	"github.com/ruminaider/combosync/internal/filter"
	"github.com/ruminaider/combosync/internal/item"
)

// Flatten orders items depth-first: roots in data order, each followed by its
// children in data order. Children of a node are emitted only while the node
// is Expanded. Every node with children gets HasChildren set.
//
// An item whose parent key is nil or names no item in the set is a root.
// Items caught in a parent cycle that no root reaches are emitted as extra
// roots, so each item appears exactly once when its ancestors are expanded.
func Flatten(items []*item.Item, acc item.Accessors) []filter.Row {
	byKey := make(map[string][]*item.Item, len(items))
	for _, it := range items {
		if k, ok := item.Canonical(acc.Key(it)); ok {
			byKey[k] = append(byKey[k], it)
		}
	}

	children := make(map[string][]*item.Item)
	var roots []*item.Item
	for _, it := range items {
		pv := acc.ParentKey(it)
		pk, ok := item.Canonical(pv)
		if !ok || !hasKey(byKey[pk], pv, acc) {
			roots = append(roots, it)
			continue
		}
		children[pk] = append(children[pk], it)
	}

	f := flattener{
		acc:      acc,
		children: children,
		seen:     make(map[*item.Item]bool, len(items)),
		claimed:  make(map[*item.Item]bool, len(items)),
	}
	for _, it := range items {
		if _, ok := item.Canonical(acc.Key(it)); ok {
			it.HasChildren = hasOtherChild(f.childrenOf(it), it)
		}
	}

	for _, r := range roots {
		f.visit(r, 0)
	}
	for _, it := range items {
		if !f.claimed[it] {
			f.visit(it, 0)
		}
	}
	return f.rows
}

type flattener struct {
	acc      item.Accessors
	children map[string][]*item.Item
	seen     map[*item.Item]bool
	claimed  map[*item.Item]bool
	rows     []filter.Row
}

func (f *flattener) visit(it *item.Item, level int) {
	if f.seen[it] {
		return
	}
	f.seen[it] = true
	f.rows = append(f.rows, filter.Row{Item: it, Level: level})
	f.claim(it)
	if !it.Expanded {
		return
	}
	for _, child := range f.childrenOf(it) {
		f.visit(child, level+1)
	}
}

// claim marks every descendant of it as placed under a root, whether or not
// it is currently visible, so collapsed subtrees are not promoted to roots.
func (f *flattener) claim(it *item.Item) {
	stack := []*item.Item{it}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.claimed[n] {
			continue
		}
		f.claimed[n] = true
		stack = append(stack, f.childrenOf(n)...)
	}
}

// childrenOf returns the items whose parent key is Equal to its key. The
// canonical bucket may also hold children of a different, loosely similar key.
func (f *flattener) childrenOf(it *item.Item) []*item.Item {
	key := f.acc.Key(it)
	k, ok := item.Canonical(key)
	if !ok {
		return nil
	}
	var out []*item.Item
	for _, c := range f.children[k] {
		if item.Equal(f.acc.ParentKey(c), key) {
			out = append(out, c)
		}
	}
	return out
}

func hasKey(candidates []*item.Item, key any, acc item.Accessors) bool {
	for _, c := range candidates {
		if item.Equal(acc.Key(c), key) {
			return true
		}
	}
	return false
}

func hasOtherChild(children []*item.Item, parent *item.Item) bool {
	for _, c := range children {
		if c != parent {
			return true
		}
	}
	return false
}
