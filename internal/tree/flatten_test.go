package tree

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruminaider/combosync/internal/filter"
	"github.com/ruminaider/combosync/internal/item"
)

var acc = item.NewAccessors(item.Fields{Value: "id", Text: "name", Key: "id", Parent: "pid"})

func build(records ...item.Record) []*item.Item {
	raw := make([]any, len(records))
	for i, r := range records {
		raw[i] = r
	}
	return item.Normalize(raw, acc.Fields)
}

func render(rows []filter.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = fmt.Sprintf("%d:%s", r.Level, acc.Label(r.Item))
	}
	return out
}

func sample() []*item.Item {
	return build(
		item.Record{"id": 1, "name": "fruit"},
		item.Record{"id": 2, "name": "veg"},
		item.Record{"id": 11, "pid": 1, "name": "apple"},
		item.Record{"id": 12, "pid": 1, "name": "pear"},
		item.Record{"id": 111, "pid": 11, "name": "gala"},
		item.Record{"id": 21, "pid": 2, "name": "kale"},
	)
}

func TestFlatten_CollapsedShowsRoots(t *testing.T) {
	items := sample()
	rows := Flatten(items, acc)
	assert.Equal(t, []string{"0:fruit", "0:veg"}, render(rows))

	assert.True(t, items[0].HasChildren)
	assert.True(t, items[2].HasChildren)
	assert.False(t, items[3].HasChildren)
}

func TestFlatten_Expanded(t *testing.T) {
	items := sample()
	for _, it := range items {
		it.Expanded = true
	}
	rows := Flatten(items, acc)
	assert.Equal(t, []string{
		"0:fruit", "1:apple", "2:gala", "1:pear",
		"0:veg", "1:kale",
	}, render(rows))
}

func TestFlatten_PartiallyExpanded(t *testing.T) {
	items := sample()
	items[0].Expanded = true
	rows := Flatten(items, acc)
	assert.Equal(t, []string{"0:fruit", "1:apple", "1:pear", "0:veg"}, render(rows))
}

func TestFlatten_DanglingParentIsRoot(t *testing.T) {
	items := build(
		item.Record{"id": 5, "pid": 99, "name": "orphan"},
		item.Record{"id": 6, "name": "root"},
	)
	assert.Equal(t, []string{"0:orphan", "0:root"}, render(Flatten(items, acc)))
}

func TestFlatten_CycleEmittedOnce(t *testing.T) {
	items := build(
		item.Record{"id": 1, "pid": 2, "name": "one"},
		item.Record{"id": 2, "pid": 1, "name": "two"},
		item.Record{"id": 3, "pid": 3, "name": "self"},
	)
	for _, it := range items {
		it.Expanded = true
	}
	rows := Flatten(items, acc)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"0:one", "1:two", "0:self"}, render(rows))
	assert.False(t, items[2].HasChildren)
}

func TestFlatten_CollapsedCycleHidesMembers(t *testing.T) {
	items := build(
		item.Record{"id": 1, "pid": 2, "name": "one"},
		item.Record{"id": 2, "pid": 1, "name": "two"},
	)
	assert.Equal(t, []string{"0:one"}, render(Flatten(items, acc)))
}

func TestFlatten_FilteredSubset(t *testing.T) {
	items := sample()
	e := filter.New(acc, true)
	rows := Flatten(e.Apply(items, "gala"), acc)
	assert.Equal(t, []string{"0:fruit", "1:apple", "2:gala"}, render(rows))
}

func TestFlatten_Empty(t *testing.T) {
	assert.Empty(t, Flatten(nil, acc))
}

func TestFlatten_StringKeysThatLookNumeric(t *testing.T) {
	items := build(
		item.Record{"id": "5", "name": "five"},
		item.Record{"id": "5.0", "name": "fivepointoh"},
		item.Record{"id": "c", "pid": "5.0", "name": "apple"},
	)
	for _, it := range items {
		it.Expanded = true
	}
	rows := Flatten(items, acc)
	assert.Equal(t, []string{"0:five", "0:fivepointoh", "1:apple"}, render(rows))
	assert.False(t, items[0].HasChildren)
	assert.True(t, items[1].HasChildren)
}
