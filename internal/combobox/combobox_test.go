package combobox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/ruminaider/combosync/internal/filter"
	"github.com/ruminaider/combosync/internal/item"
	"github.com/ruminaider/combosync/internal/selection"
	"github.com/ruminaider/combosync/internal/tree"
)

func fruits() []any {
	return []any{
		map[string]any{"id": 1, "name": "apple"},
		map[string]any{"id": 2, "name": "banana"},
		map[string]any{"id": 3, "name": "pineapple"},
	}
}

func fruitOptions() Options {
	return Options{Fields: item.Fields{Value: "id", Text: "name"}}
}

func hierarchy() []any {
	return []any{
		map[string]any{"id": 1, "name": "A"},
		map[string]any{"id": 2, "pid": 1, "name": "B"},
		map[string]any{"id": 3, "pid": 2, "name": "apple"},
		map[string]any{"id": 4, "name": "D"},
	}
}

func treeOptions() Options {
	return Options{
		Fields:  item.Fields{Value: "id", Text: "name", Key: "id", Parent: "pid"},
		Tree:    true,
		Flatten: tree.Flatten,
	}
}

func labels(c *Combobox, items []*item.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = c.Accessors().Label(it)
	}
	return out
}

func TestSetData_FiltersAndResolves(t *testing.T) {
	c := New(fruitOptions())
	c.SetValue(2)
	_, pending := c.Pending()
	require.True(t, pending, "value set before data is parked")

	c.SetData(fruits())
	assert.Len(t, c.Filtered(), 3)
	assert.Equal(t, "banana", c.Text())
	assert.Same(t, c.Data()[1], c.Selected())
}

func TestSetData_Primitives(t *testing.T) {
	c := New(Options{})
	c.SetData([]any{"red", "green"})
	c.SetValue("green")
	assert.Equal(t, "green", c.Text())
}

func TestSetData_EmptyClearsDerivedState(t *testing.T) {
	c := New(fruitOptions())
	c.SetData(fruits())
	c.SetValue(1)

	c.SetData(nil)
	assert.Empty(t, c.Filtered())
	assert.Nil(t, c.Selected())
	assert.Empty(t, c.Text())
}

func TestSetData_Idempotent(t *testing.T) {
	raw := fruits()
	c := New(fruitOptions())
	c.SetData(raw)
	c.SetValue(3)
	first := labels(c, c.Filtered())
	firstSel := c.Selected().Record

	c.SetData(raw)
	assert.Equal(t, first, labels(c, c.Filtered()))
	assert.Equal(t, firstSel, c.Selected().Record)
	assert.Equal(t, "pineapple", c.Text())
}

func TestSetData_IdempotentMulti(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		opts := fruitOptions()
		opts.MultiSelect = true
		c := New(opts)
		raw := fruits()
		c.SetData(raw)

		picks := rapid.SliceOfN(rapid.IntRange(0, 5), 0, 5).Draw(rt, "picks")
		values := make([]any, len(picks))
		for i, p := range picks {
			values[i] = p
		}
		c.SetValueList(values)
		search := rapid.SampledFrom([]string{"", "app", "an", "zz"}).Draw(rt, "search")
		c.SetSearchText(search)

		before := labels(c, c.SelectedList())
		filtered := labels(c, c.Filtered())
		c.SetData(raw)
		require.Equal(rt, before, labels(c, c.SelectedList()))
		require.Equal(rt, filtered, labels(c, c.Filtered()))
	})
}

func TestSetText_CustomValueRejected(t *testing.T) {
	c := New(Options{})
	c.SetData([]any{map[string]any{"value": 1, "text": "x"}})
	c.SetValue(1)

	c.SetText("zzz")
	assert.Equal(t, "x", c.Text())
	assert.Equal(t, 1, c.Value())
}

func TestSetText_CustomValueAllowed(t *testing.T) {
	opts := fruitOptions()
	opts.AllowCustomValue = true
	c := New(opts)
	c.SetData(fruits())

	c.SetText("durian")
	assert.Equal(t, "durian", c.Value())
	assert.Empty(t, c.Validate())
}

func TestSetText_CommitsMatchingLabel(t *testing.T) {
	c := New(fruitOptions())
	c.SetData(fruits())
	c.SetText("banana")
	assert.Equal(t, 2, c.Value())
}

func TestNoFeedbackLoop(t *testing.T) {
	c := New(fruitOptions())
	c.SetData(fruits())
	c.SetValue(1)
	before := c.Passes()

	c.Watch(Hooks{
		Value: func(v any) { c.SetValue(v) },
		Text:  func(t string) { c.SetText(t) },
	})
	c.SetValue(1)
	assert.Equal(t, before+1, c.Passes())

	c.SetValue(2)
	assert.Equal(t, before+2, c.Passes())
	assert.Equal(t, "banana", c.Text())
}

func TestToggleSelection_Single(t *testing.T) {
	c := New(fruitOptions())
	c.SetData(fruits())
	var events []Event
	c.OnSelect(func(e Event) { events = append(events, e) })

	c.Open()
	c.SetText("pine")
	require.Len(t, c.Filtered(), 1)

	require.True(t, c.ToggleSelection(c.Filtered()[0]))
	assert.Equal(t, 3, c.Value())
	assert.Equal(t, "pineapple", c.Text())
	assert.False(t, c.Opened())
	assert.False(t, c.Searching())
	assert.Len(t, c.Filtered(), 3)
	require.Len(t, events, 1)
	assert.True(t, events[0].Selected)
}

func TestToggleSelection_Multi(t *testing.T) {
	opts := fruitOptions()
	opts.MultiSelect = true
	c := New(opts)
	c.SetData(fruits())
	var events []Event
	c.OnSelect(func(e Event) { events = append(events, e) })
	c.Open()

	items := c.Data()
	c.ToggleSelection(items[2])
	c.ToggleSelection(items[0])
	assert.Equal(t, []any{3, 1}, c.ValueList())
	assert.True(t, c.IsChecked(items[0]))

	c.ToggleSelection(items[2])
	assert.Equal(t, []any{1}, c.ValueList())
	assert.True(t, c.Opened(), "multi-select keeps the surface open")

	require.Len(t, events, 3)
	assert.False(t, events[2].Selected)
}

func TestToggleSelection_LeafOnly(t *testing.T) {
	opts := treeOptions()
	opts.SelectOnlyLeaf = true
	c := New(opts)
	c.SetData(hierarchy())
	events := 0
	c.OnSelect(func(Event) { events++ })
	before := c.Passes()

	parent := c.Data()[0]
	assert.False(t, c.ToggleSelection(parent))
	assert.Nil(t, c.Value())
	assert.Empty(t, c.Text())
	assert.Zero(t, events)
	assert.Equal(t, before, c.Passes(), "a rejected click runs no pass")

	assert.True(t, c.ToggleSelection(c.Data()[2]))
	assert.Equal(t, 3, c.Value())
	assert.Equal(t, 1, events)
}

func TestToggleSelection_LeafOnlyMulti(t *testing.T) {
	opts := treeOptions()
	opts.SelectOnlyLeaf = true
	opts.MultiSelect = true
	c := New(opts)
	c.SetData(hierarchy())

	assert.False(t, c.ToggleSelection(c.Data()[1]))
	assert.Empty(t, c.ValueList())
	assert.False(t, c.Checkable(c.Data()[1]))
	assert.True(t, c.Checkable(c.Data()[2]))
}

func TestSearch_TreeExpandsAncestors(t *testing.T) {
	c := New(treeOptions())
	c.SetData(hierarchy())
	c.Open()
	c.SetText("app")

	assert.Equal(t, []string{"A", "B", "apple"}, labels(c, c.Filtered()))
	a, b := c.Data()[0], c.Data()[1]
	assert.True(t, a.Expanded)
	assert.True(t, b.Expanded)

	rows := c.Display()
	require.Len(t, rows, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{rows[0].Level, rows[1].Level, rows[2].Level})
}

func TestDisplay_TreeCollapsed(t *testing.T) {
	c := New(treeOptions())
	c.SetData(hierarchy())
	rows := c.Display()
	assert.Equal(t, []string{"A", "D"}, rowLabels(c, rows))

	require.True(t, c.ToggleNode(c.Data()[0]))
	assert.Equal(t, []string{"A", "B", "D"}, rowLabels(c, c.Display()))

	assert.False(t, c.ToggleNode(c.Data()[3]), "leaves do not toggle")
}

func TestDisplay_FlatWithoutFlattener(t *testing.T) {
	opts := treeOptions()
	opts.Flatten = nil
	c := New(opts)
	c.SetData(hierarchy())
	assert.Len(t, c.Display(), 4)
}

func rowLabels(c *Combobox, rows []filter.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = c.Accessors().Label(r.Item)
	}
	return out
}

func TestClose_RestoresValidText(t *testing.T) {
	c := New(fruitOptions())
	c.SetData(fruits())
	c.SetValue(1)

	c.Open()
	c.SetText("stray")
	assert.True(t, c.Searching())
	assert.Equal(t, "stray", c.Text())
	assert.Equal(t, selection.MsgEmptyValue, selection.ValidateSingle(nil, c.Text(), false))
	assert.Empty(t, c.Filtered())

	c.Close()
	assert.Equal(t, "apple", c.Text())
	assert.Equal(t, 1, c.Value())
	assert.Len(t, c.Filtered(), 3)
}

func TestClose_ClearsTextWithoutValue(t *testing.T) {
	c := New(fruitOptions())
	c.SetData(fruits())
	c.Open()
	c.SetText("ban")
	assert.Equal(t, selection.MsgEmptyValue, c.Validate())

	c.Close()
	assert.Empty(t, c.Text())
	assert.Empty(t, c.Validate())
}

func TestSearch_CustomValueIsProvisional(t *testing.T) {
	opts := fruitOptions()
	opts.AllowCustomValue = true
	c := New(opts)
	c.SetData(fruits())

	c.Open()
	c.SetText("kiwi")
	assert.Equal(t, "kiwi", c.Value())
	c.Close()
	assert.Equal(t, "kiwi", c.Value())
	assert.Equal(t, "kiwi", c.Text())
}

func TestSearch_MultiClosedTextIgnored(t *testing.T) {
	opts := fruitOptions()
	opts.MultiSelect = true
	c := New(opts)
	c.SetData(fruits())
	assert.False(t, c.SetText("apple"))
	assert.Empty(t, c.ValueList())

	c.Open()
	assert.True(t, c.SetText("ban"))
	assert.Equal(t, []string{"banana"}, labels(c, c.Filtered()))
}

func TestHighlight(t *testing.T) {
	c := New(fruitOptions())
	c.SetData(fruits())
	mark := func(s string) string { return "[" + s + "]" }
	assert.Equal(t, "pineapple", c.Highlight("pineapple", mark))

	c.Open()
	c.SetText("APP")
	assert.Equal(t, "pine[app]le", c.Highlight("pineapple", mark))
}

func TestValidate_RequiredMulti(t *testing.T) {
	opts := fruitOptions()
	opts.MultiSelect = true
	opts.Required = true
	c := New(opts)

	c.SetValueList([]any{})
	assert.Equal(t, selection.MsgRequired, c.Validate())

	c.SetValueList([]any{5})
	assert.Empty(t, c.Validate())
}

func TestValidate_RequiredSingle(t *testing.T) {
	opts := fruitOptions()
	opts.Required = true
	c := New(opts)
	c.SetData(fruits())
	assert.Equal(t, selection.MsgRequired, c.Validate())
	c.SetValue(1)
	assert.Empty(t, c.Validate())
}

func TestClear(t *testing.T) {
	c := New(fruitOptions())
	c.SetData(fruits())
	c.SetValue(2)
	c.Clear()
	assert.Nil(t, c.Value())
	assert.Empty(t, c.Text())

	opts := fruitOptions()
	opts.MultiSelect = true
	m := New(opts)
	m.SetData(fruits())
	m.SetValueList([]any{1, 2})
	m.Clear()
	assert.Empty(t, m.ValueList())
}

func TestRemoveSelected_Tag(t *testing.T) {
	opts := fruitOptions()
	opts.MultiSelect = true
	c := New(opts)
	c.SetData(fruits())
	c.SetValueList([]any{1, 2, 3})

	var seen [][]any
	c.Watch(Hooks{Values: func(v []any) { seen = append(seen, v) }})
	c.RemoveSelected(c.SelectedList()[1])

	assert.Equal(t, []any{1, 3}, c.ValueList())
	assert.Equal(t, [][]any{{1, 3}}, seen)

	c.AddValues(2)
	c.RemoveValues(1)
	assert.Equal(t, []any{3, 2}, c.ValueList())

	c.SetSelectedList([]*item.Item{c.Data()[0]})
	assert.Equal(t, []any{1}, c.ValueList())
}

func TestValueListBeforeData(t *testing.T) {
	opts := fruitOptions()
	opts.MultiSelect = true
	c := New(opts)
	c.SetValueList([]any{"2"})
	require.True(t, c.SelectedList()[0].Detached)

	c.SetData(fruits())
	assert.Equal(t, "banana", c.Accessors().Label(c.SelectedList()[0]))
	assert.True(t, c.IsChecked(c.Data()[1]))
}

func TestExpandAll(t *testing.T) {
	c := New(treeOptions())
	c.SetData(hierarchy())
	c.ExpandAll()
	assert.Equal(t, []string{"A", "B", "apple", "D"}, rowLabels(c, c.Display()))
	assert.False(t, c.Data()[3].Expanded)
}
