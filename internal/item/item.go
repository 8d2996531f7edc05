package item

import "github.com/spf13/cast"

// Record is the raw attribute map a host supplies for one selectable entry.
type Record map[string]any

// Item wraps a Record with the display annotations owned by the selection
// core. Pointer identity is item identity.
type Item struct {
	Record Record

	// HasChildren and Expanded are display annotations written by tree
	// filtering and flattening. They are never stored in the Record.
	HasChildren bool
	Expanded    bool

	// Detached marks a placeholder for a selected value that has no backing
	// record in the current data.
	Detached bool
}

// Get returns the raw attribute stored under field.
func (it *Item) Get(field string) (any, bool) {
	if it == nil || it.Record == nil {
		return nil, false
	}
	v, ok := it.Record[field]
	return v, ok
}

// Fields names the record attributes used for identity, label and hierarchy.
type Fields struct {
	Value  string `yaml:"value"`
	Text   string `yaml:"text"`
	Key    string `yaml:"key,omitempty"`
	Parent string `yaml:"parent,omitempty"`
}

// DefaultFields returns the "value"/"text" layout with "parent" linkage.
func DefaultFields() Fields {
	return Fields{Value: "value", Text: "text", Parent: "parent"}
}

// withDefaults fills empty names. The key falls back to the value field.
func (f Fields) withDefaults() Fields {
	d := DefaultFields()
	if f.Value == "" {
		f.Value = d.Value
	}
	if f.Text == "" {
		f.Text = d.Text
	}
	if f.Key == "" {
		f.Key = f.Value
	}
	if f.Parent == "" {
		f.Parent = d.Parent
	}
	return f
}

// Accessors are the typed lookups resolved once from Fields. Missing
// attributes resolve to nil (or ok == false for Text) and never match.
type Accessors struct {
	Fields Fields

	Value     func(*Item) any
	Text      func(*Item) (string, bool)
	Key       func(*Item) any
	ParentKey func(*Item) any
}

// NewAccessors resolves f into accessor functions.
func NewAccessors(f Fields) Accessors {
	f = f.withDefaults()
	attr := func(name string) func(*Item) any {
		return func(it *Item) any {
			v, _ := it.Get(name)
			return v
		}
	}
	return Accessors{
		Fields: f,
		Value:  attr(f.Value),
		Text: func(it *Item) (string, bool) {
			v, ok := it.Get(f.Text)
			if !ok || v == nil {
				return "", false
			}
			return cast.ToString(v), true
		},
		Key:       attr(f.Key),
		ParentKey: attr(f.Parent),
	}
}

// Label returns the display text of it, or "" when it has none.
func (a Accessors) Label(it *Item) string {
	s, _ := a.Text(it)
	return s
}

// Placeholder builds a detached item standing in for v until a record with
// that value arrives.
func (a Accessors) Placeholder(v any) *Item {
	return &Item{
		Record:   Record{a.Fields.Value: v, a.Fields.Text: cast.ToString(v)},
		Detached: true,
	}
}
