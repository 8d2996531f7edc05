package item

import "fmt"

// Store is the normalized backing collection. It is rebuilt wholesale by Set
// and exposed read-only to the filter and the reconcilers.
type Store struct {
	acc   Accessors
	items []*Item
}

// NewStore creates an empty store reading items through acc.
func NewStore(acc Accessors) *Store {
	return &Store{acc: acc}
}

// Accessors returns the accessors the store was built with.
func (s *Store) Accessors() Accessors {
	return s.acc
}

// Set replaces the collection with the normalized form of raw.
func (s *Store) Set(raw []any) {
	s.items = Normalize(raw, s.acc.Fields)
}

// Items returns the items in data order. Callers must not modify the slice.
func (s *Store) Items() []*Item {
	return s.items
}

// Len returns the number of items.
func (s *Store) Len() int {
	return len(s.items)
}

// ByValue returns the first item whose value equals v, or nil.
func (s *Store) ByValue(v any) *Item {
	for _, it := range s.items {
		if _, ok := it.Get(s.acc.Fields.Value); !ok {
			continue
		}
		if Equal(s.acc.Value(it), v) {
			return it
		}
	}
	return nil
}

// ByText returns the first item whose text is exactly t, or nil.
func (s *Store) ByText(t string) *Item {
	for _, it := range s.items {
		if text, ok := s.acc.Text(it); ok && text == t {
			return it
		}
	}
	return nil
}

// HasChildren reports whether any item names it as its parent.
func (s *Store) HasChildren(it *Item) bool {
	key := s.acc.Key(it)
	if key == nil {
		return false
	}
	for _, other := range s.items {
		if other == it {
			continue
		}
		if Equal(s.acc.ParentKey(other), key) {
			return true
		}
	}
	return false
}

// Normalize turns raw host data into items. When the first element is a
// record the collection is taken as records; otherwise each element is a
// primitive wrapped as {value: v, text: v}.
func Normalize(raw []any, f Fields) []*Item {
	if len(raw) == 0 {
		return nil
	}
	f = f.withDefaults()
	items := make([]*Item, 0, len(raw))

	if _, ok := asRecord(raw[0]); ok {
		for _, v := range raw {
			rec, ok := asRecord(v)
			if !ok {
				rec = Record{}
			}
			items = append(items, &Item{Record: rec})
		}
		return items
	}

	for _, v := range raw {
		items = append(items, &Item{Record: Record{f.Value: v, f.Text: v}})
	}
	return items
}

func asRecord(v any) (Record, bool) {
	switch v := v.(type) {
	case Record:
		return v, true
	case map[string]any:
		return Record(v), true
	case map[any]any:
		rec := make(Record, len(v))
		for k, val := range v {
			rec[fmt.Sprint(k)] = val
		}
		return rec, true
	case *Item:
		if v == nil {
			return nil, false
		}
		return v.Record, true
	}
	return nil, false
}
