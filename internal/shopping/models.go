package shopping

// Item is one line of the shopping list: every occurrence of an ingredient
// name across the selected recipes, merged.
type Item struct {
	Name     string   `json:"name" yaml:"name"`
	Amount   float64  `json:"amount" yaml:"amount"` // sum over occurrences, no unit conversion
	Unit     string   `json:"unit" yaml:"unit"`
	Category string   `json:"category" yaml:"category"`
	Count    int      `json:"count" yaml:"count"`
	Recipes  []string `json:"recipes" yaml:"recipes"` // distinct titles, first-seen order
}

// List maps normalized ingredient names to items and remembers the order in
// which each name was first seen.
type List struct {
	keys  []string
	items map[string]*Item
}

func newList() *List {
	return &List{items: make(map[string]*Item)}
}

// Len returns the number of distinct ingredients.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.keys)
}

// Keys returns the normalized names in first-seen order.
func (l *List) Keys() []string {
	if l == nil {
		return nil
	}
	return append([]string(nil), l.keys...)
}

// Get returns the item stored under a normalized name.
func (l *List) Get(key string) (*Item, bool) {
	if l == nil {
		return nil, false
	}
	item, ok := l.items[key]
	return item, ok
}

// Items returns the items in first-seen order.
func (l *List) Items() []*Item {
	if l == nil {
		return nil
	}
	out := make([]*Item, 0, len(l.keys))
	for _, k := range l.keys {
		out = append(out, l.items[k])
	}
	return out
}

// CategoryGroup is a category heading with the items filed under it.
type CategoryGroup struct {
	Category string  `json:"category" yaml:"category"`
	Items    []*Item `json:"items" yaml:"items"`
}
