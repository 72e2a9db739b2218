package shopping

import (
	"slices"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"smart-pantry/internal/recipe"
)

// NormalizeName returns the merge key for an ingredient name. Only case is
// folded; whitespace is kept as is.
func NormalizeName(name string) string {
	return cases.Lower(language.Und).String(name)
}

// Aggregate merges the ingredients of the selected recipes into a shopping
// list. Recipes and their ingredients are visited in order; the first
// occurrence of a name decides the item's unit and category.
func Aggregate(selected []recipe.Recipe) *List {
	list := newList()
	for _, rec := range selected {
		for _, ing := range rec.Ingredients {
			key := NormalizeName(ing.Name)

			item, ok := list.items[key]
			if !ok {
				list.keys = append(list.keys, key)
				list.items[key] = &Item{
					Name:     ing.Name,
					Amount:   ing.Amount,
					Unit:     ing.Unit,
					Category: ing.Category,
					Count:    1,
					Recipes:  []string{rec.Title},
				}
				continue
			}

			item.Amount += ing.Amount
			item.Count++
			if !slices.Contains(item.Recipes, rec.Title) {
				item.Recipes = append(item.Recipes, rec.Title)
			}
		}
	}
	return list
}
