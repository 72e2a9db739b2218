package shopping

import (
	"fmt"
	"sort"
	"strings"
)

// EmptyListMessage is shown instead of an empty list so "nothing selected"
// never looks like "still loading".
const EmptyListMessage = "Add recipes to generate your shopping list"

// DisplayMode selects how the quantity to buy is derived from an item.
type DisplayMode string

const (
	// DisplayLegacy shows amount * count, which is what the product has
	// always shown even though amount is already a sum.
	DisplayLegacy DisplayMode = "legacy"
	// DisplaySummed shows the summed amount alone.
	DisplaySummed DisplayMode = "summed"
)

// ParseDisplayMode converts a configuration value into a DisplayMode. The
// empty string selects DisplayLegacy.
func ParseDisplayMode(s string) (DisplayMode, error) {
	switch DisplayMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", DisplayLegacy:
		return DisplayLegacy, nil
	case DisplaySummed:
		return DisplaySummed, nil
	default:
		return "", fmt.Errorf("unknown display mode %q (supported: %s, %s)", s, DisplayLegacy, DisplaySummed)
	}
}

// DisplayAmount is the quantity presented to the shopper for an item.
func DisplayAmount(item *Item, mode DisplayMode) float64 {
	if mode == DisplaySummed {
		return item.Amount
	}
	return item.Amount * float64(item.Count)
}

// GroupByCategory files the list's items under their category. Categories are
// sorted by byte order; items keep the list order. An empty list yields nil.
func GroupByCategory(list *List) []CategoryGroup {
	if list.Len() == 0 {
		return nil
	}

	byCategory := make(map[string][]*Item)
	for _, item := range list.Items() {
		byCategory[item.Category] = append(byCategory[item.Category], item)
	}

	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	groups := make([]CategoryGroup, 0, len(categories))
	for _, c := range categories {
		groups = append(groups, CategoryGroup{Category: c, Items: byCategory[c]})
	}
	return groups
}
