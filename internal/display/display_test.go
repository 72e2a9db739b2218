package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"smart-pantry/internal/app"
	"smart-pantry/internal/efficiency"
	"smart-pantry/internal/recipe"
	"smart-pantry/internal/shopping"
)

func sampleView(mode shopping.DisplayMode) app.View {
	selected := []recipe.Recipe{
		{ID: "a", Title: "A", Ingredients: []recipe.Ingredient{{Name: "Rice", Amount: 1, Unit: "cup", Category: "Grains"}}},
		{ID: "b", Title: "B", Ingredients: []recipe.Ingredient{
			{Name: "rice", Amount: 1.5, Unit: "cup", Category: "Grains"},
			{Name: "Egg", Amount: 2, Unit: "pcs", Category: "Protein"},
		}},
	}
	list := shopping.Aggregate(selected)
	return app.View{
		RecipeIDs:   []string{"a", "b"},
		Recipes:     []string{"A", "B"},
		Categories:  shopping.GroupByCategory(list),
		Efficiency:  efficiency.Score(list, len(selected)),
		DisplayMode: mode,
	}
}

func TestRenderView(t *testing.T) {
	var buf bytes.Buffer
	NewTerminal(&buf).RenderView(sampleView(shopping.DisplayLegacy))
	out := buf.String()

	checks := []string{
		"Your Plan (2)",
		"Grains",
		"Protein",
		"Used in: A, B",
		"5 cup", // (1 + 1.5) * 2
		"Shopping Efficiency 50%",
		"1 Shared Ingredients",
		"1 Single-Use Items",
		"Consider adding recipes that use: Egg...",
		"Reduce Waste Tip",
		"You have Egg on your list for just one meal",
	}
	for _, c := range checks {
		assert.Contains(t, out, c)
	}
	assert.Less(t, strings.Index(out, "Grains"), strings.Index(out, "Protein"), "Grains should come before Protein")
}

func TestRenderViewSummed(t *testing.T) {
	var buf bytes.Buffer
	NewTerminal(&buf).RenderView(sampleView(shopping.DisplaySummed))
	assert.Contains(t, buf.String(), "2.5 cup")
}

func TestRenderEmptyView(t *testing.T) {
	var buf bytes.Buffer
	NewTerminal(&buf).RenderView(app.View{})
	out := buf.String()
	assert.Contains(t, out, shopping.EmptyListMessage)
	assert.NotContains(t, out, "Shopping Efficiency", "efficiency panel is hidden with no selection")
}

func TestRenderCatalog(t *testing.T) {
	var buf bytes.Buffer
	recipes := []recipe.Recipe{
		{ID: "1", Title: "Tacos", PrepTime: 25, Tags: []string{"Mexican"}},
		{ID: "2", Title: "Salmon", PrepTime: 20},
	}
	NewTerminal(&buf).RenderCatalog(recipes, func(id string) bool { return id == "2" })
	out := buf.String()
	assert.Contains(t, out, "[ ] 1")
	assert.Contains(t, out, "[x] 2")
	assert.Contains(t, out, "25 min")
}

func TestMeter(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, "[----------]"},
		{50, "[#####-----]"},
		{100, "[##########]"},
		{120, "[##########]"},
		{-3, "[----------]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Meter(tt.score, 10), "score %d", tt.score)
	}
}

func TestFormatMarkdown(t *testing.T) {
	list, summary := FormatMarkdown(sampleView(shopping.DisplayLegacy))

	assert.Contains(t, list, "🛒 *Shopping List*")
	assert.Contains(t, list, "• Rice: 5 cup _(A, B)_")
	assert.Contains(t, summary, "🟠 *Shopping Efficiency:* 50%")
	assert.Contains(t, summary, "Egg")

	emptyList, emptySummary := FormatMarkdown(app.View{})
	assert.Contains(t, emptyList, shopping.EmptyListMessage)
	assert.Empty(t, emptySummary)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "2", FormatAmount(2))
	assert.Equal(t, "0.25", FormatAmount(0.25))
}
