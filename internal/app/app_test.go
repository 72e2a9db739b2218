package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-pantry/internal/metrics"
	"smart-pantry/internal/planner"
	"smart-pantry/internal/recipe"
	"smart-pantry/internal/shopping"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	catalog := []recipe.Recipe{
		{ID: "a", Title: "A", Ingredients: []recipe.Ingredient{
			{Name: "Rice", Amount: 1, Unit: "cup", Category: "Grains"},
		}},
		{ID: "b", Title: "B", Ingredients: []recipe.Ingredient{
			{Name: "rice", Amount: 1, Unit: "cup", Category: "Grains"},
			{Name: "Egg", Amount: 2, Unit: "pcs", Category: "Protein"},
		}},
	}
	store, err := planner.NewStore(catalog, nil)
	require.NoError(t, err)
	return NewApp(store, shopping.DisplayLegacy, metrics.NewRecorder(), nil)
}

func cacheCounts(t *testing.T, a *App) (float64, float64) {
	t.Helper()
	var hits, misses float64
	families, err := a.Recorder().Registry().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		switch mf.GetName() {
		case "smart_pantry_aggregation_cache_hits_total":
			hits = mf.GetMetric()[0].GetCounter().GetValue()
		case "smart_pantry_aggregation_cache_misses_total":
			misses = mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	return hits, misses
}

func TestEvaluate(t *testing.T) {
	t.Run("no selection", func(t *testing.T) {
		a := newTestApp(t)
		v := a.Evaluate()
		assert.True(t, v.Empty())
		assert.False(t, v.Efficiency.Available)
	})

	t.Run("select both", func(t *testing.T) {
		a := newTestApp(t)
		_, err := a.Select("a")
		require.NoError(t, err)
		v, err := a.Select("b")
		require.NoError(t, err)

		assert.Equal(t, []string{"a", "b"}, v.RecipeIDs)
		assert.Equal(t, []string{"A", "B"}, v.Recipes)
		require.Len(t, v.Categories, 2)
		assert.Equal(t, "Grains", v.Categories[0].Category)
		assert.Equal(t, 50, v.Efficiency.Score)
		assert.Equal(t, "Egg", v.Efficiency.Tip.Name)
		assert.Equal(t, 4.0, shopping.DisplayAmount(v.Categories[0].Items[0], v.DisplayMode))
	})

	t.Run("deselect recomputes", func(t *testing.T) {
		a := newTestApp(t)
		_, _ = a.Select("a")
		_, _ = a.Select("b")
		v := a.Deselect("a")

		require.Len(t, v.Categories, 2)
		rice := v.Categories[0].Items[0]
		assert.Equal(t, 1.0, rice.Amount)
		assert.Equal(t, []string{"B"}, rice.Recipes)
		assert.Equal(t, 0, v.Efficiency.Score)
	})

	t.Run("unknown recipe", func(t *testing.T) {
		a := newTestApp(t)
		_, err := a.Select("zzz")
		assert.True(t, errors.Is(err, planner.ErrRecipeNotFound))
	})

	t.Run("memoized on selection ids", func(t *testing.T) {
		a := newTestApp(t)
		_, _ = a.Select("a")
		first := a.Evaluate()
		second := a.Evaluate()

		assert.Same(t, first.Categories[0].Items[0], second.Categories[0].Items[0])

		hits, misses := cacheCounts(t, a)
		assert.Equal(t, 2.0, hits)
		assert.Equal(t, 1.0, misses)

		// reordering the selection is a different key
		_, _ = a.Select("b")
		a.Deselect("a")
		_, _ = a.Select("a")
		v := a.Evaluate()
		assert.Equal(t, []string{"b", "a"}, v.RecipeIDs)
		assert.Equal(t, []string{"B", "A"}, v.Categories[0].Items[0].Recipes)
	})

	t.Run("add custom selects it", func(t *testing.T) {
		a := newTestApp(t)
		_, _ = a.Select("b")
		custom := recipe.NewCustom("Egg Salad", "", 10, []recipe.Ingredient{
			{Name: "EGG", Amount: 4, Unit: "pcs", Category: "Protein"},
			{Name: " ", Amount: 1, Unit: "pcs", Category: "Other"},
		})

		v, err := a.AddCustom(custom)
		require.NoError(t, err)
		assert.Equal(t, []string{"b", custom.ID}, v.RecipeIDs)
		assert.Equal(t, 50, v.Efficiency.Score)
		// b spells it in lower case and is the first to list it
		assert.Equal(t, "rice", v.Efficiency.Tip.Name)
		assert.Equal(t, "Egg", v.Categories[1].Items[0].Name)
	})
}
