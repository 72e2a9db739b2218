package app

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"smart-pantry/internal/efficiency"
	"smart-pantry/internal/metrics"
	"smart-pantry/internal/planner"
	"smart-pantry/internal/recipe"
	"smart-pantry/internal/shopping"
)

// View is everything the presentation layer needs for one selection. Items
// may be shared with later views of the same selection; treat them as
// read-only.
type View struct {
	RecipeIDs   []string                 `json:"recipe_ids" yaml:"recipe_ids"`
	Recipes     []string                 `json:"recipes" yaml:"recipes"`
	Categories  []shopping.CategoryGroup `json:"categories" yaml:"categories"`
	Efficiency  efficiency.Report        `json:"efficiency" yaml:"efficiency"`
	DisplayMode shopping.DisplayMode     `json:"display_mode" yaml:"display_mode"`
}

// Empty reports whether the shopping list has no ingredients.
func (v View) Empty() bool {
	return len(v.Categories) == 0
}

// App wires the recipe store to the shopping pipeline.
type App struct {
	store       *planner.Store
	recorder    *metrics.Recorder
	log         *slog.Logger
	displayMode shopping.DisplayMode

	mu       sync.Mutex
	cacheKey string
	cached   *shopping.List
}

// NewApp creates and initializes a new App instance. A nil recorder or logger
// is replaced by a fresh recorder and slog.Default.
func NewApp(store *planner.Store, displayMode shopping.DisplayMode, recorder *metrics.Recorder, log *slog.Logger) *App {
	if recorder == nil {
		recorder = metrics.NewRecorder()
	}
	if log == nil {
		log = slog.Default()
	}
	return &App{
		store:       store,
		recorder:    recorder,
		log:         log,
		displayMode: displayMode,
	}
}

// Store returns the recipe store backing the app.
func (a *App) Store() *planner.Store {
	return a.store
}

// Recorder returns the metrics recorder.
func (a *App) Recorder() *metrics.Recorder {
	return a.recorder
}

// Evaluate runs the pipeline over the current selection. The aggregation is
// memoized on the ordered list of selected ids.
func (a *App) Evaluate() View {
	start := time.Now()
	selected := a.store.Selection()

	ids := make([]string, 0, len(selected))
	titles := make([]string, 0, len(selected))
	for _, r := range selected {
		ids = append(ids, r.ID)
		titles = append(titles, r.Title)
	}

	list, cached := a.aggregate(ids, selected)
	report := efficiency.Score(list, len(selected))

	view := View{
		RecipeIDs:   ids,
		Recipes:     titles,
		Categories:  shopping.GroupByCategory(list),
		Efficiency:  report,
		DisplayMode: a.displayMode,
	}

	run := metrics.PipelineRun{
		Recipes:     len(selected),
		Ingredients: list.Len(),
		Score:       report.Score,
		Available:   report.Available,
		Duration:    time.Since(start),
		Cached:      cached,
	}
	a.recorder.Observe(run)
	a.log.Debug("plan evaluated",
		"recipes", run.Recipes,
		"ingredients", run.Ingredients,
		"score", run.Score,
		"cached", cached)

	return view
}

func (a *App) aggregate(ids []string, selected []recipe.Recipe) (*shopping.List, bool) {
	key := strings.Join(ids, "\x00")

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cached != nil && a.cacheKey == key {
		return a.cached, true
	}
	a.cached = shopping.Aggregate(selected)
	a.cacheKey = key
	return a.cached, false
}

// Select adds a recipe to the plan and re-evaluates.
func (a *App) Select(id string) (View, error) {
	if err := a.store.AddToSelection(id); err != nil {
		return View{}, err
	}
	return a.Evaluate(), nil
}

// Deselect removes a recipe from the plan and re-evaluates.
func (a *App) Deselect(id string) View {
	a.store.RemoveFromSelection(id)
	return a.Evaluate()
}

// AddCustom stores a user-authored recipe, selects it and re-evaluates.
func (a *App) AddCustom(r recipe.Recipe) (View, error) {
	r.Ingredients = recipe.FilterBlank(r.Ingredients)
	if err := a.store.AddToCatalog(r); err != nil {
		return View{}, err
	}
	return a.Evaluate(), nil
}
