package recipe

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DefaultImage is used for recipes created without a picture.
const DefaultImage = "/diverse-food-spread.png"

// CustomTag marks recipes created by the user rather than shipped in the catalog.
const CustomTag = "Custom"

// ErrInvalidRecipe is returned when a recipe breaks one of the model invariants.
var ErrInvalidRecipe = errors.New("invalid recipe")

// Ingredient is a single line of a recipe's ingredient list.
type Ingredient struct {
	Name     string  `json:"name" yaml:"name"`
	Amount   float64 `json:"amount" yaml:"amount"`
	Unit     string  `json:"unit" yaml:"unit"`
	Category string  `json:"category" yaml:"category"`
}

// Recipe is a meal that can be added to the plan.
type Recipe struct {
	ID          string       `json:"id" yaml:"id"`
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description" yaml:"description"`
	Image       string       `json:"image" yaml:"image"`
	PrepTime    int          `json:"prep_time" yaml:"prep_time"` // minutes
	Tags        []string     `json:"tags" yaml:"tags"`
	Ingredients []Ingredient `json:"ingredients" yaml:"ingredients"`
}

// NewCustom builds a user-authored recipe. Ingredients with a blank name are
// dropped so they never reach the shopping list.
func NewCustom(title, description string, prepTime int, ingredients []Ingredient) Recipe {
	if prepTime < 0 {
		prepTime = 0
	}
	return Recipe{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Image:       DefaultImage,
		PrepTime:    prepTime,
		Tags:        []string{CustomTag},
		Ingredients: FilterBlank(ingredients),
	}
}

// FilterBlank returns the ingredients whose name is not empty or whitespace.
func FilterBlank(ingredients []Ingredient) []Ingredient {
	out := make([]Ingredient, 0, len(ingredients))
	for _, ing := range ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			continue
		}
		out = append(out, ing)
	}
	return out
}

// Validate checks the invariants a recipe must satisfy before it enters the catalog.
func Validate(r Recipe) error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidRecipe)
	}
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: recipe %s has no title", ErrInvalidRecipe, r.ID)
	}
	if r.PrepTime < 0 {
		return fmt.Errorf("%w: recipe %s has negative prep time %d", ErrInvalidRecipe, r.ID, r.PrepTime)
	}
	for i, ing := range r.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return fmt.Errorf("%w: recipe %s ingredient #%d has no name", ErrInvalidRecipe, r.ID, i+1)
		}
		if ing.Amount < 0 {
			return fmt.Errorf("%w: recipe %s ingredient %q has negative amount", ErrInvalidRecipe, r.ID, ing.Name)
		}
	}
	return nil
}

// HasTag reports whether the recipe carries the tag, ignoring case.
func (r Recipe) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
