package storage

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"smart-pantry/internal/recipe"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// catalogDocument is the on-disk shape of a catalog file.
type catalogDocument struct {
	Recipes []recipe.Recipe `yaml:"recipes"`
}

// CatalogFile reads a recipe catalog from a YAML file. It never writes back.
type CatalogFile struct {
	path string
}

// NewCatalogFile creates a CatalogFile for the given path. An empty path means
// the built-in catalog.
func NewCatalogFile(path string) *CatalogFile {
	return &CatalogFile{path: path}
}

// Path returns the file backing the catalog, or "" for the built-in one.
func (c *CatalogFile) Path() string {
	return c.path
}

// Exists checks if the catalog file is present on disk.
func (c *CatalogFile) Exists() bool {
	if c.path == "" {
		return true
	}
	_, err := os.Stat(c.path)
	return !errors.Is(err, os.ErrNotExist)
}

// Load reads and validates every recipe in the catalog.
func (c *CatalogFile) Load() ([]recipe.Recipe, error) {
	data := defaultCatalog
	if c.path != "" {
		var err error
		data, err = os.ReadFile(c.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file %s: %w", c.path, err)
		}
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a YAML catalog document. Blank ingredients are filtered
// and every recipe is validated before it is returned.
func ParseCatalog(data []byte) ([]recipe.Recipe, error) {
	var doc catalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(doc.Recipes))
	recipes := make([]recipe.Recipe, 0, len(doc.Recipes))
	for _, rec := range doc.Recipes {
		rec.Ingredients = recipe.FilterBlank(rec.Ingredients)
		if rec.Image == "" {
			rec.Image = recipe.DefaultImage
		}
		if err := recipe.Validate(rec); err != nil {
			return nil, err
		}
		if _, dup := seen[rec.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s in catalog", recipe.ErrInvalidRecipe, rec.ID)
		}
		seen[rec.ID] = struct{}{}
		recipes = append(recipes, rec)
	}
	return recipes, nil
}

// LoadCustomRecipes reads user-authored recipes from a YAML file. Each entry
// gets a fresh id and the Custom tag, the same as recipes created by hand.
func LoadCustomRecipes(path string) ([]recipe.Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read custom recipe file %s: %w", path, err)
	}

	var doc catalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal custom recipes: %w", err)
	}

	out := make([]recipe.Recipe, 0, len(doc.Recipes))
	for _, r := range doc.Recipes {
		custom := recipe.NewCustom(r.Title, r.Description, r.PrepTime, r.Ingredients)
		if err := recipe.Validate(custom); err != nil {
			return nil, err
		}
		out = append(out, custom)
	}
	return out, nil
}
