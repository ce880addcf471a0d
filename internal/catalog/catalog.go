package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/calolens/calo-cli/internal/model"
)

//go:embed data/foods.json data/activities.json data/products.json
var dataFS embed.FS

// Catalog holds the static food, activity, and barcode product tables.
// It is loaded once at process start and never mutated afterwards.
type Catalog struct {
	Foods      []model.FoodItem
	Activities []model.Activity
	Products   []model.BarcodeProduct

	foodsByID map[string]int
	byBarcode map[string]int
}

// Load parses the embedded tables and validates the catalog invariants.
func Load() (*Catalog, error) {
	c := &Catalog{}
	if err := loadJSON("data/foods.json", &c.Foods); err != nil {
		return nil, err
	}
	if err := loadJSON("data/activities.json", &c.Activities); err != nil {
		return nil, err
	}
	if err := loadJSON("data/products.json", &c.Products); err != nil {
		return nil, err
	}

	c.foodsByID = make(map[string]int, len(c.Foods))
	for i, food := range c.Foods {
		if err := validateFood(food); err != nil {
			return nil, err
		}
		if _, dup := c.foodsByID[food.ID]; dup {
			return nil, fmt.Errorf("duplicate food id %q", food.ID)
		}
		c.foodsByID[food.ID] = i
	}

	c.byBarcode = make(map[string]int, len(c.Products))
	for i, p := range c.Products {
		c.byBarcode[p.Barcode] = i
	}

	return c, nil
}

func loadJSON(name string, out any) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read catalog file %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse catalog file %s: %w", name, err)
	}
	return nil
}

// Per-100g nutrition values must be non-negative and every food needs at
// least one declared common portion for the recognition simulator.
func validateFood(food model.FoodItem) error {
	per := food.Per100g
	values := []float64{per.Calories, per.ProteinG, per.CarbsG, per.FatG, per.FiberG, per.SugarG, per.SodiumMg}
	for _, v := range values {
		if v < 0 {
			return fmt.Errorf("food %q has negative per-100g nutrition", food.ID)
		}
	}
	if len(food.CommonPortions) == 0 {
		return fmt.Errorf("food %q has no common portions", food.ID)
	}
	for _, p := range food.CommonPortions {
		if p.Grams <= 0 {
			return fmt.Errorf("food %q has non-positive portion %q", food.ID, p.Name.EN)
		}
	}
	return nil
}

func (c *Catalog) FoodByID(id string) (model.FoodItem, bool) {
	i, ok := c.foodsByID[id]
	if !ok {
		return model.FoodItem{}, false
	}
	return c.Foods[i], true
}

func (c *Catalog) FoodsByCategory(category string) []model.FoodItem {
	if category == "all" {
		return c.Foods
	}
	out := make([]model.FoodItem, 0)
	for _, food := range c.Foods {
		if food.Category == category {
			out = append(out, food)
		}
	}
	return out
}

// SearchFoods matches a case-insensitive substring against the localized
// food name for the given language.
func (c *Catalog) SearchFoods(query, language string) []model.FoodItem {
	term := strings.ToLower(strings.TrimSpace(query))
	out := make([]model.FoodItem, 0)
	for _, food := range c.Foods {
		if strings.Contains(strings.ToLower(localized(food.Name, language)), term) {
			out = append(out, food)
		}
	}
	return out
}

func (c *Catalog) ActivitiesByCategory(category string) []model.Activity {
	if category == "all" {
		return c.Activities
	}
	out := make([]model.Activity, 0)
	for _, a := range c.Activities {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out
}

// SearchActivities matches a case-insensitive substring against the
// localized activity name or description.
func (c *Catalog) SearchActivities(query, language string) []model.Activity {
	term := strings.ToLower(strings.TrimSpace(query))
	out := make([]model.Activity, 0)
	for _, a := range c.Activities {
		name := strings.ToLower(localized(a.Name, language))
		desc := strings.ToLower(localized(a.Description, language))
		if strings.Contains(name, term) || strings.Contains(desc, term) {
			out = append(out, a)
		}
	}
	return out
}

func (c *Catalog) ProductByBarcode(barcode string) (model.BarcodeProduct, bool) {
	i, ok := c.byBarcode[strings.TrimSpace(barcode)]
	if !ok {
		return model.BarcodeProduct{}, false
	}
	return c.Products[i], true
}

func localized(s model.LocalizedString, language string) string {
	if language == "ar" {
		return s.AR
	}
	return s.EN
}
