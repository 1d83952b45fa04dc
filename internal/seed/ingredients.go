package seed

import (
	"context"
	"fmt"
	"os"

	"foodgram/internal/models"
	"foodgram/internal/repository"

	"gopkg.in/yaml.v3"
)

// ingredientsFile is the YAML shape of the ingredient reference fixture:
//
//	ingredients:
//	  - name: flour
//	    measurement_unit: g
type ingredientsFile struct {
	Ingredients []ingredientFixture `yaml:"ingredients"`
}

type ingredientFixture struct {
	Name            string `yaml:"name"`
	MeasurementUnit string `yaml:"measurement_unit"`
}

// LoadIngredients parses an ingredient fixture file into model rows.
func LoadIngredients(path string) ([]models.Ingredient, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ingredients fixture: %w", err)
	}

	var file ingredientsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse ingredients fixture: %w", err)
	}

	ingredients := make([]models.Ingredient, 0, len(file.Ingredients))
	for i, f := range file.Ingredients {
		if f.Name == "" || f.MeasurementUnit == "" {
			return nil, fmt.Errorf("ingredients fixture entry %d: name and measurement_unit are required", i)
		}
		ingredients = append(ingredients, models.Ingredient{
			Name:            f.Name,
			MeasurementUnit: f.MeasurementUnit,
		})
	}
	return ingredients, nil
}

// ImportIngredients loads the fixture file and bulk inserts the catalog.
func ImportIngredients(ctx context.Context, repo repository.IngredientRepository, path string) (int, error) {
	ingredients, err := LoadIngredients(path)
	if err != nil {
		return 0, err
	}
	if err := repo.CreateBatch(ctx, ingredients); err != nil {
		return 0, err
	}
	return len(ingredients), nil
}
