package service

import (
	"context"
	"strings"

	"foodgram/internal/models"
	"foodgram/internal/repository"
)

// IngredientService serves the ingredient reference catalog with
// case-insensitive prefix search.
type IngredientService struct {
	ingredientRepo repository.IngredientRepository
}

func NewIngredientService(ingredientRepo repository.IngredientRepository) *IngredientService {
	return &IngredientService{ingredientRepo: ingredientRepo}
}

func (s *IngredientService) ListIngredients(ctx context.Context, namePrefix string) ([]models.Ingredient, error) {
	ingredients, err := s.ingredientRepo.List(ctx, strings.TrimSpace(namePrefix))
	if err != nil {
		return nil, err
	}
	if ingredients == nil {
		ingredients = []models.Ingredient{}
	}
	return ingredients, nil
}

func (s *IngredientService) GetIngredient(ctx context.Context, id uint) (*models.Ingredient, error) {
	return s.ingredientRepo.GetByID(ctx, id)
}
