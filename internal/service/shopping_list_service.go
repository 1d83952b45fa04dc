package service

import (
	"context"
	"fmt"
	"strings"

	"foodgram/internal/models"
	"foodgram/internal/observability"
	"foodgram/internal/repository"
)

// ShoppingListService renders a user's aggregated shopping list as a
// downloadable plain text file.
type ShoppingListService struct {
	shoppingListRepo repository.ShoppingListRepository
	userRepo         repository.UserRepository
}

func NewShoppingListService(
	shoppingListRepo repository.ShoppingListRepository,
	userRepo repository.UserRepository,
) *ShoppingListService {
	return &ShoppingListService{
		shoppingListRepo: shoppingListRepo,
		userRepo:         userRepo,
	}
}

// BuildList aggregates the user's cart and renders the text document.
// Returns the content and the download filename. An empty cart is a 404.
func (s *ShoppingListService) BuildList(ctx context.Context, userID uint) (content, filename string, err error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", "", err
	}

	items, err := s.shoppingListRepo.Aggregate(ctx, userID)
	if err != nil {
		return "", "", err
	}
	if len(items) == 0 {
		return "", "", &models.AppError{Code: "NOT_FOUND", Message: "Shopping cart is empty"}
	}

	observability.ShoppingListDownloadsTotal.Inc()
	return renderShoppingList(user.Username, items), fmt.Sprintf("%s_shopping_list.txt", user.Username), nil
}

func renderShoppingList(username string, items []repository.ShoppingListItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Shopping list for %s\n\n", username)
	for _, item := range items {
		fmt.Fprintf(&b, "%s (%s): %d\n", item.Name, item.MeasurementUnit, item.Total)
	}
	return b.String()
}
