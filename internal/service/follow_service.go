package service

import (
	"context"

	"foodgram/internal/models"
	"foodgram/internal/repository"
)

// FollowService manages author subscriptions.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	recipeRepo repository.RecipeRepository
}

func NewFollowService(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	recipeRepo repository.RecipeRepository,
) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
		recipeRepo: recipeRepo,
	}
}

// Subscribe follows the author and returns their subscription view with
// up to recipesLimit of their recipes (0 means all).
func (s *FollowService) Subscribe(ctx context.Context, userID, authorID uint, recipesLimit int) (*models.SubscriptionView, error) {
	if userID == authorID {
		return nil, models.NewValidationError("You cannot subscribe to yourself")
	}
	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if err := s.followRepo.Create(ctx, userID, authorID); err != nil {
		return nil, err
	}
	return s.buildView(ctx, author, recipesLimit)
}

// Unsubscribe is idempotent; unfollowing an author you do not follow
// still succeeds. The author must exist though.
func (s *FollowService) Unsubscribe(ctx context.Context, userID, authorID uint) error {
	if _, err := s.userRepo.GetByID(ctx, authorID); err != nil {
		return err
	}
	return s.followRepo.Delete(ctx, userID, authorID)
}

// Subscriptions lists the followed authors with their recipes.
func (s *FollowService) Subscriptions(ctx context.Context, userID uint, limit, offset, recipesLimit int) ([]models.SubscriptionView, int64, error) {
	authors, total, err := s.followRepo.ListAuthors(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	views := make([]models.SubscriptionView, 0, len(authors))
	for i := range authors {
		view, err := s.buildView(ctx, &authors[i], recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, *view)
	}
	return views, total, nil
}

func (s *FollowService) buildView(ctx context.Context, author *models.User, recipesLimit int) (*models.SubscriptionView, error) {
	count, err := s.recipeRepo.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	recipes, err := s.recipeRepo.ListByAuthor(ctx, author.ID, recipesLimit)
	if err != nil {
		return nil, err
	}
	view := models.ToSubscriptionView(author, recipes, count, recipesLimit)
	return &view, nil
}
