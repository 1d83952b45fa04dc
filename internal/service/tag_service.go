package service

import (
	"context"

	"foodgram/internal/cache"
	"foodgram/internal/models"
	"foodgram/internal/repository"
)

// TagService serves the admin-seeded tag catalog. The full list is small
// and user-independent, so it is cached as a single Redis entry.
type TagService struct {
	tagRepo repository.TagRepository
}

func NewTagService(tagRepo repository.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

func (s *TagService) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := cache.Aside(ctx, cache.TagsKey, &tags, cache.TagsTTL, func() error {
		var fetchErr error
		tags, fetchErr = s.tagRepo.List(ctx)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	return tags, nil
}

func (s *TagService) GetTag(ctx context.Context, id uint) (*models.Tag, error) {
	return s.tagRepo.GetByID(ctx, id)
}

// CreateTag adds a tag to the catalog. Admin only, enforced by the caller.
func (s *TagService) CreateTag(ctx context.Context, name, color, slug string) (*models.Tag, error) {
	if name == "" || slug == "" {
		return nil, models.NewValidationError("Tag name and slug are required")
	}
	if !models.ValidTagColor(color) {
		return nil, models.NewValidationError("Tag color must be one of the fixed palette")
	}

	tag := &models.Tag{Name: name, Color: color, Slug: slug}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}
	cache.InvalidateTags(ctx)
	return tag, nil
}
