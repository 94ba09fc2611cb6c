package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platefull/backend/internal/models"
	"github.com/platefull/backend/internal/types"
)

// UserService serves user profiles and the subscriptions read path.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSuchUser
		}
		return nil, err
	}
	return &user, nil
}

// ParseRecipesLimit interprets the recipes_limit query parameter. An
// absent value means no limit; anything that is not a non-negative
// integer is a validation error, never silently defaulted.
func ParseRecipesLimit(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil, ErrInvalidRecipesLimit
	}
	return &n, nil
}

// Subscription builds the author profile summary with its nested recipe
// list, trimmed to recipesLimit when set.
func (s *UserService) Subscription(ctx context.Context, author *models.User, recipesLimit *int) (*types.SubscriptionResponse, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("author_id = ?", author.ID).Count(&count).Error; err != nil {
		return nil, err
	}

	query := s.db.WithContext(ctx).
		Where("author_id = ?", author.ID).
		Order("created_at DESC")
	if recipesLimit != nil {
		query = query.Limit(*recipesLimit)
	}
	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}

	summaries := make([]types.RecipeSummary, 0, len(recipes))
	for _, r := range recipes {
		summaries = append(summaries, types.RecipeSummary{
			ID:          r.ID,
			Name:        r.Name,
			Image:       r.ImageURL,
			CookingTime: r.CookingTime,
		})
	}

	return &types.SubscriptionResponse{
		ID:           author.ID,
		Email:        author.Email,
		Username:     author.Username,
		FirstName:    author.FirstName,
		LastName:     author.LastName,
		IsSubscribed: true,
		Recipes:      summaries,
		RecipesCount: count,
	}, nil
}

// Subscriptions lists the authors the user follows, paginated, each with
// the nested recipe list.
func (s *UserService) Subscriptions(ctx context.Context, userID uuid.UUID, recipesLimit *int, page, limit int) ([]types.SubscriptionResponse, int64, error) {
	base := s.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = DefaultPageSize
	}
	if page <= 0 {
		page = 1
	}

	var authors []models.User
	if err := base.
		Order("follows.created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&authors).Error; err != nil {
		return nil, 0, err
	}

	responses := make([]types.SubscriptionResponse, 0, len(authors))
	for i := range authors {
		sub, err := s.Subscription(ctx, &authors[i], recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		responses = append(responses, *sub)
	}
	return responses, total, nil
}
