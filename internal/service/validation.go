package service

import (
	"github.com/google/uuid"

	"github.com/platefull/backend/internal/models"
	"github.com/platefull/backend/internal/types"
)

// CompositionValidator checks a proposed recipe's tag and ingredient sets
// before anything touches the database.
type CompositionValidator struct {
	MinAmount      int
	MaxAmount      int
	MinCookingTime int
	MaxCookingTime int
}

func NewCompositionValidator() *CompositionValidator {
	return &CompositionValidator{
		MinAmount:      models.MinIngredientAmount,
		MaxAmount:      models.MaxIngredientAmount,
		MinCookingTime: models.MinCookingTime,
		MaxCookingTime: models.MaxCookingTime,
	}
}

// ValidateTags rejects an empty tag set and repeated tag ids.
func (v *CompositionValidator) ValidateTags(tags []uuid.UUID) error {
	if len(tags) == 0 {
		return ErrEmptyTagSet
	}
	seen := make(map[uuid.UUID]struct{}, len(tags))
	for _, id := range tags {
		if _, ok := seen[id]; ok {
			return ErrDuplicateTag
		}
		seen[id] = struct{}{}
	}
	return nil
}

// ValidateIngredients rejects an empty ingredient set, repeated ingredient
// ids and amounts outside the configured inclusive bounds.
func (v *CompositionValidator) ValidateIngredients(items []types.IngredientAmount) error {
	if len(items) == 0 {
		return ErrEmptyIngredientSet
	}
	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ID]; ok {
			return ErrDuplicateIngredient
		}
		seen[item.ID] = struct{}{}
		if item.Amount < v.MinAmount || item.Amount > v.MaxAmount {
			return ErrAmountOutOfRange
		}
	}
	return nil
}

// ValidateCookingTime applies the same inclusive-bound rule to the
// recipe's cooking time.
func (v *CompositionValidator) ValidateCookingTime(minutes int) error {
	if minutes < v.MinCookingTime || minutes > v.MaxCookingTime {
		return ErrCookingTimeOutOfRange
	}
	return nil
}
