package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platefull/backend/internal/models"
)

// ShoppingListItem is one merged line of the aggregated report.
type ShoppingListItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// ShoppingListService merges ingredient quantities across every recipe in
// a user's cart.
type ShoppingListService struct {
	db *gorm.DB
}

func NewShoppingListService(db *gorm.DB) *ShoppingListService {
	return &ShoppingListService{db: db}
}

// Aggregate sums amounts grouped by the (ingredient name, measurement
// unit) pair across the user's cart. Grouping by the pair rather than by
// ingredient id keeps identical-looking ingredients on one line even if
// they were stored as distinct rows. Results are ordered by name so
// repeated runs against unchanged data are byte-identical. An empty cart
// yields an empty slice, not an error.
func (s *ShoppingListService) Aggregate(ctx context.Context, userID uuid.UUID) ([]ShoppingListItem, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSuchUser
		}
		return nil, err
	}

	var items []ShoppingListItem
	err := s.db.WithContext(ctx).
		Table("ingredient_quantities").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(ingredient_quantities.amount) AS amount").
		Joins("JOIN ingredients ON ingredients.id = ingredient_quantities.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = ingredient_quantities.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name ASC, ingredients.measurement_unit ASC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Render writes the report body, one "<name>: <amount><unit>" line per
// merged ingredient.
func (s *ShoppingListService) Render(items []ShoppingListItem) string {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "%s: %d%s\n", item.Name, item.Amount, item.MeasurementUnit)
	}
	return b.String()
}

// Filename follows the "<username>_shopping_list.txt" download convention.
func (s *ShoppingListService) Filename(username string) string {
	return username + "_shopping_list.txt"
}
