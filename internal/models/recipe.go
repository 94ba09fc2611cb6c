package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bounds shared by recipe cooking time and ingredient amounts.
const (
	MinCookingTime      = 1
	MaxCookingTime      = 32000
	MinIngredientAmount = 1
	MaxIngredientAmount = 32000
)

type Tag struct {
	ID    uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	Name  string    `gorm:"size:200;not null" json:"name"`
	Color string    `gorm:"size:7;not null" json:"color"`
	Slug  string    `gorm:"size:200;uniqueIndex;not null" json:"slug"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Ingredient is identified by the (name, measurement_unit) pair; two rows
// may share a name only when their units differ.
type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	Name            string    `gorm:"size:200;not null;index;uniqueIndex:idx_ingredients_name_unit" json:"name"`
	MeasurementUnit string    `gorm:"size:200;not null;uniqueIndex:idx_ingredients_name_unit" json:"measurement_unit"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type Recipe struct {
	ID          uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	AuthorID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"author_id"`
	Author      User           `gorm:"foreignKey:AuthorID" json:"-"`
	Name        string         `gorm:"size:200;not null" json:"name"`
	Text        string         `gorm:"type:text;not null" json:"text"`
	ImageURL    string         `gorm:"size:255" json:"image"`
	CookingTime int            `gorm:"not null" json:"cooking_time"`

	Ingredients []IngredientQuantity `gorm:"foreignKey:RecipeID" json:"-"`
	Tags        []Tag                `gorm:"many2many:recipe_tags;joinForeignKey:RecipeID;joinReferences:TagID" json:"-"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// IngredientQuantity attaches an amount to a recipe/ingredient link. Rows
// are owned by the recipe and replaced wholesale on update.
type IngredientQuantity struct {
	ID           uuid.UUID  `gorm:"type:uuid;primarykey" json:"id"`
	RecipeID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"recipe_id"`
	IngredientID uuid.UUID  `gorm:"type:uuid;not null;index" json:"ingredient_id"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID" json:"-"`
	Amount       int        `gorm:"not null" json:"amount"`
}

func (IngredientQuantity) TableName() string {
	return "ingredient_quantities"
}

func (q *IngredientQuantity) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

type RecipeTag struct {
	RecipeID uuid.UUID `gorm:"type:uuid;primarykey" json:"recipe_id"`
	TagID    uuid.UUID `gorm:"type:uuid;primarykey" json:"tag_id"`
}

func (RecipeTag) TableName() string {
	return "recipe_tags"
}
