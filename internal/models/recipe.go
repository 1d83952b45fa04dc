package models

import (
	"time"
)

// Recipe is an authored recipe linked to tags (many-to-many) and to
// ingredients through RecipeIngredient rows carrying per-recipe amounts.
// (author_id, name) is unique so an author cannot publish the same recipe twice.
type Recipe struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	AuthorID    uint   `gorm:"not null;index;uniqueIndex:idx_author_recipe_name" json:"-"`
	Name        string `gorm:"size:200;not null;uniqueIndex:idx_author_recipe_name" json:"name"`
	Image       string `json:"image"`
	Text        string `gorm:"type:text;not null" json:"text"`
	CookingTime int    `gorm:"not null" json:"cooking_time"`

	Author      User               `gorm:"foreignKey:AuthorID" json:"author"`
	Tags        []Tag              `gorm:"many2many:recipe_tags" json:"tags"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients"`

	// IsFavorited and IsInShoppingCart are not persisted; computed at query
	// time relative to the requesting user (always false for anonymous).
	IsFavorited      bool `gorm:"->" json:"is_favorited"`
	IsInShoppingCart bool `gorm:"->" json:"is_in_shopping_cart"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecipeIngredient links one Recipe to one Ingredient with a quantity.
// (recipe_id, ingredient_id) is unique; amount is at least 1.
type RecipeIngredient struct {
	ID           uint `gorm:"primaryKey" json:"-"`
	RecipeID     uint `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"-"`
	IngredientID uint `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"id"`
	Amount       int  `gorm:"not null" json:"amount"`

	Ingredient Ingredient `gorm:"foreignKey:IngredientID" json:"-"`
}

// TableName keeps the join table name stable for raw joins in repositories.
func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}
