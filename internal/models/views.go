package models

// Read projections. The write payloads accept tag IDs and (ingredient id,
// amount) pairs; reads expand author, tags and ingredients into full nested
// objects plus the per-request is_favorited / is_in_shopping_cart flags.
// These are plain functions over loaded entities, so handlers and tests can
// build responses without touching the database.

// UserView is the public shape of a user.
type UserView struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// IngredientInRecipeView is one ingredient row inside a recipe read view.
type IngredientInRecipeView struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeView is the full read representation of a recipe.
type RecipeView struct {
	ID               uint                     `json:"id"`
	Tags             []Tag                    `json:"tags"`
	Author           UserView                 `json:"author"`
	Ingredients      []IngredientInRecipeView `json:"ingredients"`
	IsFavorited      bool                     `json:"is_favorited"`
	IsInShoppingCart bool                     `json:"is_in_shopping_cart"`
	Name             string                   `json:"name"`
	Image            string                   `json:"image"`
	Text             string                   `json:"text"`
	CookingTime      int                      `json:"cooking_time"`
}

// RecipeMiniView is the short recipe shape used in favorite/cart responses
// and inside subscription listings.
type RecipeMiniView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// SubscriptionView is one followed author with a slice of their recipes.
type SubscriptionView struct {
	UserView
	Recipes      []RecipeMiniView `json:"recipes"`
	RecipesCount int64            `json:"recipes_count"`
}

// ToUserView projects a user; subscribed is relative to the requesting user.
func ToUserView(u *User, subscribed bool) UserView {
	return UserView{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: subscribed,
	}
}

// ToRecipeView projects a loaded recipe (author, tags and ingredient rows
// with their Ingredient preloaded) into the read shape.
func ToRecipeView(r *Recipe, authorSubscribed bool) RecipeView {
	ingredients := make([]IngredientInRecipeView, 0, len(r.Ingredients))
	for _, ri := range r.Ingredients {
		ingredients = append(ingredients, IngredientInRecipeView{
			ID:              ri.IngredientID,
			Name:            ri.Ingredient.Name,
			MeasurementUnit: ri.Ingredient.MeasurementUnit,
			Amount:          ri.Amount,
		})
	}
	tags := r.Tags
	if tags == nil {
		tags = []Tag{}
	}
	return RecipeView{
		ID:               r.ID,
		Tags:             tags,
		Author:           ToUserView(&r.Author, authorSubscribed),
		Ingredients:      ingredients,
		IsFavorited:      r.IsFavorited,
		IsInShoppingCart: r.IsInShoppingCart,
		Name:             r.Name,
		Image:            r.Image,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
	}
}

// ToRecipeMiniView projects a recipe into its short representation.
func ToRecipeMiniView(r *Recipe) RecipeMiniView {
	return RecipeMiniView{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}

// ToSubscriptionView projects a followed author together with up to
// recipesLimit of their recipes (0 means no limit).
func ToSubscriptionView(author *User, recipes []*Recipe, recipesCount int64, recipesLimit int) SubscriptionView {
	if recipesLimit > 0 && len(recipes) > recipesLimit {
		recipes = recipes[:recipesLimit]
	}
	minis := make([]RecipeMiniView, 0, len(recipes))
	for _, r := range recipes {
		minis = append(minis, ToRecipeMiniView(r))
	}
	return SubscriptionView{
		UserView:     ToUserView(author, true),
		Recipes:      minis,
		RecipesCount: recipesCount,
	}
}
