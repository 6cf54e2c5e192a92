package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGenerateRecipes = "recipes generated successfully"
	MessageSuccessGetRecipe       = "recipe retrieved successfully"

	MessageFailedGenerateRecipes = "failed to generate recipes"
	MessageFailedGetRecipe       = "failed to retrieve recipe"

	ErrNoIngredients   = errors.New("no ingredients available for recipe generation")
	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrChatAPIFailed   = errors.New("chat completion request failed")
	ErrMalformedRecipe = errors.New("recipe response is not valid JSON")
)

type (
	GenerateRecipesRequest struct {
		Count int `json:"count" validate:"omitempty,min=1,max=10"`
	}

	RecipeIngredient struct {
		Name     string `json:"name"`
		Quantity string `json:"quantity,omitempty"`
	}

	Recipe struct {
		ID            string             `json:"id"`
		Title         string             `json:"title"`
		WhyThisRecipe string             `json:"why_this_recipe"`
		Ingredients   []RecipeIngredient `json:"ingredients_used"`
		Steps         []string           `json:"steps"`
		TimeMinutes   int                `json:"time_minutes"`
		Difficulty    string             `json:"difficulty"`
		CreatedAt     time.Time          `json:"created_at"`
	}

	GenerateRecipesResponse struct {
		Recipes       []Recipe `json:"recipes"`
		TotalRecipes  int      `json:"total_recipes"`
		ExpiringItems int      `json:"expiring_items"`
	}
)
