package entities

import (
	"time"

	"github.com/google/uuid"
)

type Recipe struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	WhyThisRecipe string    `json:"why_this_recipe"`
	Ingredients   string    `json:"ingredients"` // JSON payload from the generator
	Steps         string    `json:"steps"`       // JSON array of step strings
	TimeMinutes   int       `json:"time_minutes"`
	Difficulty    string    `json:"difficulty"`
	IsGenerated   bool      `json:"is_generated"`
	CreatedAt     time.Time `json:"created_at"`
}
