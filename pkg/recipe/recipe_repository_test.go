package recipe

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carnegieJiang/pocketfridge/domain"
	"github.com/carnegieJiang/pocketfridge/entities"
)

func TestRecipeRepository(t *testing.T) {
	repo := NewRecipeRepository()
	ctx := context.Background()

	older := &entities.Recipe{
		ID:        uuid.New(),
		Title:     "Leftover Stir Fry",
		CreatedAt: time.Now().Add(-time.Hour),
	}
	newer := &entities.Recipe{
		ID:        uuid.New(),
		Title:     "Tomato Soup",
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.CreateRecipe(ctx, older))
	require.NoError(t, repo.CreateRecipe(ctx, newer))

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetRecipeByID(ctx, older.ID.String())
		require.NoError(t, err)
		assert.Equal(t, "Leftover Stir Fry", got.Title)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.GetRecipeByID(ctx, uuid.New().String())
		assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
	})

	t.Run("list newest first", func(t *testing.T) {
		list, err := repo.ListRecipes(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Tomato Soup", list[0].Title)
		assert.Equal(t, "Leftover Stir Fry", list[1].Title)
	})

	t.Run("returned recipes are copies", func(t *testing.T) {
		got, err := repo.GetRecipeByID(ctx, newer.ID.String())
		require.NoError(t, err)
		got.Title = "Mutated"

		again, err := repo.GetRecipeByID(ctx, newer.ID.String())
		require.NoError(t, err)
		assert.Equal(t, "Tomato Soup", again.Title)
	})
}
