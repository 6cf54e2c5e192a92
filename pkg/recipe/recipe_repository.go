package recipe

import (
	"context"
	"sort"
	"sync"

	"github.com/carnegieJiang/pocketfridge/domain"
	"github.com/carnegieJiang/pocketfridge/entities"
)

type (
	// RecipeRepository retains generated recipes for detail lookup. Like
	// the fridge itself, recipes live in process memory only.
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		ListRecipes(ctx context.Context) ([]*entities.Recipe, error)
	}

	recipeRepository struct {
		mu      sync.RWMutex
		recipes map[string]*entities.Recipe
	}
)

func NewRecipeRepository() RecipeRepository {
	return &recipeRepository{
		recipes: make(map[string]*entities.Recipe),
	}
}

func (r *recipeRepository) CreateRecipe(_ context.Context, recipe *entities.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recipes[recipe.ID.String()] = recipe
	return nil
}

func (r *recipeRepository) GetRecipeByID(_ context.Context, id string) (*entities.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	recipe, ok := r.recipes[id]
	if !ok {
		return nil, domain.ErrRecipeNotFound
	}
	c := *recipe
	return &c, nil
}

func (r *recipeRepository) ListRecipes(_ context.Context) ([]*entities.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entities.Recipe, 0, len(r.recipes))
	for _, recipe := range r.recipes {
		c := *recipe
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
