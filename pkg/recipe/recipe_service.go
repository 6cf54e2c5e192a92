package recipe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carnegieJiang/pocketfridge/domain"
	"github.com/carnegieJiang/pocketfridge/entities"
	"github.com/carnegieJiang/pocketfridge/internal/utils"
	"github.com/carnegieJiang/pocketfridge/pkg/fridge"
)

type (
	RecipeService interface {
		GenerateRecipes(ctx context.Context, req domain.GenerateRecipesRequest) (domain.GenerateRecipesResponse, error)
		GetRecipeDetail(ctx context.Context, recipeID string) (domain.Recipe, error)
		ListRecipes(ctx context.Context) ([]domain.Recipe, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		fridgeService    fridge.FridgeService
		client           *http.Client
	}
)

func NewRecipeService(recipeRepository RecipeRepository, fridgeService fridge.FridgeService) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		fridgeService:    fridgeService,
		client:           &http.Client{Timeout: 30 * time.Second},
	}
}

// GenerateRecipes sends the bounded, soonest-expiring-first projection of
// the fridge to the chat completion API and parses the recipes it returns.
// An empty fridge yields ErrNoIngredients; an empty generation result is a
// legitimate empty list.
func (s *recipeService) GenerateRecipes(ctx context.Context, req domain.GenerateRecipesRequest) (domain.GenerateRecipesResponse, error) {
	count := req.Count
	if count <= 0 {
		count = 4
	}

	projection, err := s.fridgeService.RecipeProjection(ctx, fridge.RecipeProjectionLimit)
	if err != nil {
		return domain.GenerateRecipesResponse{}, err
	}
	if len(projection) == 0 {
		return domain.GenerateRecipesResponse{}, domain.ErrNoIngredients
	}

	expiring, err := s.fridgeService.ExpiringSoon(ctx, 7)
	if err != nil {
		return domain.GenerateRecipesResponse{}, err
	}

	recipes, err := s.generateFromProjection(ctx, projection, count)
	if err != nil {
		return domain.GenerateRecipesResponse{}, err
	}

	for _, r := range recipes {
		ingredientsJSON, _ := json.Marshal(r.Ingredients)
		stepsJSON, _ := json.Marshal(r.Steps)
		_ = s.recipeRepository.CreateRecipe(ctx, &entities.Recipe{
			ID:            uuid.MustParse(r.ID),
			Title:         r.Title,
			WhyThisRecipe: r.WhyThisRecipe,
			Ingredients:   string(ingredientsJSON),
			Steps:         string(stepsJSON),
			TimeMinutes:   r.TimeMinutes,
			Difficulty:    r.Difficulty,
			IsGenerated:   true,
			CreatedAt:     r.CreatedAt,
		})
	}

	return domain.GenerateRecipesResponse{
		Recipes:       recipes,
		TotalRecipes:  len(recipes),
		ExpiringItems: len(expiring),
	}, nil
}

func (s *recipeService) generateFromProjection(ctx context.Context, projection []domain.FridgeItemProjection, count int) ([]domain.Recipe, error) {
	apiKey := utils.GetConfig("CHAT_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("CHAT_API_KEY is not configured")
	}
	baseURL := utils.GetConfig("CHAT_API_URL")
	if baseURL == "" {
		return nil, fmt.Errorf("CHAT_API_URL is not configured")
	}
	model := utils.GetConfig("CHAT_MODEL")
	if model == "" {
		return nil, fmt.Errorf("CHAT_MODEL is not configured")
	}

	inventoryJSON, _ := json.Marshal(projection)

	systemPrompt := fmt.Sprintf(
		"You are a chef assistant. Generate %d creative recipes using the provided fridge inventory. "+
			"Prioritize ingredients expiring soon. Return ONLY valid JSON: "+
			`{"recipes": [{"title": "Recipe Title", "why_this_recipe": "Brief reason", `+
			`"ingredients_used": [{"name": "Chicken", "quantity": "1 lb"}], `+
			`"steps": ["Step 1", "Step 2"], "time_minutes": 30, "difficulty": "medium"}]} `+
			"Do not use markdown.",
		count,
	)

	requestBody := map[string]interface{}{
		"model": model,
		"messages": []map[string]interface{}{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": fmt.Sprintf("Here is my fridge inventory: %s", string(inventoryJSON))},
		},
		"temperature": 0.7,
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", strings.TrimSuffix(baseURL, "/")+"/chat/completions", bytes.NewBuffer(requestJSON))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("chat API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var chatResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, err
	}
	if len(chatResp.Choices) == 0 {
		return nil, domain.ErrChatAPIFailed
	}

	content := chatResp.Choices[0].Message.Content
	content = strings.ReplaceAll(content, "```json", "")
	content = strings.ReplaceAll(content, "```", "")
	content = strings.TrimSpace(content)

	var parsed struct {
		Recipes []struct {
			Title         string                    `json:"title"`
			WhyThisRecipe string                    `json:"why_this_recipe"`
			Ingredients   []domain.RecipeIngredient `json:"ingredients_used"`
			Steps         []string                  `json:"steps"`
			TimeMinutes   int                       `json:"time_minutes"`
			Difficulty    string                    `json:"difficulty"`
		} `json:"recipes"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, domain.ErrMalformedRecipe
	}

	recipes := make([]domain.Recipe, 0, len(parsed.Recipes))
	for _, raw := range parsed.Recipes {
		if raw.Title == "" {
			continue
		}
		difficulty := raw.Difficulty
		if difficulty == "" {
			difficulty = "medium"
		}
		recipes = append(recipes, domain.Recipe{
			ID:            uuid.New().String(),
			Title:         raw.Title,
			WhyThisRecipe: raw.WhyThisRecipe,
			Ingredients:   raw.Ingredients,
			Steps:         raw.Steps,
			TimeMinutes:   raw.TimeMinutes,
			Difficulty:    difficulty,
			CreatedAt:     time.Now(),
		})
	}
	return recipes, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string) (domain.Recipe, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return domain.Recipe{}, err
	}
	return toRecipeResponse(recipe), nil
}

// ListRecipes returns previously generated recipes, newest first.
func (s *recipeService) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	stored, err := s.recipeRepository.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Recipe, 0, len(stored))
	for _, recipe := range stored {
		out = append(out, toRecipeResponse(recipe))
	}
	return out, nil
}

func toRecipeResponse(recipe *entities.Recipe) domain.Recipe {
	var ingredients []domain.RecipeIngredient
	if err := json.Unmarshal([]byte(recipe.Ingredients), &ingredients); err != nil {
		ingredients = nil
	}
	var steps []string
	if err := json.Unmarshal([]byte(recipe.Steps), &steps); err != nil {
		steps = nil
	}

	return domain.Recipe{
		ID:            recipe.ID.String(),
		Title:         recipe.Title,
		WhyThisRecipe: recipe.WhyThisRecipe,
		Ingredients:   ingredients,
		Steps:         steps,
		TimeMinutes:   recipe.TimeMinutes,
		Difficulty:    recipe.Difficulty,
		CreatedAt:     recipe.CreatedAt,
	}
}
