package scan

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/carnegieJiang/pocketfridge/domain"
	"github.com/carnegieJiang/pocketfridge/internal/utils"
)

// Extractor turns a receipt image into candidate food items. The AI service
// behind it is an opaque collaborator: it may legitimately find nothing, in
// which case the result is an empty list, not an error.
type Extractor interface {
	ExtractItems(ctx context.Context, image []byte, mimeType string) ([]domain.ScannedItem, error)
}

type chatExtractor struct {
	client *http.Client
}

func NewChatExtractor() Extractor {
	return &chatExtractor{
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

const extractorPrompt = `You are a smart fridge assistant. Analyze the receipt image.
Extract every food item found. If the item doesn't seem like food, don't add it to the list.
Assume the quantity based on the weight and price.
Return ONLY a valid JSON object with this EXACT structure:
{"new_foods": [{"food_type": "Carrot", "quantity": 10, "price": 3.99, "category": "vegetable", "date_added": "2026-02-10", "date_expiring": "2026-02-17", "icon_name": "carrot"}]}
The category can only be one of: vegetable, fruit, carbs, meat, seafood, dairy, condiment, or other.
Use the current date for date_added and estimate date_expiring from how long the food lasts in a fridge.
price and date_expiring may be null when unknown. Do not include markdown formatting.`

func (e *chatExtractor) ExtractItems(ctx context.Context, image []byte, mimeType string) ([]domain.ScannedItem, error) {
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

	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	requestBody := map[string]interface{}{
		"model": model,
		"messages": []map[string]interface{}{
			{
				"role":    "system",
				"content": extractorPrompt,
			},
			{
				"role": "user",
				"content": []map[string]interface{}{
					{"type": "text", "text": "Scan this receipt."},
					{"type": "image_url", "image_url": map[string]string{"url": dataURL}},
				},
			},
		},
		"temperature": 0.1,
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", strings.TrimSuffix(baseURL, "/")+"/chat/completions", bytes.NewBuffer(requestJSON))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := e.client.Do(req)
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
		return nil, domain.ErrExtractionFailed
	}

	content := cleanJSONContent(chatResp.Choices[0].Message.Content)

	var parsed struct {
		NewFoods []domain.ScannedItem `json:"new_foods"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse extractor response: %w", err)
	}

	return parsed.NewFoods, nil
}

// cleanJSONContent strips the markdown fences and surrounding chatter the
// model sometimes adds despite instructions.
func cleanJSONContent(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && start < end {
		text = text[start : end+1]
	}
	return text
}
