package scan

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carnegieJiang/pocketfridge/domain"
)

func TestCleanJSONContent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"clean json untouched",
			`{"new_foods": []}`,
			`{"new_foods": []}`,
		},
		{
			"markdown fences stripped",
			"```json\n{\"new_foods\": []}\n```",
			`{"new_foods": []}`,
		},
		{
			"bare fences stripped",
			"```\n{\"new_foods\": []}\n```",
			`{"new_foods": []}`,
		},
		{
			"surrounding chatter trimmed to the object",
			"Here is the result:\n{\"new_foods\": []}\nHope that helps!",
			`{"new_foods": []}`,
		},
		{
			"no object at all passes through",
			"sorry, I cannot read this image",
			"sorry, I cannot read this image",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanJSONContent(tt.input))
		})
	}
}

func TestExtractorResponseShape(t *testing.T) {
	content := cleanJSONContent("```json\n" + `{
		"new_foods": [
			{"food_type": "Carrot", "quantity": 10, "price": 3.99, "category": "vegetable", "date_added": "2026-02-10", "date_expiring": "2026-02-17", "icon_name": "carrot"},
			{"food_type": "Mystery Sauce", "quantity": 1, "price": null, "category": "condiment", "date_added": "2026-02-10", "date_expiring": null, "icon_name": null}
		]
	}` + "\n```")

	var parsed struct {
		NewFoods []domain.ScannedItem `json:"new_foods"`
	}
	require.NoError(t, json.Unmarshal([]byte(content), &parsed))
	require.Len(t, parsed.NewFoods, 2)

	carrot := parsed.NewFoods[0]
	assert.Equal(t, "Carrot", carrot.FoodType)
	assert.Equal(t, 10.0, carrot.Quantity)
	require.NotNil(t, carrot.Price)
	assert.InDelta(t, 3.99, *carrot.Price, 1e-9)

	sauce := parsed.NewFoods[1]
	assert.Nil(t, sauce.Price, "null price stays null, not zero")
	assert.Nil(t, sauce.DateExpiring)
	assert.Nil(t, sauce.IconName)
}
