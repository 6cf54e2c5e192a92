package entities

// Category values recognised by the fridge. Anything else normalizes to
// CategoryOther before it reaches the store.
const (
	CategoryVegetable = "vegetable"
	CategoryFruit     = "fruit"
	CategoryGrain     = "grain"
	CategoryMeat      = "meat"
	CategorySeafood   = "seafood"
	CategoryDairy     = "dairy"
	CategoryOther     = "other"
)

// CategoryOrder is the fixed display order used when grouping the fridge.
var CategoryOrder = []string{
	CategoryVegetable,
	CategoryFruit,
	CategoryGrain,
	CategoryMeat,
	CategorySeafood,
	CategoryDairy,
	CategoryOther,
}

// FridgeItem is one canonical food item in the household inventory.
// IdentityKey is derived from the food name plus the date it was added and is
// the merge key for ingestion; at most one item exists per key.
type FridgeItem struct {
	ID           string   `json:"id"`
	IdentityKey  string   `json:"-"`
	FoodType     string   `json:"food_type"`
	Quantity     float64  `json:"quantity"`
	Price        *float64 `json:"price"`
	Category     string   `json:"category"`
	DateAdded    string   `json:"date_added"`
	DateExpiring *string  `json:"date_expiring"`
	HasIcon      bool     `json:"has_icon"`
	IconName     *string  `json:"icon_name"`
}
