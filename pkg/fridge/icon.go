package fridge

import "strings"

// NormalizeIdentity lower-cases and trims a free-text food name. It is the
// basis of both merge matching and icon lookup, so it must stay a pure
// function.
func NormalizeIdentity(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// IdentityKey derives the merge key for one inventory lot. Repeat purchases
// of the same food on different days stay distinct lots, so per-lot
// expiration dates survive; duplicate rows from the same shopping day merge.
func IdentityKey(name, dateAdded string) string {
	return NormalizeIdentity(name) + "|" + dateAdded
}

// iconTable maps normalized food names to the icon tags the client ships.
// Exact normalized match only; no fuzzy lookup.
var iconTable = map[string]string{
	// vegetables
	"tomato":            "tomato",
	"tomatoes":          "tomato",
	"carrot":            "carrot",
	"carrots":           "carrot",
	"broccoli":          "broccoli",
	"cucumber":          "cucumber",
	"cucumbers":         "cucumber",
	"potato":            "potato",
	"potatoes":          "potato",
	"garlic":            "garlic",
	"shallot":           "shallot",
	"shallots":          "shallot",
	"jalapeno":          "jalapeno",
	"jalapenos":         "jalapeno",
	"green bean":        "greenbean",
	"green beans":       "greenbean",
	"green bell pepper": "greenbellpepper",
	"red bell pepper":   "redbellpepper",

	// fruits
	"lime":  "lime",
	"limes": "lime",

	// dairy
	"milk":        "milk",
	"2% milk":     "milk",
	"whole milk":  "milk",
	"butter":      "butter",
	"yogurt":      "yogurt",
	"heavy cream": "heavycream",
	"parmesan":    "parmesan",
	"egg":         "egg",
	"eggs":        "egg",

	// meat and seafood
	"chicken breast":    "chickenbreast",
	"chicken broth":     "chickenbroth",
	"steak":             "beefsteak",
	"beef steak":        "beefsteak",
	"ribeye steak":      "beefsteak",
	"impossible burger": "impossibleburger",
	"salmon":            "salmon",
	"shrimp":            "shrimp",

	// grains
	"spaghetti":   "spaghetti",
	"rigatoni":    "rigatoni",
	"bread":       "wheatbread",
	"wheat bread": "wheatbread",

	// condiments
	"ketchup":       "ketchup",
	"peanut butter": "peanutbutter",
	"tomato paste":  "tomatopaste",
}

// ResolveIcon looks up the display icon for a food name. A miss is a normal
// outcome, not an error: callers fall back to a generic placeholder.
func ResolveIcon(name string) (bool, *string) {
	tag, ok := iconTable[NormalizeIdentity(name)]
	if !ok {
		return false, nil
	}
	return true, &tag
}
