// Package recipe builds recipe prompts from the pantry and runs the recipe
// conversation.
package recipe

import "strings"

const (
	minCookMinutes = 5
	maxCookMinutes = 240
)

// Cuisines offered by the preference form
var Cuisines = []string{"Any", "Indian", "Italian", "Mexican", "Asian", "Middle Eastern"}

// MealTypes offered by the preference form
var MealTypes = []string{"Breakfast", "Lunch", "Dinner", "Snack"}

// Preferences are the user's recipe filters
type Preferences struct {
	Cuisine     string `json:"cuisine"`
	MealType    string `json:"meal_type"`
	Diet        string `json:"diet"`
	Allergies   string `json:"allergies"`
	MaxMinutes  int    `json:"max_minutes"`
	ReadyToShop bool   `json:"ready_to_shop"`
}

// DefaultPreferences returns the form's initial values
func DefaultPreferences() Preferences {
	return Preferences{
		Cuisine:    "Any",
		MealType:   "Dinner",
		Diet:       "None",
		MaxMinutes: 30,
	}
}

// Normalize fills blanks with defaults and clamps the cooking time
func (p Preferences) Normalize() Preferences {
	def := DefaultPreferences()

	p.Cuisine = strings.TrimSpace(p.Cuisine)
	if p.Cuisine == "" {
		p.Cuisine = def.Cuisine
	}
	p.MealType = strings.TrimSpace(p.MealType)
	if p.MealType == "" {
		p.MealType = def.MealType
	}
	p.Diet = strings.TrimSpace(p.Diet)
	if p.Diet == "" {
		p.Diet = def.Diet
	}
	p.Allergies = strings.TrimSpace(p.Allergies)

	switch {
	case p.MaxMinutes == 0:
		p.MaxMinutes = def.MaxMinutes
	case p.MaxMinutes < minCookMinutes:
		p.MaxMinutes = minCookMinutes
	case p.MaxMinutes > maxCookMinutes:
		p.MaxMinutes = maxCookMinutes
	}
	return p
}
