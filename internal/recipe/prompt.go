package recipe

import (
	"fmt"
	"strings"
	"time"

	"github.com/zombor/smart-pantry/internal/pantry"
)

const noUsableIngredients = "no usable ingredients"

// UsableIngredients names the items that can still be cooked with today:
// those with no expiry date or one that has not passed. Items with a
// malformed expiry date are left out.
func UsableIngredients(items []pantry.Item, today time.Time) []string {
	today = pantry.Day(today)

	names := make([]string, 0, len(items))
	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			continue
		}
		if item.ExpiryDate != "" {
			expiry, ok := pantry.ParseDate(item.ExpiryDate)
			if !ok || expiry.Before(today) {
				continue
			}
		}
		names = append(names, name)
	}
	return names
}

// BuildPrompt writes the system prompt that seeds a recipe conversation
func BuildPrompt(items []pantry.Item, prefs Preferences, today time.Time) string {
	prefs = prefs.Normalize()

	ingredients := strings.Join(UsableIngredients(items, today), ", ")
	if ingredients == "" {
		ingredients = noUsableIngredients
	}

	var ingredientNote string
	switch {
	case prefs.ReadyToShop && ingredients != noUsableIngredients:
		ingredientNote = fmt.Sprintf("Prefer using my pantry items: %s, but you can include others I can shop for.", ingredients)
	case prefs.ReadyToShop:
		ingredientNote = "You can include any common ingredients I can shop for. My pantry is currently empty or unsuitable."
	default:
		ingredientNote = fmt.Sprintf("Only use the following pantry items: %s.", ingredients)
	}

	allergies := prefs.Allergies
	if allergies == "" {
		allergies = "none"
	}

	return fmt.Sprintf(`You are a helpful cooking assistant.
Suggest a %s-friendly %s %s recipe that takes under %d minutes.
%s
My allergies are: %s.

Respond conversationally and ask me if I like the suggestion or want a different one.`,
		prefs.Diet, prefs.Cuisine, prefs.MealType, prefs.MaxMinutes, ingredientNote, allergies)
}

// Filename is the download name of a recipe saved on today
func Filename(today time.Time) string {
	return fmt.Sprintf("recipe_%s.txt", pantry.FormatDate(today))
}
