package recipe

import (
	"strings"

	"github.com/zombor/smart-pantry/internal/pantry"
)

// ingredientMarkers pick out the lines of a recipe that list ingredients
var ingredientMarkers = []string{"ingredient", "- ", ": ", ","}

// IngredientLines returns the recipe lines that look like ingredient lists
func IngredientLines(recipe string) []string {
	lines := make([]string, 0)
	for _, line := range strings.Split(recipe, "\n") {
		lower := strings.ToLower(line)
		for _, marker := range ingredientMarkers {
			if strings.Contains(lower, marker) {
				lines = append(lines, strings.TrimSpace(line))
				break
			}
		}
	}
	return lines
}

// UsedIngredients returns the names of pantry items mentioned on the
// recipe's ingredient lines. Matching ignores case and needs whole words.
func UsedIngredients(recipe string, items []pantry.Item) []string {
	lines := IngredientLines(recipe)
	if len(lines) == 0 {
		return nil
	}
	text := " " + normalizeWords(strings.Join(lines, " ")) + " "

	seen := make(map[string]struct{})
	used := make([]string, 0)
	for _, item := range items {
		name := normalizeWords(item.Name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		if strings.Contains(text, " "+name+" ") {
			seen[name] = struct{}{}
			used = append(used, item.Name)
		}
	}
	return used
}

// normalizeWords lowercases s and collapses punctuation and spacing so
// names can be matched on word boundaries
func normalizeWords(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r > 127)
	})
	return strings.Join(fields, " ")
}
