package nutrition

import "strings"

// NamesMatch reports whether two ingredient names refer to the same item.
// Comparison is case-insensitive and whitespace-trimmed: exact equality,
// substring containment in either direction, then token overlap where any
// token longer than two characters contains or is contained by a token of
// the other name.
//
// The heuristic is intentionally lossy. Short common tokens over-match
// ("egg" hits "eggplant", "milk" hits "buttermilk"); the tests pin that
// behavior so it does not change by accident.
func NamesMatch(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}

	for _, aw := range strings.Fields(a) {
		if len(aw) <= 2 {
			continue
		}
		for _, bw := range strings.Fields(b) {
			if len(bw) <= 2 {
				continue
			}
			if strings.Contains(aw, bw) || strings.Contains(bw, aw) {
				return true
			}
		}
	}
	return false
}

// MatchIngredient resolves an AI-emitted ingredient name against the scanned
// pool. The first pool entry that matches wins; ties are resolved by pool
// order. Returns nil when nothing matches.
func MatchIngredient(name string, pool []Ingredient) *Ingredient {
	for i := range pool {
		if NamesMatch(name, pool[i].Name) {
			return &pool[i]
		}
	}
	return nil
}

// matchRecipeIngredient is the reverse lookup: the first recipe ingredient
// that matches a scanned ingredient's name.
func matchRecipeIngredient(name string, recipeIngredients []RecipeIngredient) *RecipeIngredient {
	for i := range recipeIngredients {
		if NamesMatch(recipeIngredients[i].Name, name) {
			return &recipeIngredients[i]
		}
	}
	return nil
}
