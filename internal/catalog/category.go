package catalog

import (
	"sort"
	"strings"
	"unicode"
)

const (
	CategoryGeneral     = "General"
	CategoryElectronics = "Electronics"
	CategoryFurniture   = "Furniture"
	CategoryApparel     = "Apparel"
	CategoryFood        = "Food"
	CategoryTools       = "Tools"

	similarityThreshold = 0.6
)

// keyword hits are weighted, strong product nouns count more than accessories
var categoryKeywords = map[string]map[string]float64{
	CategoryElectronics: {
		"laptop": 2, "phone": 2, "tablet": 2, "monitor": 2, "router": 2,
		"keyboard": 1.5, "charger": 1.5, "headphones": 1.5, "scanner": 1.5,
		"cable": 1, "mouse": 1, "battery": 1, "usb": 1,
	},
	CategoryFurniture: {
		"chair": 2, "desk": 2, "shelf": 2, "cabinet": 2, "sofa": 2, "pallet": 1.5,
		"table": 1.5, "stool": 1.5, "rack": 1,
	},
	CategoryApparel: {
		"shirt": 2, "jacket": 2, "shoe": 2, "shoes": 2, "boots": 2, "vest": 1.5,
		"socks": 1.5, "gloves": 1, "hat": 1,
	},
	CategoryFood: {
		"coffee": 2, "rice": 2, "flour": 2, "sugar": 2, "tea": 1.5, "snack": 1.5,
		"juice": 1.5, "water": 1,
	},
	CategoryTools: {
		"drill": 2, "hammer": 2, "wrench": 2, "screwdriver": 2, "pliers": 2,
		"saw": 1.5, "ladder": 1.5, "tape": 1, "tool": 1,
	},
}

// observed means replace these once a category has products
var defaultCategoryWeights = map[string]float64{
	CategoryElectronics: 1.5,
	CategoryFurniture:   18,
	CategoryApparel:     0.6,
	CategoryFood:        1.0,
	CategoryTools:       2.5,
	CategoryGeneral:     1.0,
}

var sortedCategories = func() []string {
	names := make([]string, 0, len(categoryKeywords))
	for name := range categoryKeywords {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}()

// Tokenize lower-cases a product name and splits it on anything that is not a letter or digit.
func Tokenize(name string) []string {
	return strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// categoryByKeywords returns the category with the highest weighted keyword score.
func categoryByKeywords(tokens []string) (string, bool) {
	best, bestScore := "", 0.0
	for _, category := range sortedCategories {
		keywords := categoryKeywords[category]
		score := 0.0
		for _, tok := range tokens {
			score += keywords[tok]
		}
		if score > bestScore {
			best, bestScore = category, score
		}
	}
	return best, bestScore > 0
}

// Jaccard is |A∩B| / |A∪B| over token sets.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	setA := make(map[string]struct{}, len(a))
	for _, t := range a {
		setA[t] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, t := range b {
		setB[t] = struct{}{}
	}

	inter := 0
	for t := range setA {
		if _, ok := setB[t]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union)
}

func defaultWeight(category string) float64 {
	if w, ok := defaultCategoryWeights[category]; ok {
		return w
	}
	return defaultCategoryWeights[CategoryGeneral]
}
