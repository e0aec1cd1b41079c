package textparse

import "strings"

// Hotel is one lodging recommendation extracted from agent prose.
type Hotel struct {
	Name        string `bson:"name" json:"name"`
	PriceRange  string `bson:"price_range,omitempty" json:"price_range,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// Restaurant is one dining recommendation extracted from agent prose.
type Restaurant struct {
	Name        string `bson:"name" json:"name"`
	CuisineType string `bson:"cuisine_type,omitempty" json:"cuisine_type,omitempty"`
	PriceRange  string `bson:"price_range,omitempty" json:"price_range,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

const maxRecommendations = 10

// HotelsRestaurants splits agent prose into hotel and restaurant sections
// and extracts named recommendations from each.
func HotelsRestaurants(content string) ([]Hotel, []Restaurant) {
	hotelSection := sectionAfter(content, "hotel", "accommodation", "stay")
	restaurantSection := sectionAfter(content, "restaurant", "dining", "food")

	// Without headings, scan the whole body for both.
	if hotelSection == "" && restaurantSection == "" {
		hotelSection = content
		restaurantSection = content
	}

	hotels := make([]Hotel, 0)
	for _, rec := range parseRecommendations(hotelSection) {
		hotels = append(hotels, Hotel{
			Name:        rec.name,
			PriceRange:  rec.price,
			Description: rec.detail,
		})
		if len(hotels) >= maxRecommendations {
			break
		}
	}

	restaurants := make([]Restaurant, 0)
	for _, rec := range parseRecommendations(restaurantSection) {
		restaurants = append(restaurants, Restaurant{
			Name:        rec.name,
			CuisineType: rec.cuisine,
			PriceRange:  rec.price,
			Description: rec.detail,
		})
		if len(restaurants) >= maxRecommendations {
			break
		}
	}
	return hotels, restaurants
}

type recommendation struct {
	name    string
	price   string
	cuisine string
	detail  string
}

var cuisineWords = []string{"cuisine", "indian", "italian", "chinese", "japanese", "continental", "thai", "mexican", "french", "seafood", "vegetarian"}

func parseRecommendations(section string) []recommendation {
	var recs []recommendation
	var current *recommendation

	for _, line := range nonEmptyLines(section) {
		if isRecommendationHeader(line) {
			if current != nil && current.name != "" {
				recs = append(recs, *current)
			}
			current = &recommendation{name: extractName(line)}
			// "Name - Italian cuisine" style headers carry the descriptor inline.
			if rest := headerRemainder(line); rest != "" {
				if containsCuisine(rest) {
					current.cuisine = rest
				} else {
					current.detail = rest
				}
			}
			if price := ExtractPrice(line); price != "" {
				current.price = price
			}
			continue
		}
		if current == nil {
			continue
		}
		if price := ExtractPrice(line); price != "" && current.price == "" {
			current.price = price
		}
		if current.cuisine == "" && containsCuisine(line) {
			current.cuisine = cleanLine(line)
		}
		if current.detail == "" && !strings.ContainsAny(line, "₹$") {
			current.detail = cleanLine(line)
		}
	}
	if current != nil && current.name != "" {
		recs = append(recs, *current)
	}
	return recs
}

func isRecommendationHeader(line string) bool {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "**") || strings.HasPrefix(trimmed, "###") {
		return true
	}
	return len(trimmed) > 1 && trimmed[0] >= '1' && trimmed[0] <= '9' && trimmed[1] == '.'
}

func extractName(line string) string {
	name := stripNumbering(cleanLine(line))
	if idx := strings.IndexAny(name, ":-–"); idx > 0 {
		name = strings.TrimSpace(name[:idx])
	}
	return name
}

// headerRemainder returns the descriptor text following the name separator
// on a recommendation header, or "".
func headerRemainder(line string) string {
	text := stripNumbering(cleanLine(line))
	idx := strings.IndexAny(text, ":-–")
	if idx < 0 {
		return ""
	}
	return strings.TrimLeft(strings.TrimSpace(text[idx:]), ":-– ")
}

func stripNumbering(text string) string {
	if len(text) > 1 && text[0] >= '1' && text[0] <= '9' && text[1] == '.' {
		return strings.TrimSpace(text[2:])
	}
	return text
}

func containsCuisine(text string) bool {
	lower := strings.ToLower(text)
	for _, cw := range cuisineWords {
		if strings.Contains(lower, cw) {
			return true
		}
	}
	return false
}
