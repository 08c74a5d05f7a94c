package analytics

// DefaultIcon is used for categories without a dedicated icon.
const DefaultIcon = "Utensils"

var categoryIcons = map[string]string{
	"Main Course":  "UtensilsCrossed",
	"South Indian": "ChefHat",
	"Starter":      "Pizza",
	"Chinese":      "Pizza",
	"Fast Food":    "Pizza",
	"Dessert":      "IceCream",
	"Beverage":     "Coffee",
	"Salad":        "UtensilsCrossed",
}

// IconFor maps a menu category to the dashboard icon name.
func IconFor(category string) string {
	if icon, ok := categoryIcons[category]; ok {
		return icon
	}
	return DefaultIcon
}
