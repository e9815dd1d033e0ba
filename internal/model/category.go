package model

// CategoryOther is the fallback bucket for anything outside the fixed set.
const CategoryOther = "Other"

// Categories is the fixed set of category labels, in display order.
var Categories = []string{
	"Entertainment",
	"Productivity",
	"Music",
	"Video",
	"News",
	"Fitness",
	"Education",
	"Utilities",
	CategoryOther,
}

var categoryColors = map[string]string{
	"Entertainment": "#FF6B6B",
	"Productivity":  "#4ECDC4",
	"Music":         "#45B7D1",
	"Video":         "#96CEB4",
	"News":          "#FECA57",
	"Fitness":       "#FF9FF3",
	"Education":     "#54A0FF",
	"Utilities":     "#5F27CD",
	CategoryOther:   "#C44569",
}

// CategoryColor maps a category label to its display color. It is total:
// unknown labels get the Other color rather than an empty string.
func CategoryColor(category string) string {
	if color, ok := categoryColors[category]; ok {
		return color
	}
	return categoryColors[CategoryOther]
}

// IsKnownCategory reports whether the label belongs to the fixed set.
func IsKnownCategory(category string) bool {
	_, ok := categoryColors[category]
	return ok
}
