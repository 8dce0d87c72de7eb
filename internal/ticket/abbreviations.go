package ticket

import "strings"

// abbreviations maps lowercased modifier phrases to the short codes the
// kitchen staff read on tickets. Several distinct phrasings intentionally
// map to the same code (the POS and the admin menu editor spell some combo
// options differently). This table is the source of truth; changing an
// entry changes what the kitchen sees.
var abbreviations = map[string]string{
	"slaw":        "S",
	"onion":       "O",
	"mayo":        "M",
	"ketchup":     "K",
	"mustard":     "MUS",
	"lettuce":     "L",
	"tomato":      "T",
	"pickles":     "P",
	"every":       "EVERY",
	"everything":  "EVERY",
	"no bun":      "NO BUN",
	"texas toast": "Texas",
	"bbq sauce":   "BBQ",

	"make a meal - 1/2 onionring+d": "Meal-1/2 O-Ring",
	"onion ring+soft drink":         "Meal-1/2 O-Ring",
	"make a meal-1/2ff+d":           "Meal-1/2 FF",
	"1/2frenchfries+softdrink":      "Meal-1/2 FF",

	"extra slaw":         "X-Slaw",
	"extra lettuce":      "X-L",
	"extra tomato":       "X-T",
	"extra pickles":      "X-P",
	"add bacon":          "Add BAC",
	"add chili":          "Add Chili",
	"add grilled onions": "Add G-Onion",
	"add cheese":         "Add Chese",
	"extra cheese":       "Extra Chese",
	"extra patty":        "X-Patty",

	"italian": "Italian",
	"ranch":   "Ranch",
	"wheat":   "Wheat",
	"white":   "White",
	"malt":    "Malt",
	"to go":   "TO GO",
	"dine in": "Dine In",
}

// Abbreviate shortens a modifier name for kitchen tickets. Dictionary hits
// win over everything else; otherwise a leading "no "/"add " is normalized
// to an uppercase prefix and the remainder gets its first letter
// capitalized. Lossy on purpose — this is a display transform for one
// restaurant's kitchen, not a general abbreviator.
func Abbreviate(name string) string {
	mod := strings.TrimSpace(name)
	if mod == "" {
		return ""
	}

	lower := strings.ToLower(mod)
	if abbr, ok := abbreviations[lower]; ok {
		return abbr
	}

	prefix := ""
	switch {
	case strings.HasPrefix(lower, "no "):
		prefix = "NO "
		mod = strings.TrimSpace(mod[3:])
	case strings.HasPrefix(lower, "add "):
		prefix = "ADD "
		mod = strings.TrimSpace(mod[4:])
	}

	return prefix + capitalizeFirst(mod)
}

func capitalizeFirst(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
