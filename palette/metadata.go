/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package palette

import (
	"fmt"
	"unicode/utf16"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.AmericanEnglish)

// Metadata is the human-facing name and blurb for a puzzle.
type Metadata struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	BestUsedFor []string `json:"bestUsedFor"`
}

// SchemeInfo explains a harmony to players.
type SchemeInfo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ColorTheory string `json:"colorTheory"`
}

var descriptors = map[string][]string{
	"warm":    {"Sunset", "Ember", "Flame", "Desert", "Autumn"},
	"cool":    {"Ocean", "Glacier", "Twilight", "Arctic", "Stream"},
	"pastel":  {"Dream", "Whisper", "Cloud", "Cotton", "Soft"},
	"jewel":   {"Royal", "Treasure", "Crown", "Gemstone", "Luxe"},
	"earth":   {"Clay", "Terra", "Moss", "Stone", "Forest"},
	"vibrant": {"Electric", "Neon", "Pop", "Vivid", "Burst"},
	"muted":   {"Zen", "Calm", "Subtle", "Quiet", "Serene"},
	"forest":  {"Grove", "Woodland", "Canopy", "Fern", "Spruce"},
	"sunset":  {"Golden", "Honey", "Amber", "Glow", "Radiance"},
	"ocean":   {"Abyss", "Depth", "Wave", "Tide", "Reef"},
	"berry":   {"Berry", "Plum", "Wine", "Fruit", "Harvest"},
	"citrus":  {"Citrus", "Zest", "Bright", "Fresh", "Squeeze"},
}

var schemeModifiers = map[string]string{
	"complementary":       "Contrast",
	"triadic":             "Trinity",
	"analogous":           "Harmony",
	"split-complementary": "Split",
	"tetradic":            "Quartet",
	"square":              "Balance",
	"rectangular":         "Duality",
	"accent":              "Accent",
}

var usages = map[string][]string{
	"warm":    {"Brand design", "Food & beverage", "Energy & sports"},
	"cool":    {"Tech & innovation", "Health & wellness", "Corporate"},
	"pastel":  {"Baby products", "Beauty & cosmetics", "Spring campaigns"},
	"jewel":   {"Luxury brands", "Fashion", "Premium products"},
	"earth":   {"Natural products", "Eco-friendly brands", "Artisanal goods"},
	"vibrant": {"Youth marketing", "Entertainment", "Creative industries"},
	"muted":   {"Minimalist design", "Scandinavian aesthetics", "Professional services"},
	"forest":  {"Outdoor brands", "Environmental causes", "Nature products"},
	"sunset":  {"Premium brands", "Autumn campaigns", "Harvest themes"},
	"ocean":   {"Marine businesses", "Travel & tourism", "Wellness brands"},
	"berry":   {"Food & beverage", "Beauty products", "Feminine brands"},
	"citrus":  {"Summer campaigns", "Fresh brands", "Energy products"},
}

var defaultUsages = []string{"General design", "Creative projects", "Visual communication"}

var schemeInfo = map[string]SchemeInfo{
	"complementary": {
		Title:       "Complementary",
		Description: "Colors opposite each other on the color wheel.",
		ColorTheory: "Complementary colors create maximum contrast and visual tension. When placed side by side, they make each other appear more vibrant. Perfect for drawing attention and creating dynamic designs.",
	},
	"triadic": {
		Title:       "Triadic",
		Description: "Three colors evenly spaced around the color wheel.",
		ColorTheory: "Triadic schemes offer vibrant, balanced palettes with rich visual contrast. The equal spacing creates harmony while maintaining energy. Popular in playful, bold designs.",
	},
	"analogous": {
		Title:       "Analogous",
		Description: "Colors that sit next to each other on the wheel.",
		ColorTheory: "Analogous palettes are harmonious and pleasing to the eye. They create smooth color transitions and serene atmospheres. One color dominates, the second supports, and the third accents.",
	},
	"split-complementary": {
		Title:       "Split-Complementary",
		Description: "A base color plus the two adjacent to its complement.",
		ColorTheory: "This scheme offers strong visual contrast like complementary colors, but with more nuance. The split provides more variety while maintaining tension. Easier to balance than pure complementary.",
	},
	"tetradic": {
		Title:       "Tetradic (Double-Complementary)",
		Description: "Two pairs of complementary colors.",
		ColorTheory: "Tetradic schemes are rich and complex, offering plenty of color variety. The key is to let one color dominate and balance warm and cool tones. Used in sophisticated, layered designs.",
	},
	"square": {
		Title:       "Square",
		Description: "Four colors evenly spaced around the wheel.",
		ColorTheory: "Square schemes provide perfect balance with four distinct colors. Works best when one color dominates and others accent. Creates vibrant yet balanced compositions.",
	},
	"rectangular": {
		Title:       "Rectangular (Tetradic Rectangle)",
		Description: "Two complementary pairs with unequal spacing.",
		ColorTheory: "Similar to square but with varied spacing, offering more flexibility. Provides multiple layers of contrast and harmony. Great for creating depth and complexity.",
	},
	"accent": {
		Title:       "Accent",
		Description: "A dominant color with strategic accent colors.",
		ColorTheory: "Accent schemes use a primary color family with one or more contrasting colors for emphasis. The accent draws the eye and creates focal points. Essential for guiding visual hierarchy.",
	},
}

// ExplainScheme returns the explanation for scheme. Unknown names get a
// title-cased heading and empty text.
func ExplainScheme(scheme string) SchemeInfo {
	if info, ok := schemeInfo[scheme]; ok {
		return info
	}

	return SchemeInfo{Title: titleCaser.String(scheme)}
}

// Describe names a puzzle. The choice of descriptor and blurb depends only
// on the character codes of date.
func Describe(familyKey, scheme, date string) Metadata {
	seedNum := 0
	for _, unit := range utf16.Encode([]rune(date)) {
		seedNum += int(unit)
	}

	options, ok := descriptors[familyKey]
	if !ok {
		options = []string{"Mystery"}
	}
	descriptor := options[seedNum%len(options)]

	name := descriptor
	if modifier := schemeModifiers[scheme]; modifier != "" {
		name = descriptor + " " + modifier
	}

	bestUsedFor, ok := usages[familyKey]
	if !ok {
		bestUsedFor = defaultUsages
	}

	blurbs := []string{
		fmt.Sprintf("A %s palette with %s harmony.", familyKey, scheme),
		fmt.Sprintf("%s tones arranged in %s formation.", descriptor, scheme),
		fmt.Sprintf("%s palette with %s character.", ExplainScheme(scheme).Title, familyKey),
	}

	return Metadata{
		Name:        name,
		Description: blurbs[seedNum%len(blurbs)],
		BestUsedFor: append([]string(nil), bestUsedFor...),
	}
}
