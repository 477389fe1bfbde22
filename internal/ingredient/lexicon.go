package ingredient

import "sort"

// Category is the structural role an ingredient plays in a recipe. Ratios
// are computed per category, not per ingredient.
type Category string

const (
	CategoryFlour     Category = "flour"
	CategoryLiquid    Category = "liquid"
	CategoryEgg       Category = "egg"
	CategoryFat       Category = "fat"
	CategorySugar     Category = "sugar"
	CategoryLeavening Category = "leavening"
	CategorySeasoning Category = "seasoning"
	CategoryProtein   Category = "protein"
	CategoryVegetable Category = "vegetable"
	CategoryMixIn     Category = "mix-in"
	CategoryOther     Category = "other"
)

// compoundEntry maps a multi-word phrase to its canonical ingredient name.
type compoundEntry struct {
	phrase    string
	canonical string
}

// Lexicon bundles every fixed lookup table the pipeline needs: the compound
// and simple-word ingredient dictionaries, the category table, the name
// strip lists, and the unit-factor and density tables. It is built once and
// shared; all fields are read-only after construction, so a single Lexicon
// is safe for concurrent use by any number of goroutines.
type Lexicon struct {
	compounds []compoundEntry // sorted longest phrase first
	simple    []string
	categories map[string]Category

	prefixes []string
	suffixes []string

	// volumeCups maps a canonical volume unit to cups; weightGrams maps a
	// canonical weight unit to grams. densities maps a canonical ingredient
	// name to grams per cup.
	volumeCups  map[string]float64
	weightGrams map[string]float64
	densities   map[string]float64

	eggGrams float64
}

// DefaultLexicon returns the built-in lookup tables. The compound dictionary
// is sorted by descending phrase length, ties broken lexicographically, so
// that substring matching is deterministic and the most specific phrase
// always wins.
func DefaultLexicon() *Lexicon {
	lx := &Lexicon{
		compounds: []compoundEntry{
			{"olive oil", "olive oil"},
			{"extra virgin olive oil", "olive oil"},
			{"extra-virgin olive oil", "olive oil"},
			{"salted butter", "salted butter"},
			{"unsalted butter", "unsalted butter"},
			{"all purpose flour", "flour"},
			{"all-purpose flour", "flour"},
			{"white sugar", "white sugar"},
			{"brown sugar", "brown sugar"},
			{"cane sugar", "cane sugar"},
			{"light brown sugar", "light brown sugar"},
			{"dark brown sugar", "dark brown sugar"},
			{"packed brown sugar", "brown sugar"},
			{"packed light brown sugar", "light brown sugar"},
			{"packed dark brown sugar", "dark brown sugar"},
			{"granulated sugar", "white sugar"},
			{"confectioners sugar", "powdered sugar"},
			{"powdered sugar", "powdered sugar"},
			{"coconut sugar", "coconut sugar"},
			{"maple sugar", "maple sugar"},
			{"maple syrup", "maple syrup"},
			{"chocolate chips", "chocolate chips"},
			{"baking soda", "baking soda"},
			{"baking powder", "baking powder"},
			{"garlic powder", "garlic"},
			{"smoked paprika", "paprika"},
			{"sea salt", "salt"},
			{"cooking salt", "salt"},
			{"kosher salt", "salt"},
			{"flaky sea salt", "salt"},
			{"black pepper", "pepper"},
			{"active dry yeast", "yeast"},
			{"cream cheese", "cheese"},
			{"parmesan cheese", "cheese"},
			{"vegetable oil", "oil"},
			{"coconut oil", "coconut oil"},
			{"jumbo shrimp", "shrimp"},
			{"fusilli pasta", "pasta"},
			{"corn cobs", "corn"},
			{"whole corn cobs", "corn"},
			{"fresh rosemary", "rosemary"},
			{"chopped fresh rosemary", "rosemary"},
			{"italian seasoning", "seasoning"},
			{"vanilla extract", "vanilla"},
		},
		simple: []string{
			"corn", "parsley", "garlic", "paprika", "salt", "pepper",
			"butter", "pasta", "broccoli", "shrimp", "flour", "milk",
			"cheese", "water", "sugar", "yeast", "rosemary", "vanilla",
			"honey", "cream", "oil", "egg",
		},
		categories: map[string]Category{
			// structure base
			"flour":      CategoryFlour,
			"pasta":      CategoryFlour,
			"bread":      CategoryFlour,
			"cornstarch": CategoryFlour,
			"starch":     CategoryFlour,

			// hydration
			"water": CategoryLiquid,
			"milk":  CategoryLiquid,
			"cream": CategoryLiquid,
			"stock": CategoryLiquid,
			"broth": CategoryLiquid,
			"wine":  CategoryLiquid,
			"beer":  CategoryLiquid,
			"juice": CategoryLiquid,

			"egg":  CategoryEgg,
			"eggs": CategoryEgg,

			// richness and texture
			"butter":          CategoryFat,
			"salted butter":   CategoryFat,
			"unsalted butter": CategoryFat,
			"olive oil":       CategoryFat,
			"oil":             CategoryFat,
			"coconut oil":     CategoryFat,
			"lard":            CategoryFat,
			"shortening":      CategoryFat,
			"cheese":          CategoryFat, // mostly fat for ratio purposes

			// sweetness
			"sugar":              CategorySugar,
			"honey":              CategorySugar,
			"maple syrup":        CategorySugar,
			"brown sugar":        CategorySugar,
			"white sugar":        CategorySugar,
			"cane sugar":         CategorySugar,
			"light brown sugar":  CategorySugar,
			"dark brown sugar":   CategorySugar,
			"powdered sugar":     CategorySugar,
			"confectioners sugar": CategorySugar,
			"coconut sugar":      CategorySugar,
			"maple sugar":        CategorySugar,

			"yeast":         CategoryLeavening,
			"baking soda":   CategoryLeavening,
			"baking powder": CategoryLeavening,

			// flavor, excluded from the primary ratio
			"salt":      CategorySeasoning,
			"pepper":    CategorySeasoning,
			"paprika":   CategorySeasoning,
			"garlic":    CategorySeasoning,
			"seasoning": CategorySeasoning,
			"rosemary":  CategorySeasoning,
			"parsley":   CategorySeasoning,
			"herbs":     CategorySeasoning,
			"spice":     CategorySeasoning,
			"vanilla":   CategorySeasoning,

			"chicken": CategoryProtein,
			"beef":    CategoryProtein,
			"pork":    CategoryProtein,
			"fish":    CategoryProtein,
			"shrimp":  CategoryProtein,
			"salmon":  CategoryProtein,

			"corn":     CategoryVegetable,
			"broccoli": CategoryVegetable,
			"onion":    CategoryVegetable,
			"carrot":   CategoryVegetable,
			"potato":   CategoryVegetable,

			"chocolate chips": CategoryMixIn,
			"nuts":            CategoryMixIn,
			"raisins":         CategoryMixIn,
		},
		prefixes: []string{"▢ ", "▢", "• ", "•", "of ", "the ", "a ", "an "},
		suffixes: []string{
			" (optional)", " optional",
			" (plus more for serving)", " plus more for serving",
			" (plus more for your hands)", " plus more for your hands",
			" peeled/deveined/tails off", " cut into small florets",
			" divided", " minced", " finely minced", " roughly chopped",
			" finely chopped", " softened", " melted", " at room temperature",
		},
		volumeCups: map[string]float64{
			"cup":  1.0,
			"tbls": 1.0 / 16,
			"tsps": 1.0 / 48,
			"ml":   1.0 / 240,
			"l":    1000.0 / 240,
		},
		weightGrams: map[string]float64{
			"g":  1.0,
			"oz": 28.35,
			"lb": 453.6,
			"kg": 1000,
		},
		densities: map[string]float64{
			"flour":             120,
			"sugar":             200,
			"white sugar":       200,
			"cane sugar":        200,
			"brown sugar":       220,
			"light brown sugar": 220,
			"dark brown sugar":  220,
			"powdered sugar":    120,
			"coconut sugar":     154,
			"maple sugar":       176,
			"butter":            227,
			"salted butter":     227,
			"unsalted butter":   227,
			"olive oil":         216,
			"coconut oil":       218,
			"oil":               216,
			"milk":              245,
			"water":             236.59,
			"cream":             238,
			"honey":             340,
			"maple syrup":       322,
			"vanilla":           208,
			"salt":              288,
			"yeast":             150,
			"cheese":            113,
		},
		eggGrams: 50, // average large egg
	}

	sort.Slice(lx.compounds, func(i, j int) bool {
		a, b := lx.compounds[i].phrase, lx.compounds[j].phrase
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})

	return lx
}

// CategoryOf maps a canonical ingredient name to its cooking category. The
// lookup is case-insensitive and total: names absent from the table fall
// back to CategoryOther.
func (lx *Lexicon) CategoryOf(name string) Category {
	if c, ok := lx.categories[lowerTrim(name)]; ok {
		return c
	}
	return CategoryOther
}
