package ingredient

// Converter resolves a parsed ingredient to its mass in grams, the common
// basis for ratio math.
type Converter struct {
	lex *Lexicon
}

// NewConverter returns a Converter backed by the given lexicon.
func NewConverter(lex *Lexicon) *Converter {
	return &Converter{lex: lex}
}

// Grams returns the gram-equivalent of the ingredient, or 0 when no
// conversion path exists. A zero result means "undeterminable", not an
// error: unknown units and ingredients missing from the density table must
// not abort batch processing.
//
// Conversion paths, in order:
//   - egg with no unit, "count" or "egg": quantity x per-egg mass
//   - volume unit and a known grams-per-cup density: quantity -> cups -> grams
//   - weight unit: direct factor to grams
func (c *Converter) Grams(ing ParsedIngredient) float64 {
	if ing.Quantity <= 0 {
		return 0
	}

	name := lowerTrim(ing.Name)
	unit := lowerTrim(ing.Unit)

	if name == "egg" || name == "eggs" {
		switch unit {
		case "", "count", "egg":
			return ing.Quantity * c.lex.eggGrams
		}
	}

	if cups, ok := c.lex.volumeCups[unit]; ok {
		if density, ok := c.lex.densities[name]; ok {
			return ing.Quantity * cups * density
		}
		return 0
	}

	if grams, ok := c.lex.weightGrams[unit]; ok {
		return ing.Quantity * grams
	}

	return 0
}

// UnitKind reports whether a canonical unit is a volume unit, a weight unit
// or a count, for callers grouping ingredients by measurement type.
func (c *Converter) UnitKind(unit string) string {
	u := lowerTrim(unit)
	if _, ok := c.lex.volumeCups[u]; ok {
		return "volume"
	}
	if _, ok := c.lex.weightGrams[u]; ok {
		return "weight"
	}
	return "count"
}
