package ingredient

import (
	"math"
	"math/big"
	"regexp"
	"strings"
)

// ParsedIngredient is one structured record produced from a raw ingredient
// line. Records are immutable once created; edited copies may re-enter the
// ratio calculator.
type ParsedIngredient struct {
	// Name is the canonical ingredient name used for classification and
	// density lookup.
	Name string `json:"name"`
	// Quantity is the parsed amount, never negative, defaulting to 1.
	Quantity float64 `json:"quantity"`
	// Unit is the canonical unit spelling, empty when none was found.
	Unit string `json:"unit"`
	// OriginalText is the raw line as harvested from the source.
	OriginalText string `json:"original_text"`
	// WasNormalized reports whether Name differs (case-insensitively) from
	// the raw name text extracted before normalization.
	WasNormalized bool `json:"was_normalized"`
}

const unitVocab = `tablespoons|tablespoon|tbsp|teaspoons|teaspoon|tsp|cups|cup|grams|gram|g|ounces|ounce|oz|pounds|pound|lbs|lb|millilitres|millilitre|milliliters|milliliter|ml|litres|litre|liters|liter|l|kilograms|kilogram|kg|head|cloves|clove|package`

var (
	bulletRe     = regexp.MustCompile(`^[▢•\s]+`)
	glyphDigitRe = regexp.MustCompile(`(\d)([½⅓⅔¼¾⅛⅜⅝⅞])`)
	digitAlphaRe = regexp.MustCompile(`(\d)([a-zA-Z])`)

	dualRe     = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*([a-z]+)\s*/\s*(\d+(?:\.\d+)?(?:\s+\d+/\d+|\d+/\d+)?)\s*([a-z]+)`)
	dualNameRe = regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s*[a-z]+\s*/\s*\d+(?:\.\d+)?(?:\s+\d+/\d+|\d+/\d+)?\s*[a-z]+\s*(.*)`)

	quantityRe = regexp.MustCompile(`(\d+\s+\d+/\d+|\d+/\d+|\d*\.?\d+)`)
	unitRe     = regexp.MustCompile(`(?i)\b(` + unitVocab + `)\b`)
	nameRe     = regexp.MustCompile(`(?i)^(?:\d+\s+\d+/\d+|\d+/\d+|\d*\.?\d+)?\s*(?:` + unitVocab + `)?\s*(.*)`)
)

// glyphReplacer rewrites unicode vulgar-fraction glyphs as ASCII fractions.
var glyphReplacer = strings.NewReplacer(
	"½", "1/2", "⅓", "1/3", "⅔", "2/3", "¼", "1/4", "¾", "3/4",
	"⅛", "1/8", "⅜", "3/8", "⅝", "5/8", "⅞", "7/8",
)

// canonicalUnits maps every recognized unit spelling (lower-cased) to the
// stored canonical form. Tablespoon and teaspoon variants collapse to the
// display spellings "tbls" and "tsps".
var canonicalUnits = map[string]string{
	"tablespoons": "tbls", "tablespoon": "tbls", "tbsp": "tbls",
	"teaspoons": "tsps", "teaspoon": "tsps", "tsp": "tsps",
	"cups": "cup", "cup": "cup",
	"grams": "g", "gram": "g", "g": "g",
	"ounces": "oz", "ounce": "oz", "oz": "oz",
	"pounds": "lb", "pound": "lb", "lbs": "lb", "lb": "lb",
	"millilitres": "ml", "millilitre": "ml", "milliliters": "ml", "milliliter": "ml", "ml": "ml",
	"litres": "l", "litre": "l", "liters": "l", "liter": "l", "l": "l",
	"kilograms": "kg", "kilogram": "kg", "kg": "kg",
	"head": "head", "cloves": "clove", "clove": "clove",
	"package": "package",
}

// Parser extracts quantity, unit and canonical name from raw ingredient
// lines.
type Parser struct {
	lex  *Lexicon
	norm *Normalizer
}

// NewParser returns a Parser backed by the given lexicon.
func NewParser(lex *Lexicon) *Parser {
	return &Parser{lex: lex, norm: NewNormalizer(lex)}
}

// ParseIngredient parses a single raw line. It never fails: a line with no
// recognizable quantity or unit yields quantity 1 and an empty unit, with
// the name resolved from whatever text remains.
func (p *Parser) ParseIngredient(line string) ParsedIngredient {
	cleaned := bulletRe.ReplaceAllString(line, "")

	// "1¾" reads as two tokens once the glyph is separated from the digit.
	cleaned = glyphDigitRe.ReplaceAllString(cleaned, "$1 $2")
	cleaned = glyphReplacer.Replace(cleaned)

	// Attached units ("50g") get a separating space so the word-boundary
	// unit search sees them.
	cleaned = digitAlphaRe.ReplaceAllString(cleaned, "$1 $2")

	var quantityStr, unit, rawName string

	// Dual measurements like "50 g/3 tbsp sugar" prefer the second, more
	// practical measurement; the name is whatever follows it.
	if m := dualRe.FindStringSubmatch(cleaned); m != nil {
		quantityStr = m[3]
		unit = m[4]
		if nm := dualNameRe.FindStringSubmatch(cleaned); nm != nil {
			rawName = strings.TrimSpace(nm[1])
		}
	} else {
		if m := quantityRe.FindStringSubmatch(cleaned); m != nil {
			quantityStr = m[1]
		}
		// The unit search is independent of the quantity: a unit found
		// anywhere in the line counts.
		if m := unitRe.FindStringSubmatch(cleaned); m != nil {
			unit = m[1]
		}
		if nm := nameRe.FindStringSubmatch(cleaned); nm != nil {
			rawName = strings.TrimSpace(nm[1])
		}
	}

	if rawName == "" {
		rawName = line
	}

	quantity := 1.0
	if quantityStr != "" {
		quantity = parseQuantity(quantityStr)
	}

	name := p.norm.Normalize(rawName)
	wasNormalized := !strings.EqualFold(name, strings.TrimSpace(rawName))

	// Eggs are countable: an egg line without a unit gets the synthetic
	// unit "egg" so conversion can apply the per-egg mass.
	lower := strings.ToLower(name)
	if (lower == "egg" || lower == "eggs") && unit == "" {
		unit = "egg"
	} else if canonical, ok := canonicalUnits[strings.ToLower(unit)]; ok {
		unit = canonical
	}

	return ParsedIngredient{
		Name:          name,
		Quantity:      quantity,
		Unit:          unit,
		OriginalText:  strings.TrimSpace(line),
		WasNormalized: wasNormalized,
	}
}

// ParseIngredients parses a batch of lines. Output order matches input
// order and the batch is never shortened: a line the parser cannot make
// sense of degrades to a record carrying the raw text as its name.
func (p *Parser) ParseIngredients(lines []string) []ParsedIngredient {
	out := make([]ParsedIngredient, 0, len(lines))
	for _, line := range lines {
		parsed := p.ParseIngredient(line)
		if parsed.Name == "" {
			parsed = ParsedIngredient{
				Name:         strings.TrimSpace(line),
				Quantity:     1.0,
				OriginalText: strings.TrimSpace(line),
			}
		}
		out = append(out, parsed)
	}
	return out
}

// parseQuantity evaluates an integer, decimal, bare-fraction or mixed-number
// quantity string. Mixed numbers sum exactly as rationals before the result
// is rounded to 2 decimal places.
func parseQuantity(s string) float64 {
	total := new(big.Rat)
	for _, part := range strings.Fields(s) {
		r, ok := new(big.Rat).SetString(part)
		if !ok {
			continue
		}
		total.Add(total, r)
	}
	f, _ := total.Float64()
	return math.Round(f*100) / 100
}
