package ingredient

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

// noiseThresholdGrams is the per-category cutoff below which a category is
// excluded from the primary ratio, so flavoring-scale amounts (a teaspoon of
// vanilla) cannot structurally dominate it.
const noiseThresholdGrams = 20.0

// primaryCategories is the fixed category order of the primary ratio.
var primaryCategories = []Category{CategoryFlour, CategoryLiquid, CategoryEgg, CategoryFat}

// Strategy selects the ratio-reduction algorithm.
type Strategy int

const (
	// StrategyCategory groups by cooking category and reduces gram totals
	// to percentage buckets. This is the default.
	StrategyCategory Strategy = iota
	// StrategyUnitType groups by measurement type (volume/weight/count) and
	// simplifies exact quantities by rational GCD. Kept as a selectable
	// alternative; its output is per-group, see UnitTypeRatios.
	StrategyUnitType
)

// RatioResult is the primary ratio for a batch of ingredients. The three
// slices are parallel: Categories[i] retained Quantities[i] grams and shows
// as Ratio[i] in RatioString. A category filtered out by the noise threshold
// appears in none of them; every retained category shows at least 1.
type RatioResult struct {
	Categories  []string  `json:"categories"`
	Quantities  []float64 `json:"quantities"`
	Ratio       []int     `json:"ratio"`
	RatioString string    `json:"ratio_string"`
}

// Empty reports whether no category survived aggregation and filtering.
func (r RatioResult) Empty() bool {
	return len(r.Categories) == 0
}

// GroupRatio is the unit-type strategy's result for one measurement group.
type GroupRatio struct {
	Type        string    `json:"type"`
	CommonUnit  string    `json:"common_unit,omitempty"`
	Ingredients []string  `json:"ingredients"`
	Quantities  []float64 `json:"quantities"`
	Ratio       []int     `json:"ratio"`
	RatioString string    `json:"ratio_string"`
}

// Calculator reduces a batch of parsed ingredients to display ratios. It is
// stateless: both strategies are pure functions of the input batch.
type Calculator struct {
	lex      *Lexicon
	conv     *Converter
	strategy Strategy
}

// NewCalculator returns a Calculator using the category/percentage strategy.
func NewCalculator(lex *Lexicon) *Calculator {
	return &Calculator{lex: lex, conv: NewConverter(lex), strategy: StrategyCategory}
}

// WithStrategy returns a copy of the calculator using the given strategy.
func (c *Calculator) WithStrategy(s Strategy) *Calculator {
	cp := *c
	cp.strategy = s
	return &cp
}

// Converter exposes the calculator's gram converter for callers displaying
// per-ingredient mass independent of ratio computation.
func (c *Calculator) Converter() *Converter {
	return c.conv
}

// Strategy returns the configured reduction strategy.
func (c *Calculator) Strategy() Strategy {
	return c.strategy
}

// Ratios computes the primary category ratio for the batch:
//
//  1. classify every ingredient and sum gram-equivalents for the fixed
//     category order flour, liquid, egg, fat;
//  2. drop categories under the 20 g noise threshold entirely;
//  3. reduce each retained total to its percentage share rounded to the
//     nearest multiple-of-ten bucket divided by ten, flooring to 1.
//
// A batch with no retained weight yields an empty result, which callers
// must treat as "insufficient structured data", not a failure. Identical
// input always produces byte-identical RatioString output.
func (c *Calculator) Ratios(ingredients []ParsedIngredient) RatioResult {
	totals := make(map[Category]float64, len(primaryCategories))
	for _, ing := range ingredients {
		cat := c.lex.CategoryOf(ing.Name)
		totals[cat] += c.conv.Grams(ing)
	}

	var result RatioResult
	var total float64
	for _, cat := range primaryCategories {
		grams := totals[cat]
		if grams < noiseThresholdGrams {
			continue
		}
		result.Categories = append(result.Categories, string(cat))
		result.Quantities = append(result.Quantities, grams)
		total += grams
	}

	if total == 0 {
		return RatioResult{}
	}

	for _, grams := range result.Quantities {
		v := int(math.Round(grams / total * 100 / 10))
		if v < 1 {
			v = 1
		}
		result.Ratio = append(result.Ratio, v)
	}
	result.RatioString = joinRatio(result.Ratio)
	return result
}

// UnitTypeRatios computes the alternative unit-type ratios: ingredients are
// grouped by measurement type, each group with at least two convertible
// members is reduced to an exact small-integer ratio by rational GCD.
func (c *Calculator) UnitTypeRatios(ingredients []ParsedIngredient) map[string]GroupRatio {
	groups := map[string][]ParsedIngredient{}
	for _, ing := range ingredients {
		kind := c.conv.UnitKind(ing.Unit)
		groups[kind] = append(groups[kind], ing)
	}

	out := map[string]GroupRatio{}
	for _, kind := range []string{"volume", "weight", "count"} {
		members := groups[kind]
		if len(members) < 2 {
			continue
		}
		var gr GroupRatio
		switch kind {
		case "count":
			gr = c.countGroupRatio(members)
		default:
			gr = c.measurementGroupRatio(members, kind)
		}
		if len(gr.Ratio) >= 2 {
			out[kind] = gr
		}
	}
	return out
}

func (c *Calculator) countGroupRatio(members []ParsedIngredient) GroupRatio {
	gr := GroupRatio{Type: "count"}
	for _, ing := range members {
		gr.Ingredients = append(gr.Ingredients, ing.Name)
		gr.Quantities = append(gr.Quantities, ing.Quantity)
	}
	gr.Ratio = simplifyQuantities(gr.Quantities)
	gr.RatioString = joinRatio(gr.Ratio)
	return gr
}

func (c *Calculator) measurementGroupRatio(members []ParsedIngredient, kind string) GroupRatio {
	gr := GroupRatio{Type: kind, CommonUnit: "cup"}
	factors := c.lex.volumeCups
	if kind == "weight" {
		gr.CommonUnit = "gram"
		factors = c.lex.weightGrams
	}

	for _, ing := range members {
		factor, ok := factors[lowerTrim(ing.Unit)]
		if !ok || ing.Quantity == 0 {
			continue
		}
		gr.Ingredients = append(gr.Ingredients, ing.Name)
		gr.Quantities = append(gr.Quantities, ing.Quantity*factor)
	}
	gr.Ratio = simplifyQuantities(gr.Quantities)
	gr.RatioString = joinRatio(gr.Ratio)
	return gr
}

// simplifyQuantities reduces a list of positive quantities to the smallest
// integer ratio preserving their proportions, approximating each quantity by
// a rational with denominator at most 100.
func simplifyQuantities(quantities []float64) []int {
	if len(quantities) == 0 {
		return nil
	}

	fracs := make([]*big.Rat, len(quantities))
	lcm := big.NewInt(1)
	for i, q := range quantities {
		fracs[i] = limitDenominator(q, 100)
		lcm = lcmInt(lcm, fracs[i].Denom())
	}

	ints := make([]*big.Int, len(fracs))
	gcd := new(big.Int)
	for i, f := range fracs {
		n := new(big.Int).Mul(f.Num(), new(big.Int).Div(lcm, f.Denom()))
		ints[i] = n
		gcd.GCD(nil, nil, gcd, new(big.Int).Abs(n))
	}
	if gcd.Sign() == 0 {
		gcd.SetInt64(1)
	}

	out := make([]int, len(ints))
	for i, n := range ints {
		out[i] = int(new(big.Int).Div(n, gcd).Int64())
	}
	return out
}

// limitDenominator returns the closest rational to x with denominator at
// most maxDen, by walking the continued-fraction expansion and comparing the
// final convergent with its best semiconvergent.
func limitDenominator(x float64, maxDen int64) *big.Rat {
	exact := new(big.Rat).SetFloat64(x)
	if exact == nil {
		return big.NewRat(0, 1)
	}
	if exact.Denom().Cmp(big.NewInt(maxDen)) <= 0 {
		return exact
	}

	limit := big.NewInt(maxDen)
	n := new(big.Int).Set(exact.Num())
	d := new(big.Int).Set(exact.Denom())
	p0, q0 := big.NewInt(0), big.NewInt(1)
	p1, q1 := big.NewInt(1), big.NewInt(0)

	for d.Sign() != 0 {
		a := new(big.Int).Div(n, d)
		q2 := new(big.Int).Add(q0, new(big.Int).Mul(a, q1))
		if q2.Cmp(limit) > 0 {
			break
		}
		p0, q0, p1, q1 = p1, q1, new(big.Int).Add(p0, new(big.Int).Mul(a, p1)), q2
		n, d = d, new(big.Int).Sub(n, new(big.Int).Mul(a, d))
	}

	// Best semiconvergent within the limit, versus the last convergent.
	k := new(big.Int).Div(new(big.Int).Sub(limit, q0), q1)
	bound1 := new(big.Rat).SetFrac(
		new(big.Int).Add(p0, new(big.Int).Mul(k, p1)),
		new(big.Int).Add(q0, new(big.Int).Mul(k, q1)),
	)
	bound2 := new(big.Rat).SetFrac(p1, q1)

	d1 := new(big.Rat).Abs(new(big.Rat).Sub(bound1, exact))
	d2 := new(big.Rat).Abs(new(big.Rat).Sub(bound2, exact))
	if d2.Cmp(d1) <= 0 {
		return bound2
	}
	return bound1
}

func lcmInt(a, b *big.Int) *big.Int {
	gcd := new(big.Int).GCD(nil, nil, a, b)
	return new(big.Int).Div(new(big.Int).Mul(a, b), gcd)
}

func joinRatio(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ":")
}
