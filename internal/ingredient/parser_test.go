package ingredient_test

import (
	"testing"

	"github.com/ratioai/backend/internal/ingredient"
	"github.com/stretchr/testify/assert"
)

func newParser() *ingredient.Parser {
	return ingredient.NewParser(ingredient.DefaultLexicon())
}

func TestParseUnicodeFractions(t *testing.T) {
	p := newParser()

	cases := []struct {
		line     string
		quantity float64
	}{
		{"½ cup sugar", 0.5},
		{"⅓ cup milk", 0.33},
		{"¾ cup flour", 0.75},
		{"1¾ cups flour", 1.75},
		{"2½ cups water", 2.5},
		{"⅛ tsp salt", 0.13},
	}

	for _, tc := range cases {
		got := p.ParseIngredient(tc.line)
		assert.InDelta(t, tc.quantity, got.Quantity, 0.001, "line %q", tc.line)
	}
}

func TestParseMixedNumber(t *testing.T) {
	p := newParser()

	got := p.ParseIngredient("1 1/2 cups packed brown sugar")
	assert.Equal(t, 1.5, got.Quantity)
	assert.Equal(t, "cup", got.Unit)
	assert.Equal(t, "brown sugar", got.Name)
	assert.True(t, got.WasNormalized)
}

func TestParseDualMeasurementPrefersSecond(t *testing.T) {
	p := newParser()

	got := p.ParseIngredient("50g/3 tbsp sugar")
	assert.Equal(t, 3.0, got.Quantity)
	assert.Equal(t, "tbls", got.Unit)
	assert.Equal(t, "sugar", got.Name)

	// The first measurement's magnitude must not leak through.
	got = p.ParseIngredient("500g/2 cups flour")
	assert.Equal(t, 2.0, got.Quantity)
	assert.Equal(t, "cup", got.Unit)
	assert.Equal(t, "flour", got.Name)
}

func TestParseAttachedUnit(t *testing.T) {
	p := newParser()

	got := p.ParseIngredient("300g flour")
	assert.Equal(t, 300.0, got.Quantity)
	assert.Equal(t, "g", got.Unit)
	assert.Equal(t, "flour", got.Name)
}

func TestParseBulletAndWhitespace(t *testing.T) {
	p := newParser()

	got := p.ParseIngredient("▢ 2 cups all-purpose flour")
	assert.Equal(t, 2.0, got.Quantity)
	assert.Equal(t, "cup", got.Unit)
	assert.Equal(t, "flour", got.Name)
}

func TestParseNoQuantityDefaultsToOne(t *testing.T) {
	p := newParser()

	got := p.ParseIngredient("a pinch of salt")
	assert.Equal(t, 1.0, got.Quantity)
	assert.Equal(t, "salt", got.Name)
}

func TestParseEggGetsCountUnit(t *testing.T) {
	p := newParser()

	got := p.ParseIngredient("2 eggs")
	assert.Equal(t, 2.0, got.Quantity)
	assert.Equal(t, "egg", got.Unit)
	assert.Equal(t, "egg", got.Name)

	// An explicit weight keeps its unit.
	got = p.ParseIngredient("100g egg")
	assert.Equal(t, "g", got.Unit)
	assert.Equal(t, "egg", got.Name)
}

func TestParseUnitCanonicalization(t *testing.T) {
	p := newParser()

	assert.Equal(t, "tbls", p.ParseIngredient("2 tablespoons butter").Unit)
	assert.Equal(t, "tbls", p.ParseIngredient("2 Tbsp butter").Unit)
	assert.Equal(t, "tsps", p.ParseIngredient("1 teaspoon vanilla extract").Unit)
	assert.Equal(t, "oz", p.ParseIngredient("8 ounces cream cheese").Unit)
	assert.Equal(t, "lb", p.ParseIngredient("2 lbs shrimp").Unit)
}

func TestParseIngredientsPreservesOrderAndLength(t *testing.T) {
	p := newParser()

	lines := []string{
		"2 cups flour",
		"",
		"???",
		"1 cup milk",
	}
	got := p.ParseIngredients(lines)
	assert.Len(t, got, len(lines))
	assert.Equal(t, "flour", got[0].Name)
	assert.Equal(t, "milk", got[3].Name)

	// Degenerate lines still yield best-effort records.
	assert.Equal(t, 1.0, got[1].Quantity)
	assert.Equal(t, 1.0, got[2].Quantity)
	assert.Equal(t, "???", got[2].Name)
	assert.Equal(t, "", got[2].Unit)
}
