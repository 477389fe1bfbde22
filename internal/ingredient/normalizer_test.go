package ingredient_test

import (
	"testing"

	"github.com/ratioai/backend/internal/ingredient"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeCompoundPrecedence(t *testing.T) {
	n := ingredient.NewNormalizer(ingredient.DefaultLexicon())

	// The longest matching phrase wins, never a shorter contained one.
	assert.Equal(t, "light brown sugar", n.Normalize("packed light brown sugar"))
	assert.Equal(t, "brown sugar", n.Normalize("packed brown sugar"))
	assert.Equal(t, "cheese", n.Normalize("cream cheese"))
	assert.Equal(t, "flour", n.Normalize("all-purpose flour"))
	assert.Equal(t, "olive oil", n.Normalize("extra virgin olive oil"))
	assert.Equal(t, "vanilla", n.Normalize("vanilla extract"))
}

func TestNormalizeIdempotent(t *testing.T) {
	n := ingredient.NewNormalizer(ingredient.DefaultLexicon())

	for _, name := range []string{
		"flour", "milk", "egg", "butter", "light brown sugar", "olive oil", "salt",
	} {
		assert.Equal(t, name, n.Normalize(name), "already-canonical name must be unchanged")
	}
}

func TestNormalizeStripsDecoration(t *testing.T) {
	n := ingredient.NewNormalizer(ingredient.DefaultLexicon())

	assert.Equal(t, "salt", n.Normalize("▢ sea salt (optional)"))
	assert.Equal(t, "butter", n.Normalize("of the butter, divided"))
	assert.Equal(t, "flour", n.Normalize("flour (plus more for your hands)"))
	assert.Equal(t, "garlic", n.Normalize("garlic, finely minced"))
}

func TestNormalizeFallback(t *testing.T) {
	n := ingredient.NewNormalizer(ingredient.DefaultLexicon())

	// No dictionary hit: first token of the cleaned text.
	assert.Equal(t, "quinoa", n.Normalize("quinoa rinsed and drained"))
	assert.Equal(t, "zucchini", n.Normalize("zucchini"))
}

func TestCategoryOf(t *testing.T) {
	lex := ingredient.DefaultLexicon()

	assert.Equal(t, ingredient.CategoryFlour, lex.CategoryOf("flour"))
	assert.Equal(t, ingredient.CategoryLiquid, lex.CategoryOf("Milk"))
	assert.Equal(t, ingredient.CategoryEgg, lex.CategoryOf("egg"))
	assert.Equal(t, ingredient.CategoryFat, lex.CategoryOf("butter"))
	assert.Equal(t, ingredient.CategorySugar, lex.CategoryOf("light brown sugar"))
	assert.Equal(t, ingredient.CategorySeasoning, lex.CategoryOf("vanilla"))
	assert.Equal(t, ingredient.CategoryOther, lex.CategoryOf("dragonfruit"))
}
