package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/ratioai/backend/internal/ingredient"
)

// IngredientData is one structured ingredient row as returned to clients.
// Grams is the computed mass equivalent, zero when undeterminable.
type IngredientData struct {
	Name          string  `json:"name"`
	Quantity      float64 `json:"quantity"`
	Unit          string  `json:"unit"`
	Grams         float64 `json:"grams"`
	OriginalText  string  `json:"original_text"`
	WasNormalized bool    `json:"was_normalized"`
}

// RecipeResponse is the result of processing a recipe URL or a raw
// ingredient list.
type RecipeResponse struct {
	Title       string                  `json:"title"`
	URL         string                  `json:"url,omitempty"`
	Ingredients []IngredientData        `json:"ingredients"`
	Ratio       ingredient.RatioResult  `json:"ratio"`
	UnitGroups  []ingredient.GroupRatio `json:"unit_groups,omitempty"`
	Cached      bool                    `json:"cached"`
	Success     bool                    `json:"success"`
	Error       string                  `json:"error,omitempty"`
}

// SavedRecipeResponse is a persisted recipe belonging to a user.
type SavedRecipeResponse struct {
	ID          uuid.UUID              `json:"id"`
	Title       string                 `json:"title"`
	URL         string                 `json:"url,omitempty"`
	Ingredients []IngredientData       `json:"ingredients"`
	Ratio       ingredient.RatioResult `json:"ratio"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}
