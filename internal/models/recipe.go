package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ratioai/backend/internal/ingredient"
	"github.com/ratioai/backend/internal/types"
)

// JSONBIngredients is a custom type for storing ingredient rows as JSONB
type JSONBIngredients []types.IngredientData

// Value implements the driver.Valuer interface
func (a JSONBIngredients) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBIngredients) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBIngredients{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// JSONBRatio is a custom type for storing a computed ratio as JSONB
type JSONBRatio ingredient.RatioResult

// Value implements the driver.Valuer interface
func (r JSONBRatio) Value() (driver.Value, error) {
	return json.Marshal(ingredient.RatioResult(r))
}

// Scan implements the sql.Scanner interface
func (r *JSONBRatio) Scan(value interface{}) error {
	if value == nil {
		*r = JSONBRatio{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, (*ingredient.RatioResult)(r))
}

type SavedRecipe struct {
	ID          uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`
	UserID      uuid.UUID        `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Title       string           `gorm:"size:255;not null" json:"title"`
	SourceURL   string           `gorm:"size:2048" json:"url"`
	Ingredients JSONBIngredients `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Ratio       JSONBRatio       `gorm:"type:jsonb" json:"ratio"`
}

// BeforeCreate assigns an ID so the model works on databases without a
// server-side UUID default.
func (r *SavedRecipe) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
