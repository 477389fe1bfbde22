package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/ratioai/backend/internal/models"
	"github.com/ratioai/backend/internal/scraper"
	"github.com/ratioai/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, username, email, password string) (*types.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*types.AuthResponse, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// IRecipeService defines the interface for recipe processing and persistence
type IRecipeService interface {
	ProcessURL(ctx context.Context, url string) (*types.RecipeResponse, error)
	ProcessLines(ctx context.Context, title string, lines []string) (*types.RecipeResponse, error)
	Recalculate(ctx context.Context, rows []types.IngredientData) (*types.RecipeResponse, error)
	SaveRecipe(ctx context.Context, userID uuid.UUID, req *types.SaveRecipeRequest) (*models.SavedRecipe, error)
	ListSaved(ctx context.Context, userID uuid.UUID) ([]*models.SavedRecipe, error)
	GetSaved(ctx context.Context, userID, id uuid.UUID) (*models.SavedRecipe, error)
	DeleteSaved(ctx context.Context, userID, id uuid.UUID) error
}

// RecipeFetcher fetches raw recipe data from a URL. Satisfied by
// scraper.Scraper; tests substitute a stub.
type RecipeFetcher interface {
	Scrape(ctx context.Context, url string) (*scraper.Recipe, error)
}
