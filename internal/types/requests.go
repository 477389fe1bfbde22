package types

// ProcessRecipeRequest asks for a recipe URL to be scraped and parsed.
type ProcessRecipeRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// ProcessTextRequest asks for raw ingredient lines to be parsed directly,
// without scraping.
type ProcessTextRequest struct {
	Title string   `json:"title"`
	Lines []string `json:"lines" binding:"required,min=1"`
}

// RecalculateRequest recomputes a ratio from ingredient rows the client has
// edited. Quantities and units come back from the edit form; grams and
// category are rederived server-side.
type RecalculateRequest struct {
	Ingredients []IngredientData `json:"ingredients" binding:"required,min=1"`
}

// SaveRecipeRequest persists a processed recipe for the authenticated user.
type SaveRecipeRequest struct {
	Title       string           `json:"title" binding:"required,max=255"`
	URL         string           `json:"url" binding:"omitempty,url"`
	Ingredients []IngredientData `json:"ingredients" binding:"required,min=1"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest exchanges credentials for a JWT.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}
