package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ratioai/backend/internal/ingredient"
	"github.com/ratioai/backend/internal/middleware"
	"github.com/ratioai/backend/internal/models"
	"github.com/ratioai/backend/internal/service"
	"github.com/ratioai/backend/internal/types"
)

type RecipeHandler struct {
	recipeService  service.IRecipeService
	authService    service.IAuthService
	processLimiter *middleware.RateLimiter
	saveLimiter    *middleware.RateLimiter
}

func NewRecipeHandler(recipeService service.IRecipeService, authService service.IAuthService) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		authService:   authService,
	}
}

// NewRecipeHandlerWithRateLimit wires Redis-backed rate limiters onto the
// processing and save endpoints. Either limiter may be nil.
func NewRecipeHandlerWithRateLimit(recipeService service.IRecipeService, authService service.IAuthService, processLimiter, saveLimiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipeService:  recipeService,
		authService:    authService,
		processLimiter: processLimiter,
		saveLimiter:    saveLimiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.POST("/process", limit(h.processLimiter), h.ProcessRecipe)
		recipes.POST("/parse", limit(h.processLimiter), h.ParseLines)
		recipes.POST("/recalculate", h.Recalculate)

		saved := recipes.Group("/saved", middleware.AuthMiddleware(h.authService))
		{
			saved.POST("", limit(h.saveLimiter), h.SaveRecipe)
			saved.GET("", h.ListSaved)
			saved.GET("/:id", h.GetSaved)
			saved.DELETE("/:id", h.DeleteSaved)
		}
	}
}

// limit returns the limiter's middleware, or a no-op when rate limiting is
// disabled (no Redis).
func limit(rl *middleware.RateLimiter) gin.HandlerFunc {
	if rl == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return rl.RateLimitMiddleware()
}

// ProcessRecipe scrapes a recipe URL and returns structured ingredients with
// computed ratios.
func (h *RecipeHandler) ProcessRecipe(c *gin.Context) {
	var req types.ProcessRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.recipeService.ProcessURL(c.Request.Context(), req.URL)
	if err != nil {
		// Scrape failures are an expected outcome, reported in-band rather
		// than as a server error.
		c.JSON(http.StatusOK, types.RecipeResponse{
			URL:         req.URL,
			Ingredients: []types.IngredientData{},
			Error:       err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ParseLines parses raw ingredient lines without scraping.
func (h *RecipeHandler) ParseLines(c *gin.Context) {
	var req types.ProcessTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.recipeService.ProcessLines(c.Request.Context(), req.Title, req.Lines)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to parse ingredients"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Recalculate recomputes grams and ratios for edited ingredient rows.
func (h *RecipeHandler) Recalculate(c *gin.Context) {
	var req types.RecalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.recipeService.Recalculate(c.Request.Context(), req.Ingredients)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to recalculate ratio"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *RecipeHandler) SaveRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.SaveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.recipeService.SaveRecipe(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save recipe"})
		return
	}

	c.JSON(http.StatusCreated, savedResponse(record))
}

func (h *RecipeHandler) ListSaved(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	records, err := h.recipeService.ListSaved(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list recipes"})
		return
	}

	resp := make([]types.SavedRecipeResponse, len(records))
	for i, record := range records {
		resp[i] = savedResponse(record)
	}
	c.JSON(http.StatusOK, gin.H{"recipes": resp})
}

func (h *RecipeHandler) GetSaved(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	record, err := h.recipeService.GetSaved(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipe"})
		return
	}

	c.JSON(http.StatusOK, savedResponse(record))
}

func (h *RecipeHandler) DeleteSaved(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := h.recipeService.DeleteSaved(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete recipe"})
		return
	}

	c.Status(http.StatusNoContent)
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return uuid.Nil, false
	}
	return userID, true
}

func savedResponse(record *models.SavedRecipe) types.SavedRecipeResponse {
	return types.SavedRecipeResponse{
		ID:          record.ID,
		Title:       record.Title,
		URL:         record.SourceURL,
		Ingredients: record.Ingredients,
		Ratio:       ingredient.RatioResult(record.Ratio),
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}
