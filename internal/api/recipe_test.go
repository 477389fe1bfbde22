package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratioai/backend/internal/api"
	"github.com/ratioai/backend/internal/scraper"
	"github.com/ratioai/backend/internal/service"
	"github.com/ratioai/backend/internal/testhelpers"
	"github.com/ratioai/backend/internal/types"
)

type fixedFetcher struct {
	recipe *scraper.Recipe
	err    error
}

func (f *fixedFetcher) Scrape(_ context.Context, _ string) (*scraper.Recipe, error) {
	return f.recipe, f.err
}

func setupRouter(t *testing.T, fetcher service.RecipeFetcher) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)
	authSvc := service.NewAuthService(db, "test-secret")
	recipeSvc := service.NewRecipeService(db, nil, fetcher, 0)

	router := gin.New()
	router.Use(gin.Recovery())
	api.RegisterRoutes(router, authSvc, recipeSvc, nil)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", types.RegisterRequest{
		Username: "baker",
		Email:    "baker@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp types.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func TestProcessRecipeEndpoint(t *testing.T) {
	router := setupRouter(t, &fixedFetcher{recipe: &scraper.Recipe{
		Title:       "Plain Loaf",
		Ingredients: []string{"2 cups flour", "1 cup milk", "2 eggs", "0.5 cup butter"},
	}})

	w := doJSON(t, router, http.MethodPost, "/api/v1/recipes/process", "", types.ProcessRecipeRequest{
		URL: "https://example.com/loaf",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.RecipeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Plain Loaf", resp.Title)
	require.Len(t, resp.Ingredients, 4)
	assert.Equal(t, "3:4:1:2", resp.Ratio.RatioString)
}

func TestProcessRecipeRejectsBadURL(t *testing.T) {
	router := setupRouter(t, &fixedFetcher{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/recipes/process", "", map[string]string{"url": "not-a-url"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProcessRecipeScrapeFailure(t *testing.T) {
	router := setupRouter(t, &fixedFetcher{err: scraper.ErrNoRecipe})

	w := doJSON(t, router, http.MethodPost, "/api/v1/recipes/process", "", types.ProcessRecipeRequest{
		URL: "https://example.com/empty",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.RecipeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
	assert.Empty(t, resp.Ingredients)
}

func TestParseLinesEndpoint(t *testing.T) {
	router := setupRouter(t, &fixedFetcher{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/recipes/parse", "", types.ProcessTextRequest{
		Title: "Scratch Pad",
		Lines: []string{"300g flour", "200 g water", "5 g salt"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.RecipeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Scratch Pad", resp.Title)
	require.Len(t, resp.Ingredients, 3)
	assert.InDelta(t, 300.0, resp.Ingredients[0].Grams, 0.01)
}

func TestRecalculateEndpoint(t *testing.T) {
	router := setupRouter(t, &fixedFetcher{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/recipes/recalculate", "", types.RecalculateRequest{
		Ingredients: []types.IngredientData{
			{Name: "flour", Quantity: 2, Unit: "cup"},
			{Name: "milk", Quantity: 1, Unit: "cup"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.RecipeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"flour", "liquid"}, resp.Ratio.Categories)
	assert.Equal(t, "5:5", resp.Ratio.RatioString)
}

func TestSavedRecipesRequireAuth(t *testing.T) {
	router := setupRouter(t, &fixedFetcher{})

	w := doJSON(t, router, http.MethodGet, "/api/v1/recipes/saved", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/recipes/saved", "not-a-token", types.SaveRecipeRequest{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSavedRecipeLifecycle(t *testing.T) {
	router := setupRouter(t, &fixedFetcher{})
	token := registerUser(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/v1/recipes/saved", token, types.SaveRecipeRequest{
		Title: "House Pancakes",
		URL:   "https://example.com/pancakes",
		Ingredients: []types.IngredientData{
			{Name: "flour", Quantity: 2, Unit: "cup"},
			{Name: "milk", Quantity: 1, Unit: "cup"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var saved types.SavedRecipeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.Equal(t, "House Pancakes", saved.Title)
	assert.NotEmpty(t, saved.Ratio.RatioString)

	w = doJSON(t, router, http.MethodGet, "/api/v1/recipes/saved", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Recipes []types.SavedRecipeResponse `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Recipes, 1)

	w = doJSON(t, router, http.MethodGet, "/api/v1/recipes/saved/"+saved.ID.String(), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/recipes/saved/"+saved.ID.String(), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/recipes/saved/"+saved.ID.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router := setupRouter(t, &fixedFetcher{})

	w := doJSON(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
