package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ratioai/backend/internal/ingredient"
	"github.com/ratioai/backend/internal/models"
	"github.com/ratioai/backend/internal/types"
)

var ErrRecipeNotFound = errors.New("recipe not found")

const cacheKeyPrefix = "recipe_cache:"

// RecipeService turns recipe URLs and raw ingredient lines into structured
// ingredients with computed ratios, and manages saved recipes.
type RecipeService struct {
	db       *gorm.DB
	redis    *redis.Client
	fetcher  RecipeFetcher
	parser   *ingredient.Parser
	calc     *ingredient.Calculator
	cacheTTL time.Duration
}

// NewRecipeService creates a new RecipeService instance. redisClient may be
// nil, in which case processed URLs are not cached.
func NewRecipeService(db *gorm.DB, redisClient *redis.Client, fetcher RecipeFetcher, cacheTTL time.Duration) *RecipeService {
	lex := ingredient.DefaultLexicon()
	return &RecipeService{
		db:       db,
		redis:    redisClient,
		fetcher:  fetcher,
		parser:   ingredient.NewParser(lex),
		calc:     ingredient.NewCalculator(lex),
		cacheTTL: cacheTTL,
	}
}

// ProcessURL scrapes a recipe page and parses its ingredient list. Results
// are cached in Redis keyed by URL so repeated lookups skip the fetch.
func (s *RecipeService) ProcessURL(ctx context.Context, url string) (*types.RecipeResponse, error) {
	if cached := s.cacheGet(ctx, url); cached != nil {
		cached.Cached = true
		return cached, nil
	}

	recipe, err := s.fetcher.Scrape(ctx, url)
	if err != nil {
		return nil, err
	}

	resp := s.buildResponse(recipe.Title, url, dedupeLines(recipe.Ingredients))
	s.cacheSet(ctx, url, resp)
	return resp, nil
}

// ProcessLines parses raw ingredient lines pasted by the client.
func (s *RecipeService) ProcessLines(ctx context.Context, title string, lines []string) (*types.RecipeResponse, error) {
	if title == "" {
		title = "Untitled Recipe"
	}
	return s.buildResponse(title, "", dedupeLines(lines)), nil
}

// Recalculate recomputes grams and ratios for ingredient rows the client has
// edited. Names, quantities and units are taken as given; grams and the
// ratio are rederived.
func (s *RecipeService) Recalculate(ctx context.Context, rows []types.IngredientData) (*types.RecipeResponse, error) {
	parsed := make([]ingredient.ParsedIngredient, len(rows))
	for i, row := range rows {
		parsed[i] = ingredient.ParsedIngredient{
			Name:          strings.ToLower(strings.TrimSpace(row.Name)),
			Quantity:      row.Quantity,
			Unit:          row.Unit,
			OriginalText:  row.OriginalText,
			WasNormalized: row.WasNormalized,
		}
	}
	return s.responseFromParsed("", "", parsed), nil
}

func (s *RecipeService) buildResponse(title, url string, lines []string) *types.RecipeResponse {
	parsed := s.parser.ParseIngredients(lines)
	resp := s.responseFromParsed(title, url, parsed)
	return resp
}

func (s *RecipeService) responseFromParsed(title, url string, parsed []ingredient.ParsedIngredient) *types.RecipeResponse {
	conv := s.calc.Converter()
	rows := make([]types.IngredientData, len(parsed))
	for i, ing := range parsed {
		rows[i] = types.IngredientData{
			Name:          ing.Name,
			Quantity:      ing.Quantity,
			Unit:          ing.Unit,
			Grams:         conv.Grams(ing),
			OriginalText:  ing.OriginalText,
			WasNormalized: ing.WasNormalized,
		}
	}

	return &types.RecipeResponse{
		Title:       title,
		URL:         url,
		Ingredients: rows,
		Ratio:       s.calc.Ratios(parsed),
		UnitGroups:  sortedGroups(s.calc.UnitTypeRatios(parsed)),
		Success:     true,
	}
}

// SaveRecipe persists a processed recipe for the user, recomputing the ratio
// from the submitted rows so stored data is internally consistent.
func (s *RecipeService) SaveRecipe(ctx context.Context, userID uuid.UUID, req *types.SaveRecipeRequest) (*models.SavedRecipe, error) {
	resp, err := s.Recalculate(ctx, req.Ingredients)
	if err != nil {
		return nil, err
	}

	record := models.SavedRecipe{
		UserID:      userID,
		Title:       req.Title,
		SourceURL:   req.URL,
		Ingredients: models.JSONBIngredients(resp.Ingredients),
		Ratio:       models.JSONBRatio(resp.Ratio),
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// ListSaved returns the user's saved recipes, newest first.
func (s *RecipeService) ListSaved(ctx context.Context, userID uuid.UUID) ([]*models.SavedRecipe, error) {
	var records []models.SavedRecipe
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	result := make([]*models.SavedRecipe, len(records))
	for i := range records {
		result[i] = &records[i]
	}
	return result, nil
}

// GetSaved returns one saved recipe, scoped to the owning user.
func (s *RecipeService) GetSaved(ctx context.Context, userID, id uuid.UUID) (*models.SavedRecipe, error) {
	var record models.SavedRecipe
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteSaved removes a saved recipe, scoped to the owning user.
func (s *RecipeService) DeleteSaved(ctx context.Context, userID, id uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.SavedRecipe{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecipeNotFound
	}
	return nil
}

func (s *RecipeService) cacheGet(ctx context.Context, url string) *types.RecipeResponse {
	if s.redis == nil {
		return nil
	}
	data, err := s.redis.Get(ctx, cacheKeyPrefix+url).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("recipe cache read failed: %v", err)
		}
		return nil
	}
	var resp types.RecipeResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil
	}
	return &resp
}

func (s *RecipeService) cacheSet(ctx context.Context, url string, resp *types.RecipeResponse) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, cacheKeyPrefix+url, data, s.cacheTTL).Err(); err != nil {
		log.Printf("recipe cache write failed: %v", err)
	}
}

// dedupeLines drops duplicate ingredient lines, comparing case-insensitively
// with whitespace collapsed, keeping first occurrences in order.
func dedupeLines(lines []string) []string {
	seen := make(map[string]bool, len(lines))
	var out []string
	for _, line := range lines {
		key := strings.ToLower(strings.Join(strings.Fields(line), " "))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, line)
	}
	return out
}

func sortedGroups(groups map[string]ingredient.GroupRatio) []ingredient.GroupRatio {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]ingredient.GroupRatio, 0, len(keys))
	for _, k := range keys {
		out = append(out, groups[k])
	}
	return out
}
