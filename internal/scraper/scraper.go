// Package scraper fetches a recipe page and extracts its title and
// candidate ingredient lines, preferring schema.org JSON-LD structured data
// and falling back to heuristic HTML parsing.
package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoRecipe is returned when neither structured data nor HTML heuristics
// produced any ingredient lines.
var ErrNoRecipe = errors.New("no recipe data found in page")

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Recipe is the raw extraction result handed to the parsing pipeline.
// Ingredients is the flat ordered list; Sections preserves any grouping the
// source page declared ("For the sauce:", ...).
type Recipe struct {
	Title        string     `json:"title"`
	Ingredients  []string   `json:"ingredients"`
	Sections     [][]string `json:"ingredient_sections,omitempty"`
	Instructions []string   `json:"instructions,omitempty"`
}

// Scraper fetches and extracts recipe pages.
type Scraper struct {
	client *http.Client
}

// New returns a Scraper with a 10 second request timeout.
func New() *Scraper {
	return &Scraper{client: &http.Client{Timeout: 10 * time.Second}}
}

// NewWithClient returns a Scraper using the given HTTP client.
func NewWithClient(client *http.Client) *Scraper {
	return &Scraper{client: client}
}

// Scrape fetches url and extracts recipe data. JSON-LD structured data is
// tried first since most modern recipe sites publish it; HTML selector
// heuristics are the fallback.
func (s *Scraper) Scrape(ctx context.Context, url string) (*Recipe, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	if recipe := s.extractJSONLD(doc); recipe != nil {
		return recipe, nil
	}
	if recipe := s.extractHTML(doc); recipe != nil {
		return recipe, nil
	}
	return nil, ErrNoRecipe
}

// extractJSONLD scans every ld+json script for a Recipe schema object,
// including objects nested under @graph and top-level arrays.
func (s *Scraper) extractJSONLD(doc *goquery.Document) *Recipe {
	var recipe *Recipe
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var data interface{}
		if err := json.Unmarshal([]byte(sel.Text()), &data); err != nil {
			return true
		}
		for _, obj := range candidateObjects(data) {
			if isRecipeSchema(obj) {
				recipe = parseRecipeSchema(obj)
				return false
			}
		}
		return true
	})
	if recipe != nil && len(recipe.Ingredients) > 0 {
		return recipe
	}
	return nil
}

// candidateObjects flattens a JSON-LD document into the objects that could
// carry a Recipe schema.
func candidateObjects(data interface{}) []map[string]interface{} {
	var out []map[string]interface{}
	switch v := data.(type) {
	case []interface{}:
		for _, item := range v {
			out = append(out, candidateObjects(item)...)
		}
	case map[string]interface{}:
		out = append(out, v)
		if graph, ok := v["@graph"].([]interface{}); ok {
			for _, item := range graph {
				if m, ok := item.(map[string]interface{}); ok {
					out = append(out, m)
				}
			}
		}
	}
	return out
}

func isRecipeSchema(obj map[string]interface{}) bool {
	switch t := obj["@type"].(type) {
	case string:
		return strings.Contains(strings.ToLower(t), "recipe")
	case []interface{}:
		for _, item := range t {
			if s, ok := item.(string); ok && strings.Contains(strings.ToLower(s), "recipe") {
				return true
			}
		}
	}
	return false
}

func parseRecipeSchema(obj map[string]interface{}) *Recipe {
	recipe := &Recipe{Title: "Untitled Recipe"}
	if name, ok := obj["name"].(string); ok && name != "" {
		recipe.Title = name
	}

	// Section headers inside recipeIngredient are plain strings ending in
	// a colon.
	var sections [][]string
	var current []string
	if raw, ok := obj["recipeIngredient"].([]interface{}); ok {
		for _, item := range raw {
			text := entryText(item)
			if text == "" {
				continue
			}
			if strings.HasSuffix(text, ":") {
				if len(current) > 0 {
					sections = append(sections, current)
					current = nil
				}
				continue
			}
			current = append(current, text)
		}
	}
	if len(current) > 0 {
		sections = append(sections, current)
	}

	for _, section := range sections {
		recipe.Ingredients = append(recipe.Ingredients, section...)
	}
	recipe.Sections = sections

	if raw, ok := obj["recipeInstructions"].([]interface{}); ok {
		for _, item := range raw {
			if text := entryText(item); text != "" {
				recipe.Instructions = append(recipe.Instructions, text)
			}
		}
	}
	return recipe
}

// entryText resolves a schema entry that may be a plain string or an object
// with a text field (HowToStep and friends).
func entryText(item interface{}) string {
	switch v := item.(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]interface{}:
		if text, ok := v["text"].(string); ok {
			return strings.TrimSpace(text)
		}
	}
	return ""
}

var titleSelectors = []string{
	"h1.recipe-title",
	"h1.entry-title",
	".recipe-header h1",
	".recipe-title",
	"h1",
	"title",
}

var ingredientContainerSelectors = []string{
	".recipe-ingredients",
	".ingredients",
	".ingredient-list",
	`[class*="ingredient"]`,
}

// sectionLabels are short container headings that mark an ingredient
// sub-section even without heading markup.
var sectionLabels = map[string]bool{
	"seasoning": true, "sauce": true, "garlic butter": true,
	"topping": true, "dressing": true, "marinade": true,
}

// extractHTML is the fallback for pages without structured data.
func (s *Scraper) extractHTML(doc *goquery.Document) *Recipe {
	sections := extractIngredientSections(doc)
	if len(sections) == 0 {
		return nil
	}

	recipe := &Recipe{Title: extractTitle(doc), Sections: sections}
	for _, section := range sections {
		recipe.Ingredients = append(recipe.Ingredients, section...)
	}
	return recipe
}

func extractTitle(doc *goquery.Document) string {
	for _, selector := range titleSelectors {
		if text := strings.TrimSpace(doc.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return "Untitled Recipe"
}

func extractIngredientSections(doc *goquery.Document) [][]string {
	for _, selector := range ingredientContainerSelectors {
		container := doc.Find(selector).First()
		if container.Length() == 0 {
			continue
		}

		var sections [][]string
		var current []string
		container.Find("h2, h3, h4, h5, strong, b, li, p").Each(func(_ int, el *goquery.Selection) {
			text := strings.TrimSpace(el.Text())
			if len(text) < 3 {
				return
			}

			if isSectionHeader(el, text) {
				if len(current) > 0 {
					sections = append(sections, current)
					current = nil
				}
				return
			}
			if looksLikeIngredient(text) {
				current = append(current, text)
			}
		})
		if len(current) > 0 {
			sections = append(sections, current)
		}
		if len(sections) > 0 {
			return sections
		}
	}
	return nil
}

func isSectionHeader(el *goquery.Selection, text string) bool {
	switch goquery.NodeName(el) {
	case "h2", "h3", "h4", "h5", "strong", "b":
		return true
	}
	if strings.HasSuffix(text, ":") {
		return true
	}
	return len(strings.Fields(text)) <= 3 && sectionLabels[strings.ToLower(text)]
}

var (
	quantityHintRe = regexp.MustCompile(`\d+|½|¼|¾|⅓|⅔|⅛|⅜|⅝|⅞`)
	unitHintRe     = regexp.MustCompile(`(?i)\b(cup|tablespoon|teaspoon|gram|ounce|pound|ml|l|tbsp|tsp|g|oz|lbs?)s?\b`)
)

// looksLikeIngredient filters list items that are navigation or prose
// rather than ingredient lines. Most real ingredients carry a quantity or a
// unit; short descriptive phrases pass too.
func looksLikeIngredient(text string) bool {
	switch strings.ToLower(text) {
	case "ingredients", "instructions", "method", "notes", "tips":
		return false
	}
	if quantityHintRe.MatchString(text) || unitHintRe.MatchString(text) {
		return true
	}
	return len(strings.Fields(text)) <= 8 && len(text) > 3
}
