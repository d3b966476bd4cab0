// Package clipper imports recipes from web pages into the catalog. Pages
// carrying schema.org/Recipe JSON-LD are parsed directly; anything else
// falls back to LLM extraction when a text generator is configured.
package clipper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"nutriplan/internal/catalog"
	"nutriplan/internal/llm"

	"github.com/PuerkitoBio/goquery"
)

// Catalog is the destination for clipped recipes.
type Catalog interface {
	SaveRecipe(ctx context.Context, rec catalog.Recipe) error
}

// Clipper handles fetching and extracting recipes from URLs.
type Clipper struct {
	catalog    Catalog
	textGen    llm.TextGenerator // nil disables the LLM fallback
	httpClient *http.Client
}

// ExtractedRecipe is the intermediate form both extraction paths produce.
type ExtractedRecipe struct {
	Title       string   `json:"title"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	PrepTime    string   `json:"prep_time"`
	Servings    string   `json:"servings"`
}

// NewClipper creates a new Clipper instance.
func NewClipper(cat Catalog, textGen llm.TextGenerator) *Clipper {
	return &Clipper{
		catalog:    cat,
		textGen:    textGen,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ClipURL fetches the URL, extracts the recipe, and saves it to the catalog.
// Imported recipes carry no meal type or dietary classification; the
// operator tags them afterwards.
func (c *Clipper) ClipURL(ctx context.Context, url string) (*catalog.Recipe, error) {
	doc, err := c.fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}

	extracted := extractJSONLD(doc)
	if extracted == nil {
		if c.textGen == nil {
			return nil, fmt.Errorf("no structured recipe data on page and no extraction model configured")
		}
		extracted, err = c.extractWithLLM(ctx, doc)
		if err != nil {
			return nil, err
		}
	}
	if extracted.Title == "" || len(extracted.Ingredients) == 0 {
		return nil, fmt.Errorf("page did not yield a usable recipe")
	}

	rec := toCatalogRecipe(*extracted, url)
	if err := c.catalog.SaveRecipe(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save clipped recipe: %w", err)
	}
	return &rec, nil
}

func (c *Clipper) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

// extractWithLLM strips page noise and asks the model for a structured
// extraction.
func (c *Clipper) extractWithLLM(ctx context.Context, doc *goquery.Document) (*ExtractedRecipe, error) {
	// Remove noise to save LLM tokens
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})
	content := doc.Find("body").Text()

	prompt := fmt.Sprintf(`
You are a recipe extraction expert. Extract the recipe details from the following page content.
Return the result strictly as a JSON object with this structure:
{
  "title": "Recipe Title",
  "ingredients": ["item 1", "item 2", ...],
  "steps": ["Step 1 description", "Step 2 description", ...],
  "prep_time": "e.g. 30 mins",
  "servings": "e.g. 4 people"
}

Page Content:
%s
`, content)

	response, err := c.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("ai extraction failed: %w", err)
	}
	response = stripCodeFences(response)

	var extracted ExtractedRecipe
	if err := json.Unmarshal([]byte(response), &extracted); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w. Response: %s", err, response)
	}
	return &extracted, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

var (
	nonSlugRe     = regexp.MustCompile(`[^a-z0-9]+`)
	isoDurationRe = regexp.MustCompile(`^P(?:([0-9]+)D)?T?(?:([0-9]+)H)?(?:([0-9]+)M)?`)
)

// Slugify turns a display name into a catalog slug.
func Slugify(name string) string {
	slug := nonSlugRe.ReplaceAllString(strings.ToLower(name), "_")
	return strings.Trim(slug, "_")
}

// toCatalogRecipe converts an extraction into a catalog record. Every
// ingredient line becomes an entry with the raw line preserved in Notes.
func toCatalogRecipe(e ExtractedRecipe, sourceURL string) catalog.Recipe {
	rec := catalog.Recipe{
		Slug:        Slugify(e.Title),
		Name:        strings.TrimSpace(e.Title),
		TimeMinutes: parseMinutes(e.PrepTime),
		Servings:    parseLeadingInt(e.Servings),
		Steps:       e.Steps,
		Notes:       "Imported from " + sourceURL,
		Tags:        []string{"imported"},
	}
	for _, line := range e.Ingredients {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rec.Ingredients = append(rec.Ingredients, catalog.RecipeIngredient{
			Slug:       Slugify(line),
			Importance: 3,
			Notes:      line,
		})
	}
	return rec
}

// parseMinutes accepts ISO 8601 durations ("PT1H30M") and loose text
// ("45 mins"); anything unparseable is 0.
func parseMinutes(s string) int {
	s = strings.TrimSpace(strings.ToUpper(s))
	if s == "" {
		return 0
	}
	if strings.HasPrefix(s, "P") {
		m := isoDurationRe.FindStringSubmatch(s)
		if m == nil {
			return 0
		}
		days := parseLeadingInt(m[1])
		hours := parseLeadingInt(m[2])
		minutes := parseLeadingInt(m[3])
		return days*24*60 + hours*60 + minutes
	}
	n := parseLeadingInt(s)
	if strings.Contains(s, "H") && !strings.Contains(s, "MIN") {
		return n * 60
	}
	return n
}

func parseLeadingInt(s string) int {
	s = strings.TrimSpace(s)
	n := 0
	seen := false
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		seen = true
	}
	if !seen {
		return 0
	}
	return n
}
