// Package catalog is the client for the remote drink catalog
// (TheCocktailDB v1 JSON API). It is a read-only collaborator: the
// storefront never writes to it and treats its records as opaque.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"cocktailhaven/internal/domain"
)

// DefaultBaseURL is the public API endpoint with the free developer key.
const DefaultBaseURL = "https://www.thecocktaildb.com/api/json/v1/1"

// CategoryAll is the pseudo-category shown as the default filter. The
// upstream API has no "everything" listing, so it maps to an ingredient
// filter, matching what the storefront has always displayed.
const CategoryAll = "All"

const maxIngredients = 15

// Client fetches categories and drinks.
type Client struct {
	baseURL    string
	locale     string
	httpClient *http.Client
	logger     *zap.Logger
}

// New builds a Client. locale selects localized instruction text by
// suffix (e.g. "ES" reads strInstructionsES) and may be empty.
func New(baseURL, locale string, logger *zap.Logger) *Client {
	base := strings.TrimSuffix(baseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		baseURL: base,
		locale:  strings.ToUpper(strings.TrimSpace(locale)),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

// Categories returns the catalog's category names.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var payload struct {
		Drinks []struct {
			Category string `json:"strCategory"`
		} `json:"drinks"`
	}
	if err := c.get(ctx, "/list.php?c=list", &payload); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(payload.Drinks))
	for _, d := range payload.Drinks {
		names = append(names, d.Category)
	}
	return names, nil
}

// DrinksByCategory lists the drinks in a category. CategoryAll falls back
// to the vodka ingredient filter.
func (c *Client) DrinksByCategory(ctx context.Context, category string) ([]domain.DrinkSummary, error) {
	path := "/filter.php?c=" + url.QueryEscape(category)
	if category == "" || strings.EqualFold(category, CategoryAll) {
		path = "/filter.php?i=Vodka"
	}
	var payload struct {
		Drinks []domain.DrinkSummary `json:"drinks"`
	}
	if err := c.get(ctx, path, &payload); err != nil {
		return nil, err
	}
	return payload.Drinks, nil
}

// rawDrink mirrors the upstream lookup record with its numbered
// ingredient columns.
type rawDrink struct {
	ID       string `json:"idDrink"`
	Name     string `json:"strDrink"`
	Thumb    string `json:"strDrinkThumb"`
	Category string `json:"strCategory"`

	extra map[string]string
}

func (r *rawDrink) UnmarshalJSON(b []byte) error {
	type plain rawDrink
	if err := json.Unmarshal(b, (*plain)(r)); err != nil {
		return err
	}
	var all map[string]*string
	if err := json.Unmarshal(b, &all); err != nil {
		return err
	}
	r.extra = make(map[string]string, len(all))
	for k, v := range all {
		if v != nil {
			r.extra[k] = *v
		}
	}
	return nil
}

// DrinkByID fetches the full record for one drink, collapsing the numbered
// ingredient columns and picking localized instructions when available.
func (c *Client) DrinkByID(ctx context.Context, id string) (*domain.Drink, error) {
	var payload struct {
		Drinks []rawDrink `json:"drinks"`
	}
	if err := c.get(ctx, "/lookup.php?i="+url.QueryEscape(id), &payload); err != nil {
		return nil, err
	}
	if len(payload.Drinks) == 0 {
		return nil, domain.ErrNotFound
	}
	raw := payload.Drinks[0]

	drink := &domain.Drink{
		ID:       raw.ID,
		Name:     raw.Name,
		Thumb:    raw.Thumb,
		Category: raw.Category,
	}
	for i := 1; i <= maxIngredients; i++ {
		ing := strings.TrimSpace(raw.extra[fmt.Sprintf("strIngredient%d", i)])
		if ing == "" {
			continue
		}
		drink.Ingredients = append(drink.Ingredients, ing)
	}
	drink.Instructions = raw.extra["strInstructions"]
	if c.locale != "" {
		if localized := strings.TrimSpace(raw.extra["strInstructions"+c.locale]); localized != "" {
			drink.Instructions = localized
		}
	}
	return drink, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog responded %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode catalog response: %w", err)
	}
	c.logger.Debug("catalog fetch", zap.String("path", path))
	return nil
}
