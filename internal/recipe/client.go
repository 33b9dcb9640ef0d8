package recipe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"vanphal/internal/config"
	"vanphal/internal/model"

	"github.com/rs/zerolog"
)

// Client asks an external generative-text service for serving ideas keyed by
// product name. It sits entirely outside the order-computation core: any
// failure — timeout, bad status, malformed body — degrades to "no
// suggestions" and never touches cart or order state.
type Client struct {
	cfg    config.RecipeConfig
	http   *http.Client
	logger zerolog.Logger
}

// NewClient creates a new recipe-suggestion client.
func NewClient(cfg config.RecipeConfig, logger zerolog.Logger) *Client {
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger.With().Str("component", "recipe-client").Logger(),
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Suggest returns up to three serving ideas for the named product, or nil
// when the service is unavailable, misconfigured or returns junk.
func (c *Client) Suggest(ctx context.Context, productName string) []model.RecipeSuggestion {
	if !c.cfg.Enabled() {
		return nil
	}

	prompt := fmt.Sprintf(
		"Suggest 3 unique, premium healthy recipes or serving ideas using Vanphal Farms' handcrafted %s. "+
			"Focus on natural ingredients and mountain vibes. "+
			"Respond with a JSON array of objects with fields title, description, steps and pairingSuggestion.",
		productName,
	)

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to encode recipe request")
		return nil
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.cfg.BaseURL, c.cfg.Model, c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to build recipe request")
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("product", productName).Msg("recipe service unreachable")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Int("status", resp.StatusCode).Str("product", productName).Msg("recipe service returned an error")
		return nil
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		c.logger.Warn().Err(err).Msg("failed to decode recipe response")
		return nil
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return nil
	}

	var suggestions []model.RecipeSuggestion
	if err := json.Unmarshal([]byte(decoded.Candidates[0].Content.Parts[0].Text), &suggestions); err != nil {
		c.logger.Warn().Err(err).Msg("recipe response was not valid suggestion JSON")
		return nil
	}
	return suggestions
}
