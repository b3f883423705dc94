package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-portfolio-console/internal/domain"
)

// SkillsAPI reads the predefined category catalogue and manages the
// categorization settings. Settings operations need a token; the catalogue
// and the flattened view are public.
type SkillsAPI struct {
	baseURL string
	httpc   *http.Client
	tokens  *TokenProvider
}

type SkillsAPIOption func(*SkillsAPI)

func WithSkillsHTTPClient(c *http.Client) SkillsAPIOption {
	return func(a *SkillsAPI) { a.httpc = c }
}

func NewSkillsAPI(baseURL string, tokens *TokenProvider, opts ...SkillsAPIOption) *SkillsAPI {
	a := &SkillsAPI{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// GetStructure fetches the read-only category/subcategory catalogue.
func (a *SkillsAPI) GetStructure(ctx context.Context) (domain.SkillsStructure, error) {
	var structure domain.SkillsStructure
	if err := a.getJSON(ctx, "/api/portfolio/skills/structure", "", &structure); err != nil {
		return domain.SkillsStructure{}, err
	}
	return structure, nil
}

// GetFlattened fetches the skills section with every category forced flat.
func (a *SkillsAPI) GetFlattened(ctx context.Context) (domain.SkillCategoryMap, error) {
	var flattened domain.SkillCategoryMap
	if err := a.getJSON(ctx, "/api/portfolio/skills/flat", "", &flattened); err != nil {
		return nil, err
	}
	return flattened, nil
}

// GetCategorization loads the current settings. A 404 means none are stored
// yet and yields the defaults, not an error.
func (a *SkillsAPI) GetCategorization(ctx context.Context) (domain.CategorizationSettings, error) {
	token := a.tokens.Token()
	if token == "" {
		return domain.CategorizationSettings{}, ErrAuthRequired
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/api/linkedin/configure-categorization", nil)
	if err != nil {
		return domain.CategorizationSettings{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.httpc.Do(req)
	if err != nil {
		return domain.CategorizationSettings{}, fmt.Errorf("fetch categorization: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.DefaultCategorizationSettings(), nil
	}
	env, err := decodeEnvelope(resp.Body)
	if err != nil {
		return domain.CategorizationSettings{}, fmt.Errorf("fetch categorization: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return domain.CategorizationSettings{}, responseError(resp.StatusCode, env, "failed to fetch categorization settings")
	}

	var settings domain.CategorizationSettings
	if err := json.Unmarshal(env.Data, &settings); err != nil {
		return domain.CategorizationSettings{}, fmt.Errorf("decode categorization: %w", err)
	}
	return settings, nil
}

// ConfigureCategorization saves the settings transactionally: the caller
// edits a copy and this either persists all of it or none.
func (a *SkillsAPI) ConfigureCategorization(ctx context.Context, settings domain.CategorizationSettings) error {
	token := a.tokens.Token()
	if token == "" {
		return ErrAuthRequired
	}

	body, err := json.Marshal(map[string]domain.CategorizationSettings{"categorization": settings})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/api/linkedin/configure-categorization", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("save categorization: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}
	env, err := decodeEnvelope(resp.Body)
	if err != nil {
		return fmt.Errorf("save categorization: %w", err)
	}
	return responseError(resp.StatusCode, env, "failed to save categorization settings")
}

func (a *SkillsAPI) getJSON(ctx context.Context, path, token string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+path, nil)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	env, err := decodeEnvelope(resp.Body)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return responseError(resp.StatusCode, env, "failed to fetch "+path)
	}
	return json.Unmarshal(env.Data, out)
}
