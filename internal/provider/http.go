package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"jobmatch-backend/internal/shared/telemetry"
	"jobmatch-backend/match/model"
)

const (
	searchPath = "/v1/jobs/search"

	// Responses are decoded through a limit so a misbehaving upstream
	// cannot grow memory without bound.
	maxResponseBody = 4 << 20
	maxErrorBody    = 4 << 10

	defaultTimeout = 15 * time.Second
)

// HTTPConfig carries the settings for the REST job board.
type HTTPConfig struct {
	BaseURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
	UserAgent    string
	Timeout      time.Duration
}

// HTTPProvider talks to the job-board aggregator over REST.
type HTTPProvider struct {
	BaseURL   string
	UserAgent string
	Client    *http.Client
}

// NewHTTP builds the provider client. When TokenURL is set the client
// carries an OAuth2 client-credentials transport that obtains and
// refreshes access tokens on its own.
func NewHTTP(cfg HTTPConfig) *HTTPProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := &http.Client{Timeout: timeout}
	if cfg.TokenURL != "" {
		cc := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		client = cc.Client(context.Background())
		client.Timeout = timeout
	}

	return &HTTPProvider{
		BaseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		UserAgent: cfg.UserAgent,
		Client:    client,
	}
}

// Search runs one paged query and maps the response into postings.
func (p *HTTPProvider) Search(ctx context.Context, q Query) ([]model.JobPosting, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+searchPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if p.UserAgent != "" {
		req.Header.Set("User-Agent", p.UserAgent)
	}
	req.URL.RawQuery = buildQuery(q).Encode()

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request: %w", err)
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return nil, err
	}

	var envelope searchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode provider response: %w", err)
	}

	jobs := make([]model.JobPosting, 0, len(envelope.Jobs))
	for _, dto := range envelope.Jobs {
		jobs = append(jobs, dto.toPosting())
	}

	telemetry.Info("provider.search", map[string]any{
		"keyword": q.Keyword,
		"page":    clampPage(q.Page),
		"results": len(jobs),
	})

	return jobs, nil
}

func buildQuery(q Query) url.Values {
	v := url.Values{}
	v.Set("query", q.Keyword)
	if q.Location != "" {
		v.Set("location", q.Location)
	}
	if q.Experience != "" {
		v.Set("experience", q.Experience)
	}
	if q.Company != "" {
		v.Set("company", q.Company)
	}
	if q.Platform != "" {
		v.Set("site", q.Platform)
	}
	v.Set("page", strconv.Itoa(clampPage(q.Page)))
	v.Set("num_pages", strconv.Itoa(clampPage(q.PageCount)))
	return v
}

func clampPage(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func statusError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, errorDetail(resp))
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, errorDetail(resp))
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrBadRequest, errorDetail(resp))
	default:
		return fmt.Errorf("provider status %s: %s", resp.Status, errorDetail(resp))
	}
}

// errorDetail pulls a short message out of an error body when the
// upstream sends one, falling back to the raw status line.
func errorDetail(resp *http.Response) string {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(strings.TrimSpace(string(raw))) == 0 {
		return resp.Status
	}

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return strings.TrimSpace(string(raw))
}

type searchResponse struct {
	Jobs  []jobDTO `json:"jobs"`
	Total int      `json:"total"`
	Page  int      `json:"page"`
}

// jobDTO mirrors the aggregator's wire shape; toPosting owns the mapping
// into the scoring model.
type jobDTO struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Company            string   `json:"company"`
	Location           string   `json:"location"`
	Description        string   `json:"description"`
	RequiredSkills     []string `json:"required_skills"`
	PreferredSkills    []string `json:"preferred_skills"`
	MinExperienceYears float64  `json:"min_experience_years"`
	MaxExperienceYears *float64 `json:"max_experience_years"`
	RequiredEducation  string   `json:"required_education"`
	RoleType           string   `json:"role_type"`
	URL                string   `json:"url"`
	Source             string   `json:"source"`
	PostedAt           string   `json:"posted_at"`
}

func (d jobDTO) toPosting() model.JobPosting {
	posting := model.JobPosting{
		ID:                strings.TrimSpace(d.ID),
		Title:             strings.TrimSpace(d.Title),
		Company:           strings.TrimSpace(d.Company),
		Location:          strings.TrimSpace(d.Location),
		Description:       d.Description,
		RequiredSkills:    cleanList(d.RequiredSkills),
		PreferredSkills:   cleanList(d.PreferredSkills),
		MinExperience:     d.MinExperienceYears,
		MaxExperience:     d.MaxExperienceYears,
		RequiredEducation: strings.TrimSpace(d.RequiredEducation),
		RoleType:          strings.TrimSpace(d.RoleType),
		URL:               strings.TrimSpace(d.URL),
		Source:            strings.TrimSpace(d.Source),
		PostedAt:          strings.TrimSpace(d.PostedAt),
	}
	// Weight lookup falls back to the title when the board sends no tag.
	if posting.RoleType == "" {
		posting.RoleType = posting.Title
	}
	if posting.MinExperience < 0 {
		posting.MinExperience = 0
	}
	return posting
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
