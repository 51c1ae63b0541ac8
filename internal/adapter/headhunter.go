package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/amishk599/jobparser/internal/model"
)

// HeadHunterBaseURL is the public HeadHunter API root.
const HeadHunterBaseURL = "https://api.hh.ru"

// DefaultPageSize is the number of listings requested from each board.
const DefaultPageSize = 50

// Ensure HeadHunterAdapter implements model.VacancySource.
var _ model.VacancySource = (*HeadHunterAdapter)(nil)

// headHunterResponse is the top-level HeadHunter vacancies search response.
type headHunterResponse struct {
	Items []model.RawVacancy `json:"items"`
}

// HeadHunterAdapter searches the public HeadHunter vacancies endpoint.
type HeadHunterAdapter struct {
	baseURL string
	perPage int
	client  *http.Client
}

// NewHeadHunterAdapter creates an adapter for the HeadHunter API rooted at
// baseURL. A non-positive perPage falls back to DefaultPageSize.
func NewHeadHunterAdapter(baseURL string, perPage int, client *http.Client) *HeadHunterAdapter {
	if baseURL == "" {
		baseURL = HeadHunterBaseURL
	}
	if perPage <= 0 {
		perPage = DefaultPageSize
	}
	return &HeadHunterAdapter{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		perPage: perPage,
		client:  client,
	}
}

func (a *HeadHunterAdapter) Name() string { return "headhunter" }

// FetchVacancies returns the raw listings matching query, restricted to
// listings that state a salary.
func (a *HeadHunterAdapter) FetchVacancies(ctx context.Context, query string) ([]model.RawVacancy, error) {
	params := url.Values{}
	params.Set("text", query)
	params.Set("per_page", strconv.Itoa(a.perPage))
	params.Set("only_with_salary", "true")
	u := a.baseURL + "/vacancies?" + params.Encode()

	var resp headHunterResponse
	if err := getJSON(ctx, a.client, u, nil, &resp); err != nil {
		return nil, fmt.Errorf("headhunter search for %q: %w", query, err)
	}
	if resp.Items == nil {
		return []model.RawVacancy{}, nil
	}
	return resp.Items, nil
}
