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

// SuperJobBaseURL is the SuperJob API root.
const SuperJobBaseURL = "https://api.superjob.ru"

// SuperJobKeyEnv names the environment variable holding the SuperJob app key.
const SuperJobKeyEnv = "SUPERJOB_API_KEY"

// Ensure SuperJobAdapter implements model.VacancySource.
var _ model.VacancySource = (*SuperJobAdapter)(nil)

// superJobResponse is the top-level SuperJob vacancies search response.
type superJobResponse struct {
	Objects []model.RawVacancy `json:"objects"`
}

// SuperJobAdapter searches the SuperJob vacancies endpoint. Every request
// carries the application key in the X-Api-App-Id header.
type SuperJobAdapter struct {
	baseURL string
	apiKey  string
	count   int
	client  *http.Client
}

// NewSuperJobAdapter creates an adapter for the SuperJob API rooted at baseURL.
// A non-positive count falls back to DefaultPageSize.
func NewSuperJobAdapter(baseURL, apiKey string, count int, client *http.Client) *SuperJobAdapter {
	if baseURL == "" {
		baseURL = SuperJobBaseURL
	}
	if count <= 0 {
		count = DefaultPageSize
	}
	return &SuperJobAdapter{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		count:   count,
		client:  client,
	}
}

func (a *SuperJobAdapter) Name() string { return "superjob" }

// FetchVacancies returns the raw listings whose title matches query. Listings
// with salary "by agreement" are excluded by the board.
func (a *SuperJobAdapter) FetchVacancies(ctx context.Context, query string) ([]model.RawVacancy, error) {
	params := url.Values{}
	// srws=1 restricts the keyword to the vacancy title.
	params.Set("keywords[0][srws]", "1")
	params.Set("keywords[0][keys]", query)
	params.Set("count", strconv.Itoa(a.count))
	params.Set("no_agreement", "1")
	u := a.baseURL + "/2.0/vacancies/?" + params.Encode()

	header := http.Header{}
	header.Set("X-Api-App-Id", a.apiKey)

	var resp superJobResponse
	if err := getJSON(ctx, a.client, u, header, &resp); err != nil {
		return nil, fmt.Errorf("superjob search for %q: %w", query, err)
	}
	if resp.Objects == nil {
		return []model.RawVacancy{}, nil
	}
	return resp.Objects, nil
}
