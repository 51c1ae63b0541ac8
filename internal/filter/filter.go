package filter

import (
	"strings"

	"github.com/amishk599/jobparser/internal/model"
)

// Ensure TitleFilter implements model.VacancyFilter.
var _ model.VacancyFilter = (*TitleFilter)(nil)

// TitleFilter matches vacancies whose canonical title contains the search
// query and which carry a compensation. Matching is case-insensitive.
type TitleFilter struct{}

// NewTitleFilter returns the relevance filter applied after normalization.
func NewTitleFilter() *TitleFilter {
	return &TitleFilter{}
}

// Match returns true if the vacancy title contains query and a compensation is
// set. The compensation check repeats the currency filter on purpose.
func (f *TitleFilter) Match(query string, v model.Vacancy) bool {
	if !strings.Contains(strings.ToLower(v.Title), strings.ToLower(query)) {
		return false
	}
	return v.HasCompensation()
}

// Apply returns the vacancies that match query, preserving order.
func Apply(f model.VacancyFilter, query string, vacancies []model.Vacancy) []model.Vacancy {
	matched := make([]model.Vacancy, 0, len(vacancies))
	for _, v := range vacancies {
		if f.Match(query, v) {
			matched = append(matched, v)
		}
	}
	return matched
}
