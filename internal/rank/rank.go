// Package rank orders aggregated vacancies and cuts them to a top-N list.
package rank

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/amishk599/jobparser/internal/model"
)

// Key selects the field vacancies are ranked by.
type Key string

const (
	ByDate   Key = "date"   // most recently published first
	BySalary Key = "salary" // highest compensation first
)

// ErrInvalidTopN is returned when the requested list size is not positive.
var ErrInvalidTopN = errors.New("top-N must be a positive integer")

// ParseKey accepts the key names and the common aliases used on the command line.
func ParseKey(s string) (Key, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "date", "recency", "published":
		return ByDate, nil
	case "salary", "compensation", "pay":
		return BySalary, nil
	default:
		return "", fmt.Errorf("unknown sort key %q (want date or salary)", s)
	}
}

// Result is a ranked and truncated vacancy list.
type Result struct {
	Vacancies []model.Vacancy
	Found     int  // number of vacancies before truncation
	Shortfall bool // fewer vacancies found than requested
}

// Notice returns the message to show when fewer vacancies were found than
// requested, or "" otherwise.
func (r Result) Notice() string {
	if !r.Shortfall {
		return ""
	}
	return fmt.Sprintf("fewer results than requested: found %d vacancies in total", r.Found)
}

// Rank stable-sorts a copy of vacancies in descending order of key and keeps
// the first topN. The input slice is not modified.
func Rank(vacancies []model.Vacancy, key Key, topN int) (Result, error) {
	if topN <= 0 {
		return Result{}, fmt.Errorf("%w, got %d", ErrInvalidTopN, topN)
	}

	sorted := slices.Clone(vacancies)
	switch key {
	case BySalary:
		slices.SortStableFunc(sorted, func(a, b model.Vacancy) int {
			return cmp.Compare(b.Compensation, a.Compensation)
		})
	case ByDate:
		// YYYY.MM.DD compares chronologically as text.
		slices.SortStableFunc(sorted, func(a, b model.Vacancy) int {
			return strings.Compare(b.DatePublished, a.DatePublished)
		})
	default:
		return Result{}, fmt.Errorf("unknown sort key %q", key)
	}

	res := Result{Found: len(sorted), Shortfall: topN > len(sorted)}
	if topN < len(sorted) {
		sorted = sorted[:topN]
	}
	res.Vacancies = sorted
	return res, nil
}
