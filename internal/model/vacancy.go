package model

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Vacancy is the canonical representation of a listing from any job board.
// Ordering and equality consider Compensation only.
type Vacancy struct {
	Title         string
	Reference     string // link to the listing
	Compensation  int    // minimum offered pay
	DatePublished string // YYYY.MM.DD
}

// NewVacancy builds a Vacancy from already normalized fields.
func NewVacancy(title, reference string, compensation int, datePublished string) Vacancy {
	return Vacancy{
		Title:         title,
		Reference:     reference,
		Compensation:  compensation,
		DatePublished: datePublished,
	}
}

// SetCompensation coerces value to an integer the same way for every source:
// numbers and numeric strings are parsed as floats and truncated.
func (v *Vacancy) SetCompensation(value any) error {
	n, err := CoerceCompensation(value)
	if err != nil {
		return err
	}
	v.Compensation = n
	return nil
}

// CoerceCompensation converts a decoded JSON value into an integer amount.
func CoerceCompensation(value any) (int, error) {
	var f float64
	switch x := value.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case float64:
		f = x
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return int(n), nil
		}
		parsed, err := strconv.ParseFloat(string(x), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrCompensation, x)
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrCompensation, x)
		}
		f = parsed
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", ErrCompensation, value)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt || f < math.MinInt {
		return 0, fmt.Errorf("%w: %v out of range", ErrCompensation, f)
	}
	return int(f), nil
}

// HasCompensation reports whether a non-zero compensation is set.
func (v Vacancy) HasCompensation() bool {
	return v.Compensation != 0
}

// Equal reports whether both vacancies offer the same compensation.
func (v Vacancy) Equal(other Vacancy) bool {
	return v.Compensation == other.Compensation
}

// Less reports whether v offers less than other.
func (v Vacancy) Less(other Vacancy) bool {
	return v.Compensation < other.Compensation
}

// LessOrEqual reports whether v offers no more than other.
func (v Vacancy) LessOrEqual(other Vacancy) bool {
	return v.Compensation <= other.Compensation
}

// Validate reports whether every field carries a value.
func (v Vacancy) Validate() bool {
	return v.Title != "" && v.Reference != "" && v.Compensation != 0 && v.DatePublished != ""
}

func (v Vacancy) String() string {
	return fmt.Sprintf("Vacancy: %s\nReference: %s\nSalary: от %d руб.\nDate published: %s\n",
		v.Title, v.Reference, v.Compensation, v.DatePublished)
}

// RawVacancy is a source-native listing as decoded from a job board response.
type RawVacancy map[string]any

// VacancySource fetches raw listings for a query from one job board.
type VacancySource interface {
	Name() string
	FetchVacancies(ctx context.Context, query string) ([]RawVacancy, error)
}

// VacancyFilter decides whether a canonical vacancy is relevant to a query.
type VacancyFilter interface {
	Match(query string, v Vacancy) bool
}
