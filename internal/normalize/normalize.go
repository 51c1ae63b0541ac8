// Package normalize maps source-native job board records onto the canonical
// vacancy fields.
package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/amishk599/jobparser/internal/model"
)

// DateLayout is the canonical publication date format.
const DateLayout = "2006.01.02"

// Fields holds the canonical attributes resolved from one raw record.
type Fields struct {
	Title         string
	Reference     string
	Compensation  int // zero when the source reports no amount
	DatePublished string
	Currency      string
}

// Normalize resolves each attribute from the SuperJob key first and the
// HeadHunter key second. A record carrying neither key for an attribute
// yields an error wrapping model.ErrFieldMissing.
func Normalize(raw model.RawVacancy) (Fields, error) {
	var f Fields
	var err error

	if f.Title, err = firstString(raw, "profession", "name"); err != nil {
		return Fields{}, err
	}
	if f.Reference, err = firstString(raw, "link", "alternate_url"); err != nil {
		return Fields{}, err
	}
	if f.Compensation, err = compensation(raw); err != nil {
		return Fields{}, err
	}
	if f.DatePublished, err = datePublished(raw); err != nil {
		return Fields{}, err
	}
	if f.Currency, err = currency(raw); err != nil {
		return Fields{}, err
	}
	return f, nil
}

func present(raw map[string]any, key string) (any, bool) {
	v, ok := raw[key]
	return v, ok && v != nil
}

func firstString(raw model.RawVacancy, primary, fallback string) (string, error) {
	v, ok := present(raw, primary)
	key := primary
	if !ok {
		if v, ok = raw[fallback]; !ok {
			return "", fmt.Errorf("%w: %s or %s", model.ErrFieldMissing, primary, fallback)
		}
		key = fallback
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is %T, not a string", model.ErrFieldMissing, key, v)
	}
	return s, nil
}

// salary returns the nested HeadHunter salary object.
func salary(raw model.RawVacancy, field string) (map[string]any, error) {
	s, ok := present(raw, "salary")
	if !ok {
		return nil, fmt.Errorf("%w: salary.%s", model.ErrFieldMissing, field)
	}
	m, ok := s.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: salary is %T, not an object", model.ErrFieldMissing, s)
	}
	if _, ok := m[field]; !ok {
		return nil, fmt.Errorf("%w: salary.%s", model.ErrFieldMissing, field)
	}
	return m, nil
}

func compensation(raw model.RawVacancy) (int, error) {
	v, ok := present(raw, "payment_from")
	if !ok {
		s, err := salary(raw, "from")
		if err != nil {
			return 0, err
		}
		v = s["from"]
	}
	if v == nil {
		return 0, nil
	}
	return model.CoerceCompensation(v)
}

func datePublished(raw model.RawVacancy) (string, error) {
	if v, ok := present(raw, "date_published"); ok {
		secs, err := epochSeconds(v)
		if err != nil {
			return "", err
		}
		return time.Unix(secs, 0).UTC().Format(DateLayout), nil
	}
	v, ok := raw["published_at"]
	if !ok {
		return "", fmt.Errorf("%w: date_published or published_at", model.ErrFieldMissing)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: published_at is %T, not a string", model.ErrFieldMissing, v)
	}
	t, err := parseISO(s)
	if err != nil {
		return "", err
	}
	return t.Format(DateLayout), nil
}

func epochSeconds(v any) (int64, error) {
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int64:
		return x, nil
	case float64:
		return floorSeconds(x)
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n, nil
		}
		f, err := x.Float64()
		if err != nil {
			return 0, fmt.Errorf("parse date_published %q: %w", x, err)
		}
		return floorSeconds(f)
	default:
		return 0, fmt.Errorf("parse date_published: unsupported type %T", v)
	}
}

func floorSeconds(f float64) (int64, error) {
	f = math.Floor(f)
	if math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("parse date_published: %v out of range", f)
	}
	return int64(f), nil
}

// isoLayouts are tried in order; HeadHunter emits offsets without a colon.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseISO keeps the offset carried by the string so the calendar date is the
// one the board published in.
func parseISO(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse published_at %q: unrecognized ISO-8601 timestamp", s)
}

func currency(raw model.RawVacancy) (string, error) {
	if v, ok := present(raw, "currency"); ok {
		if s, ok := v.(string); ok && s != "" {
			return strings.ToUpper(s), nil
		}
	}
	s, err := salary(raw, "currency")
	if err != nil {
		return "", err
	}
	c, ok := s["currency"].(string)
	if !ok {
		return "", fmt.Errorf("%w: salary.currency is %T, not a string", model.ErrFieldMissing, s["currency"])
	}
	return strings.ToUpper(c), nil
}
