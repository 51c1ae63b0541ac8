// Package store persists saved vacancies.
package store

import (
	"fmt"
	"io"

	"github.com/amishk599/jobparser/internal/model"
)

// Open returns the store selected by kind ("jsonl" or "sqlite") at path,
// together with a closer for releasing it.
func Open(kind, path string) (model.VacancyStore, io.Closer, error) {
	switch kind {
	case "", "jsonl":
		return NewJSONLStore(path), nopCloser{}, nil
	case "sqlite":
		s, err := NewSQLiteStore(path)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage type %q", kind)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
