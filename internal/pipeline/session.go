package pipeline

import (
	"github.com/amishk599/jobparser/internal/model"
	"github.com/amishk599/jobparser/internal/rank"
)

// Session carries the state of one search through the menu steps: the query,
// the vacancies found and, once ranked, the ranking parameters.
type Session struct {
	Query     string
	Vacancies []model.Vacancy
	TopN      int
	SortKey   rank.Key
}

// Empty reports whether the session holds no vacancies.
func (s Session) Empty() bool {
	return len(s.Vacancies) == 0
}

// Rank returns a new session holding the top-N vacancies ordered by key,
// together with the ranking result for notices.
func (s Session) Rank(key rank.Key, topN int) (Session, rank.Result, error) {
	res, err := rank.Rank(s.Vacancies, key, topN)
	if err != nil {
		return s, rank.Result{}, err
	}
	return Session{
		Query:     s.Query,
		Vacancies: res.Vacancies,
		TopN:      topN,
		SortKey:   key,
	}, res, nil
}

// Save appends every vacancy of the session to store.
func (s Session) Save(store model.VacancyStore) (int, error) {
	for i, v := range s.Vacancies {
		if err := store.AddVacancy(v); err != nil {
			return i, err
		}
	}
	return len(s.Vacancies), nil
}
