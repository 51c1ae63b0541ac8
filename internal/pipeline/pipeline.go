package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/amishk599/jobparser/internal/filter"
	"github.com/amishk599/jobparser/internal/model"
	"github.com/amishk599/jobparser/internal/normalize"
)

// Aggregator owns the search pipeline across all job boards:
// fetch (concurrently) → normalize → currency filter → relevance filter.
type Aggregator struct {
	sources []model.VacancySource
	filter  model.VacancyFilter
	logger  *slog.Logger
}

// NewAggregator creates an aggregator over sources. The order of sources is
// the order their results are merged in.
func NewAggregator(sources []model.VacancySource, filter model.VacancyFilter, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		sources: sources,
		filter:  filter,
		logger:  logger,
	}
}

// Search queries every source in parallel and returns a session holding the
// relevant vacancies. Any source failure aborts the whole search.
func (a *Aggregator) Search(ctx context.Context, query string) (Session, error) {
	results, err := a.fetchAll(ctx, query)
	if err != nil {
		return Session{}, err
	}

	var vacancies []model.Vacancy
	fetched, skipped := 0, 0
	for i, raws := range results {
		fetched += len(raws)
		for _, raw := range raws {
			v, ok, err := toVacancy(raw)
			if err != nil {
				skipped++
				a.logger.Debug("skipping malformed listing",
					"source", a.sources[i].Name(),
					"error", err,
				)
				continue
			}
			if ok {
				vacancies = append(vacancies, v)
			}
		}
	}

	relevant := filter.Apply(a.filter, query, vacancies)

	a.logger.Info("search complete",
		"query", query,
		"fetched", fetched,
		"skipped", skipped,
		"accepted", len(vacancies),
		"relevant", len(relevant),
	)

	return Session{Query: query, Vacancies: relevant}, nil
}

// fetchAll runs one goroutine per source and waits for all of them. Each
// goroutine writes only its own slot, so results keep source order no matter
// which request finishes first.
func (a *Aggregator) fetchAll(ctx context.Context, query string) ([][]model.RawVacancy, error) {
	results := make([][]model.RawVacancy, len(a.sources))

	var g errgroup.Group
	g.SetLimit(max(len(a.sources), 1))
	for i, src := range a.sources {
		g.Go(func() error {
			raws, err := src.FetchVacancies(ctx, query)
			if err != nil {
				return fmt.Errorf("searching %s: %w", src.Name(), err)
			}
			results[i] = raws
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// toVacancy normalizes one raw listing. It returns ok=false for listings in a
// foreign currency or without compensation.
func toVacancy(raw model.RawVacancy) (model.Vacancy, bool, error) {
	f, err := normalize.Normalize(raw)
	if err != nil {
		return model.Vacancy{}, false, err
	}
	if !normalize.AcceptCurrency(f.Currency, f.Compensation) {
		return model.Vacancy{}, false, nil
	}
	return model.NewVacancy(f.Title, f.Reference, f.Compensation, f.DatePublished), true, nil
}
