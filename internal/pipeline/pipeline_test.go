package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/amishk599/jobparser/internal/filter"
	"github.com/amishk599/jobparser/internal/model"
	"github.com/amishk599/jobparser/internal/rank"
)

// --- Fakes ---

// MockSource returns canned raw listings or an error, optionally after a delay.
type MockSource struct {
	name  string
	raws  []model.RawVacancy
	err   error
	delay time.Duration
	done  chan struct{} // closed when FetchVacancies returns, if non-nil
	wait  chan struct{} // FetchVacancies blocks on it, if non-nil
}

func (m *MockSource) Name() string { return m.name }

func (m *MockSource) FetchVacancies(_ context.Context, _ string) ([]model.RawVacancy, error) {
	if m.done != nil {
		defer close(m.done)
	}
	if m.wait != nil {
		<-m.wait
	}
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	return m.raws, m.err
}

// InMemoryStore records added vacancies.
type InMemoryStore struct {
	added []model.Vacancy
	err   error
}

func (s *InMemoryStore) AddVacancy(v model.Vacancy) error {
	if s.err != nil {
		return s.err
	}
	s.added = append(s.added, v)
	return nil
}

func (s *InMemoryStore) VacanciesByCriteria(_ model.Criteria) ([]model.Record, error) {
	return nil, nil
}

func (s *InMemoryStore) DeleteVacancy(_ model.Vacancy) error { return nil }

// --- Helpers ---

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func raw(t *testing.T, s string) model.RawVacancy {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var r model.RawVacancy
	if err := dec.Decode(&r); err != nil {
		t.Fatalf("decode %s: %v", s, err)
	}
	return r
}

func superJobRaw(t *testing.T, title string, pay int, currency string) model.RawVacancy {
	t.Helper()
	r := raw(t, `{"profession":"x","link":"sj-url","payment_from":0,"date_published":1700000000,"currency":"rub"}`)
	r["profession"] = title
	r["payment_from"] = json.Number(itoa(pay))
	r["currency"] = currency
	return r
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}

func newAggregator(sources ...model.VacancySource) *Aggregator {
	return NewAggregator(sources, filter.NewTitleFilter(), discardLogger())
}

// --- Tests ---

func TestSearch_ScenarioBothBoardsAccepted(t *testing.T) {
	a := &MockSource{name: "a", raws: []model.RawVacancy{
		raw(t, `{"profession":"Повар","link":"url1","payment_from":50000,"date_published":1700000000,"currency":"rur"}`),
	}}
	b := &MockSource{name: "b", raws: []model.RawVacancy{
		raw(t, `{"name":"Повар-кондитер","alternate_url":"url2","salary":{"from":60000,"currency":"rub"},"published_at":"2023-11-01T00:00:00"}`),
	}}

	sess, err := newAggregator(a, b).Search(context.Background(), "повар")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(sess.Vacancies) != 2 {
		t.Fatalf("vacancies = %d, want 2", len(sess.Vacancies))
	}
	if sess.Query != "повар" {
		t.Errorf("Query = %q", sess.Query)
	}
	if sess.Vacancies[0].Reference != "url1" || sess.Vacancies[1].Reference != "url2" {
		t.Errorf("merge order = %+v, want url1 then url2", sess.Vacancies)
	}

	ranked, res, err := sess.Rank(rank.BySalary, 2)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if res.Shortfall {
		t.Error("unexpected shortfall")
	}
	if ranked.Vacancies[0].Compensation != 60000 || ranked.Vacancies[1].Compensation != 50000 {
		t.Errorf("ranked = %+v, want 60000 then 50000", ranked.Vacancies)
	}
	if ranked.TopN != 2 || ranked.SortKey != rank.BySalary {
		t.Errorf("ranked session params = %d/%s", ranked.TopN, ranked.SortKey)
	}
	if sess.Vacancies[0].Compensation != 50000 {
		t.Error("ranking must not reorder the searched session")
	}
}

func TestSearch_MergesInSourceOrderRegardlessOfCompletion(t *testing.T) {
	release := make(chan struct{})
	bDone := make(chan struct{})
	a := &MockSource{name: "a", wait: release, raws: []model.RawVacancy{superJobRaw(t, "Повар A", 1, "RUB")}}
	b := &MockSource{name: "b", done: bDone, raws: []model.RawVacancy{superJobRaw(t, "Повар B", 2, "RUB")}}

	// Let b finish first, then release a.
	go func() {
		<-bDone
		close(release)
	}()

	sess, err := newAggregator(a, b).Search(context.Background(), "повар")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(sess.Vacancies) != 2 {
		t.Fatalf("vacancies = %d, want 2", len(sess.Vacancies))
	}
	if sess.Vacancies[0].Title != "Повар A" || sess.Vacancies[1].Title != "Повар B" {
		t.Errorf("order = %s, %s; want source order", sess.Vacancies[0].Title, sess.Vacancies[1].Title)
	}
}

func TestSearch_RunsSourcesConcurrently(t *testing.T) {
	// Each source blocks until the other has started.
	aStarted := make(chan struct{})
	bStarted := make(chan struct{})
	a := &rendezvousSource{name: "a", mine: aStarted, other: bStarted}
	b := &rendezvousSource{name: "b", mine: bStarted, other: aStarted}

	done := make(chan error, 1)
	go func() {
		_, err := newAggregator(a, b).Search(context.Background(), "x")
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("sources did not run concurrently")
	}
}

type rendezvousSource struct {
	name        string
	mine, other chan struct{}
}

func (r *rendezvousSource) Name() string { return r.name }

func (r *rendezvousSource) FetchVacancies(_ context.Context, _ string) ([]model.RawVacancy, error) {
	close(r.mine)
	<-r.other
	return nil, nil
}

func TestSearch_SourceErrorAbortsSearch(t *testing.T) {
	a := &MockSource{name: "a", raws: []model.RawVacancy{superJobRaw(t, "Повар", 1, "RUB")}}
	b := &MockSource{name: "b", err: errors.New("network down")}

	_, err := newAggregator(a, b).Search(context.Background(), "повар")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "searching b") {
		t.Errorf("error %q should name the failing source", err)
	}
}

func TestSearch_DropsForeignCurrencyAndZeroPay(t *testing.T) {
	src := &MockSource{name: "a", raws: []model.RawVacancy{
		superJobRaw(t, "Повар USD", 5000, "USD"),
		superJobRaw(t, "Повар бесплатно", 0, "RUB"),
		superJobRaw(t, "Повар", 40000, "rur"),
	}}

	sess, err := newAggregator(src).Search(context.Background(), "повар")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(sess.Vacancies) != 1 || sess.Vacancies[0].Title != "Повар" {
		t.Errorf("vacancies = %+v, want only the rouble listing", sess.Vacancies)
	}
	for _, v := range sess.Vacancies {
		if v.Compensation <= 0 {
			t.Errorf("accepted vacancy with compensation %d", v.Compensation)
		}
	}
}

func TestSearch_SkipsMalformedRecords(t *testing.T) {
	src := &MockSource{name: "a", raws: []model.RawVacancy{
		raw(t, `{"link":"no-title","payment_from":1,"date_published":1,"currency":"rub"}`),
		raw(t, `{"name":"Повар","alternate_url":"u","salary":null,"published_at":"2023-11-01"}`),
		raw(t, `{"profession":"Повар","link":"u","payment_from":"n/a","date_published":1,"currency":"rub"}`),
		superJobRaw(t, "Повар", 30000, "RUB"),
	}}

	sess, err := newAggregator(src).Search(context.Background(), "повар")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(sess.Vacancies) != 1 {
		t.Errorf("vacancies = %d, want 1", len(sess.Vacancies))
	}
}

func TestSearch_SkipsOverflowingCompensation(t *testing.T) {
	src := &MockSource{name: "superjob", raws: []model.RawVacancy{
		raw(t, `{"profession":"Повар","link":"huge","payment_from":1e20,"date_published":1700000000,"currency":"rub"}`),
		superJobRaw(t, "Повар", 30000, "RUB"),
	}}

	sess, err := newAggregator(src).Search(context.Background(), "повар")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for _, v := range sess.Vacancies {
		if v.Compensation <= 0 {
			t.Errorf("accepted non-positive compensation %d for %s", v.Compensation, v.Reference)
		}
	}
	if len(sess.Vacancies) != 1 {
		t.Errorf("vacancies = %d, want 1", len(sess.Vacancies))
	}
}

func TestSearch_RelevanceFilter(t *testing.T) {
	src := &MockSource{name: "a", raws: []model.RawVacancy{
		superJobRaw(t, "Курьер", 30000, "RUB"),
		superJobRaw(t, "ПОВАР", 30000, "RUB"),
	}}

	sess, err := newAggregator(src).Search(context.Background(), "повар")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for _, v := range sess.Vacancies {
		if !strings.Contains(strings.ToLower(v.Title), "повар") {
			t.Errorf("irrelevant title %q", v.Title)
		}
	}
	if len(sess.Vacancies) != 1 {
		t.Errorf("vacancies = %d, want 1", len(sess.Vacancies))
	}
}

func TestSession_RankShortfall(t *testing.T) {
	sess := Session{Query: "q", Vacancies: []model.Vacancy{
		model.NewVacancy("a", "u", 1, "2023.01.01"),
	}}
	ranked, res, err := sess.Rank(rank.ByDate, 5)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if !res.Shortfall || res.Notice() == "" {
		t.Error("expected shortfall notice")
	}
	if len(ranked.Vacancies) != 1 {
		t.Errorf("len = %d, want 1", len(ranked.Vacancies))
	}
}

func TestSession_Save(t *testing.T) {
	sess := Session{Vacancies: []model.Vacancy{
		model.NewVacancy("a", "u1", 1, "2023.01.01"),
		model.NewVacancy("b", "u2", 2, "2023.01.02"),
	}}

	store := &InMemoryStore{}
	n, err := sess.Save(store)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if n != 2 || len(store.added) != 2 {
		t.Errorf("saved = %d, stored = %d; want 2", n, len(store.added))
	}

	failing := &InMemoryStore{err: errors.New("disk full")}
	if _, err := sess.Save(failing); err == nil {
		t.Error("expected error from failing store")
	}
}
