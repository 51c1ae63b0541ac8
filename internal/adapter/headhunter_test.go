package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amishk599/jobparser/internal/model"
)

func TestHeadHunterAdapter_FetchVacancies_Success(t *testing.T) {
	payload := `{
		"items": [
			{
				"id": "91234567",
				"name": "Повар-кондитер",
				"alternate_url": "https://hh.ru/vacancy/91234567",
				"salary": {"from": 60000, "to": null, "currency": "RUR", "gross": false},
				"published_at": "2023-11-01T10:15:00+0300"
			},
			{
				"id": "91234568",
				"name": "Су-шеф",
				"alternate_url": "https://hh.ru/vacancy/91234568",
				"salary": {"from": 80000, "to": 120000, "currency": "RUR"},
				"published_at": "2023-11-02T09:00:00+0300"
			}
		],
		"found": 2,
		"pages": 1,
		"per_page": 50
	}`

	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/vacancies" {
			t.Errorf("path = %s, want /vacancies", r.URL.Path)
		}
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	a := NewHeadHunterAdapter(srv.URL, 0, srv.Client())

	items, err := a.FetchVacancies(context.Background(), "повар")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	if gotQuery["text"][0] != "повар" {
		t.Errorf("text = %v, want повар", gotQuery["text"])
	}
	if gotQuery["per_page"][0] != "50" {
		t.Errorf("per_page = %v, want default 50", gotQuery["per_page"])
	}
	if gotQuery["only_with_salary"][0] != "true" {
		t.Errorf("only_with_salary = %v, want true", gotQuery["only_with_salary"])
	}

	first := items[0]
	if first["name"] != "Повар-кондитер" {
		t.Errorf("name = %v", first["name"])
	}
	salary, ok := first["salary"].(map[string]any)
	if !ok {
		t.Fatalf("salary is %T, want object", first["salary"])
	}
	if salary["from"] != json.Number("60000") {
		t.Errorf("salary.from = %#v, want json.Number 60000", salary["from"])
	}
}

func TestHeadHunterAdapter_FetchVacancies_PerPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("per_page"); got != "20" {
			t.Errorf("per_page = %s, want 20", got)
		}
		w.Write([]byte(`{"items": []}`))
	}))
	defer srv.Close()

	a := NewHeadHunterAdapter(srv.URL+"/", 20, srv.Client())
	items, err := a.FetchVacancies(context.Background(), "go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected 0 items, got %d", len(items))
	}
}

func TestHeadHunterAdapter_FetchVacancies_NoItemsKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors": []}`))
	}))
	defer srv.Close()

	a := NewHeadHunterAdapter(srv.URL, 50, srv.Client())
	items, err := a.FetchVacancies(context.Background(), "go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", items)
	}
}

func TestHeadHunterAdapter_FetchVacancies_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	a := NewHeadHunterAdapter(srv.URL, 50, srv.Client())
	_, err := a.FetchVacancies(context.Background(), "go")
	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d, want 502", httpErr.StatusCode)
	}
	if got := httpErr.Error(); got != "HTTP 502" {
		t.Errorf("Error() = %q, want %q for an empty body", got, "HTTP 502")
	}
}

func TestHeadHunterAdapter_FetchVacancies_HTTPErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("  service down\n"))
	}))
	defer srv.Close()

	a := NewHeadHunterAdapter(srv.URL, 50, srv.Client())
	_, err := a.FetchVacancies(context.Background(), "go")
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.HasSuffix(msg, "HTTP 503: service down") {
		t.Errorf("error = %q, want suffix %q", msg, "HTTP 503: service down")
	}
	if n := strings.Count(msg, "503"); n != 1 {
		t.Errorf("status appears %d times in %q, want 1", n, msg)
	}
}

func TestHeadHunterAdapter_FetchVacancies_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not valid json`))
	}))
	defer srv.Close()

	a := NewHeadHunterAdapter(srv.URL, 50, srv.Client())
	if _, err := a.FetchVacancies(context.Background(), "go"); err == nil {
		t.Fatal("expected error for malformed JSON, got nil")
	}
}
