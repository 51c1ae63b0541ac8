package store

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/amishk599/jobparser/internal/model"
)

// Ensure SQLiteStore implements model.VacancyStore.
var _ model.VacancyStore = (*SQLiteStore)(nil)

// criteriaColumns maps persisted record keys to table columns.
var criteriaColumns = map[string]string{
	"title":          "title",
	"Link":           "link",
	"salary":         "salary",
	"Date published": "date_published",
}

// SQLiteStore keeps saved vacancies in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures the
// saved_vacancies table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS saved_vacancies (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		title          TEXT NOT NULL,
		link           TEXT NOT NULL,
		salary         INTEGER NOT NULL,
		date_published TEXT NOT NULL,
		saved_at       DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating saved_vacancies table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// AddVacancy appends v. Duplicates are kept, matching the line store.
func (s *SQLiteStore) AddVacancy(v model.Vacancy) error {
	_, err := s.db.Exec(
		"INSERT INTO saved_vacancies (title, link, salary, date_published) VALUES (?, ?, ?, ?)",
		v.Title, v.Reference, v.Compensation, v.DatePublished,
	)
	if err != nil {
		return fmt.Errorf("saving vacancy %s: %w", v.Reference, err)
	}
	return nil
}

// VacanciesByCriteria returns saved records matching every criteria key, in
// insertion order. Unknown keys match nothing.
func (s *SQLiteStore) VacanciesByCriteria(criteria model.Criteria) ([]model.Record, error) {
	keys := make([]string, 0, len(criteria))
	for k := range criteria {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var where []string
	var args []any
	for _, k := range keys {
		col, ok := criteriaColumns[k]
		if !ok {
			return nil, nil
		}
		where = append(where, col+" = ?")
		args = append(args, criteria[k])
	}

	query := "SELECT title, link, salary, date_published FROM saved_vacancies"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying saved vacancies: %w", err)
	}
	defer rows.Close()

	var records []model.Record
	for rows.Next() {
		var r model.Record
		if err := rows.Scan(&r.Title, &r.Link, &r.Salary, &r.DatePublished); err != nil {
			return nil, fmt.Errorf("scanning saved vacancy: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating saved vacancies: %w", err)
	}
	return records, nil
}

// DeleteVacancy removes every saved row equal to v.
func (s *SQLiteStore) DeleteVacancy(v model.Vacancy) error {
	_, err := s.db.Exec(
		"DELETE FROM saved_vacancies WHERE title = ? AND link = ? AND salary = ? AND date_published = ?",
		v.Title, v.Reference, v.Compensation, v.DatePublished,
	)
	if err != nil {
		return fmt.Errorf("deleting vacancy %s: %w", v.Reference, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
