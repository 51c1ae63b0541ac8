package model

// Record is the persisted shape of a saved vacancy.
type Record struct {
	Title         string `json:"title"`
	Link          string `json:"Link"`
	Salary        int    `json:"salary"`
	DatePublished string `json:"Date published"`
}

// RecordFromVacancy converts a vacancy into its persisted shape.
func RecordFromVacancy(v Vacancy) Record {
	return Record{
		Title:         v.Title,
		Link:          v.Reference,
		Salary:        v.Compensation,
		DatePublished: v.DatePublished,
	}
}

// Vacancy converts the record back into the canonical model.
func (r Record) Vacancy() Vacancy {
	return NewVacancy(r.Title, r.Link, r.Salary, r.DatePublished)
}

// Criteria selects records whose persisted keys equal the given values.
// Keys use the persisted names: "title", "Link", "salary", "Date published".
type Criteria map[string]any

// VacancyStore persists saved vacancies.
type VacancyStore interface {
	AddVacancy(v Vacancy) error
	VacanciesByCriteria(criteria Criteria) ([]Record, error)
	DeleteVacancy(v Vacancy) error
}
