package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"sync"

	"github.com/amishk599/jobparser/internal/model"
)

// Ensure JSONLStore implements model.VacancyStore.
var _ model.VacancyStore = (*JSONLStore)(nil)

// JSONLStore keeps saved vacancies in a file with one JSON object per line.
type JSONLStore struct {
	mu   sync.Mutex
	path string
}

// NewJSONLStore returns a store backed by the file at path. The file is
// created on the first AddVacancy.
func NewJSONLStore(path string) *JSONLStore {
	return &JSONLStore{path: path}
}

// AddVacancy appends v as one line.
func (s *JSONLStore) AddVacancy(v model.Vacancy) error {
	line, err := encodeRecord(model.RecordFromVacancy(v))
	if err != nil {
		return fmt.Errorf("encoding vacancy %s: %w", v.Reference, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", s.path, err)
	}
	if _, err := f.Write(line); err != nil {
		f.Close()
		return fmt.Errorf("appending to %s: %w", s.path, err)
	}
	return f.Close()
}

// VacanciesByCriteria returns every stored record whose object holds each
// criteria key with an equal value. A missing file yields no records.
func (s *JSONLStore) VacanciesByCriteria(criteria model.Criteria) ([]model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.readLines()
	if err != nil {
		return nil, err
	}

	want, err := normalizeValues(criteria)
	if err != nil {
		return nil, fmt.Errorf("encoding criteria: %w", err)
	}

	var records []model.Record
	for i, line := range lines {
		obj, err := decodeObject(line)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", s.path, i+1, err)
		}
		if !matches(obj, want) {
			continue
		}
		var rec model.Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", s.path, i+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// DeleteVacancy rewrites the file without the lines equal to v.
func (s *JSONLStore) DeleteVacancy(v model.Vacancy) error {
	line, err := encodeRecord(model.RecordFromVacancy(v))
	if err != nil {
		return fmt.Errorf("encoding vacancy %s: %w", v.Reference, err)
	}
	target, err := decodeObject(bytes.TrimSpace(line))
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.readLines()
	if err != nil {
		return err
	}
	if lines == nil {
		return nil
	}

	var buf bytes.Buffer
	for i, l := range lines {
		obj, err := decodeObject(l)
		if err != nil {
			return fmt.Errorf("%s line %d: %w", s.path, i+1, err)
		}
		if reflect.DeepEqual(obj, target) {
			continue
		}
		buf.Write(l)
		buf.WriteByte('\n')
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("rewriting %s: %w", s.path, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rewriting %s: %w", s.path, err)
	}
	return nil
}

// readLines returns the non-empty lines of the store file, or nil if the file
// does not exist yet.
func (s *JSONLStore) readLines() ([][]byte, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", s.path, err)
	}
	defer f.Close()

	var lines [][]byte
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		l := bytes.TrimSpace(sc.Bytes())
		if len(l) == 0 {
			continue
		}
		lines = append(lines, bytes.Clone(l))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	if lines == nil {
		lines = [][]byte{}
	}
	return lines, nil
}

func encodeRecord(rec model.Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeObject(line []byte) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal(line, &obj); err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}
	return obj, nil
}

// normalizeValues passes criteria values through JSON so they compare equal
// to decoded values (ints become float64 and so on).
func normalizeValues(criteria model.Criteria) (map[string]any, error) {
	out := make(map[string]any, len(criteria))
	for k, v := range criteria {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("criteria %q: %w", k, err)
		}
		var decoded any
		if err := json.Unmarshal(data, &decoded); err != nil {
			return nil, fmt.Errorf("criteria %q: %w", k, err)
		}
		out[k] = decoded
	}
	return out, nil
}

func matches(obj, criteria map[string]any) bool {
	for k, want := range criteria {
		got, ok := obj[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}
