// Package jsonfile reads and writes the on-disk pipeline artefacts:
// the scraped issue array, JSONL text records, titles and the id-keyed
// flat dataset.
package jsonfile

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/custodia-labs/ghcorpus/internal/core/domain"
)

// Artefact file names inside the data directory.
const (
	IssuesFile    = "issues.json"
	ProcessedFile = "issues_processed.json"
	TextsFile     = "texts.jsonl"
	TitlesFile    = "titles.jsonl"
	FlatFile      = "flat.jsonl"
	CleanedFile   = "texts_cleaned.jsonl"
	FinalFile     = "final.jsonl"
)

// ReadIssues decodes a JSON array of issues.
func ReadIssues(path string) ([]domain.Issue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read issues: %w", err)
	}
	var issues []domain.Issue
	if err := json.Unmarshal(data, &issues); err != nil {
		return nil, fmt.Errorf("decode issues %s: %w", path, err)
	}
	return issues, nil
}

// WriteIssues writes issues as an indented JSON array.
func WriteIssues(path string, issues []domain.Issue) error {
	if issues == nil {
		issues = []domain.Issue{}
	}
	return writeFile(path, func(w *bufio.Writer) error {
		enc := newEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(issues)
	})
}

// ReadTextRecords decodes one {id, text} object per line. Blank lines are skipped.
func ReadTextRecords(path string) ([]domain.TextRecord, error) {
	var out []domain.TextRecord
	err := readLines(path, func(line []byte) error {
		var rec domain.TextRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return err
		}
		out = append(out, rec)
		return nil
	})
	return out, err
}

// WriteTextRecords writes one {id, text} object per line.
func WriteTextRecords(path string, recs []domain.TextRecord) error {
	return writeFile(path, func(w *bufio.Writer) error {
		enc := newEncoder(w)
		for _, rec := range recs {
			if err := enc.Encode(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteTitles writes one JSON string per line.
func WriteTitles(path string, titles []string) error {
	return writeFile(path, func(w *bufio.Writer) error {
		enc := newEncoder(w)
		for _, title := range titles {
			if err := enc.Encode(title); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReadFlat decodes one {id: record} object per line, in file order.
// A line may hold several ids; a repeated id replaces the earlier record.
func ReadFlat(path string) (*domain.FlatDataset, error) {
	var ids []string
	records := make(map[string]domain.FlatRecord)
	err := readLines(path, func(line []byte) error {
		dec := json.NewDecoder(bytes.NewReader(line))
		if tok, err := dec.Token(); err != nil {
			return err
		} else if tok != json.Delim('{') {
			return errors.New("expected a JSON object")
		}
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return err
			}
			id, _ := tok.(string)
			var rec domain.FlatRecord
			if err := dec.Decode(&rec); err != nil {
				return err
			}
			if _, seen := records[id]; !seen {
				ids = append(ids, id)
			}
			records[id] = rec
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ds := domain.NewFlatDataset()
	for _, id := range ids {
		ds.Add(id, records[id])
	}
	return ds, nil
}

// WriteFlat writes one {id: record} object per line in dataset order.
func WriteFlat(path string, ds *domain.FlatDataset) error {
	return writeFile(path, func(w *bufio.Writer) error {
		enc := newEncoder(w)
		return ds.Each(func(id string, rec domain.FlatRecord) error {
			return enc.Encode(map[string]domain.FlatRecord{id: rec})
		})
	})
}

func readLines(path string, fn func(line []byte) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	for lineNo := 1; ; lineNo++ {
		line, readErr := r.ReadBytes('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return fmt.Errorf("read %s line %d: %w", path, lineNo, readErr)
		}
		if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 {
			if err := fn(trimmed); err != nil {
				return fmt.Errorf("%s line %d: %w: %v", path, lineNo, domain.ErrInvalidRecord, err)
			}
		}
		if readErr != nil {
			return nil
		}
	}
}

func writeFile(path string, fn func(w *bufio.Writer) error) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { err = errors.Join(err, f.Close()) }()

	w := bufio.NewWriter(f)
	if err := fn(w); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return w.Flush()
}

func newEncoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc
}
