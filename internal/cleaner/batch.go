package cleaner

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/custodia-labs/ghcorpus/internal/core/domain"
)

// DiagnosticRecord is written for every input line, kept or dropped.
// Text carries the original input record verbatim for audit.
type DiagnosticRecord struct {
	*domain.NoiseStats
	TruncatedFrom int               `json:"truncated_from,omitempty"`
	Dropped       bool              `json:"dropped"`
	Reason        domain.DropReason `json:"reason,omitempty"`
	Text          json.RawMessage   `json:"text"`
}

// NewDiagnosticRecord builds the audit record for one cleaning outcome.
// TruncatedFrom is carried on every outcome that was truncated, including a
// too_short drop, which has no noise statistics.
func NewDiagnosticRecord(res domain.Result, original json.RawMessage) DiagnosticRecord {
	audit := res.Diagnostics()
	rec := DiagnosticRecord{
		NoiseStats:    audit.Noise,
		TruncatedFrom: audit.TruncatedFrom,
		Dropped:       res.Dropped(),
		Text:          original,
	}
	if d, ok := res.(domain.Dropped); ok {
		rec.Reason = d.Reason
	}
	return rec
}

// Process cleans a JSONL stream of {id, text} records one at a time.
// Kept documents are written to kept as {id, text}; a DiagnosticRecord for
// every input line is written to diag. Both outputs follow input order.
// Blank lines are skipped. A line that is not a JSON object aborts the run
// with ErrInvalidRecord; output produced up to that line is still flushed.
func (c *Cleaner) Process(r io.Reader, kept, diag io.Writer) (domain.CleanSummary, error) {
	keptBuf := bufio.NewWriter(kept)
	diagBuf := bufio.NewWriter(diag)

	summary, err := c.processLines(bufio.NewReader(r), newEncoder(keptBuf), newEncoder(diagBuf))

	if flushErr := keptBuf.Flush(); flushErr != nil && err == nil {
		err = fmt.Errorf("flush kept output: %w", flushErr)
	}
	if flushErr := diagBuf.Flush(); flushErr != nil && err == nil {
		err = fmt.Errorf("flush diagnostic output: %w", flushErr)
	}
	return summary, err
}

func (c *Cleaner) processLines(in *bufio.Reader, keptEnc, diagEnc *json.Encoder) (domain.CleanSummary, error) {
	var summary domain.CleanSummary

	for lineNo := 1; ; lineNo++ {
		line, readErr := in.ReadBytes('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return summary, fmt.Errorf("read line %d: %w", lineNo, readErr)
		}

		if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 {
			rec, err := decodeRecord(trimmed)
			if err != nil {
				return summary, fmt.Errorf("line %d: %w", lineNo, err)
			}

			res := c.Clean(rec.Text)
			if k, ok := res.(domain.Kept); ok {
				summary.Kept++
				if err := keptEnc.Encode(domain.TextRecord{ID: rec.ID, Text: k.Text}); err != nil {
					return summary, fmt.Errorf("write kept record %q: %w", rec.ID, err)
				}
			} else {
				summary.Dropped++
			}

			original := json.RawMessage(append([]byte(nil), trimmed...))
			if err := diagEnc.Encode(NewDiagnosticRecord(res, original)); err != nil {
				return summary, fmt.Errorf("write diagnostic record %q: %w", rec.ID, err)
			}

			if c.progress != nil {
				c.progress(summary)
			}
		}

		if readErr != nil {
			return summary, nil
		}
	}
}

// decodeRecord parses one input line, which must be a JSON object.
func decodeRecord(line []byte) (domain.Document, error) {
	var rec domain.Document
	if line[0] != '{' {
		return rec, fmt.Errorf("%w: expected a JSON object", domain.ErrInvalidRecord)
	}
	if err := json.Unmarshal(line, &rec); err != nil {
		return rec, fmt.Errorf("%w: %v", domain.ErrInvalidRecord, err)
	}
	return rec, nil
}

// newEncoder returns a JSON line encoder that leaves <, > and & unescaped.
func newEncoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc
}
