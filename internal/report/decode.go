package report

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"docstatus/internal/domain"
	"docstatus/internal/format"
)

var ErrInvalidRow = errors.New("invalid document row")

// rawDocument is a document row as the document manager API serializes it.
// Status and timestamps are kept loose until resolved.
type rawDocument struct {
	ID                int64  `json:"id"`
	KnowledgeBaseName string `json:"knowledgeBaseName"`
	FileName          string `json:"fileName"`
	Status            any    `json:"status"`
	CreateTime        any    `json:"createTime"`
	UpdateTime        any    `json:"updateTime"`
}

// Decoder reads document rows, resolving timestamps with its formatter.
type Decoder struct {
	dates *format.DateFormatter
}

// NewDecoder creates a Decoder. A nil formatter uses format.Default().
func NewDecoder(dates *format.DateFormatter) *Decoder {
	if dates == nil {
		dates = format.Default()
	}
	return &Decoder{dates: dates}
}

// Decode reads either a JSON array of rows or newline-delimited JSON objects.
func (d *Decoder) Decode(r io.Reader) ([]domain.Document, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err == io.EOF {
		return []domain.Document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	dec := json.NewDecoder(br)
	dec.UseNumber()

	var raws []*rawDocument
	if first == '[' {
		if err := dec.Decode(&raws); err != nil {
			return nil, fmt.Errorf("decode document array: %w", err)
		}
		if _, err := dec.Token(); err != io.EOF {
			return nil, fmt.Errorf("%w: unexpected data after document array", ErrInvalidRow)
		}
	} else {
		for {
			var raw *rawDocument
			if err := dec.Decode(&raw); err == io.EOF {
				break
			} else if err != nil {
				return nil, fmt.Errorf("decode document %d: %w", len(raws)+1, err)
			}
			raws = append(raws, raw)
		}
	}

	docs := make([]domain.Document, 0, len(raws))
	for i, raw := range raws {
		if raw == nil {
			return nil, fmt.Errorf("document %d: %w: null row", i+1, ErrInvalidRow)
		}
		doc, err := d.resolve(raw)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i+1, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (d *Decoder) resolve(raw *rawDocument) (domain.Document, error) {
	created, err := d.resolveTime(raw.CreateTime)
	if err != nil {
		return domain.Document{}, fmt.Errorf("%w: createTime: %v", ErrInvalidRow, err)
	}
	updated, err := d.resolveTime(raw.UpdateTime)
	if err != nil {
		return domain.Document{}, fmt.Errorf("%w: updateTime: %v", ErrInvalidRow, err)
	}
	return domain.Document{
		ID:                raw.ID,
		KnowledgeBaseName: raw.KnowledgeBaseName,
		FileName:          raw.FileName,
		Status:            domain.StatusFromValue(raw.Status),
		CreatedAt:         created,
		UpdatedAt:         updated,
	}, nil
}

func (d *Decoder) resolveTime(v any) (*time.Time, error) {
	t, ok, err := d.dates.Resolve(v)
	if err != nil || !ok {
		return nil, err
	}
	return &t, nil
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		head, err := br.Peek(1)
		if err != nil {
			return 0, err
		}
		b := head[0]
		switch b {
		case ' ', '\t', '\r', '\n':
			_, _ = br.Discard(1)
			continue
		case BOM[0]:
			// Skip a UTF-8 BOM left by spreadsheet exports.
			if bom, _ := br.Peek(len(BOM)); bytes.Equal(bom, BOM) {
				_, _ = br.Discard(len(BOM))
				continue
			}
		}
		return b, nil
	}
}
