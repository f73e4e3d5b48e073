package infrastructure

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"tabstat/internal/domain"
)

type CSVTableReader struct {
	logger *zap.Logger
	comma  rune
}

func NewCSVTableReader(logger *zap.Logger, delimiter rune) *CSVTableReader {
	if delimiter == 0 {
		delimiter = ','
	}
	return &CSVTableReader{logger: logger, comma: delimiter}
}

// ReadTable reads src to completion and returns its table. Blank lines are
// skipped and everything after a '#' is a comment, as in numpy.loadtxt.
func (r *CSVTableReader) ReadTable(src domain.Source) (*domain.Table, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, &domain.LoadError{Source: src.Name, Kind: domain.KindIO, Err: err}
	}
	defer rc.Close()

	reader := csv.NewReader(rc)
	reader.Comma = r.comma
	reader.Comment = '#'
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true
	// Количество полей сверяем сами, чтобы вернуть номер строки и оба размера
	reader.FieldsPerRecord = -1

	var data [][]float64
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, r.wrapReadError(src.Name, err)
		}

		record = stripComment(record)
		if len(record) == 0 || (len(record) == 1 && strings.TrimSpace(record[0]) == "") {
			continue
		}

		line, _ := reader.FieldPos(0)
		if len(data) > 0 && len(record) != len(data[0]) {
			return nil, &domain.LoadError{
				Source: src.Name,
				Kind:   domain.KindShape,
				Line:   line,
				Err: fmt.Errorf("%w: expected %d fields, got %d",
					domain.ErrShapeMismatch, len(data[0]), len(record)),
			}
		}

		row := make([]float64, len(record))
		for j, field := range record {
			value, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, &domain.LoadError{
					Source: src.Name,
					Kind:   domain.KindParse,
					Line:   line,
					Err:    fmt.Errorf("field %d %q: %w", j+1, field, domain.ErrParse),
				}
			}
			row[j] = value
		}
		data = append(data, row)
	}

	table := domain.NewTable(data)
	r.logger.Debug("Table loaded",
		zap.String("source", src.Name),
		zap.Int("rows", table.Rows()),
		zap.Int("cols", table.Cols()))

	return table, nil
}

// stripComment drops the text from the first '#' on. A field left empty by
// the cut is dropped too, so "1,2,# note" keeps two fields.
func stripComment(record []string) []string {
	for j, field := range record {
		idx := strings.IndexByte(field, '#')
		if idx < 0 {
			continue
		}
		head := field[:idx]
		if strings.TrimSpace(head) == "" {
			return record[:j]
		}
		record[j] = head
		return record[:j+1]
	}
	return record
}

func (r *CSVTableReader) wrapReadError(name string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		// Ошибки синтаксиса CSV (кавычки и т.п.) считаем ошибками разбора
		return &domain.LoadError{
			Source: name,
			Kind:   domain.KindParse,
			Line:   pe.Line,
			Err:    fmt.Errorf("%w: %v", domain.ErrParse, pe.Err),
		}
	}
	return &domain.LoadError{Source: name, Kind: domain.KindIO, Err: err}
}
