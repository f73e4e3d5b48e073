package infrastructure

import (
	"bufio"
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"tabstat/internal/domain"
)

// NewFmtFunc returns a fixed-point formatter when decimals >= 0 and
// FormatShortest otherwise.
func NewFmtFunc(decimals int) domain.FmtFunc {
	if decimals < 0 {
		return FormatShortest
	}
	return func(val float64) string {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return FormatShortest(val)
		}
		return strconv.FormatFloat(val, 'f', decimals, 64)
	}
}

// FormatShortest prints val the way the lesson scripts print numpy floats:
// shortest round-trip digits, ".0" for integral values and exponent notation
// outside [1e-4, 1e16).
func FormatShortest(val float64) string {
	switch {
	case math.IsNaN(val):
		return "nan"
	case math.IsInf(val, 1):
		return "inf"
	case math.IsInf(val, -1):
		return "-inf"
	case val == 0:
		if math.Signbit(val) {
			return "-0.0"
		}
		return "0.0"
	}

	abs := math.Abs(val)
	if abs < 1e-4 || abs >= 1e16 {
		return strconv.FormatFloat(val, 'e', -1, 64)
	}

	s := strconv.FormatFloat(val, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

type CSVTableWriter struct {
	logger *zap.Logger
	comma  rune
}

func NewCSVTableWriter(logger *zap.Logger, delimiter rune) *CSVTableWriter {
	if delimiter == 0 {
		delimiter = ','
	}
	return &CSVTableWriter{logger: logger, comma: delimiter}
}

// WriteTable writes every row of t as one delimited line.
func (w *CSVTableWriter) WriteTable(out io.Writer, t *domain.Table, formatter domain.FmtFunc) error {
	writer := csv.NewWriter(out)
	writer.Comma = w.comma

	record := make([]string, t.Cols())
	for i := range t.Rows() {
		for j := range t.Cols() {
			record[j] = formatter(t.At(i, j))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	w.logger.Debug("Table written", zap.Int("rows", t.Rows()), zap.Int("cols", t.Cols()))
	return nil
}

// WriteValues writes one formatted value per line.
func (w *CSVTableWriter) WriteValues(out io.Writer, values []float64, formatter domain.FmtFunc) error {
	writer := bufio.NewWriter(out)
	for _, val := range values {
		if _, err := writer.WriteString(formatter(val) + "\n"); err != nil {
			return err
		}
	}
	return writer.Flush()
}
