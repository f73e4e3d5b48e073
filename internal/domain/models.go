package domain

import (
	"io"
	"os"

	"gonum.org/v1/gonum/mat"
)

// Config описывает конфигурацию утилит tabstat
type Config struct {
	LogLevel  string          `yaml:"log_level"`
	LogFile   string          `yaml:"log_file"`
	Delimiter string          `yaml:"delimiter"`
	Decimals  *int            `yaml:"decimals"`
	Generator GeneratorConfig `yaml:"generator"`
}

// FormatDecimals returns the configured number of decimals, or -1 when
// values should be printed in their shortest form.
func (c *Config) FormatDecimals() int {
	if c.Decimals == nil || *c.Decimals < 0 {
		return -1
	}
	return *c.Decimals
}

type GeneratorConfig struct {
	Mode     string `yaml:"mode"`
	Patients int    `yaml:"patients"`
	Days     int    `yaml:"days"`
	Range    int    `yaml:"range"`
	Seed     uint64 `yaml:"seed"`
}

// Shape is the (rows, columns) pair of a table.
type Shape struct {
	Rows, Cols int
}

// Table is an immutable numeric matrix loaded from one source.
type Table struct {
	data       *mat.Dense
	rows, cols int
}

// NewTable copies rows into a new table. All rows must have the same length;
// NewTable panics with ErrShapeMismatch otherwise. Callers reading untrusted
// input check the row lengths first.
func NewTable(rows [][]float64) *Table {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return &Table{}
	}

	r, c := len(rows), len(rows[0])
	flat := make([]float64, 0, r*c)
	for _, row := range rows {
		if len(row) != c {
			panic(ErrShapeMismatch)
		}
		flat = append(flat, row...)
	}

	return &Table{data: mat.NewDense(r, c, flat), rows: r, cols: c}
}

func (t *Table) Rows() int { return t.rows }

func (t *Table) Cols() int { return t.cols }

func (t *Table) Shape() Shape { return Shape{Rows: t.rows, Cols: t.cols} }

func (t *Table) At(i, j int) float64 { return t.data.At(i, j) }

// Row returns a copy of row i.
func (t *Table) Row(i int) []float64 {
	return mat.Row(nil, i, t.data)
}

// Source is a named input stream holding one table.
type Source struct {
	Name string
	open func() (io.ReadCloser, error)
}

const StdinName = "<stdin>"

// FileSource returns a source reading the file at path.
func FileSource(path string) Source {
	return Source{
		Name: path,
		open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// StdinSource wraps r as the standard input source. Closing it is a no-op.
func StdinSource(r io.Reader) Source {
	return ReaderSource(StdinName, r)
}

// ReaderSource wraps an already open reader under the given name.
func ReaderSource(name string, r io.Reader) Source {
	return Source{
		Name: name,
		open: func() (io.ReadCloser, error) { return io.NopCloser(r), nil },
	}
}

func (s Source) Open() (io.ReadCloser, error) {
	if s.open == nil {
		return nil, ErrIO
	}
	return s.open()
}
