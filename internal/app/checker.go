package app

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"tabstat/internal/domain"
)

// CheckStatus is the outcome of comparing one source with the reference.
type CheckStatus int

const (
	StatusReference CheckStatus = iota
	StatusChecks
	StatusMismatch
)

// CheckEntry describes one source of a shape check. A source that failed to
// load has Err set and its Shape folded into (0, 0).
type CheckEntry struct {
	Source string
	Shape  domain.Shape
	Status CheckStatus
	Err    error
}

func (e CheckEntry) String() string {
	switch e.Status {
	case StatusReference:
		return fmt.Sprintf("First file %s: %d rows and %d columns", e.Source, e.Shape.Rows, e.Shape.Cols)
	case StatusMismatch:
		return fmt.Sprintf("File %s does not check: %d rows and %d columns", e.Source, e.Shape.Rows, e.Shape.Cols)
	default:
		return fmt.Sprintf("File %s checks", e.Source)
	}
}

// Report is the result of ShapeChecker.CheckAll. Total is the number of
// sources given; with fewer than two there is nothing to compare and
// Entries is empty.
type Report struct {
	Total   int
	Entries []CheckEntry
}

func (r Report) NothingToCompare() bool {
	return r.Total <= 1
}

// OK reports whether every source loaded and matched the reference.
func (r Report) OK() bool {
	for _, e := range r.Entries {
		if e.Err != nil || e.Status == StatusMismatch {
			return false
		}
	}
	return true
}

// Print writes the report lines to out and load errors to errOut, each error
// just before the line of the source it belongs to.
func (r Report) Print(out, errOut io.Writer) error {
	switch r.Total {
	case 0:
		_, err := fmt.Fprintln(out, "No files specified on input")
		return err
	case 1:
		_, err := fmt.Fprintln(out, "Only one file specified on input")
		return err
	}

	for _, e := range r.Entries {
		if e.Err != nil {
			fmt.Fprintln(errOut, e.Err)
		}
		if _, err := fmt.Fprintln(out, e); err != nil {
			return err
		}
	}
	return nil
}

type ShapeChecker struct {
	logger *zap.Logger
	reader domain.TableReader
}

func NewShapeChecker(logger *zap.Logger, reader domain.TableReader) *ShapeChecker {
	return &ShapeChecker{logger: logger, reader: reader}
}

// CheckAll compares the shape of every source with the shape of the first
// one. Sources are loaded strictly in order and a failing source does not
// stop the run.
func (c *ShapeChecker) CheckAll(sources []domain.Source) Report {
	report := Report{Total: len(sources)}
	if len(sources) <= 1 {
		c.logger.Info("Nothing to compare", zap.Int("sources", len(sources)))
		return report
	}

	ref := c.load(sources[0])
	ref.Status = StatusReference
	report.Entries = append(report.Entries, ref)

	for _, src := range sources[1:] {
		entry := c.load(src)
		if entry.Shape == ref.Shape {
			entry.Status = StatusChecks
		} else {
			entry.Status = StatusMismatch
		}
		c.logger.Info("Source checked",
			zap.String("source", src.Name),
			zap.Int("rows", entry.Shape.Rows),
			zap.Int("cols", entry.Shape.Cols),
			zap.Bool("checks", entry.Status == StatusChecks))
		report.Entries = append(report.Entries, entry)
	}

	return report
}

func (c *ShapeChecker) load(src domain.Source) CheckEntry {
	table, err := c.reader.ReadTable(src)
	if err != nil {
		c.logger.Debug("Load failed, shape folded to 0x0", zap.String("source", src.Name), zap.Error(err))
		return CheckEntry{Source: src.Name, Err: err}
	}
	return CheckEntry{Source: src.Name, Shape: table.Shape()}
}
