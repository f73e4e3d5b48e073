package domain

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Action выбирает построчную свёртку таблицы
type Action int

const (
	ActionMean Action = iota
	ActionMin
	ActionMax
)

// DefaultAction is used when the caller does not name an action.
const DefaultAction = ActionMean

func (a Action) String() string {
	switch a {
	case ActionMin:
		return "--min"
	case ActionMax:
		return "--max"
	default:
		return "--mean"
	}
}

// ParseAction maps an action token to its Action. Both the long
// (--min, --mean, --max) and the short (-n, -m, -x) spellings are accepted.
func ParseAction(token string) (Action, bool) {
	switch token {
	case "--min", "-n":
		return ActionMin, true
	case "--mean", "-m":
		return ActionMean, true
	case "--max", "-x":
		return ActionMax, true
	}
	return DefaultAction, false
}

// Reduce applies the action to every row of t and returns one value per row.
func Reduce(t *Table, action Action) []float64 {
	values := make([]float64, t.Rows())
	for i := range t.Rows() {
		row := t.Row(i)
		switch action {
		case ActionMin:
			values[i] = finiteMin(row)
		case ActionMax:
			values[i] = finiteMax(row)
		default:
			values[i] = floats.Sum(row) / float64(t.Cols())
		}
	}
	return values
}

func finiteMin(row []float64) float64 {
	finite := finiteOnly(row)
	if len(finite) == 0 {
		return math.NaN()
	}
	return floats.Min(finite)
}

func finiteMax(row []float64) float64 {
	finite := finiteOnly(row)
	if len(finite) == 0 {
		return math.NaN()
	}
	return floats.Max(finite)
}

func finiteOnly(row []float64) []float64 {
	out := make([]float64, 0, len(row))
	for _, v := range row {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}
	return out
}
