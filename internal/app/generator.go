package app

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"tabstat/internal/domain"
)

const (
	ModeTriangle  = "triangle"
	ModeTruncNorm = "truncnorm"

	// maxDraws bounds rejection sampling of the truncated normal
	maxDraws = 1000
)

// InflammationGenerator produces synthetic patient-by-day inflammation
// tables for the lesson exercises.
type InflammationGenerator struct {
	logger *zap.Logger
}

func NewInflammationGenerator(logger *zap.Logger) *InflammationGenerator {
	return &InflammationGenerator{logger: logger}
}

func (g *InflammationGenerator) Generate(opts domain.GeneratorConfig) (*domain.Table, error) {
	if opts.Patients <= 0 || opts.Days <= 0 || opts.Range <= 0 {
		return nil, fmt.Errorf("%w: patients, days and range must be positive", domain.ErrInvalidOptions)
	}

	src := rand.NewSource(opts.Seed)

	var rows [][]float64
	switch opts.Mode {
	case ModeTriangle:
		rows = g.triangle(opts, rand.New(src))
	case ModeTruncNorm:
		rows = g.truncNorm(opts, src)
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", domain.ErrInvalidOptions, opts.Mode)
	}

	g.logger.Info("Inflammation data generated",
		zap.String("mode", opts.Mode),
		zap.Int("patients", opts.Patients),
		zap.Int("days", opts.Days),
		zap.Uint64("seed", opts.Seed))

	return domain.NewTable(rows), nil
}

// triangle: for day d the value is uniform in [upper/4, upper], where upper
// falls linearly from Range at mid-study to zero.
func (g *InflammationGenerator) triangle(opts domain.GeneratorConfig, rnd *rand.Rand) [][]float64 {
	middle := float64(opts.Days) / 2

	rows := make([][]float64, opts.Patients)
	for p := range rows {
		row := make([]float64, opts.Days)
		for d := range row {
			upper := math.Max(float64(opts.Range)-math.Abs(float64(d)-middle), 0)
			lo, hi := int(upper/4), int(upper)
			row[d] = float64(lo + rnd.Intn(hi-lo+1))
		}
		rows[p] = row
	}
	return rows
}

// truncNorm fills days 2..Days-3 with rounded draws from a normal
// distribution truncated to [0, Range-1] whose mean peaks at Range-4 in the
// middle of the study. The first two and last two days stay zero.
func (g *InflammationGenerator) truncNorm(opts domain.GeneratorConfig, src rand.Source) [][]float64 {
	rows := make([][]float64, opts.Patients)
	for p := range rows {
		rows[p] = make([]float64, opts.Days)
	}

	low, upp := 0.0, float64(opts.Range-1)
	middle := opts.Days / 2
	for day := 2; day < opts.Days-2; day++ {
		offset := day - middle
		if offset < 0 {
			offset = -offset
		}
		dist := distuv.Normal{Mu: float64(opts.Range-4-offset), Sigma: 2, Src: src}

		for p := range rows {
			rows[p][day] = math.Round(drawTruncated(dist, low, upp))
		}
	}
	return rows
}

func drawTruncated(dist distuv.Normal, low, upp float64) float64 {
	for range maxDraws {
		if x := dist.Rand(); x >= low && x <= upp {
			return x
		}
	}
	// Почти невозможно при разумных параметрах, просто обрезаем
	return math.Min(math.Max(dist.Mu, low), upp)
}
