package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabstat/internal/domain"
)

func TestLoadErrorMatchesKindSentinel(t *testing.T) {
	tests := []struct {
		kind     domain.Kind
		sentinel error
		name     string
	}{
		{domain.KindIO, domain.ErrIO, "IOError"},
		{domain.KindParse, domain.ErrParse, "ParseError"},
		{domain.KindShape, domain.ErrShapeMismatch, "ShapeMismatch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", &domain.LoadError{
				Source: "a.csv",
				Kind:   tt.kind,
				Err:    errors.New("boom"),
			})

			assert.Equal(t, tt.name, tt.kind.String())
			assert.ErrorIs(t, err, tt.sentinel)

			var le *domain.LoadError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, "a.csv", le.Source)
		})
	}
}

func TestLoadErrorMessage(t *testing.T) {
	err := &domain.LoadError{Source: "b.csv", Kind: domain.KindParse, Line: 3, Err: domain.ErrParse}
	assert.Equal(t, "b.csv: ParseError at line 3: value is not a number", err.Error())

	err = &domain.LoadError{Source: "c.csv", Kind: domain.KindIO, Err: errors.New("no such file")}
	assert.Equal(t, "c.csv: IOError: no such file", err.Error())
	assert.NotErrorIs(t, err, domain.ErrParse)
}
