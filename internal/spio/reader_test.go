package spio

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/trackseed/internal/seeding"
)

func TestReadSpacePoints(t *testing.T) {
	t.Run("parses lxyz rows", func(t *testing.T) {
		input := strings.Join([]string{
			"lxyz 0 1 30.0 0.0 15.0 0.01 0.02",
			"lxyz 1 2 70.0 0.0 35.0 0.01 0.02",
		}, "\n")

		points, err := ReadSpacePoints(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, points, 2)

		assert.Equal(t, 1, points[0].Layer)
		assert.Equal(t, 30.0, points[0].X)
		assert.Equal(t, 30.0, points[0].R)
		assert.Equal(t, 2, points[1].Layer)
	})

	t.Run("ignores other line types and blanks", func(t *testing.T) {
		input := strings.Join([]string{
			"# comment line",
			"",
			"meta run 12",
			"lxyz 0 1 30.0 0.0 15.0 0.01 0.02",
		}, "\n")

		points, err := ReadSpacePoints(strings.NewReader(input))
		require.NoError(t, err)
		assert.Len(t, points, 1)
	})

	t.Run("skips malformed lxyz rows", func(t *testing.T) {
		input := strings.Join([]string{
			"lxyz 0 1 30.0 0.0",                         // too short
			"lxyz 0 one 30.0 0.0 15.0 0.01 0.02",        // bad layer
			"lxyz 0 1 thirty 0.0 15.0 0.01 0.02",        // bad float
			"lxyz 1 2 70.0 0.0 35.0 0.01 0.02",          // good
		}, "\n")

		points, err := ReadSpacePoints(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, points, 1)
		assert.Equal(t, 2, points[0].Layer)
	})

	t.Run("rejects non-finite coordinates", func(t *testing.T) {
		input := "lxyz 0 1 NaN 0.0 15.0 0.01 0.02"
		_, err := ReadSpacePoints(strings.NewReader(input))
		require.Error(t, err)
		assert.True(t, errors.Is(err, seeding.ErrInputInvalid))
	})
}

func TestConditionVariances(t *testing.T) {
	t.Run("barrel inflates radial variance", func(t *testing.T) {
		varR, varZ := conditionVariances(100, 0.04, 0.1)
		// cov = max(0.04, 0.1^2 * 0.08333) = 0.04.
		assert.InDelta(t, 9*0.04, varR, 1e-12)
		assert.Equal(t, pitchVariance, varZ)
	})

	t.Run("endcap inflates longitudinal variance", func(t *testing.T) {
		varR, varZ := conditionVariances(600, 0.04, 0.1)
		assert.Equal(t, pitchVariance, varR)
		assert.InDelta(t, 9*0.04, varZ, 1e-12)
	})

	t.Run("wide clusters dominate the covariance", func(t *testing.T) {
		varR, _ := conditionVariances(100, 0.001, 1.0)
		// cov = 1.0^2 * 0.08333 > 0.001.
		assert.InDelta(t, 9*widthVarianceScale, varR, 1e-12)
	})
}
