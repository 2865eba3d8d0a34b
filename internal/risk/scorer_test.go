package risk

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrixScores(t *testing.T) {
	cases := map[string]int{
		"Molto Bassa": 1,
		"Bassa":       2,
		"Media":       3,
		"Alta":        4,
		"Molto Alta":  5,
	}
	for label, want := range cases {
		t.Run(label, func(t *testing.T) {
			p, err := ProbabilityScore(label)
			require.NoError(t, err)
			assert.Equal(t, want, p)

			i, err := ImpactScore(label)
			require.NoError(t, err)
			assert.Equal(t, want, i)
		})
	}
}

func TestUnknownLabels(t *testing.T) {
	for _, label := range []string{"", "Altissima", "high", "molto alta"} {
		t.Run("probability/"+label, func(t *testing.T) {
			_, err := ProbabilityScore(label)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnknownLabel))
		})
	}

	_, err := LevelScore("extreme")
	assert.True(t, errors.Is(err, ErrUnknownLabel))

	_, err = CriticalityScore("Altissimo")
	assert.True(t, errors.Is(err, ErrUnknownLabel))

	_, err = ConfidentialityScore("Riservato")
	assert.True(t, errors.Is(err, ErrUnknownLabel))
}

func TestLevelScores(t *testing.T) {
	cases := map[string]int{
		"very_low": 1,
		"low":      2,
		"medium":   3,
		"high":     4,
		"critical": 5,
	}
	for level, want := range cases {
		got, err := LevelScore(level)
		require.NoError(t, err)
		assert.Equal(t, want, got, level)
	}
}

func TestAssetScores(t *testing.T) {
	crit := map[string]int{"Basso": 2, "Medio": 3, "Alto": 4, "Critico": 5}
	for label, want := range crit {
		got, err := CriticalityScore(label)
		require.NoError(t, err)
		assert.Equal(t, want, got, label)
	}

	conf := map[string]int{"Pubblico": 2, "Interno": 3, "Confidenziale": 4, "Segreto": 5}
	for label, want := range conf {
		got, err := ConfidentialityScore(label)
		require.NoError(t, err)
		assert.Equal(t, want, got, label)
	}
}

func TestScore(t *testing.T) {
	t.Run("extremes", func(t *testing.T) {
		s, err := Score("Molto Bassa", "Molto Bassa")
		require.NoError(t, err)
		assert.Equal(t, 1, s)

		s, err = Score("Molto Alta", "Molto Alta")
		require.NoError(t, err)
		assert.Equal(t, 25, s)
	})

	t.Run("mixed", func(t *testing.T) {
		s, err := Score("Alta", "Media")
		require.NoError(t, err)
		assert.Equal(t, 12, s)
	})

	t.Run("bad impact", func(t *testing.T) {
		_, err := Score("Alta", "Enorme")
		assert.True(t, errors.Is(err, ErrUnknownLabel))
	})
}

func TestCategoryForScore(t *testing.T) {
	cases := []struct {
		score int
		want  Category
	}{
		{1, CategoryBasso},
		{6, CategoryBasso},
		{7, CategoryMedio},
		{12, CategoryMedio},
		{13, CategoryAlto},
		{16, CategoryAlto},
		{17, CategoryCritico},
		{25, CategoryCritico},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CategoryForScore(tc.score), "score %d", tc.score)
	}
}

func TestMatrixLabelForScore(t *testing.T) {
	assert.Equal(t, "Molto Bassa", MatrixLabelForScore(1))
	assert.Equal(t, "Bassa", MatrixLabelForScore(2))
	assert.Equal(t, "Media", MatrixLabelForScore(3))
	assert.Equal(t, "Alta", MatrixLabelForScore(4))
	assert.Equal(t, "Molto Alta", MatrixLabelForScore(5))

	// out-of-range scores clamp instead of panicking
	assert.Equal(t, "Molto Bassa", MatrixLabelForScore(0))
	assert.Equal(t, "Molto Alta", MatrixLabelForScore(9))
}

func TestRoundTrip(t *testing.T) {
	// every matrix label survives label -> score -> label
	for _, label := range []string{"Molto Bassa", "Bassa", "Media", "Alta", "Molto Alta"} {
		s, err := ProbabilityScore(label)
		require.NoError(t, err)
		assert.Equal(t, label, MatrixLabelForScore(s))
	}
}
