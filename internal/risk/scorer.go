// Package risk is the single source of truth for risk scoring: it maps the
// qualitative label vocabularies onto one canonical 1-5 ordinal scale and
// derives the score bands used everywhere else.
//
// Two input vocabularies exist and are never conflated: the risk-matrix
// labels ("Molto Bassa".."Molto Alta") used on manually entered risks, and
// the generator levels ("very_low".."critical") used by the asset risk
// generator. Both feed the same numeric scale.
package risk

import (
	"errors"
	"fmt"
)

var ErrUnknownLabel = errors.New("unknown risk label")

type Category string

const (
	CategoryBasso   Category = "Basso"
	CategoryMedio   Category = "Medio"
	CategoryAlto    Category = "Alto"
	CategoryCritico Category = "Critico"
)

var matrixScores = map[string]int{
	"Molto Bassa": 1,
	"Bassa":       2,
	"Media":       3,
	"Alta":        4,
	"Molto Alta":  5,
}

var levelScores = map[string]int{
	"very_low": 1,
	"low":      2,
	"medium":   3,
	"high":     4,
	"critical": 5,
}

var criticalityScores = map[string]int{
	"Basso":   2,
	"Medio":   3,
	"Alto":    4,
	"Critico": 5,
}

var confidentialityScores = map[string]int{
	"Pubblico":      2,
	"Interno":       3,
	"Confidenziale": 4,
	"Segreto":       5,
}

// ProbabilityScore maps a matrix probability label to 1-5. An unrecognized
// label is a programming error, never silently defaulted.
func ProbabilityScore(label string) (int, error) {
	return matrixScore(label)
}

// ImpactScore maps a matrix impact label to 1-5.
func ImpactScore(label string) (int, error) {
	return matrixScore(label)
}

func matrixScore(label string) (int, error) {
	s, ok := matrixScores[label]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	return s, nil
}

// LevelScore maps a generator level ("very_low".."critical") to 1-5.
func LevelScore(level string) (int, error) {
	s, ok := levelScores[level]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLabel, level)
	}
	return s, nil
}

// CriticalityScore maps an asset criticality to its ordinal score.
func CriticalityScore(label string) (int, error) {
	s, ok := criticalityScores[label]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	return s, nil
}

// ConfidentialityScore maps an asset confidentiality class to its ordinal
// score.
func ConfidentialityScore(label string) (int, error) {
	s, ok := confidentialityScores[label]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	return s, nil
}

// Score computes probability x impact from matrix labels. Range [1,25].
func Score(probability, impact string) (int, error) {
	p, err := ProbabilityScore(probability)
	if err != nil {
		return 0, err
	}
	i, err := ImpactScore(impact)
	if err != nil {
		return 0, err
	}
	return p * i, nil
}

// CategoryForScore bands a 1-25 score. The thresholds are fixed:
// 1-6 Basso, 7-12 Medio, 13-16 Alto, 17-25 Critico.
func CategoryForScore(score int) Category {
	switch {
	case score >= 17:
		return CategoryCritico
	case score >= 13:
		return CategoryAlto
	case score >= 7:
		return CategoryMedio
	default:
		return CategoryBasso
	}
}

// MatrixLabelForScore converts a 1-5 ordinal back to its matrix label.
// Used by the generator so that auto-generated risks carry the same
// vocabulary as manually entered ones. Scores are clamped to [1,5].
func MatrixLabelForScore(score int) string {
	switch {
	case score <= 1:
		return "Molto Bassa"
	case score == 2:
		return "Bassa"
	case score == 3:
		return "Media"
	case score == 4:
		return "Alta"
	default:
		return "Molto Alta"
	}
}
