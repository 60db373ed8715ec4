package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectNeedle_Empty(t *testing.T) {
	_, ok := SelectNeedle(nil)
	require.False(t, ok)

	_, ok = SelectNeedle([]NeedleCandidate{})
	require.False(t, ok)
}

func TestSelectNeedle_Longest(t *testing.T) {
	short := NeedleCandidate{Angle: 0.1, Length: 12, Source: "hough-line"}
	long := NeedleCandidate{Angle: 1.2, Length: 47, Source: "threshold-dark"}

	// Результат не зависит от порядка кандидатов.
	best, ok := SelectNeedle([]NeedleCandidate{short, long})
	require.True(t, ok)
	require.Equal(t, long, best)

	best, ok = SelectNeedle([]NeedleCandidate{long, short})
	require.True(t, ok)
	require.Equal(t, long, best)
}

func TestSelectNeedle_TieKeepsFirst(t *testing.T) {
	first := NeedleCandidate{Angle: 0.3, Length: 20, Source: "hough-line"}
	second := NeedleCandidate{Angle: 0.9, Length: 20, Source: "threshold-dark"}

	best, ok := SelectNeedle([]NeedleCandidate{first, second})
	require.True(t, ok)
	require.Equal(t, first, best)
}

func TestImplicitGeometry(t *testing.T) {
	g := ImplicitGeometry(300, 200)

	require.False(t, g.Measured)
	require.InDelta(t, 150, g.CenterX, 1e-9)
	require.InDelta(t, 100, g.CenterY, 1e-9)
	require.InDelta(t, 200.0/3, g.Radius, 1e-9)
}

func TestGaugeGeometry_Contains(t *testing.T) {
	g := GaugeGeometry{CenterX: 50, CenterY: 50, Radius: 10}

	require.True(t, g.Contains(50, 50))
	require.True(t, g.Contains(55, 55))
	require.False(t, g.Contains(50, 60))
	require.False(t, g.Contains(0, 0))
}
