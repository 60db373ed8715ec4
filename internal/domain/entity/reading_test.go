package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewReading_Rounds(t *testing.T) {
	r := NewReading(2.678)

	require.True(t, r.Detected)
	require.InDelta(t, 2.68, r.Value, 1e-9)
}

func TestUndetected(t *testing.T) {
	require.False(t, Undetected.Detected)
	require.Zero(t, Undetected.Value)
}

func TestReading_String(t *testing.T) {
	require.Equal(t, "нет данных", Undetected.String())
	require.Equal(t, "2.50", NewReading(2.5).String())
	require.Equal(t, "0.00", NewReading(0).String())
}
