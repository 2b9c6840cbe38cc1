package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestScoreBand(t *testing.T) {
	tests := []struct {
		name  string
		score *float64
		want  Band
	}{
		{name: "no score", score: nil, want: BandNeutral},
		{name: "95", score: ptr(95.0), want: BandExcellent},
		{name: "boundary 90", score: ptr(90.0), want: BandExcellent},
		{name: "100", score: ptr(100.0), want: BandExcellent},
		{name: "89.99", score: ptr(89.99), want: BandGood},
		{name: "75", score: ptr(75.0), want: BandGood},
		{name: "boundary 70", score: ptr(70.0), want: BandGood},
		{name: "55", score: ptr(55.0), want: BandWarning},
		{name: "boundary 50", score: ptr(50.0), want: BandWarning},
		{name: "49.99", score: ptr(49.99), want: BandCritical},
		{name: "30", score: ptr(30.0), want: BandCritical},
		{name: "zero", score: ptr(0.0), want: BandCritical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreBand(tt.score))
		})
	}
}

func TestRoundScore(t *testing.T) {
	assert.Nil(t, RoundScore(nil))
	assert.Equal(t, 85.13, *RoundScore(ptr(85.126)))
	assert.Equal(t, 90.0, *RoundScore(ptr(90.0)))
}
