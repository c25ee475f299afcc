package wager

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiplierDoublesAndResets(t *testing.T) {
	m := NewMultiplier()
	assert.Equal(t, 1, m.Value())

	m.Double()
	m.Double()
	assert.Equal(t, 4, m.Value())
	assert.Equal(t, Stakes{Multiplier: 4, Landlord: 8, Farmer: 4}, m.Stakes())

	m.Reset()
	assert.Equal(t, 1, m.Value())
}

func TestZeroMultiplierIsOne(t *testing.T) {
	var m Multiplier
	assert.Equal(t, 1, m.Value())
}

func TestSettle(t *testing.T) {
	tests := []struct {
		name        string
		landlord    int
		landlordWon bool
		multiplier  int
		want        []int
	}{
		{"landlord wins", 0, true, 1, []int{2, -1, -1}},
		{"farmers win", 0, false, 1, []int{-2, 1, 1}},
		{"landlord wins doubled", 2, true, 4, []int{-4, -4, 8}},
		{"farmers win doubled", 1, false, 2, []int{2, -4, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Settle(3, tt.landlord, tt.landlordWon, tt.multiplier)
			assert.Equal(t, tt.want, got)

			sum := 0
			for _, d := range got {
				sum += d
			}
			assert.Zero(t, sum)
		})
	}
}
