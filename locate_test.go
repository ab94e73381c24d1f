package vlist

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateFirstVisibleRow(t *testing.T) {
	l := BuildLedger(3, nil, 50, 0)

	tests := []struct {
		name   string
		offset float64
		want   int
	}{
		{"Top", 0, 0},
		{"InsideFirst", 49.9, 0},
		{"ExactStart", 50, 1},
		{"InsideSecond", 60, 1},
		{"LastRow", 100, 2},
		{"PastEnd", 1000, 2},
		{"Negative", -30, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LocateFirstVisibleRow(l, tt.offset))
			assert.Equal(t, tt.want, LinearLocate(l, tt.offset))
		})
	}

	t.Run("Empty", func(t *testing.T) {
		empty := BuildLedger(0, nil, 50, 0)
		assert.Equal(t, 0, LocateFirstVisibleRow(empty, 123))
		assert.Equal(t, 0, LinearLocate(empty, 123))
	})

	t.Run("AboveFirstRowMargin", func(t *testing.T) {
		m := BuildLedger(3, nil, 10, 4)
		assert.Equal(t, 0, LocateFirstVisibleRow(m, 1))
	})
}

func TestLocateLargeTable(t *testing.T) {
	l := BuildLedger(10000, func(int) float64 { return 44 }, 1, 0)
	assert.Equal(t, 440000.0, l.Extent())
	assert.Equal(t, 5000, LocateFirstVisibleRow(l, 220000))
	assert.Equal(t, 4999, LocateFirstVisibleRow(l, 219999.5))
	assert.Equal(t, 9999, LocateFirstVisibleRow(l, 440000))
}

func TestLocateContainsOffset(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	l := BuildLedger(2000, func(int) float64 { return float64(rng.Intn(40) + 1) }, 1, 2)

	for n := 0; n < 500; n++ {
		y := rng.Float64() * l.Extent()
		i := LocateFirstVisibleRow(l, y)
		require.Equal(t, i, LinearLocate(l, y), "offset %g", y)

		if y >= l.records[0].Start {
			assert.LessOrEqual(t, l.records[i].Start, y)
		}
		if i+1 < l.Len() {
			assert.Less(t, y, l.records[i+1].Start)
		}
	}
}

func TestLocatorByName(t *testing.T) {
	for _, name := range []string{"", "binary", "linear"} {
		fn, err := LocatorByName(name)
		require.NoError(t, err, name)
		assert.NotNil(t, fn)
	}
	_, err := LocatorByName("interpolation")
	assert.Error(t, err)
}
