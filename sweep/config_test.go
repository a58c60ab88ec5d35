package sweep

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultSizes(t *testing.T) {
	sizes := DefaultConfig().Sizes()

	require.Len(t, sizes, 100)
	require.Equal(t, int64(1_000_000), sizes[0])
	require.Equal(t, int64(100_000_000), sizes[len(sizes)-1])

	for i := 1; i < len(sizes); i++ {
		require.Equal(t, int64(1_000_000), sizes[i]-sizes[i-1],
			"step at index %d", i)
	}
}

func TestSizesEndOffStep(t *testing.T) {
	cfg := Config{Start: 10, End: 35, Step: 10, Seed: 1}
	require.Equal(t, []int64{10, 20, 30}, cfg.Sizes())
}

func TestSizesSingle(t *testing.T) {
	cfg := Config{Start: 5, End: 5, Step: 100, Seed: 1}
	require.Equal(t, []int64{5}, cfg.Sizes())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero step", Config{Start: 1, End: 10, Step: 0}},
		{"negative step", Config{Start: 1, End: 10, Step: -1}},
		{"zero start", Config{Start: 0, End: 10, Step: 1}},
		{"end before start", Config{Start: 10, End: 1, Step: 1}},
		{"too many sizes", Config{Start: 1, End: 9e18, Step: 1}},
		{"one past limit", Config{Start: 1, End: MaxIterations + 1, Step: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.cfg.Validate())
			require.Empty(t, tt.cfg.Sizes())
		})
	}

	require.NoError(t, DefaultConfig().Validate())
}

func TestDocuments(t *testing.T) {
	docs := DefaultConfig().Documents()
	require.Len(t, docs, 100)

	for i, d := range docs {
		require.Equal(t, int64(i+1)*1_000_000, d.InputSize)
		require.Equal(t, d.InputSize, d.InputRange)
		require.Equal(t, int64(42), d.Seed)
	}
}

func TestSizesNearMaxInt64(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []int64
	}{
		{
			name: "end at max",
			cfg:  Config{Start: 1, End: math.MaxInt64, Step: math.MaxInt64 / 4},
			want: []int64{
				1,
				1 + math.MaxInt64/4,
				1 + 2*(math.MaxInt64/4),
				1 + 3*(math.MaxInt64/4),
				1 + 4*(math.MaxInt64/4),
			},
		},
		{
			name: "step larger than remaining headroom",
			cfg:  Config{Start: math.MaxInt64 - 1, End: math.MaxInt64, Step: 2305843009213693951},
			want: []int64{math.MaxInt64 - 1},
		},
		{
			name: "start equals max",
			cfg:  Config{Start: math.MaxInt64, End: math.MaxInt64, Step: math.MaxInt64},
			want: []int64{math.MaxInt64},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.cfg.Validate())
			require.Equal(t, tt.want, tt.cfg.Sizes())
		})
	}
}

func TestSizesAtLimit(t *testing.T) {
	cfg := Config{Start: 1, End: MaxIterations, Step: 1}
	require.NoError(t, cfg.Validate())

	sizes := cfg.Sizes()
	require.Len(t, sizes, int(MaxIterations))
	require.Equal(t, MaxIterations, sizes[len(sizes)-1])
}
