package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func TestRound(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.004, 1.0},
		{0.125, 0.13},
		{-0.125, -0.12},
		{2.5, 2.5},
		{199.11111, 199.11},
		{3, 3},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Round(tt.in), 1e-9, "Round(%v)", tt.in)
	}
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 1.5, Ratio(3000, 2000))
	assert.Equal(t, 0.67, Ratio(2, 3))
	assert.Equal(t, 1.78, Ratio(1920, 1080))
}

func TestDefaultSeekLimit(t *testing.T) {
	tests := []struct {
		name string
		cw   float64
		th   float64
		want int
	}{
		{"narrow container", 419, 300, 2},
		{"threshold is inclusive of wide", 420, 300, 3},
		{"desktop", 900, 300, 6},
		{"wide", 1200, 200, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultSeekLimit(tt.cw, tt.th))
		})
	}
}

func TestPack_SingleRow(t *testing.T) {
	images := []Image{{2000, 1000}, {1000, 1000}, {1500, 1000}}

	rows, err := Pack(images, Options{ContainerWidth: 900, TargetHeight: 300, Padding: ptr(2)})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.InDelta(t, 199.11, row.Height, 1e-9)
	require.Len(t, row.Images, 3)

	var total float64
	for i, img := range row.Images {
		assert.Equal(t, i, img.Index)
		assert.InDelta(t, 199.11, img.ScaledHeight, 1e-9)
		assert.True(t, img.IsLastRow)
		assert.Equal(t, i == 2, img.IsLastInRow)
		total += img.ScaledWidth
	}
	assert.InDelta(t, 896, total, 0.1)
	assert.InDelta(t, 398.22, row.Images[0].ScaledWidth, 1e-9)
	assert.InDelta(t, 44.25, row.Images[0].ScaledWidthPct, 1e-9)
}

func TestPack_MultipleRows(t *testing.T) {
	// six 3:2 landscapes in a 600px container: pairs give 199.33px rows,
	// triples 132.44px, so a 200px target yields three rows of two
	images := make([]Image, 6)
	for i := range images {
		images[i] = Image{Width: 300, Height: 200}
	}

	rows, err := Pack(images, Options{ContainerWidth: 600, TargetHeight: 200})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	next := 0
	for r, row := range rows {
		require.Len(t, row.Images, 2)
		assert.InDelta(t, 199.33, row.Height, 1e-9)
		for _, img := range row.Images {
			assert.Equal(t, next, img.Index, "output order must match input order")
			assert.Equal(t, r == 2, img.IsLastRow)
			next++
		}
		assert.True(t, row.Images[1].IsLastInRow)
		assert.False(t, row.Images[0].IsLastInRow)
	}
}

func TestPack_RespectsSeekLimit(t *testing.T) {
	images := make([]Image, 5)
	for i := range images {
		images[i] = Image{Width: 100, Height: 100}
	}
	one := func(float64, float64) int { return 1 }

	rows, err := Pack(images, Options{ContainerWidth: 1000, TargetHeight: 10, SeekLimit: one})
	require.NoError(t, err)
	assert.Len(t, rows, 5)
	for _, row := range rows {
		assert.Len(t, row.Images, 1)
		assert.InDelta(t, 1000, row.Height, 1e-9)
	}
}

func TestPack_NonPositiveSeekLimitClamped(t *testing.T) {
	zero := func(float64, float64) int { return 0 }
	rows, err := Pack([]Image{{1, 1}, {1, 1}}, Options{ContainerWidth: 100, TargetHeight: 100, SeekLimit: zero})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestPack_ZeroPadding(t *testing.T) {
	rows, err := Pack([]Image{{100, 100}, {100, 100}}, Options{ContainerWidth: 200, TargetHeight: 100, Padding: ptr(0)})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.InDelta(t, 100, rows[0].Height, 1e-9)
	assert.InDelta(t, 50, rows[0].Images[0].ScaledWidthPct, 1e-9)
}

func TestPack_Empty(t *testing.T) {
	rows, err := Pack(nil, Options{ContainerWidth: 900, TargetHeight: 300})
	require.NoError(t, err)
	assert.Empty(t, rows)

	res, err := Layout([]Image{}, Options{ContainerWidth: 900, TargetHeight: 300})
	require.NoError(t, err)
	assert.Empty(t, res.Images)
	assert.Empty(t, res.Rows)
}

func TestPack_Deterministic(t *testing.T) {
	images := []Image{{4000, 3000}, {3000, 4000}, {1920, 1080}, {1000, 1000}, {2000, 3000}, {3000, 1000}, {800, 600}}
	opts := Options{ContainerWidth: 1024, TargetHeight: 240}

	first, err := Pack(images, opts)
	require.NoError(t, err)
	second, err := Pack(images, opts)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	count := 0
	for _, row := range first {
		count += len(row.Images)
	}
	assert.Equal(t, len(images), count)
}

func TestPack_Errors(t *testing.T) {
	tests := []struct {
		name    string
		images  []Image
		opts    Options
		wantErr error
	}{
		{"zero container width", []Image{{1, 1}}, Options{TargetHeight: 100}, ErrInvalidOptions},
		{"negative target height", []Image{{1, 1}}, Options{ContainerWidth: 100, TargetHeight: -1}, ErrInvalidOptions},
		{"NaN container width", nil, Options{ContainerWidth: math.NaN(), TargetHeight: 100}, ErrInvalidOptions},
		{"negative padding", nil, Options{ContainerWidth: 100, TargetHeight: 100, Padding: ptr(-1)}, ErrInvalidOptions},
		{"zero width image", []Image{{0, 1}}, Options{ContainerWidth: 100, TargetHeight: 100}, ErrInvalidImage},
		{"infinite height image", []Image{{1, math.Inf(1)}}, Options{ContainerWidth: 100, TargetHeight: 100}, ErrInvalidImage},
		{"ratio rounds to zero", []Image{{1, 1000}}, Options{ContainerWidth: 100, TargetHeight: 100}, ErrInvalidImage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Pack(tt.images, tt.opts)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLayout_Shapes(t *testing.T) {
	images := []Image{{300, 200}, {300, 200}, {300, 200}, {300, 200}}

	byRow, err := Layout(images, Options{ContainerWidth: 600, TargetHeight: 200, ByRow: true})
	require.NoError(t, err)
	assert.Len(t, byRow.Rows, 2)
	assert.Nil(t, byRow.Images)

	flat, err := Layout(images, Options{ContainerWidth: 600, TargetHeight: 200})
	require.NoError(t, err)
	assert.Nil(t, flat.Rows)
	require.Len(t, flat.Images, 4)
	for i, img := range flat.Images {
		assert.Equal(t, i, img.Index)
	}
	assert.True(t, flat.Images[3].IsLastRow)
	assert.False(t, flat.Images[1].IsLastRow)
}

// naivePath recomputes every row height from its slice
func naivePath(ratios []float64, cw, th, padding float64, limit int) []int {
	n := len(ratios)
	dist := make([]float64, n+1)
	prev := make([]int, n+1)
	for i := range dist {
		dist[i] = math.Inf(1)
		prev[i] = -1
	}
	dist[0] = 0
	for i := 0; i < n; i++ {
		for j := i + 1; j <= n && j-i <= limit; j++ {
			d := rowHeight(ratios[i:j], cw, padding) - th
			if cand := dist[i] + d*d; cand < dist[j] || prev[j] == -1 {
				dist[j] = cand
				prev[j] = i
			}
		}
	}
	path := []int{n}
	for node := n; node != 0; node = prev[node] {
		path = append([]int{prev[node]}, path...)
	}
	return path
}

func TestShortestPath_MatchesPerRowHeights(t *testing.T) {
	ratios := make([]float64, 60)
	for i := range ratios {
		// deterministic mix of portrait, square and panorama ratios
		ratios[i] = Ratio(float64(300+(i*137)%900), float64(200+(i*61)%500))
	}

	tests := []struct {
		name   string
		cw, th float64
		limit  int
	}{
		{"narrow", 400, 150, 2},
		{"default wide", 1200, 200, DefaultSeekLimit(1200, 200)},
		{"seek beyond input", 5000, 120, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t,
				naivePath(ratios, tt.cw, tt.th, DefaultPadding, tt.limit),
				shortestPath(ratios, tt.cw, tt.th, DefaultPadding, tt.limit))
		})
	}
}

func TestPack_LargeSeekLimit(t *testing.T) {
	images := make([]Image, 1000)
	for i := range images {
		images[i] = Image{Width: 3, Height: 2}
	}

	rows, err := Pack(images, Options{ContainerWidth: 1e6, TargetHeight: 1})
	require.NoError(t, err)

	total := 0
	for _, row := range rows {
		total += len(row.Images)
	}
	assert.Equal(t, 1000, total)
}
