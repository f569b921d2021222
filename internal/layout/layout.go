// Package layout computes justified gallery rows: images keep their order and
// are split into rows that fill the container width at a height as close as
// possible to the target.
package layout

import (
	"errors"
	"fmt"
	"math"
)

// DefaultPadding is the horizontal gap between images in a row
const DefaultPadding = 2.0

// narrowContainer is the width below which rows hold at most two images
const narrowContainer = 420

var (
	// ErrInvalidImage is returned for non-finite or non-positive dimensions
	ErrInvalidImage = errors.New("invalid image dimensions")

	// ErrInvalidOptions is returned for a missing or non-positive container
	// width or target height, or a negative padding
	ErrInvalidOptions = errors.New("invalid layout options")
)

// Image is one input image
type Image struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ScaledImage is an input image placed in a row
type ScaledImage struct {
	Index          int     `json:"index"`
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	Ratio          float64 `json:"ratio"`
	ScaledWidth    float64 `json:"scaled_width"`
	ScaledHeight   float64 `json:"scaled_height"`
	ScaledWidthPct float64 `json:"scaled_width_pct"`
	IsLastInRow    bool    `json:"is_last_in_row"`
	IsLastRow      bool    `json:"is_last_row"`
}

// Row is a run of consecutive images sharing one height
type Row struct {
	Height float64       `json:"height"`
	Images []ScaledImage `json:"images"`
}

// SeekLimitFunc returns the maximum number of images considered for one row
type SeekLimitFunc func(containerWidth, targetHeight float64) int

// Options controls a layout
type Options struct {
	ContainerWidth float64
	TargetHeight   float64
	Padding        *float64      // nil means DefaultPadding
	SeekLimit      SeekLimitFunc // nil means DefaultSeekLimit
	ByRow          bool
}

// Result holds Rows when ByRow was set, otherwise the flat Images
type Result struct {
	Rows   []Row         `json:"rows,omitempty"`
	Images []ScaledImage `json:"images,omitempty"`
}

// Round rounds n to two decimals, half up, after adding machine epsilon
func Round(n float64) float64 {
	return math.Floor(n*100+epsilon+0.5) / 100
}

const epsilon = 0x1p-52

// Ratio returns the rounded aspect ratio width/height
func Ratio(width, height float64) float64 {
	return Round(width / height)
}

// DefaultSeekLimit allows 1.5 times as many images per row as 3:4 portraits
// would fit at the target height, or two on narrow containers.
func DefaultSeekLimit(containerWidth, targetHeight float64) int {
	if containerWidth < narrowContainer {
		return 2
	}
	count := Ratio(containerWidth, targetHeight) / 0.75
	return int(math.Floor(count*1.5 + 0.5))
}

// Layout packs images and shapes the result according to opts.ByRow
func Layout(images []Image, opts Options) (Result, error) {
	rows, err := Pack(images, opts)
	if err != nil {
		return Result{}, err
	}

	if opts.ByRow {
		return Result{Rows: rows}, nil
	}

	flat := make([]ScaledImage, 0, len(images))
	for _, row := range rows {
		flat = append(flat, row.Images...)
	}
	return Result{Images: flat}, nil
}

// Pack partitions images into rows minimizing the summed squared difference
// between each row's height and the target height.
func Pack(images []Image, opts Options) ([]Row, error) {
	cw, th := opts.ContainerWidth, opts.TargetHeight
	if !positive(cw) || !positive(th) {
		return nil, fmt.Errorf("%w: container width %v, target height %v", ErrInvalidOptions, cw, th)
	}
	padding := DefaultPadding
	if opts.Padding != nil {
		padding = *opts.Padding
	}
	if math.IsNaN(padding) || math.IsInf(padding, 0) || padding < 0 {
		return nil, fmt.Errorf("%w: padding %v", ErrInvalidOptions, padding)
	}

	if len(images) == 0 {
		return []Row{}, nil
	}

	ratios := make([]float64, len(images))
	for i, img := range images {
		if !positive(img.Width) || !positive(img.Height) {
			return nil, fmt.Errorf("%w: image %d is %vx%v", ErrInvalidImage, i, img.Width, img.Height)
		}
		ratios[i] = Ratio(img.Width, img.Height)
		if ratios[i] <= 0 {
			return nil, fmt.Errorf("%w: image %d aspect ratio rounds to zero", ErrInvalidImage, i)
		}
	}

	seek := DefaultSeekLimit
	if opts.SeekLimit != nil {
		seek = opts.SeekLimit
	}
	limit := seek(cw, th)
	if limit < 1 {
		limit = 1
	}

	breaks := shortestPath(ratios, cw, th, padding, limit)

	rows := make([]Row, 0, len(breaks)-1)
	for r := 0; r+1 < len(breaks); r++ {
		start, end := breaks[r], breaks[r+1]
		height := rowHeight(ratios[start:end], cw, padding)
		lastRow := r == len(breaks)-2

		row := Row{Height: height, Images: make([]ScaledImage, 0, end-start)}
		for i := start; i < end; i++ {
			scaled := Round(height * ratios[i])
			row.Images = append(row.Images, ScaledImage{
				Index:          i,
				Width:          images[i].Width,
				Height:         images[i].Height,
				Ratio:          ratios[i],
				ScaledWidth:    scaled,
				ScaledHeight:   height,
				ScaledWidthPct: Round(scaled / cw * 100),
				IsLastInRow:    i == end-1,
				IsLastRow:      lastRow,
			})
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// shortestPath runs a forward pass over the row-boundary DAG (nodes 0..n)
// and returns the boundaries of the cheapest path, starting with 0 and
// ending with n. Ties keep the earliest predecessor.
func shortestPath(ratios []float64, cw, th, padding float64, limit int) []int {
	n := len(ratios)
	dist := make([]float64, n+1)
	prev := make([]int, n+1)
	for i := range dist {
		dist[i] = math.Inf(1)
		prev[i] = -1
	}
	dist[0] = 0

	for i := 0; i < n; i++ {
		var sum float64
		for j := i + 1; j <= n && j-i <= limit; j++ {
			sum += ratios[j-1]
			d := heightFor(sum, j-i, cw, padding) - th
			cand := dist[i] + d*d
			// an unreachable-looking node still needs a predecessor when every cost is +Inf
			if cand < dist[j] || prev[j] == -1 {
				dist[j] = cand
				prev[j] = i
			}
		}
	}

	var path []int
	for node := n; node != -1; node = prev[node] {
		path = append(path, node)
		if node == 0 {
			break
		}
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}

// rowHeight is the height at which the row exactly fills the container
func rowHeight(ratios []float64, cw, padding float64) float64 {
	var sum float64
	for _, r := range ratios {
		sum += r
	}
	return heightFor(sum, len(ratios), cw, padding)
}

// heightFor is rowHeight for a row of count images whose ratios add up to sum
func heightFor(sum float64, count int, cw, padding float64) float64 {
	width := cw - float64(count-1)*padding
	return Round(width / sum)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
