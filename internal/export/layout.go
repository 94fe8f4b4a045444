package export

import "math"

// Grid geometry for the image export, in pixels.
const (
	CanvasWidth   = 1080
	canvasMargin  = 40
	cardWidth     = 220
	cardHeight    = 280
	cardGapX      = 32
	cardGapY      = 48
	zigzagOffset  = 40
	minimalHeight = 2*canvasMargin + cardHeight
)

// Point is a canvas coordinate.
type Point struct {
	X, Y float64
}

// Rect is a card slot on the canvas.
type Rect struct {
	X, Y, W, H float64
}

// Center returns the centre of r.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Connector joins two flattened-consecutive cards.
type Connector struct {
	From, To Point
	Vertical bool
}

// GridLayout is the computed placement of n cards.
type GridLayout struct {
	Width, Height int
	Columns, Rows int
	Cards         []Rect
	Connectors    []Connector
}

// maxColumns is how many cards fit in one row between the margins.
func maxColumns() int {
	return max(1, (CanvasWidth-2*canvasMargin+cardGapX)/(cardWidth+cardGapX))
}

// ComputeGridLayout places n cards on a near-square serpentine grid.
//
// Even rows run left to right and odd rows right to left, so consecutive
// cards are always neighbours. Odd columns drop by the zigzag offset. A lone
// card in the last row sits under (or over) the card before it.
func ComputeGridLayout(n int) GridLayout {
	if n <= 0 {
		return GridLayout{Width: CanvasWidth, Height: minimalHeight}
	}

	cols := min(maxColumns(), int(math.Ceil(math.Sqrt(float64(n)))))
	rows := (n + cols - 1) / cols

	height := 2*canvasMargin + rows*cardHeight + (rows-1)*cardGapY
	if cols > 1 {
		height += zigzagOffset
	}

	gridWidth := cols*cardWidth + (cols-1)*cardGapX
	offsetX := float64(CanvasWidth-gridWidth) / 2

	layout := GridLayout{
		Width:   CanvasWidth,
		Height:  height,
		Columns: cols,
		Rows:    rows,
		Cards:   make([]Rect, n),
	}

	orphan := rows > 1 && n%cols == 1
	colOf := make([]int, n)
	for k := 0; k < n; k++ {
		row, pos := k/cols, k%cols
		col := pos
		if row%2 == 1 {
			col = cols - 1 - pos
		}
		if orphan && k == n-1 {
			col = colOf[k-1]
		}
		colOf[k] = col

		y := float64(canvasMargin + row*(cardHeight+cardGapY))
		if col%2 == 1 {
			y += zigzagOffset
		}
		layout.Cards[k] = Rect{
			X: offsetX + float64(col*(cardWidth+cardGapX)),
			Y: y,
			W: cardWidth,
			H: cardHeight,
		}
	}

	for k := 1; k < n; k++ {
		layout.Connectors = append(layout.Connectors, connect(layout.Cards[k-1], layout.Cards[k], (k-1)/cols != k/cols))
	}
	return layout
}

func connect(prev, cur Rect, acrossRows bool) Connector {
	if acrossRows {
		from := Point{X: prev.X + prev.W/2, Y: prev.Y + prev.H}
		to := Point{X: cur.X + cur.W/2, Y: cur.Y}
		if cur.Y < prev.Y {
			from.Y, to.Y = prev.Y, cur.Y+cur.H
		}
		return Connector{From: from, To: to, Vertical: true}
	}

	pc, cc := prev.Center(), cur.Center()
	if cur.X > prev.X {
		return Connector{From: Point{X: prev.X + prev.W, Y: pc.Y}, To: Point{X: cur.X, Y: cc.Y}}
	}
	return Connector{From: Point{X: prev.X, Y: pc.Y}, To: Point{X: cur.X + cur.W, Y: cc.Y}}
}
