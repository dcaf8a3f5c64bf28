package chessboard

import "math"

// Point is a pixel position relative to the top-left corner of the board.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CoordinateMapper converts between pixel positions and squares for a square
// board of the given side length. Orientation is the colour drawn at the
// bottom of the board.
type CoordinateMapper struct {
	size        float64
	orientation Color
}

func NewCoordinateMapper(size float64, orientation Color) CoordinateMapper {
	if orientation != Black {
		orientation = White
	}
	return CoordinateMapper{size: size, orientation: orientation}
}

func (m CoordinateMapper) Size() float64 {
	return m.size
}

func (m CoordinateMapper) Orientation() Color {
	return m.orientation
}

// Flip returns the mapper for the board seen from the other side.
func (m CoordinateMapper) Flip() CoordinateMapper {
	return NewCoordinateMapper(m.size, m.orientation.Other())
}

func (m CoordinateMapper) squareSize() float64 {
	return m.size / 8
}

// SquareOf returns the square under p. Pixels off the board report false.
func (m CoordinateMapper) SquareOf(p Point) (Square, bool) {
	if !(m.size > 0) || math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return NoSquare, false
	}
	if p.X < 0 || p.Y < 0 || p.X >= m.size || p.Y >= m.size {
		return NoSquare, false
	}
	col := int(math.Floor(p.X / m.squareSize()))
	row := int(math.Floor(p.Y / m.squareSize()))
	// guards against rounding right at the far edge
	col = min(col, 7)
	row = min(row, 7)

	if m.orientation == White {
		return NewSquare(col, 7-row), true
	}
	return NewSquare(7-col, row), true
}

// PixelOf returns the centre of s in board pixels.
func (m CoordinateMapper) PixelOf(s Square) Point {
	col, row := s.File(), 7-s.Rank()
	if m.orientation == Black {
		col, row = 7-s.File(), s.Rank()
	}
	return Point{
		X: (float64(col) + 0.5) * m.squareSize(),
		Y: (float64(row) + 0.5) * m.squareSize(),
	}
}
