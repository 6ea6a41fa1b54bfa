// Package entity defines the docking domain: ports, dockables, paths and drag tokens.
package entity

import "fmt"

// Point is a position in a window or screen coordinate space.
type Point struct {
	X, Y int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Rect is an axis-aligned rectangle. The right and bottom edges are exclusive.
type Rect struct {
	X, Y int // Top-left position
	W, H int // Width and height
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	if r.Empty() {
		return false
	}
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Translate returns r moved by d.
func (r Rect) Translate(d Point) Rect {
	return Rect{X: r.X + d.X, Y: r.Y + d.Y, W: r.W, H: r.H}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (cx, cy int) {
	return r.X + r.W/2, r.Y + r.H/2
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.W, r.H, r.X, r.Y)
}

// Polygon is a closed polygon given by its vertices in order.
type Polygon []Point

// Contains reports whether p lies inside the polygon using the even-odd rule.
// Points exactly on an edge may land on either side.
func (poly Polygon) Contains(p Point) bool {
	if len(poly) < 3 {
		return false
	}
	px, py := float64(p.X), float64(p.Y)
	inside := false
	j := len(poly) - 1
	for i := range poly {
		xi, yi := float64(poly[i].X), float64(poly[i].Y)
		xj, yj := float64(poly[j].X), float64(poly[j].Y)
		if (yi > py) != (yj > py) {
			crossX := xi + (py-yi)*(xj-xi)/(yj-yi)
			if px < crossX {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}
