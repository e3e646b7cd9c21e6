package common

import "github.com/jakecoffman/cp"

// Rect is an axis-aligned box with a top-left origin.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Intersects reports strict overlap. Boxes that only share an edge do not
// collide.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

func (r Rect) Center() cp.Vector {
	return cp.Vector{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// BB converts to a Chipmunk bounding box (y grows downward here, so B is the
// top edge in screen terms).
func (r Rect) BB() cp.BB {
	return cp.BB{L: r.X, B: r.Y, R: r.X + r.Width, T: r.Y + r.Height}
}

// Inside reports whether r lies fully inside a width x height screen.
func (r Rect) Inside(width, height float64) bool {
	return cp.BB{L: 0, B: 0, R: width, T: height}.Contains(r.BB())
}

// Clamp moves r so that it lies inside the screen, keeping its size.
func (r Rect) Clamp(width, height float64) Rect {
	r.X = Clamp(r.X, 0, width-r.Width)
	r.Y = Clamp(r.Y, 0, height-r.Height)
	return r
}
