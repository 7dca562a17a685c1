package vmath

// PointID indexes a point inside an Arena
type PointID int

// Arena is an append-only point list; segments address points by index so several
// segments can share one endpoint without shared ownership
type Arena struct {
	points []Xy
}

// NewArena creates an arena seeded with the given points, ids follow slice order
func NewArena(points ...Xy) *Arena {
	a := &Arena{points: make([]Xy, 0, len(points))}
	a.points = append(a.points, points...)
	return a
}

// Add appends p and returns its id
func (a *Arena) Add(p Xy) PointID {
	a.points = append(a.points, p)
	return PointID(len(a.points) - 1)
}

// At returns the point stored under id, panics on an invalid id like a slice index
func (a *Arena) At(id PointID) Xy {
	return a.points[id]
}

// Set replaces the point under id, every segment referencing id observes the change
func (a *Arena) Set(id PointID, p Xy) {
	a.points[id] = p
}

func (a *Arena) Len() int {
	return len(a.points)
}

// Valid reports whether id addresses a stored point
func (a *Arena) Valid(id PointID) bool {
	return id >= 0 && int(id) < len(a.points)
}

// Segment is a line between two arena points
type Segment struct {
	A, B PointID
}

// Ends resolves both endpoints against the arena
func (s Segment) Ends(a *Arena) (Xy, Xy) {
	return a.At(s.A), a.At(s.B)
}
