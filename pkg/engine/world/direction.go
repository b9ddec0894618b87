package world

// Direction represents a cardinal direction
type Direction int

// Direction constants
const (
	North Direction = iota
	East
	South
	West
)

// AllDirections returns all valid directions for iteration
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

// String returns the string representation of a direction
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// Offset returns the unit step for this direction. North decreases Y.
func (d Direction) Offset() Point {
	switch d {
	case North:
		return Point{X: 0, Y: -1}
	case East:
		return Point{X: 1, Y: 0}
	case South:
		return Point{X: 0, Y: 1}
	case West:
		return Point{X: -1, Y: 0}
	default:
		return Point{}
	}
}

// Neighbours returns the four orthogonal neighbours of p in North, East, South, West order.
// Points outside any grid are included; callers check bounds.
func Neighbours(p Point) []Point {
	out := make([]Point, 0, 4)
	for _, d := range AllDirections() {
		out = append(out, p.Add(d.Offset()))
	}
	return out
}
