package mines

// Point is a coordinate on the bordered grid.
// Interior cells run from (1, 1) to (width, height).
type Point struct {
	X, Y int
}

// Add returns the point translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Offsets are the eight Moore-neighbourhood offsets.
var Offsets = [8]Point{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// stride is the row length of the bordered grid.
func (e *Engine) stride() int {
	return e.width + 2
}

// Index maps a coordinate to its position in the flat layers.
func (e *Engine) Index(x, y int) int {
	return x + y*e.stride()
}

// Coords is the inverse of Index.
func (e *Engine) Coords(i int) Point {
	return Point{X: i % e.stride(), Y: i / e.stride()}
}

// InBounds reports whether (x, y) lies on the grid, border included.
func (e *Engine) InBounds(x, y int) bool {
	return x >= 0 && x <= e.width+1 && y >= 0 && y <= e.height+1
}

// IsInterior reports whether (x, y) is a playable cell.
func (e *Engine) IsInterior(x, y int) bool {
	return 1 <= x && x <= e.width && 1 <= y && y <= e.height
}

// edge classifies a border coordinate for display purposes.
func (e *Engine) edge(p Point) Edge {
	switch {
	case p.Y == 0 || p.Y == e.height+1:
		return EdgeHorizontal
	case p.X == 0:
		return EdgeLeft
	case p.X == e.width+1:
		return EdgeRight
	default:
		return EdgeNone
	}
}

// Neighbors returns the eight coordinates surrounding (x, y).
// For interior cells every result is in bounds thanks to the wall border.
func (e *Engine) Neighbors(x, y int) [8]Point {
	var out [8]Point
	p := Point{X: x, Y: y}
	for k, d := range Offsets {
		out[k] = p.Add(d)
	}
	return out
}

// neighborIndexes is Neighbors for a flat index of an interior cell.
func (e *Engine) neighborIndexes(i int) [8]int {
	var out [8]int
	s := e.stride()
	for k, d := range Offsets {
		out[k] = i + d.X + d.Y*s
	}
	return out
}

// BombCount returns how many of the eight neighbours of an interior cell hold a bomb.
// Border and out-of-grid coordinates report 0.
func (e *Engine) BombCount(x, y int) int {
	if !e.IsInterior(x, y) {
		return 0
	}
	return e.bombCountAt(e.Index(x, y))
}

func (e *Engine) bombCountAt(i int) int {
	count := 0
	for _, n := range e.neighborIndexes(i) {
		if e.content[n].IsBomb() {
			count++
		}
	}
	return count
}
