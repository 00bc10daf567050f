package mines

import "strings"

// Edge tells which side of the border a wall cell sits on.
type Edge uint8

const (
	EdgeNone       Edge = iota // not a wall
	EdgeHorizontal             // top or bottom row
	EdgeLeft
	EdgeRight
)

// Theme is a glyph table for projecting a board to symbols.
type Theme struct {
	Name string

	// Walls, by edge. A theme whose right wall is "\n" renders rows when
	// the glyphs are concatenated.
	WallHorizontal string
	WallLeft       string
	WallRight      string

	Bomb         string
	BombExploded string
	Numbers      [9]string // opened safe cell by bomb count

	Sleeping string
	Awake    string
	Flagged  string
	Secret   string
}

// Emoji is the console theme the game was first played with.
var Emoji = Theme{
	Name:           "emoji",
	WallHorizontal: "",
	WallLeft:       "",
	WallRight:      "\n",
	Bomb:           "💩",
	BombExploded:   "💥",
	Numbers:        [9]string{"0️⃣", "1️⃣", "2️⃣", "3️⃣", "4️⃣", "5️⃣", "6️⃣", "7️⃣", "8️⃣"},
	Sleeping:       "😴",
	Awake:          "😲",
	Flagged:        "👀",
	Secret:         "😎",
}

// ASCII is a single-column theme for terminals without emoji support.
var ASCII = Theme{
	Name:           "ascii",
	WallHorizontal: "",
	WallLeft:       "",
	WallRight:      "\n",
	Bomb:           "*",
	BombExploded:   "X",
	Numbers:        [9]string{".", "1", "2", "3", "4", "5", "6", "7", "8"},
	Sleeping:       "#",
	Awake:          "!",
	Flagged:        "F",
	Secret:         "?",
}

// ThemeByName looks up a built-in theme.
func ThemeByName(name string) (Theme, bool) {
	switch strings.ToLower(name) {
	case Emoji.Name:
		return Emoji, true
	case ASCII.Name, "":
		return ASCII, true
	default:
		return Theme{}, false
	}
}

// Symbol projects one cell to a glyph. Walls use the edge glyph, open cells
// show their content, anything else shows only its overlay so hidden content
// never leaks. bombs is the neighbour bomb count used for opened safe cells.
func (t Theme) Symbol(c Content, o Overlay, bombs int, edge Edge) string {
	if c == Wall {
		return t.wall(edge)
	}
	if o == Open {
		return t.content(c, bombs)
	}
	return t.overlay(o)
}

func (t Theme) wall(edge Edge) string {
	switch edge {
	case EdgeLeft:
		return t.WallLeft
	case EdgeRight:
		return t.WallRight
	default:
		return t.WallHorizontal
	}
}

func (t Theme) content(c Content, bombs int) string {
	switch c {
	case Bomb:
		return t.Bomb
	case BombExploded:
		return t.BombExploded
	default:
		if bombs < 0 || bombs > 8 {
			bombs = 0
		}
		return t.Numbers[bombs]
	}
}

func (t Theme) overlay(o Overlay) string {
	switch o {
	case Awake:
		return t.Awake
	case Flagged:
		return t.Flagged
	case Secret:
		return t.Secret
	default:
		return t.Sleeping
	}
}

// SymbolAt projects the cell at (x, y).
func (e *Engine) SymbolAt(t Theme, x, y int) string {
	if !e.InBounds(x, y) {
		return ""
	}
	i := e.Index(x, y)
	c, o := e.content[i], e.overlay[i]

	bombs := 0
	if c == Safe && o == Open {
		bombs = e.bombCountAt(i)
	}
	return t.Symbol(c, o, bombs, e.edge(Point{X: x, Y: y}))
}

// Display returns one glyph per coordinate in row-major order, border included.
func (e *Engine) Display(t Theme) []string {
	out := make([]string, len(e.content))
	for i := range e.content {
		p := e.Coords(i)
		out[i] = e.SymbolAt(t, p.X, p.Y)
	}
	return out
}

// Rows returns the interior glyphs grouped by row, without walls.
func (e *Engine) Rows(t Theme) [][]string {
	rows := make([][]string, e.height)
	for y := 1; y <= e.height; y++ {
		row := make([]string, e.width)
		for x := 1; x <= e.width; x++ {
			row[x-1] = e.SymbolAt(t, x, y)
		}
		rows[y-1] = row
	}
	return rows
}

// Render concatenates Display.
func (e *Engine) Render(t Theme) string {
	return strings.Join(e.Display(t), "")
}
