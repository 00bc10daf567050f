package mines

// SecretPattern spells a hidden word on a 16x8 board.
var SecretPattern = []Point{
	{2, 1}, {2, 3}, {2, 4}, {2, 5}, {2, 6}, {2, 7}, {1, 7},
	{4, 1}, {4, 3}, {4, 4}, {4, 5},
	{9, 3}, {8, 3}, {7, 3}, {6, 3}, {6, 4}, {6, 5}, {7, 5}, {8, 4}, {8, 5}, {8, 6}, {8, 7},
	{7, 7}, {6, 7},
	{10, 5},
	{12, 1}, {12, 3}, {12, 4}, {12, 5}, {12, 6}, {12, 7}, {11, 7},
	{14, 3}, {14, 4}, {14, 5}, {14, 6}, {14, 7}, {15, 3}, {16, 3}, {16, 4}, {16, 5},
	{15, 5},
}

// UnlockPhrase is the shifted form of the word that unlocks the secret.
const UnlockPhrase = "jji1nu"

// shift adds each rune's position to its code point.
func shift(s string) string {
	rs := []rune(s)
	for i := range rs {
		rs[i] += rune(i)
	}
	return string(rs)
}

// MatchesUnlock reports whether word unlocks the secret.
func MatchesUnlock(word string) bool {
	return shift(word) == UnlockPhrase
}

// RevealSecret marks the given interior cells Secret unless they are open.
// Points outside the board are skipped. Returns how many cells changed.
func (e *Engine) RevealSecret(points []Point) int {
	changed := 0
	for _, p := range points {
		if !e.IsInterior(p.X, p.Y) {
			continue
		}
		i := e.Index(p.X, p.Y)
		if e.overlay[i] == Open || e.overlay[i] == Secret {
			continue
		}
		e.overlay[i] = Secret
		changed++
	}
	return changed
}
