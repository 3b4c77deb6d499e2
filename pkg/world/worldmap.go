package world

// MapGrid is the territorial map as rows of single-rune codes. '~' is ocean,
// 'P' is the player's territory, anything else is a world-entity ID. The
// service is asked for a rectangular grid but a ragged one must still render.
type MapGrid []string

const (
	MapOcean  = '~'
	MapPlayer = 'P'
)

// Validate reports whether the grid is non-empty and rectangular.
func (g MapGrid) Validate() bool {
	if len(g) == 0 {
		return false
	}
	width := len([]rune(g[0]))
	for _, row := range g[1:] {
		if len([]rune(row)) != width {
			return false
		}
	}
	return true
}

// OwnerAt returns the territory code at the given cell, or MapOcean when the
// coordinates fall outside the grid.
func (g MapGrid) OwnerAt(row, col int) rune {
	if row < 0 || row >= len(g) {
		return MapOcean
	}
	runes := []rune(g[row])
	if col < 0 || col >= len(runes) {
		return MapOcean
	}
	return runes[col]
}
