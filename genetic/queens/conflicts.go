// Package queens encodes the N-Queens puzzle as candidates for the genetic engine.
package queens

// Cell is a board square, X being the column and Y the row.
type Cell struct {
	X, Y int
}

// Attacks reports whether queens on a and b attack each other: same column,
// same row, or either diagonal.
func Attacks(a, b Cell) bool {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx == 0 || dy == 0 || dx == dy || dx == -dy
}

// conflictCounts returns, for every queen, how many other queens attack it.
func conflictCounts(queens []Cell) []int {
	conflicts := make([]int, len(queens))
	for q1 := range queens {
		for q2 := q1 + 1; q2 < len(queens); q2++ {
			if Attacks(queens[q1], queens[q2]) {
				conflicts[q1]++
				conflicts[q2]++
			}
		}
	}
	return conflicts
}

// NonAttacked counts the queens that no other queen attacks.
func NonAttacked(queens []Cell) int {
	n := 0
	for _, c := range conflictCounts(queens) {
		if c == 0 {
			n++
		}
	}
	return n
}

// AttackingPairs counts attacking ordered pairs, i.e. twice the number of
// attacking unordered pairs. A solved placement scores 0.
func AttackingPairs(queens []Cell) int {
	total := 0
	for _, c := range conflictCounts(queens) {
		total += c
	}
	return total
}

// rowsToCells places queen x at (x, rows[x]).
func rowsToCells(rows []int) []Cell {
	cells := make([]Cell, len(rows))
	for x, y := range rows {
		cells[x] = Cell{X: x, Y: y}
	}
	return cells
}
