package render

// Row classes. Position 1 of a column is "even"; the names are inverted
// relative to their position parity and stylesheets depend on that pairing.
const (
	ClassEven = "even"
	ClassOdd  = "odd"
)

// Columns is a chart split into left and right columns.
type Columns[T any] struct {
	Left  []T
	Right []T
}

// FirstHalfSize returns how many of n items go to the left column.
// The left column takes the extra item when n is odd.
func FirstHalfSize(n int) int {
	if n <= 0 {
		return 0
	}
	return n/2 + n%2
}

// Split divides items into two columns keeping their order.
func Split[T any](items []T) Columns[T] {
	first := FirstHalfSize(len(items))
	return Columns[T]{
		Left:  items[:first:first],
		Right: items[first:],
	}
}

// RowClass returns the row class for a 1-indexed position within a column.
func RowClass(position int) string {
	if position%2 == 1 {
		return ClassEven
	}
	return ClassOdd
}
