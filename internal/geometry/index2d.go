package geometry

import "fmt"

// Index2D maps between grid positions and flat slice indices.
type Index2D struct {
	Columns int
	Rows    int
}

type PositionOutOfBoundsError struct {
	Position Position
	Index    Index2D
}

func (e PositionOutOfBoundsError) Error() string {
	return fmt.Sprintf("position %v out of bounds for %dx%d grid", e.Position, e.Index.Columns, e.Index.Rows)
}

type IndexOutOfBoundsError struct {
	Value int
	Index Index2D
}

func (e IndexOutOfBoundsError) Error() string {
	return fmt.Sprintf("index %d out of bounds for %dx%d grid", e.Value, e.Index.Columns, e.Index.Rows)
}

func NewIndex2D(columns, rows int) Index2D {
	return Index2D{Columns: columns, Rows: rows}
}

func (i Index2D) GetIndex(position Position) (int, error) {
	if position.X < 0 || position.X >= i.Columns || position.Y < 0 || position.Y >= i.Rows {
		return 0, PositionOutOfBoundsError{Position: position, Index: i}
	}
	return position.Y*i.Columns + position.X, nil
}

func (i Index2D) GetPosition(index int) (Position, error) {
	if index < 0 || index >= i.Indices() {
		return Position{}, IndexOutOfBoundsError{Value: index, Index: i}
	}
	return Position{X: index % i.Columns, Y: index / i.Columns}, nil
}

func (i Index2D) Indices() int { return i.Columns * i.Rows }
