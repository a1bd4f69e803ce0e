package geometry

// Grid is a fixed-size 2D grid backed by one flat slice.
type Grid[T any] struct {
	index Index2D
	cells []T
}

func NewGrid[T any](columns, rows int) *Grid[T] {
	return &Grid[T]{
		index: NewIndex2D(columns, rows),
		cells: make([]T, columns*rows),
	}
}

func NewGridFilled[T any](columns, rows int, element T) *Grid[T] {
	g := NewGrid[T](columns, rows)
	for i := range g.cells {
		g.cells[i] = element
	}
	return g
}

func (g *Grid[T]) Width() int  { return g.index.Columns }
func (g *Grid[T]) Height() int { return g.index.Rows }

func (g *Grid[T]) InBounds(position Position) bool {
	return position.X >= 0 && position.X < g.index.Columns &&
		position.Y >= 0 && position.Y < g.index.Rows
}

// Get returns nil for out-of-bounds positions.
func (g *Grid[T]) Get(position Position) *T {
	i, err := g.index.GetIndex(position)
	if err != nil {
		return nil
	}
	return &g.cells[i]
}

// GetUnsafe panics for out-of-bounds positions.
func (g *Grid[T]) GetUnsafe(position Position) *T {
	i, err := g.index.GetIndex(position)
	if err != nil {
		panic(err)
	}
	return &g.cells[i]
}

func (g *Grid[T]) Set(position Position, value T) bool {
	i, err := g.index.GetIndex(position)
	if err != nil {
		return false
	}
	g.cells[i] = value
	return true
}

// Cells exposes the backing slice in row-major order, for codecs.
func (g *Grid[T]) Cells() []T { return g.cells }

func (g *Grid[T]) ForEach(f func(Position, *T)) {
	for i := range g.cells {
		p, _ := g.index.GetPosition(i)
		f(p, &g.cells[i])
	}
}
