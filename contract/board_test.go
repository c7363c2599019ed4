package main

import (
	"testing"

	req "github.com/stretchr/testify/require"
)

func TestBoardPacking(t *testing.T) {
	size := 5
	b := initBoard(size)
	req.Len(t, b, 7) // 25 cells, 4 per byte

	setCell(b, 0, 0, size, First)
	setCell(b, 0, 1, size, Second)
	setCell(b, 4, 4, size, First)
	setCell(b, 2, 3, size, Second)

	req.Equal(t, First, getCell(b, 0, 0, size))
	req.Equal(t, Second, getCell(b, 0, 1, size))
	req.Equal(t, First, getCell(b, 4, 4, size))
	req.Equal(t, Second, getCell(b, 2, 3, size))
	req.Equal(t, Empty, getCell(b, 1, 1, size))

	// overwrite keeps neighbours in the shared byte intact
	setCell(b, 0, 1, size, First)
	req.Equal(t, First, getCell(b, 0, 0, size))
	req.Equal(t, First, getCell(b, 0, 1, size))
}

func TestAsciiFromBoard(t *testing.T) {
	size := 3
	b := initBoard(size)
	setCell(b, 0, 2, size, First)
	setCell(b, 1, 0, size, Second)
	req.Equal(t, "001200000", asciiFromBoard(b, size))
}

func TestTransposeOpening(t *testing.T) {
	size := 5
	b := initBoard(size)
	setCell(b, 1, 3, size, First)

	transposeOpening(b, size)

	req.Equal(t, Empty, getCell(b, 1, 3, size))
	req.Equal(t, Second, getCell(b, 3, 1, size))
}

func TestTransposeOpeningOnDiagonal(t *testing.T) {
	size := 5
	b := initBoard(size)
	setCell(b, 2, 2, size, First)

	transposeOpening(b, size)

	// mirrored onto itself, only the colour flips
	req.Equal(t, Second, getCell(b, 2, 2, size))
}

func TestConnectionFirstPlayerColumn(t *testing.T) {
	size := 4
	b := initBoard(size)
	for r := 0; r < size; r++ {
		setCell(b, r, 1, size, First)
	}
	req.True(t, checkConnection(b, size, First))
	req.False(t, checkConnection(b, size, Second))
}

func TestConnectionSecondPlayerRow(t *testing.T) {
	size := 4
	b := initBoard(size)
	for c := 0; c < size; c++ {
		setCell(b, 2, c, size, Second)
	}
	req.True(t, checkConnection(b, size, Second))
	req.False(t, checkConnection(b, size, First))
}

func TestConnectionZigzag(t *testing.T) {
	// a staircase using the (r, c) -> (r+1, c-1) hex adjacency
	size := 3
	b := initBoard(size)
	setCell(b, 0, 1, size, First)
	setCell(b, 1, 1, size, First)
	setCell(b, 2, 0, size, First)
	req.True(t, checkConnection(b, size, First))
}

func TestConnectionBrokenPath(t *testing.T) {
	size := 4
	b := initBoard(size)
	setCell(b, 0, 0, size, First)
	setCell(b, 1, 0, size, First)
	// gap at row 2
	setCell(b, 3, 0, size, First)
	req.False(t, checkConnection(b, size, First))
}

func TestConnectionDiagonalIsNotAdjacent(t *testing.T) {
	// (r+1, c+1) is not a hex neighbour on this rhombus
	size := 3
	b := initBoard(size)
	setCell(b, 0, 0, size, First)
	setCell(b, 1, 1, size, First)
	setCell(b, 2, 2, size, First)
	req.False(t, checkConnection(b, size, First))
}
