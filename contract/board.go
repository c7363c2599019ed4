package main

//
// Hex board helpers.
//
// The board is a size x size rhombus stored 2 bits per cell. The first
// player owns the top and bottom edges, the second player the left and
// right edges. Each cell touches up to six neighbours.
//

const (
	minBoardSize     = 3
	maxBoardSize     = 19
	defaultBoardSize = 11
)

// boardBytes returns the number of bytes required to hold the board
// using 2 bits per cell (4 cells per byte).
func boardBytes(size int) int {
	return (size*size + 3) / 4
}

// initBoard creates a zero-filled board buffer for the given edge length.
func initBoard(size int) []byte {
	return make([]byte, boardBytes(size))
}

// getCell extracts the mark of a board cell using bit operations.
// Position is computed as 2 bits per cell, row-major order.
func getCell(board []byte, row, col, size int) Mark {
	idx := row*size + col
	byteIdx, bitShift := idx/4, (idx%4)*2
	return Mark((board[byteIdx] >> bitShift) & 0x03)
}

// setCell sets a cell's mark using bit masking to preserve the other
// cells sharing the byte.
func setCell(board []byte, row, col, size int, val Mark) {
	idx := row*size + col
	byteIdx, bitShift := idx/4, (idx%4)*2
	board[byteIdx] = (board[byteIdx] & ^(0x03 << bitShift)) | (byte(val) << bitShift)
}

// asciiFromBoard flattens a board to a compact ASCII string.
// Each cell becomes '0','1','2' which makes debugging simpler
// and keeps things tiny on-chain.
func asciiFromBoard(board []byte, size int) string {
	out := make([]byte, size*size)
	k := 0
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			out[k] = byte('0' + getCell(board, r, c, size))
			k++
		}
	}
	return string(out)
}

// hexNeighbours are the six relative offsets of a rhombus hex grid.
var hexNeighbours = [6][2]int{
	{-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0},
}

// transposeOpening applies the swap rule to a board holding exactly the
// opening stone: the stone is mirrored across the main diagonal and
// recolored for the second player.
func transposeOpening(board []byte, size int) {
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if getCell(board, r, c, size) != First {
				continue
			}
			setCell(board, r, c, size, Empty)
			setCell(board, c, r, size, Second)
			return
		}
	}
}

// checkConnection reports whether the given player's stones connect
// their two goal edges: top-to-bottom for the first player, left-to-
// right for the second. Iterative flood fill seeded from the near edge.
func checkConnection(board []byte, size int, mark Mark) bool {
	visited := make([]bool, size*size)
	stack := make([][2]int, 0, size)

	for i := 0; i < size; i++ {
		r, c := 0, i
		if mark == Second {
			r, c = i, 0
		}
		if getCell(board, r, c, size) == mark {
			visited[r*size+c] = true
			stack = append(stack, [2]int{r, c})
		}
	}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if mark == First && cur[0] == size-1 {
			return true
		}
		if mark == Second && cur[1] == size-1 {
			return true
		}

		for _, d := range hexNeighbours {
			r, c := cur[0]+d[0], cur[1]+d[1]
			if r < 0 || r >= size || c < 0 || c >= size {
				continue
			}
			if visited[r*size+c] || getCell(board, r, c, size) != mark {
				continue
			}
			visited[r*size+c] = true
			stack = append(stack, [2]int{r, c})
		}
	}
	return false
}
