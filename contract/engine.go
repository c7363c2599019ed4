package main

//
// Pure move engine: placement legality, the one-time swap rule, turn
// alternation and win detection. This code never touches streams and
// never issues remote calls.
//

// playerOnTurn returns the address whose move it is at the given turn
// index (even parity belongs to the first player).
func playerOnTurn(g *Game, turn uint16) string {
	if turn%2 == 0 {
		return g.FirstPlayer
	}
	return g.SecondPlayer
}

// markOnTurn returns the stone placed at the given turn index.
func markOnTurn(turn uint16) Mark {
	if turn%2 == 0 {
		return First
	}
	return Second
}

func isPlayer(g *Game, addr string) bool {
	return addr == g.FirstPlayer || addr == g.SecondPlayer
}

// checkMove validates a move without mutating anything. It aborts on
// illegal input, so it doubles as the synchronous pre-check staked
// games run before any remote call goes out.
func checkMove(chain SDKInterface, g *Game, mv *pendingMove) {
	require(chain, !g.Finished, "game is already finished")

	switch mv.Type {
	case Place:
		require(chain, playerOnTurn(g, g.Turn) == mv.By, "it's not your turn")
		size := int(g.Size)
		require(chain, int(mv.Cell.Row) < size && int(mv.Cell.Col) < size, "invalid cell")
		require(chain,
			getCell(g.Board, int(mv.Cell.Row), int(mv.Cell.Col), size) == Empty,
			"cell is already filled")
	case Swap:
		require(chain,
			mv.By == g.SecondPlayer && g.Turn == 1,
			"you can apply the swap rule only on the second turn")
	default:
		chain.Abort("incorrect move args")
	}
}

// applyMove mutates the game with a validated move, increments the
// turn counter and runs the win pass. Block markers advance with every
// mutation.
func applyMove(chain SDKInterface, g *Game, mv *pendingMove) {
	checkMove(chain, g, mv)

	size := int(g.Size)
	switch mv.Type {
	case Place:
		mark := markOnTurn(g.Turn)
		setCell(g.Board, int(mv.Cell.Row), int(mv.Cell.Col), size, mark)
		g.Turn++
		if checkConnection(g.Board, size, mark) {
			g.Finished = true
			w := mv.By
			g.Winner = &w
		}
	case Swap:
		// a single opening stone cannot connect anything, no win pass
		transposeOpening(g.Board, size)
		g.Turn++
	}

	prev := g.CurrBlock
	g.PrevBlock = &prev
	g.CurrBlock = blockHeight(chain)
}
