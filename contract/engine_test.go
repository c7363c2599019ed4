package main

import (
	"testing"

	req "github.com/stretchr/testify/require"
)

func place(t *testing.T, chain *FakeSDK, id uint64, by string, row, col int) *string {
	t.Helper()
	chain.setSender(by)
	payload := UInt64ToString(id) + "|p|" + UInt64ToString(uint64(row)) + "|" + UInt64ToString(uint64(col))
	return gMoveImpl(&payload, chain)
}

func swapMove(t *testing.T, chain *FakeSDK, id uint64, by string) *string {
	t.Helper()
	chain.setSender(by)
	payload := UInt64ToString(id) + "|s"
	return gMoveImpl(&payload, chain)
}

func TestFreeGameMoves(t *testing.T) {
	chain := NewFakeSDK("hive:p1", "tx1")
	id := createFree(t, chain, "hive:p1", "hive:p2", 3)

	v := mustView(t, place(t, chain, id, "hive:p1", 0, 0))
	req.Equal(t, "100000000", v.Board)
	req.Equal(t, uint16(1), v.Turn)

	v = mustView(t, place(t, chain, id, "hive:p2", 1, 1))
	req.Equal(t, "100020000", v.Board)
	req.Equal(t, uint16(2), v.Turn)

	// free games never touch the streaming contract
	req.Empty(t, chain.takeScheduled())
}

func TestFreeGameWin(t *testing.T) {
	chain := NewFakeSDK("hive:p1", "tx1")
	id := createFree(t, chain, "hive:p1", "hive:p2", 3)

	place(t, chain, id, "hive:p1", 0, 0)
	place(t, chain, id, "hive:p2", 1, 1)
	place(t, chain, id, "hive:p1", 1, 0)
	place(t, chain, id, "hive:p2", 1, 2)
	v := mustView(t, place(t, chain, id, "hive:p1", 2, 0))

	req.True(t, v.Finished)
	req.NotNil(t, v.Winner)
	req.Equal(t, "hive:p1", *v.Winner)
}

func TestMoveInFinishedGameIsNoop(t *testing.T) {
	chain := NewFakeSDK("hive:p1", "tx1")
	id := createFree(t, chain, "hive:p1", "hive:p2", 3)

	place(t, chain, id, "hive:p1", 0, 0)
	place(t, chain, id, "hive:p2", 1, 1)
	place(t, chain, id, "hive:p1", 1, 0)
	place(t, chain, id, "hive:p2", 1, 2)
	place(t, chain, id, "hive:p1", 2, 0)

	v := mustView(t, place(t, chain, id, "hive:p2", 2, 2))
	req.True(t, v.Finished)
	req.Equal(t, "hive:p1", *v.Winner)
	// position untouched
	req.Equal(t, byte('0'), v.Board[8])
}

func TestMoveOutOfTurn(t *testing.T) {
	chain := NewFakeSDK("hive:p1", "tx1")
	id := createFree(t, chain, "hive:p1", "hive:p2", 3)

	defer expectAbort(t, chain, "it's not your turn")
	place(t, chain, id, "hive:p2", 0, 0)
}

func TestMoveOccupiedCell(t *testing.T) {
	chain := NewFakeSDK("hive:p1", "tx1")
	id := createFree(t, chain, "hive:p1", "hive:p2", 3)
	place(t, chain, id, "hive:p1", 0, 0)

	defer expectAbort(t, chain, "cell is already filled")
	place(t, chain, id, "hive:p2", 0, 0)
}

func TestMoveOutOfBounds(t *testing.T) {
	chain := NewFakeSDK("hive:p1", "tx1")
	id := createFree(t, chain, "hive:p1", "hive:p2", 3)

	defer expectAbort(t, chain, "invalid cell")
	place(t, chain, id, "hive:p1", 0, 3)
}

func TestMoveByOutsider(t *testing.T) {
	chain := NewFakeSDK("hive:p1", "tx1")
	id := createFree(t, chain, "hive:p1", "hive:p2", 3)

	defer expectAbort(t, chain, "not a player")
	place(t, chain, id, "hive:intruder", 0, 0)
}

func TestSwapOnSecondTurn(t *testing.T) {
	chain := NewFakeSDK("hive:p1", "tx1")
	id := createFree(t, chain, "hive:p1", "hive:p2", 3)

	place(t, chain, id, "hive:p1", 0, 1)
	v := mustView(t, swapMove(t, chain, id, "hive:p2"))

	req.Equal(t, uint16(2), v.Turn)
	req.Equal(t, "000200000", v.Board)
}

func TestSwapOnFirstTurnRejected(t *testing.T) {
	chain := NewFakeSDK("hive:p1", "tx1")
	id := createFree(t, chain, "hive:p1", "hive:p2", 3)

	defer expectAbort(t, chain, "you can apply the swap rule only on the second turn")
	swapMove(t, chain, id, "hive:p1")
}

func TestSwapLateRejected(t *testing.T) {
	chain := NewFakeSDK("hive:p1", "tx1")
	id := createFree(t, chain, "hive:p1", "hive:p2", 3)

	place(t, chain, id, "hive:p1", 0, 1)
	place(t, chain, id, "hive:p2", 1, 1)

	defer expectAbort(t, chain, "you can apply the swap rule only on the second turn")
	swapMove(t, chain, id, "hive:p2")
}

func TestMoveTracksBlocks(t *testing.T) {
	chain := NewFakeSDK("hive:p1", "tx1")
	id := createFree(t, chain, "hive:p1", "hive:p2", 3)

	chain.envKeys["block.height"] = "150"
	place(t, chain, id, "hive:p1", 0, 0)

	g := loadGame(chain, id)
	req.NotNil(t, g.PrevBlock)
	req.Equal(t, uint64(100), *g.PrevBlock)
	req.Equal(t, uint64(150), g.CurrBlock)
}

func TestResignFreeGame(t *testing.T) {
	chain := NewFakeSDK("hive:p1", "tx1")
	id := createFree(t, chain, "hive:p1", "hive:p2", 3)

	chain.setSender("hive:p1")
	payload := UInt64ToString(id)
	v := mustView(t, gResignImpl(&payload, chain))

	req.True(t, v.Finished)
	req.Equal(t, "hive:p2", *v.Winner)
	req.Empty(t, chain.transfers)
}
