package main

import "github.com/klimoza/hex-game/sdk"

// Mark represents the owner of a board cell stored as 2 bits.
type Mark uint8

const (
	Empty  Mark = 0
	First  Mark = 1 // first player's stone
	Second Mark = 2 // second player's stone
)

// MoveType selects between placing a stone and the one-time swap rule.
type MoveType uint8

const (
	Place MoveType = 1
	Swap  MoveType = 2
)

// Cell is a board coordinate, row-major.
type Cell struct {
	Row uint8
	Col uint8
}

// Core runtime struct (not persisted directly, see game.go codec)
//
// Fields:
//   - ID: unique numeric identifier, assigned from the global counter
//   - FirstPlayer / SecondPlayer: addresses fixed at creation
//   - Size: board edge length, fixed at creation
//   - Board: compressed 2-bits-per-cell representation
//   - Turn: moves made so far; even parity means first player to act
//   - Playtime: per-player clock budget in seconds, staked games only
//   - Finished / Winner: terminal state; Winner nil on a drawn drain
//   - PrevBlock / CurrBlock: block heights of the two latest mutations
type Game struct {
	ID           uint64
	FirstPlayer  string
	SecondPlayer string
	Size         uint8
	Board        []byte // 2bpp, 4 cells stored per byte
	Turn         uint16
	Playtime     *uint32
	Finished     bool
	Winner       *string
	PrevBlock    *uint64
	CurrBlock    uint64
}

// Bid is the escrow ledger entry of a staked game. It exists exactly
// once per staked game and never for free games. The stream handles
// point at each player's clock stream on the streaming contract.
type Bid struct {
	Amount         uint64 // stake per player, fixed-point 3
	Asset          sdk.Asset
	FirstFunded    bool
	SecondFunded   bool
	StreamToFirst  string
	StreamToSecond string
}

// pendingMove is the marker persisted while a staked move waits for
// stream settlement. A later move request simply overwrites it, which
// re-drives the whole check from scratch.
type pendingMove struct {
	Type MoveType
	Cell Cell
	By   string
}
