package main

import (
	"github.com/klimoza/hex-game/sdk"
)

// ---------- Binary State Codec ----------

// codecVersion increments when storage encoding changes.
// Used to detect incompatible on-chain state.
const codecVersion uint8 = 1

func gameKey(id uint64) string    { return "g_" + UInt64ToString(id) }
func pendingKey(id uint64) string { return "g_" + UInt64ToString(id) + "_pending" }

// saveGame serializes the Game struct into binary format and writes it
// to chain state under "g_<id>". Entries are only ever updated in
// place, never deleted.
func saveGame(chain SDKInterface, g *Game) {
	chain.StateSetObject(gameKey(g.ID), string(encodeGame(chain, g)))
}

// loadGame retrieves a game from state by ID, decoding it back into the
// runtime struct. Aborts if no state exists.
func loadGame(chain SDKInterface, id uint64) *Game {
	val := chain.StateGetObject(gameKey(id))
	if val == nil || *val == "" {
		chain.Abort("game not found")
	}
	return decodeGame(chain, []byte(*val))
}

// encodeGame serializes all game fields into a compact byte slice.
//
// Layout:
//
//	version | ID | Size | flags | Turn | CurrBlock |
//	FirstPlayer | SecondPlayer | Winner? | Playtime? | PrevBlock? | Board bytes
//
// flags packs the finished bit and the optional-field presence bits.
func encodeGame(chain SDKInterface, g *Game) []byte {
	out := make([]byte, 0, 32+len(g.FirstPlayer)+len(g.SecondPlayer)+len(g.Board))

	var flags byte
	if g.Finished {
		flags |= 1
	}
	if g.Winner != nil {
		flags |= 2
	}
	if g.Playtime != nil {
		flags |= 4
	}
	if g.PrevBlock != nil {
		flags |= 8
	}

	out = append(out, codecVersion)
	out = appendU64BE(out, g.ID)
	out = append(out, g.Size, flags)
	out = appendU16BE(out, g.Turn)
	out = appendU64BE(out, g.CurrBlock)
	out = appendString16(chain, out, g.FirstPlayer)
	out = appendString16(chain, out, g.SecondPlayer)
	if g.Winner != nil {
		out = appendString16(chain, out, *g.Winner)
	}
	if g.Playtime != nil {
		out = appendU32BE(out, *g.Playtime)
	}
	if g.PrevBlock != nil {
		out = appendU64BE(out, *g.PrevBlock)
	}
	out = append(out, g.Board...)
	return out
}

// decodeGame reads bytes from chain storage and reconstructs a *Game,
// ensuring no trailing bytes remain.
func decodeGame(chain SDKInterface, b []byte) *Game {
	r := &rd{chain: chain, b: b}
	require(chain, r.u8() == codecVersion, "unsupported version")

	g := &Game{}
	g.ID = r.u64()
	g.Size = r.u8()
	flags := r.u8()
	g.Turn = r.u16()
	g.CurrBlock = r.u64()
	g.FirstPlayer = r.str()
	g.SecondPlayer = r.str()
	g.Finished = flags&1 != 0
	if flags&2 != 0 {
		w := r.str()
		g.Winner = &w
	}
	if flags&4 != 0 {
		pt := r.u32()
		g.Playtime = &pt
	}
	if flags&8 != 0 {
		pb := r.u64()
		g.PrevBlock = &pb
	}

	bl := boardBytes(int(g.Size))
	g.Board = make([]byte, bl)
	copy(g.Board, r.bytes(bl))

	r.mustEnd()
	return g
}

// ---------- Game Counter Helpers ----------

// getGameCount retrieves the current number of created games.
// Stored as a simple counter so new game IDs can be assigned.
// Returns zero when no games exist yet.
func getGameCount(chain SDKInterface) uint64 {
	ptr := chain.StateGetObject("g_count")
	if ptr == nil || *ptr == "" {
		return 0
	}
	return parseU64Fast(*ptr)
}

// setGameCount updates the global game counter to the given value.
// Called after creating a new game so the next one increments cleanly.
func setGameCount(chain SDKInterface, n uint64) {
	chain.StateSetObject("g_count", UInt64ToString(n))
}

// ---------- Pending move marker ----------

func savePendingMove(chain SDKInterface, id uint64, mv *pendingMove) {
	out := make([]byte, 0, 8+len(mv.By))
	out = append(out, byte(mv.Type), mv.Cell.Row, mv.Cell.Col)
	out = appendString16(chain, out, mv.By)
	chain.StateSetObject(pendingKey(id), string(out))
}

func loadPendingMove(chain SDKInterface, id uint64) *pendingMove {
	ptr := chain.StateGetObject(pendingKey(id))
	if ptr == nil || *ptr == "" {
		return nil
	}
	r := &rd{chain: chain, b: []byte(*ptr)}
	mv := &pendingMove{
		Type: MoveType(r.u8()),
		Cell: Cell{Row: r.u8(), Col: r.u8()},
	}
	mv.By = r.str()
	r.mustEnd()
	return mv
}

func clearPendingMove(chain SDKInterface, id uint64) {
	chain.StateSetObject(pendingKey(id), "")
}

// ---------- Entry: Create ----------

// gCreateImpl spins up a new game. Payload:
//
//	first|second|size|stake|playtime|asset
//
// with every field after the players optional. A stake turns the game
// into an escrowed one: a Bid record is created alongside and both
// players must fund their clock streams before the first move.
func gCreateImpl(payload *string, chain SDKInterface) *string {
	in := *payload
	first := nextField(&in)
	second := nextField(&in)
	sizeStr := nextField(&in)
	stakeStr := nextField(&in)
	playtimeStr := nextField(&in)
	assetStr := nextField(&in)
	require(chain, in == "", "too many arguments")

	sender := chain.GetEnv().Sender.Address.String()
	if first == "" {
		first = sender
	}
	require(chain, first != "" && second != "", "two players required")
	require(chain, first != second, "players must be distinct")

	size := defaultBoardSize
	if sizeStr != "" {
		size = int(parseU8Fast(sizeStr))
	}
	require(chain, size >= minBoardSize && size <= maxBoardSize, "invalid board size")

	var stake uint64
	if stakeStr != "" {
		stake = parseFixedPoint3(chain, stakeStr)
		require(chain, stake >= minStake && stake <= maxStake, "stake can't be too small or too big")
	}

	var playtime *uint32
	if playtimeStr != "" {
		require(chain, stake != 0, "you can't make a game with time control without a stake")
		pt := uint32(parseU64Fast(playtimeStr))
		require(chain, pt >= minPlaytime && pt <= maxPlaytime, "playtime can't be too small or too big")
		playtime = &pt
	} else if stake != 0 {
		pt := uint32(defaultPlaytime)
		playtime = &pt
	}

	asset := sdk.AssetHive
	if assetStr != "" {
		require(chain, isValidAsset(assetStr), "invalid stake asset")
		asset = sdk.Asset(assetStr)
	}

	id := getGameCount(chain)
	g := &Game{
		ID:           id,
		FirstPlayer:  first,
		SecondPlayer: second,
		Size:         uint8(size),
		Board:        initBoard(size),
		Playtime:     playtime,
		CurrBlock:    blockHeight(chain),
	}
	saveGame(chain, g)
	if stake != 0 {
		saveBid(chain, id, newBid(stake, asset))
	}
	setGameCount(chain, id+1)

	EmitGameCreated(chain, id, sender)
	ret := UInt64ToString(id)
	return &ret
}

// ---------- Entry: Get ----------

// gameView is the JSON shape returned to callers. The board comes back
// as an ASCII dump, one digit per cell.
type gameView struct {
	ID           uint64  `json:"id"`
	FirstPlayer  string  `json:"first_player"`
	SecondPlayer string  `json:"second_player"`
	Size         uint8   `json:"size"`
	Board        string  `json:"board"`
	Turn         uint16  `json:"turn"`
	Playtime     *uint32 `json:"playtime,omitempty"`
	Finished     bool    `json:"finished"`
	Winner       *string `json:"winner,omitempty"`
	Stake        *uint64 `json:"stake,omitempty"`
	FirstFunded  *bool   `json:"first_funded,omitempty"`
	SecondFunded *bool   `json:"second_funded,omitempty"`
}

func gameJSON(chain SDKInterface, g *Game) *string {
	view := gameView{
		ID:           g.ID,
		FirstPlayer:  g.FirstPlayer,
		SecondPlayer: g.SecondPlayer,
		Size:         g.Size,
		Board:        asciiFromBoard(g.Board, int(g.Size)),
		Turn:         g.Turn,
		Playtime:     g.Playtime,
		Finished:     g.Finished,
		Winner:       g.Winner,
	}
	if bid := loadBid(chain, g.ID); bid != nil {
		view.Stake = &bid.Amount
		view.FirstFunded = &bid.FirstFunded
		view.SecondFunded = &bid.SecondFunded
	}
	s := ToJSON(chain, view, "game")
	return &s
}

func gGetImpl(payload *string, chain SDKInterface) *string {
	in := *payload
	id := parseU64Fast(nextField(&in))
	require(chain, in == "", "too many arguments")

	return gameJSON(chain, loadGame(chain, id))
}
