package main

import (
	"encoding/json"

	"github.com/klimoza/hex-game/sdk"
)

//
// Escrow ledger. One Bid record per staked game, keyed "b_<id>".
//

const (
	minStake = 100       // 0.100 units
	maxStake = 1_000_000 // 1000.000 units

	minPlaytime     = 60    // seconds
	maxPlaytime     = 86400 // one day per player is plenty
	defaultPlaytime = 20 * 60
)

func bidKey(id uint64) string { return "b_" + UInt64ToString(id) }

func newBid(amount uint64, asset sdk.Asset) *Bid {
	return &Bid{Amount: amount, Asset: asset}
}

// recordFunding marks the player as funded and stores the handle of
// their confirmed clock stream.
func (b *Bid) recordFunding(player uint8, handle string) {
	if player == 1 {
		b.FirstFunded = true
		b.StreamToFirst = handle
	} else {
		b.SecondFunded = true
		b.StreamToSecond = handle
	}
}

// bothFunded gates the first move of a staked game.
func (b *Bid) bothFunded() bool {
	return b.FirstFunded && b.SecondFunded
}

func saveBid(chain SDKInterface, id uint64, b *Bid) {
	out := make([]byte, 0, 16+len(b.StreamToFirst)+len(b.StreamToSecond))

	var flags byte
	if b.FirstFunded {
		flags |= 1
	}
	if b.SecondFunded {
		flags |= 2
	}

	out = append(out, flags)
	out = appendU64BE(out, b.Amount)
	out = appendString16(chain, out, b.Asset.String())
	out = appendString16(chain, out, b.StreamToFirst)
	out = appendString16(chain, out, b.StreamToSecond)
	chain.StateSetObject(bidKey(id), string(out))
}

// loadBid returns nil for unstaked games.
func loadBid(chain SDKInterface, id uint64) *Bid {
	ptr := chain.StateGetObject(bidKey(id))
	if ptr == nil || *ptr == "" {
		return nil
	}
	r := &rd{chain: chain, b: []byte(*ptr)}
	flags := r.u8()
	b := &Bid{
		Amount:       r.u64(),
		FirstFunded:  flags&1 != 0,
		SecondFunded: flags&2 != 0,
	}
	b.Asset = sdk.Asset(r.str())
	b.StreamToFirst = r.str()
	b.StreamToSecond = r.str()
	r.mustEnd()
	return b
}

// ---------- Entry: Fund ----------

// gBidImpl lets a player deposit their stake. The stake is drawn via a
// transfer.allow intent and a clock stream for that player is created
// on the streaming contract; the funded flag and stream handle commit
// only once the creation confirms (cb_funded). Funding twice is
// rejected outright — overwriting the handle would orphan a live
// stream.
func gBidImpl(payload *string, chain SDKInterface) *string {
	in := *payload
	gameId := parseU64Fast(nextField(&in))
	require(chain, in == "", "too many arguments")

	g := loadGame(chain, gameId)
	bid := loadBid(chain, gameId)
	require(chain, bid != nil, "there's no staked game with such index")
	require(chain, !g.Finished, "game is already finished")

	sender := chain.GetEnv().Sender.Address.String()
	var player uint8
	switch sender {
	case g.FirstPlayer:
		require(chain, !bid.FirstFunded, "already funded")
		player = 1
	case g.SecondPlayer:
		require(chain, !bid.SecondFunded, "already funded")
		player = 2
	default:
		chain.Abort("not a player")
	}

	ta := GetFirstTransferAllow(chain, chain.GetEnv().Intents)
	require(chain, ta != nil, "intent missing")
	require(chain, ta.Token == bid.Asset, "wrong stake token")
	require(chain, uint64(ta.Limit*1000) >= bid.Amount, "must cover the stake")

	chain.HiveDraw(int64(bid.Amount), bid.Asset)
	createStream(chain, bid.Amount, *g.Playtime, sender,
		UInt64ToString(gameId)+"|"+UInt64ToString(uint64(player)))
	return nil
}

// createdStream is the payload the streaming contract answers a create
// request with.
type createdStream struct {
	ID string `json:"id"`
}

// cbFundedImpl commits a player's funding once their stream exists.
// Args: gameId|player.
func cbFundedImpl(payload *string, chain SDKInterface) *string {
	requirePrivate(chain)
	results := requireResults(chain, 1)

	in := *payload
	gameId := parseU64Fast(nextField(&in))
	player := parseU8Fast(nextField(&in))
	require(chain, in == "", "too many arguments")
	require(chain, player == 1 || player == 2, "invalid player")

	require(chain, results[0].Ok, "stream creation failed")
	var created createdStream
	if err := json.Unmarshal([]byte(results[0].Payload), &created); err != nil || created.ID == "" {
		chain.Abort("malformed stream creation payload")
	}

	bid := loadBid(chain, gameId)
	require(chain, bid != nil, "there's no staked game with such index")
	bid.recordFunding(player, created.ID)
	saveBid(chain, gameId, bid)

	EmitGameFunded(chain, gameId, player)
	return nil
}
