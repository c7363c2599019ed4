package main

import (
	"encoding/json"

	"github.com/klimoza/hex-game/sdk"
)

//
// Settlement saga. A staked move cannot be trusted until both clock
// streams are paused and inspected, so the move is parked as a pending
// marker and driven through a chain of continuations:
//
//	g_move -> get_stream x2 -> cb_streams -> pause/stop -> cb_settle
//	       -> settle: apply move | forfeit | draw -> cb_payout / cb_ack
//
// Every continuation re-loads state from storage; nothing is assumed
// to survive between invocations.
//

// FinishedStreams says whose clocks have fully drained.
type FinishedStreams uint8

const (
	finishedNone FinishedStreams = iota
	finishedFirst
	finishedSecond
	finishedBoth
)

// requirePrivate guards continuation entrypoints: only the contract's
// own scheduled callbacks may invoke them.
func requirePrivate(chain SDKInterface) {
	env := chain.GetEnv()
	require(chain, env.Caller == env.ContractId, "unauthorized continuation")
}

// requireResults asserts the continuation received exactly n joined
// call results and returns them.
func requireResults(chain SDKInterface, n int) []sdk.CallResult {
	results := chain.CallResults()
	require(chain, len(results) == n, "wrong results count")
	return results
}

// settleState travels through cb_settle as callback args. It carries
// the stream snapshots taken before pausing, with the statuses of the
// streams we paused already folded to Paused.
type settleState struct {
	GameID  uint64    `json:"game_id"`
	Streams [2]Stream `json:"streams"`
	Acks    int       `json:"acks"`
}

// payoutState travels through cb_payout as callback args.
type payoutState struct {
	GameID uint64 `json:"game_id"`
	Winner string `json:"winner"`
	Amount uint64 `json:"amount,string"`
	Acks   int    `json:"acks"`
}

// ---------- Entry: Move ----------

// gMoveImpl handles a move request. Payload:
//
//	id|p|row|col   place a stone
//	id|s           invoke the swap rule
//
// Free games apply the move synchronously. Staked games park it as a
// pending marker and query both clock streams; the move lands (or the
// game forfeits) in the settlement continuations. Moving in a finished
// game is a no-op returning the final position.
func gMoveImpl(payload *string, chain SDKInterface) *string {
	in := *payload
	id := parseU64Fast(nextField(&in))
	kind := nextField(&in)

	sender := chain.GetEnv().Sender.Address.String()
	mv := &pendingMove{By: sender}
	switch kind {
	case "p":
		mv.Type = Place
		mv.Cell.Row = parseU8Fast(nextField(&in))
		mv.Cell.Col = parseU8Fast(nextField(&in))
	case "s":
		mv.Type = Swap
	default:
		chain.Abort("incorrect move args")
	}
	require(chain, in == "", "too many arguments")

	g := loadGame(chain, id)
	if g.Finished {
		return gameJSON(chain, g)
	}
	require(chain, isPlayer(g, sender), "not a player")

	bid := loadBid(chain, id)
	if bid == nil {
		applyMove(chain, g, mv)
		saveGame(chain, g)
		emitMove(chain, g, mv)
		return gameJSON(chain, g)
	}

	require(chain, bid.bothFunded(), "players must fund their stakes before the game starts")
	checkMove(chain, g, mv)

	savePendingMove(chain, id, mv)
	queryStreamPair(chain, bid, UInt64ToString(id))
	return nil
}

// ---------- Continuation: stream snapshots ----------

// cbStreamsImpl receives both clock streams, pauses whatever is still
// running and hands the snapshots to cb_settle. An active stream with
// nothing left to stream has already drained; it gets stopped for good
// and counts as finished. When nothing is running the settlement runs
// inline.
func cbStreamsImpl(payload *string, chain SDKInterface) *string {
	requirePrivate(chain)
	results := requireResults(chain, 2)

	in := *payload
	id := parseU64Fast(nextField(&in))
	require(chain, in == "", "too many arguments")

	require(chain, results[0].Ok && results[1].Ok, "stream query failed")
	s1 := parseStream(chain, results[0].Payload)
	s2 := parseStream(chain, results[1].Payload)

	g := loadGame(chain, id)
	if g.Finished {
		return gameJSON(chain, g)
	}
	bid := loadBid(chain, id)
	require(chain, bid != nil, "there's no staked game with such index")

	st := settleState{GameID: id, Streams: [2]Stream{*s1, *s2}}
	for i := range st.Streams {
		s := &st.Streams[i]
		if classify(chain, s) != statusActive {
			continue
		}
		st.Acks++
		if s.Balance == 0 {
			// fully drained, nothing left to protect
			s.Status = StreamFinished
			s.Reason = ReasonFinishedNaturally
		} else {
			s.Status = StreamPaused
			s.Reason = ""
		}
	}
	if st.Acks == 0 {
		return settleStreams(chain, g, bid, s1, s2)
	}

	cbArgs := ToJSON(chain, st, "settle state")
	for i, s := range []*Stream{s1, s2} {
		if classify(chain, s) != statusActive {
			continue
		}
		if s.Balance == 0 {
			stopStream(chain, st.Streams[i].ID, cbSettle, cbArgs)
		} else {
			pauseStream(chain, st.Streams[i].ID, cbSettle, cbArgs)
		}
	}
	return nil
}

// cbSettleImpl fires once every pause/stop issued by cb_streams has
// acknowledged, then runs the settlement proper.
func cbSettleImpl(payload *string, chain SDKInterface) *string {
	requirePrivate(chain)

	var st settleState
	if err := json.Unmarshal([]byte(*payload), &st); err != nil {
		chain.Abort("malformed settle state")
	}
	results := requireResults(chain, st.Acks)
	for _, r := range results {
		require(chain, r.Ok, "stream pause failed")
	}

	g := loadGame(chain, st.GameID)
	bid := loadBid(chain, st.GameID)
	require(chain, bid != nil, "there's no staked game with such index")
	return settleStreams(chain, g, bid, &st.Streams[0], &st.Streams[1])
}

// deriveFinished folds two non-active stream snapshots into the drain
// verdict.
func deriveFinished(chain SDKInterface, s1, s2 *Stream) FinishedStreams {
	c1 := classify(chain, s1)
	c2 := classify(chain, s2)
	require(chain, c1 != statusActive && c2 != statusActive, "stream is still active")

	switch {
	case c1 == statusFinished && c2 == statusFinished:
		return finishedBoth
	case c1 == statusFinished:
		return finishedFirst
	case c2 == statusFinished:
		return finishedSecond
	}
	return finishedNone
}

// settleStreams decides the staked game's fate from the paused clocks.
// A drained clock forfeits its owner; both drained is a draw refunding
// the stakes; otherwise the pending move applies. Re-running on an
// already finished game is harmless.
func settleStreams(chain SDKInterface, g *Game, bid *Bid, s1, s2 *Stream) *string {
	if g.Finished {
		return gameJSON(chain, g)
	}

	switch deriveFinished(chain, s1, s2) {
	case finishedNone:
		return applyPendingMove(chain, g, bid)
	case finishedFirst:
		return finishForfeit(chain, g, bid, g.SecondPlayer, bid.StreamToSecond)
	case finishedSecond:
		return finishForfeit(chain, g, bid, g.FirstPlayer, bid.StreamToFirst)
	}

	// both clocks drained: nobody wins, each side gets their stake back
	g.Finished = true
	clearPendingMove(chain, g.ID)
	saveGame(chain, g)
	chain.HiveTransfer(sdk.Address(g.FirstPlayer), int64(bid.Amount), bid.Asset)
	chain.HiveTransfer(sdk.Address(g.SecondPlayer), int64(bid.Amount), bid.Asset)
	EmitGameDrawn(chain, g.ID)
	return gameJSON(chain, g)
}

// finishForfeit ends the game on a drained clock. The survivor's
// stream is stopped and the whole pot goes to the winner once the stop
// acknowledges.
func finishForfeit(chain SDKInterface, g *Game, bid *Bid, winner, survivorStream string) *string {
	g.Finished = true
	w := winner
	g.Winner = &w
	clearPendingMove(chain, g.ID)
	saveGame(chain, g)
	EmitGameWon(chain, g.ID, winner, "timeout")

	st := payoutState{GameID: g.ID, Winner: winner, Amount: 2 * bid.Amount, Acks: 1}
	stopStream(chain, survivorStream, cbPayout, ToJSON(chain, st, "payout state"))
	return gameJSON(chain, g)
}

// applyPendingMove lands the parked move now that both clocks are
// verified paused. A winning move stops both streams and routes the
// pot through cb_payout; otherwise the clock of the player now on turn
// resumes.
func applyPendingMove(chain SDKInterface, g *Game, bid *Bid) *string {
	mv := loadPendingMove(chain, g.ID)
	require(chain, mv != nil, "no pending move")

	applyMove(chain, g, mv)
	clearPendingMove(chain, g.ID)
	saveGame(chain, g)
	emitMove(chain, g, mv)

	if g.Finished {
		EmitGameWon(chain, g.ID, *g.Winner, "connection")
		st := payoutState{GameID: g.ID, Winner: *g.Winner, Amount: 2 * bid.Amount, Acks: 2}
		cbArgs := ToJSON(chain, st, "payout state")
		stopStream(chain, bid.StreamToFirst, cbPayout, cbArgs)
		stopStream(chain, bid.StreamToSecond, cbPayout, cbArgs)
		return gameJSON(chain, g)
	}

	next := bid.StreamToFirst
	if g.Turn%2 == 1 {
		next = bid.StreamToSecond
	}
	resumeStream(chain, next, cbAck, UInt64ToString(g.ID))
	return gameJSON(chain, g)
}

// ---------- Continuation: payout ----------

// cbPayoutImpl pays the pot once every stream termination issued for a
// finished game has acknowledged.
func cbPayoutImpl(payload *string, chain SDKInterface) *string {
	requirePrivate(chain)

	var st payoutState
	if err := json.Unmarshal([]byte(*payload), &st); err != nil {
		chain.Abort("malformed payout state")
	}
	results := requireResults(chain, st.Acks)
	for _, r := range results {
		require(chain, r.Ok, "stream terminate failed")
	}

	bid := loadBid(chain, st.GameID)
	require(chain, bid != nil, "there's no staked game with such index")
	chain.HiveTransfer(sdk.Address(st.Winner), int64(st.Amount), bid.Asset)
	EmitStreamsSettled(chain, st.GameID, st.Winner, st.Amount)
	return nil
}

// cbAckImpl absorbs fire-and-forget stream acknowledgements (resume
// after a move, stop on a cancelled game). Args: gameId.
func cbAckImpl(payload *string, chain SDKInterface) *string {
	requirePrivate(chain)
	results := chain.CallResults()
	require(chain, len(results) > 0, "wrong results count")
	for _, r := range results {
		require(chain, r.Ok, "stream call failed")
	}

	chain.Log("streams acknowledged for game " + *payload)
	return nil
}

// ---------- Entry: Resign ----------

// gResignImpl lets a player concede. A free game just records the
// opponent as winner. A staked game in progress hands them the pot. A
// staked game that never started (missing funding or no moves yet) is
// cancelled instead: no winner, funded players get their stakes back.
func gResignImpl(payload *string, chain SDKInterface) *string {
	in := *payload
	id := parseU64Fast(nextField(&in))
	require(chain, in == "", "too many arguments")

	g := loadGame(chain, id)
	require(chain, !g.Finished, "game is already finished")

	sender := chain.GetEnv().Sender.Address.String()
	require(chain, isPlayer(g, sender), "not a player")
	opponent := g.FirstPlayer
	if sender == g.FirstPlayer {
		opponent = g.SecondPlayer
	}

	bid := loadBid(chain, id)
	if bid == nil {
		g.Finished = true
		w := opponent
		g.Winner = &w
		saveGame(chain, g)
		EmitGameResigned(chain, id, sender, opponent)
		return gameJSON(chain, g)
	}

	if bid.bothFunded() && g.Turn > 0 {
		g.Finished = true
		w := opponent
		g.Winner = &w
		clearPendingMove(chain, id)
		saveGame(chain, g)
		EmitGameResigned(chain, id, sender, opponent)

		st := payoutState{GameID: id, Winner: opponent, Amount: 2 * bid.Amount, Acks: 2}
		cbArgs := ToJSON(chain, st, "payout state")
		stopStream(chain, bid.StreamToFirst, cbPayout, cbArgs)
		stopStream(chain, bid.StreamToSecond, cbPayout, cbArgs)
		return gameJSON(chain, g)
	}

	// never started: cancel and hand funded stakes back directly
	g.Finished = true
	clearPendingMove(chain, id)
	saveGame(chain, g)
	EmitGameResigned(chain, id, sender, "")
	if bid.FirstFunded {
		chain.HiveTransfer(sdk.Address(g.FirstPlayer), int64(bid.Amount), bid.Asset)
		stopStream(chain, bid.StreamToFirst, cbAck, UInt64ToString(id))
	}
	if bid.SecondFunded {
		chain.HiveTransfer(sdk.Address(g.SecondPlayer), int64(bid.Amount), bid.Asset)
		stopStream(chain, bid.StreamToSecond, cbAck, UInt64ToString(id))
	}
	return gameJSON(chain, g)
}
