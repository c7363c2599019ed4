package main

import "encoding/json"

//
// Client for the external payment-streaming contract. Every remote
// operation is asynchronous: the request goes out via ContractCall and
// a named continuation entrypoint receives the result in a later
// invocation.
//

// streamingAccount is the address of the streaming contract.
const streamingAccount = "vsc:streaming"

// Continuation entrypoint names. Calls issued within one invocation
// that name the same callback are joined and delivered together.
const (
	cbFunded  = "cb_funded"
	cbStreams = "cb_streams"
	cbSettle  = "cb_settle"
	cbPayout  = "cb_payout"
	cbAck     = "cb_ack"
)

// Raw status strings as the streaming contract reports them.
const (
	StreamInitialized = "Initialized"
	StreamActive      = "Active"
	StreamPaused      = "Paused"
	StreamFinished    = "Finished"
)

// Finish reasons accompanying the Finished status.
const (
	ReasonStoppedByOwner           = "StoppedByOwner"
	ReasonStoppedByReceiver        = "StoppedByReceiver"
	ReasonFinishedNaturally        = "FinishedNaturally"
	ReasonFinishedWhileTransferred = "FinishedWhileTransferred"
	ReasonFinishedCannotBeExtended = "FinishedBecauseCannotBeExtended"
)

// Stream mirrors the streaming contract's view of one stream.
type Stream struct {
	ID      string `json:"id"`
	Balance uint64 `json:"balance,string"`
	Status  string `json:"status"`
	Reason  string `json:"reason,omitempty"`
}

// StatusType is the three-way classification the settlement logic
// actually cares about.
type StatusType uint8

const (
	statusActive StatusType = iota
	statusPaused
	statusFinished
)

// classify folds the raw status+reason pair. A stream its receiver
// stopped still holds its remaining balance, so it counts as paused,
// not drained. Unknown statuses and unknown finish reasons abort
// rather than guess; a new reason must be classified here before it
// can settle anything.
func classify(chain SDKInterface, s *Stream) StatusType {
	switch s.Status {
	case StreamActive:
		return statusActive
	case StreamInitialized, StreamPaused:
		return statusPaused
	case StreamFinished:
		switch s.Reason {
		case ReasonStoppedByReceiver:
			return statusPaused
		case ReasonStoppedByOwner, ReasonFinishedNaturally,
			ReasonFinishedWhileTransferred, ReasonFinishedCannotBeExtended:
			return statusFinished
		}
		chain.Abort("unknown stream finish reason")
	}
	chain.Abort("unknown stream status")
	return statusFinished
}

func parseStream(chain SDKInterface, payload string) *Stream {
	var s Stream
	if err := json.Unmarshal([]byte(payload), &s); err != nil || s.ID == "" {
		chain.Abort("malformed stream payload")
	}
	return &s
}

// ---------- Request builders ----------

type createStreamRequest struct {
	Owner        string `json:"owner_id"`
	Receiver     string `json:"receiver_id"`
	Amount       uint64 `json:"amount,string"`
	TokensPerSec uint64 `json:"tokens_per_sec,string"`
	AutoStart    bool   `json:"is_auto_start_enabled"`
}

// createStream opens a player's clock stream paused, loaded with their
// stake, draining at stake/playtime per second. The contract owns the
// stream so it can pause, resume and stop it later; the player is the
// receiver the drained funds flow to.
func createStream(chain SDKInterface, amount uint64, playtime uint32, receiver, cbArgs string) {
	perSec := amount / uint64(playtime)
	if amount%uint64(playtime) != 0 {
		perSec++
	}
	req := createStreamRequest{
		Owner:        chain.GetEnv().ContractId.String(),
		Receiver:     receiver,
		Amount:       amount,
		TokensPerSec: perSec,
		AutoStart:    false,
	}
	chain.ContractCall(streamingAccount, "create_stream",
		ToJSON(chain, req, "create_stream"), cbFunded, cbArgs)
}

type streamIdRequest struct {
	StreamID string `json:"stream_id"`
}

// queryStreamPair issues two joined get_stream calls so cb_streams sees
// both clocks in one continuation: result 0 is the first player's
// stream, result 1 the second's.
func queryStreamPair(chain SDKInterface, bid *Bid, cbArgs string) {
	first := ToJSON(chain, streamIdRequest{StreamID: bid.StreamToFirst}, "get_stream")
	second := ToJSON(chain, streamIdRequest{StreamID: bid.StreamToSecond}, "get_stream")
	chain.ContractCall(streamingAccount, "get_stream", first, cbStreams, cbArgs)
	chain.ContractCall(streamingAccount, "get_stream", second, cbStreams, cbArgs)
}

func pauseStream(chain SDKInterface, id, callback, cbArgs string) {
	chain.ContractCall(streamingAccount, "pause_stream",
		ToJSON(chain, streamIdRequest{StreamID: id}, "pause_stream"), callback, cbArgs)
}

func resumeStream(chain SDKInterface, id, callback, cbArgs string) {
	chain.ContractCall(streamingAccount, "start_stream",
		ToJSON(chain, streamIdRequest{StreamID: id}, "start_stream"), callback, cbArgs)
}

// stopStream terminates a stream; the streaming contract pays the
// streamed part to the receiver and refunds the rest to the owner.
func stopStream(chain SDKInterface, id, callback, cbArgs string) {
	chain.ContractCall(streamingAccount, "stop_stream",
		ToJSON(chain, streamIdRequest{StreamID: id}, "stop_stream"), callback, cbArgs)
}
