package main

// Exported entrypoints. Each one is a thin wrapper handing the payload
// to the implementation together with the production SDK, so tests can
// drive the same code with a fake chain.

//go:wasmexport g_create
func CreateGame(payload *string) *string {
	return gCreateImpl(payload, RealSDK{})
}

//go:wasmexport g_get
func GetGame(payload *string) *string {
	return gGetImpl(payload, RealSDK{})
}

//go:wasmexport g_move
func MakeMove(payload *string) *string {
	return gMoveImpl(payload, RealSDK{})
}

//go:wasmexport g_bid
func MakeBid(payload *string) *string {
	return gBidImpl(payload, RealSDK{})
}

//go:wasmexport g_resign
func Resign(payload *string) *string {
	return gResignImpl(payload, RealSDK{})
}

// ---------- Continuations ----------
//
// These are reachable from the outside like any export, so every
// implementation starts by proving the caller is the contract itself.

//go:wasmexport cb_funded
func ResolveFunding(payload *string) *string {
	return cbFundedImpl(payload, RealSDK{})
}

//go:wasmexport cb_streams
func ResolveStreams(payload *string) *string {
	return cbStreamsImpl(payload, RealSDK{})
}

//go:wasmexport cb_settle
func ResolveSettlement(payload *string) *string {
	return cbSettleImpl(payload, RealSDK{})
}

//go:wasmexport cb_payout
func ResolvePayout(payload *string) *string {
	return cbPayoutImpl(payload, RealSDK{})
}

//go:wasmexport cb_ack
func ResolveAck(payload *string) *string {
	return cbAckImpl(payload, RealSDK{})
}
