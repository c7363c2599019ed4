package main

import (
	"fmt"
	"testing"

	"github.com/klimoza/hex-game/sdk"
)

// fake sdk for testing

type scheduledCall struct {
	Contract string
	Method   string
	Payload  string
	Callback string
	Args     string
}

type tokenMove struct {
	To     string
	Amount int64
	Asset  sdk.Asset
}

type FakeSDK struct {
	state     map[string]string
	env       sdk.Env
	envKeys   map[string]string
	results   []sdk.CallResult
	scheduled []scheduledCall
	draws     []tokenMove
	transfers []tokenMove
	logs      []string
	aborted   bool
	abortMsg  string
}

const fakeContractId = "contract:hexgame"

func NewFakeSDK(sender string, txid string) *FakeSDK {
	f := &FakeSDK{
		state: make(map[string]string),
		envKeys: map[string]string{
			"block.height": "100",
		},
	}
	f.env.ContractId = fakeContractId
	f.env.TxId = txid
	f.env.Caller = sdk.Address(sender)
	f.env.Sender.Address = sdk.Address(sender)
	return f
}

func (f *FakeSDK) StateSetObject(key, value string) {
	f.state[key] = value
}

func (f *FakeSDK) StateGetObject(key string) *string {
	val, ok := f.state[key]
	if !ok {
		return nil
	}
	return &val
}

func (f *FakeSDK) Abort(msg string) {
	f.aborted = true
	f.abortMsg = msg
	panic(fmt.Sprintf("Abort called: %s", msg))
}

func (f *FakeSDK) Log(msg string) {
	f.logs = append(f.logs, msg)
}

func (f *FakeSDK) GetEnv() sdk.Env { return f.env }

func (f *FakeSDK) GetEnvKey(key string) *string {
	val, ok := f.envKeys[key]
	if !ok {
		return nil
	}
	return &val
}

func (f *FakeSDK) HiveDraw(amount int64, asset sdk.Asset) {
	f.draws = append(f.draws, tokenMove{
		To:     f.env.Sender.Address.String(),
		Amount: amount,
		Asset:  asset,
	})
}

func (f *FakeSDK) HiveTransfer(to sdk.Address, amount int64, asset sdk.Asset) {
	f.transfers = append(f.transfers, tokenMove{To: to.String(), Amount: amount, Asset: asset})
}

func (f *FakeSDK) ContractCall(contract, method, payload, callback, callbackArgs string) {
	f.scheduled = append(f.scheduled, scheduledCall{
		Contract: contract,
		Method:   method,
		Payload:  payload,
		Callback: callback,
		Args:     callbackArgs,
	})
}

func (f *FakeSDK) CallResults() []sdk.CallResult { return f.results }

// ---------- test helpers ----------

// setSender switches the invocation to an external account.
func (f *FakeSDK) setSender(addr string) {
	f.env.Sender.Address = sdk.Address(addr)
	f.env.Caller = sdk.Address(addr)
	f.env.Intents = nil
}

// asContract switches the invocation to a self-call delivering the
// given joined results, the shape continuation entrypoints run in.
func (f *FakeSDK) asContract(results ...sdk.CallResult) {
	f.env.Sender.Address = sdk.Address(fakeContractId)
	f.env.Caller = sdk.Address(fakeContractId)
	f.env.Intents = nil
	f.results = results
}

func (f *FakeSDK) allowTransfer(limit, token string) {
	f.env.Intents = append(f.env.Intents, sdk.Intent{
		Type: "transfer.allow",
		Args: map[string]string{"limit": limit, "token": token},
	})
}

// takeScheduled drains and returns the calls queued so far.
func (f *FakeSDK) takeScheduled() []scheduledCall {
	s := f.scheduled
	f.scheduled = nil
	return s
}

func ok(payload string) sdk.CallResult {
	return sdk.CallResult{Ok: true, Payload: payload}
}

// helper for check for aborts in testing mode
func expectAbort(t *testing.T, chain *FakeSDK, expectedMsg string) {
	t.Helper()
	if r := recover(); r == nil {
		t.Errorf("expected Abort panic, but function did not panic")
	} else {
		if !chain.aborted {
			t.Errorf("expected Abort to be called, but it wasn't")
		}
		if chain.abortMsg != expectedMsg {
			t.Errorf("expected abort message %q, got %q", expectedMsg, chain.abortMsg)
		}
	}
}
