//go:build !test

package sdk

import (
	"encoding/json"
	"unsafe"
)

// Host bindings for the contract runtime. The module is compiled with
// TinyGo to WASM and linked against these imports; strings cross the
// boundary as (ptr, len) pairs, host-produced strings come back packed
// as ptr<<32|len in a single u64 (zero means "no value").

//go:wasmimport sdk stateSetObject
func hostStateSetObject(keyPtr, keyLen, valPtr, valLen uint32)

//go:wasmimport sdk stateGetObject
func hostStateGetObject(keyPtr, keyLen uint32) uint64

//go:wasmimport sdk abort
func hostAbort(msgPtr, msgLen uint32)

//go:wasmimport sdk log
func hostLog(msgPtr, msgLen uint32)

//go:wasmimport sdk getEnv
func hostGetEnv() uint64

//go:wasmimport sdk getEnvKey
func hostGetEnvKey(keyPtr, keyLen uint32) uint64

//go:wasmimport sdk hiveDraw
func hostHiveDraw(amount int64, assetPtr, assetLen uint32)

//go:wasmimport sdk hiveTransfer
func hostHiveTransfer(toPtr, toLen uint32, amount int64, assetPtr, assetLen uint32)

//go:wasmimport sdk contractCall
func hostContractCall(
	contractPtr, contractLen,
	methodPtr, methodLen,
	payloadPtr, payloadLen,
	callbackPtr, callbackLen,
	argsPtr, argsLen uint32,
)

//go:wasmimport sdk callResultCount
func hostCallResultCount() uint32

//go:wasmimport sdk callResultOk
func hostCallResultOk(index uint32) uint32

//go:wasmimport sdk callResultPayload
func hostCallResultPayload(index uint32) uint64

func strPtr(s string) (uint32, uint32) {
	if len(s) == 0 {
		return 0, 0
	}
	return uint32(uintptr(unsafe.Pointer(unsafe.StringData(s)))), uint32(len(s))
}

func unpack(v uint64) *string {
	if v == 0 {
		return nil
	}
	s := unsafe.String((*byte)(unsafe.Pointer(uintptr(v>>32))), int(uint32(v)))
	return &s
}

func StateSetObject(key, value string) {
	kp, kl := strPtr(key)
	vp, vl := strPtr(value)
	hostStateSetObject(kp, kl, vp, vl)
}

func StateGetObject(key string) *string {
	kp, kl := strPtr(key)
	return unpack(hostStateGetObject(kp, kl))
}

// Abort traps the invocation; no state written afterwards is committed.
func Abort(msg string) {
	mp, ml := strPtr(msg)
	hostAbort(mp, ml)
	panic(msg)
}

func Log(msg string) {
	mp, ml := strPtr(msg)
	hostLog(mp, ml)
}

func GetEnv() Env {
	raw := unpack(hostGetEnv())
	if raw == nil {
		Abort("missing environment")
	}
	var e Env
	if err := json.Unmarshal([]byte(*raw), &e); err != nil {
		Abort("malformed environment")
	}
	return e
}

func GetEnvKey(key string) *string {
	kp, kl := strPtr(key)
	return unpack(hostGetEnvKey(kp, kl))
}

func HiveDraw(amount int64, asset Asset) {
	ap, al := strPtr(asset.String())
	hostHiveDraw(amount, ap, al)
}

func HiveTransfer(to Address, amount int64, asset Asset) {
	tp, tl := strPtr(to.String())
	ap, al := strPtr(asset.String())
	hostHiveTransfer(tp, tl, amount, ap, al)
}

// ContractCall schedules a call against another contract and registers
// callback (an exported entrypoint of this contract) as its
// continuation, invoked later with callbackArgs as payload. Calls
// issued within one invocation that name the same callback are joined:
// the callback runs once, after all of them resolved, with their
// results available through CallResults in declaration order.
func ContractCall(contract, method, payload, callback, callbackArgs string) {
	cp, cl := strPtr(contract)
	mp, ml := strPtr(method)
	pp, pl := strPtr(payload)
	bp, bl := strPtr(callback)
	ap, al := strPtr(callbackArgs)
	hostContractCall(cp, cl, mp, ml, pp, pl, bp, bl, ap, al)
}

// CallResults returns the upstream results delivered to the current
// continuation invocation, empty outside of continuations.
func CallResults() []CallResult {
	n := hostCallResultCount()
	out := make([]CallResult, 0, n)
	for i := uint32(0); i < n; i++ {
		res := CallResult{Ok: hostCallResultOk(i) == 1}
		if p := unpack(hostCallResultPayload(i)); p != nil {
			res.Payload = *p
		}
		out = append(out, res)
	}
	return out
}
