package main

import (
	"github.com/klimoza/hex-game/sdk"
)

// --- SDK interface abstraction ---

// SDKInterface is the slice of host functionality the contract logic
// touches. Entry points pass RealSDK; tests inject a fake.
type SDKInterface interface {
	StateSetObject(key, value string)
	StateGetObject(key string) *string
	Abort(msg string)
	Log(msg string)
	GetEnv() sdk.Env
	GetEnvKey(key string) *string
	HiveDraw(amount int64, asset sdk.Asset)
	HiveTransfer(to sdk.Address, amount int64, asset sdk.Asset)
	ContractCall(contract, method, payload, callback, callbackArgs string)
	CallResults() []sdk.CallResult
}

// RealSDK is the production implementation forwarding to the host
// bindings in the sdk package.
type RealSDK struct{}

func (RealSDK) StateSetObject(key, value string)  { sdk.StateSetObject(key, value) }
func (RealSDK) StateGetObject(key string) *string { return sdk.StateGetObject(key) }
func (RealSDK) Abort(msg string)                  { sdk.Abort(msg) }
func (RealSDK) Log(msg string)                    { sdk.Log(msg) }
func (RealSDK) GetEnv() sdk.Env                   { return sdk.GetEnv() }
func (RealSDK) GetEnvKey(key string) *string      { return sdk.GetEnvKey(key) }
func (RealSDK) HiveDraw(amount int64, asset sdk.Asset) {
	sdk.HiveDraw(amount, asset)
}
func (RealSDK) HiveTransfer(to sdk.Address, amount int64, asset sdk.Asset) {
	sdk.HiveTransfer(to, amount, asset)
}
func (RealSDK) ContractCall(contract, method, payload, callback, callbackArgs string) {
	sdk.ContractCall(contract, method, payload, callback, callbackArgs)
}
func (RealSDK) CallResults() []sdk.CallResult { return sdk.CallResults() }
